package graph

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deiu/rdf2go"
)

// Serialization formats accepted by the loaders. Names are normalized to
// the MIME types rdf2go understands.
const (
	mimeTurtle = "text/turtle"
	mimeJSONLD = "application/ld+json"
)

// MIMEType maps a format name or file extension to a parser MIME type.
// Recognized names: ttl, turtle, nt, ntriples, jsonld, json-ld, json.
func MIMEType(format string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "ttl", "turtle", "nt", "ntriples", "n-triples", mimeTurtle:
		return mimeTurtle, nil
	case "jsonld", "json-ld", "json", mimeJSONLD:
		return mimeJSONLD, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatForPath guesses the serialization format from a file extension,
// defaulting to Turtle.
func FormatForPath(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return "turtle"
	}
	ext := strings.ToLower(path[idx+1:])
	if _, err := MIMEType(ext); err != nil {
		return "turtle"
	}
	return ext
}

// Load parses serialized RDF from r into a new store.
func Load(r io.Reader, format, baseURI string) (*Store, error) {
	mime, err := MIMEType(format)
	if err != nil {
		return nil, err
	}
	g := rdf2go.NewGraph(baseURI)
	if err := g.Parse(r, mime); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Wrap(g), nil
}

// LoadString parses serialized RDF from a string.
func LoadString(data, format, baseURI string) (*Store, error) {
	return Load(strings.NewReader(data), format, baseURI)
}

// LoadFile parses an RDF file, inferring the format from its extension.
func LoadFile(path, baseURI string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	store, err := Load(f, FormatForPath(path), baseURI)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return store, nil
}

// LoadFileInto parses an RDF file and merges its triples into dst.
func LoadFileInto(dst *Store, path string) error {
	src, err := LoadFile(path, "")
	if err != nil {
		return err
	}
	for t := range src.Graph().IterTriples() {
		dst.Graph().Add(t)
	}
	return nil
}

// Serialize writes the store to w in the named format.
func (s *Store) Serialize(w io.Writer, format string) error {
	mime, err := MIMEType(format)
	if err != nil {
		return err
	}
	return s.g.Serialize(w, mime)
}
