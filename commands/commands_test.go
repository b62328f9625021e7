package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliShapes = `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:PersonShape a sh:NodeShape ;
	sh:targetClass ex:Person ;
	sh:name "Person" ;
	sh:property [
		sh:path ex:name ;
		sh:minCount 1 ;
	] .
`

const cliDataGood = `
@prefix ex: <http://example.org/> .
ex:p a ex:Person ; ex:name "Pat" .
`

const cliDataBad = `
@prefix ex: <http://example.org/> .
ex:p a ex:Person .
`

// writeFixtures writes the shapes and data files into a temp dir and
// returns their paths.
func writeFixtures(t *testing.T) (shapesPath, goodPath, badPath string) {
	t.Helper()
	dir := t.TempDir()
	shapesPath = filepath.Join(dir, "shapes.ttl")
	goodPath = filepath.Join(dir, "good.ttl")
	badPath = filepath.Join(dir, "bad.ttl")
	require.NoError(t, os.WriteFile(shapesPath, []byte(cliShapes), 0644))
	require.NoError(t, os.WriteFile(goodPath, []byte(cliDataGood), 0644))
	require.NoError(t, os.WriteFile(badPath, []byte(cliDataBad), 0644))
	return shapesPath, goodPath, badPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "semshacl", SilenceErrors: true}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	Register(root, logger)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	shapesPath, goodPath, badPath := writeFixtures(t)

	t.Run("conforming data", func(t *testing.T) {
		out, err := runCommand(t, "validate", "--shapes", shapesPath, goodPath)
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Data conforms to all shapes")
	})

	t.Run("non-conforming data", func(t *testing.T) {
		out, err := runCommand(t, "validate", "--shapes", shapesPath, badPath)
		assert.ErrorIs(t, err, ErrNotConforming)
		assert.Contains(t, out, "✗ Data does NOT conform to all shapes")
		assert.Contains(t, out, "Property has 0 values (min: 1)")
	})

	t.Run("json format", func(t *testing.T) {
		out, err := runCommand(t, "validate", "--shapes", shapesPath, "--format", "json", badPath)
		assert.ErrorIs(t, err, ErrNotConforming)

		var report struct {
			Conforms bool `json:"conforms"`
			Results  []struct {
				FocusNode string `json:"focusNode"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.False(t, report.Conforms)
		require.Len(t, report.Results, 1)
	})

	t.Run("glob pattern", func(t *testing.T) {
		pattern := filepath.Join(filepath.Dir(shapesPath), "shapes*.ttl")
		out, err := runCommand(t, "validate", "--shapes", pattern, goodPath)
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Data conforms to all shapes")
	})

	t.Run("missing shapes file", func(t *testing.T) {
		_, err := runCommand(t, "validate", "--shapes", "/nonexistent/shapes.ttl", goodPath)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotConforming))
	})

	t.Run("no shapes given", func(t *testing.T) {
		_, err := runCommand(t, "validate", goodPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no shapes files given")
	})
}

func TestConformsCommand(t *testing.T) {
	shapesPath, goodPath, badPath := writeFixtures(t)

	t.Run("conforming", func(t *testing.T) {
		out, err := runCommand(t, "conforms", "--shapes", shapesPath, goodPath)
		require.NoError(t, err)
		assert.Contains(t, out, "conforms")
	})

	t.Run("non-conforming", func(t *testing.T) {
		out, err := runCommand(t, "conforms", "--shapes", shapesPath, badPath)
		assert.ErrorIs(t, err, ErrNotConforming)
		assert.Contains(t, out, "does not conform (1 results)")
	})
}

func TestShapesCommand(t *testing.T) {
	shapesPath, _, _ := writeFixtures(t)

	t.Run("text summary", func(t *testing.T) {
		out, err := runCommand(t, "shapes", "--shapes", shapesPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Shapes: 2 (1 node, 1 property)")
		assert.Contains(t, out, "<http://example.org/PersonShape>")
		assert.Contains(t, out, "Name: Person")
		assert.Contains(t, out, "Target: targetClass <http://example.org/Person>")
		assert.Contains(t, out, "Property <http://example.org/name>")
		assert.Contains(t, out, "MinCountConstraintComponent")
	})

	t.Run("json summary", func(t *testing.T) {
		out, err := runCommand(t, "shapes", "--shapes", shapesPath, "--json")
		require.NoError(t, err)

		var summary []struct {
			ID         string `json:"id"`
			Kind       string `json:"kind"`
			Name       string `json:"name"`
			Properties []struct {
				Kind        string   `json:"kind"`
				Path        string   `json:"path"`
				Constraints []string `json:"constraints"`
			} `json:"properties"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &summary))
		require.Len(t, summary, 1)
		assert.Equal(t, "node", summary[0].Kind)
		assert.Equal(t, "Person", summary[0].Name)
		require.Len(t, summary[0].Properties, 1)
		assert.Equal(t, "property", summary[0].Properties[0].Kind)
		assert.Equal(t, "<http://example.org/name>", summary[0].Properties[0].Path)
	})
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ttl", "b.ttl", "c.jsonld"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0644))
	}

	t.Run("glob matches sorted", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "*.ttl")})
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, filepath.Join(dir, "a.ttl"), files[0])
		assert.Equal(t, filepath.Join(dir, "b.ttl"), files[1])
	})

	t.Run("plain path passes through", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "missing.ttl")})
		require.NoError(t, err)
		require.Len(t, files, 1)
	})

	t.Run("duplicates removed", func(t *testing.T) {
		files, err := expandGlobs([]string{
			filepath.Join(dir, "a.ttl"),
			filepath.Join(dir, "*.ttl"),
		})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})
}
