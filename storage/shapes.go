// Package storage provides named shapes graph storage for semshacl using
// NATS KV. Registered graphs can be referenced by name in validation
// requests instead of being sent inline.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// BucketShapes is the KV bucket holding registered shapes graphs.
const BucketShapes = "SEMSHACL_SHAPES"

// namePattern restricts names to what a KV key can hold.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidName reports whether name can be used as a shapes graph key.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ShapesRecord is one registered shapes graph.
type ShapesRecord struct {
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShapesStore provides shapes graph storage backed by NATS KV.
type ShapesStore struct {
	kv jetstream.KeyValue
}

// NewShapesStore creates a ShapesStore with the given JetStream context.
// It creates the KV bucket if it doesn't exist.
func NewShapesStore(ctx context.Context, js jetstream.JetStream, bucket string) (*ShapesStore, error) {
	if bucket == "" {
		bucket = BucketShapes
	}
	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create shapes bucket: %w", err)
	}
	return &ShapesStore{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Semshacl registered shapes graphs",
		History:     5, // Keep last 5 revisions
	})
}

// Put stores a shapes graph under its name, replacing any previous
// revision.
func (s *ShapesStore) Put(ctx context.Context, rec *ShapesRecord) error {
	if !ValidName(rec.Name) {
		return fmt.Errorf("%w: %q", ErrBadName, rec.Name)
	}
	if rec.Format == "" {
		rec.Format = "turtle"
	}
	rec.UpdatedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal shapes record: %w", err)
	}
	if _, err := s.kv.Put(ctx, rec.Name, data); err != nil {
		return fmt.Errorf("store shapes graph: %w", err)
	}
	return nil
}

// Get retrieves a shapes graph by name.
func (s *ShapesStore) Get(ctx context.Context, name string) (*ShapesRecord, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	entry, err := s.kv.Get(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get shapes graph: %w", err)
	}

	var rec ShapesRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal shapes record: %w", err)
	}
	return &rec, nil
}

// Delete removes a shapes graph by name.
func (s *ShapesStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if err := s.kv.Delete(ctx, name); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete shapes graph: %w", err)
	}
	return nil
}

// List returns the names of all registered shapes graphs, sorted.
func (s *ShapesStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list shapes graphs: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
