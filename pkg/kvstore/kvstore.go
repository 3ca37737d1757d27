package kvstore

import (
	"context"
	"errors"
)

// Well-known keys. Each collection key holds the JSON encoding of the full
// in-memory collection; the session key holds the active user id.
const (
	KeyUsers       = "users"
	KeyMaterials   = "materials"
	KeyAssignments = "assignments"
	KeySubmissions = "submissions"
	KeySession     = "session"
)

// ErrKeyNotFound signals an absent key. Callers are expected to fall back to
// a default value rather than fail.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store is a durable key/value substrate surviving process restarts.
type Store interface {
	// Load returns the stored value, or ErrKeyNotFound when the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save overwrites the value under key. Writing the same value twice is a
	// no-op in effect.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// CollectionKeys lists every key the repository persists, session included.
func CollectionKeys() []string {
	return []string{KeyUsers, KeyMaterials, KeyAssignments, KeySubmissions, KeySession}
}
