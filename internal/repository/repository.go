// Package repository holds the four persisted collections in memory and
// mirrors every mutation back to the key/value store. The repository is
// constructed once at process start and passed by handle to every consumer;
// there are no ambient singletons.
package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

// SeedAdminID identifies the administrator account created on first run.
const SeedAdminID = "admin-1"

// Observer receives persistence telemetry. Implemented by the metrics
// service; nil disables observation.
type Observer interface {
	ObservePersist(key string, duration time.Duration, err error)
}

// Repository owns the in-memory collections and their durable mirror.
type Repository struct {
	store    kvstore.Store
	logger   *zap.Logger
	observer Observer

	seedName  string
	seedEmail string

	mu          sync.RWMutex
	users       []models.User
	materials   []models.Material
	assignments []models.Assignment
	submissions []models.Submission
	hydrated    bool
}

// Option customises repository construction.
type Option func(*Repository)

// WithObserver attaches persistence telemetry.
func WithObserver(o Observer) Option {
	return func(r *Repository) { r.observer = o }
}

// New builds a repository bound to the given store. seedName/seedEmail
// describe the administrator created when the users key is absent.
func New(store kvstore.Store, seedName, seedEmail string, logger *zap.Logger, opts ...Option) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{
		store:     store,
		logger:    logger,
		seedName:  seedName,
		seedEmail: seedEmail,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) seedAdmin() models.User {
	return models.User{
		ID:     SeedAdminID,
		Name:   r.seedName,
		Email:  r.seedEmail,
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	}
}

// Hydrate loads every collection from the store. Absent or unreadable keys
// fall back to defaults: empty collections, except users which defaults to
// the seeded administrator. Must complete before session restoration.
func (r *Repository) Hydrate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = []models.User{r.seedAdmin()}
	loadCollection(ctx, r, kvstore.KeyUsers, &r.users, []models.User{r.seedAdmin()})

	r.materials = nil
	loadCollection(ctx, r, kvstore.KeyMaterials, &r.materials, nil)

	r.assignments = nil
	loadCollection(ctx, r, kvstore.KeyAssignments, &r.assignments, nil)

	r.submissions = nil
	loadCollection(ctx, r, kvstore.KeySubmissions, &r.submissions, nil)

	r.hydrated = true
	r.logger.Info("repository hydrated",
		zap.Int("users", len(r.users)),
		zap.Int("materials", len(r.materials)),
		zap.Int("assignments", len(r.assignments)),
		zap.Int("submissions", len(r.submissions)),
	)
	return nil
}

// Hydrated reports whether Hydrate has completed.
func (r *Repository) Hydrated() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hydrated
}

// Reset wipes all persisted keys and reinstates the seeded default state.
// Last-resort recovery path; not reachable from normal operation.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range kvstore.CollectionKeys() {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}

	r.users = []models.User{r.seedAdmin()}
	r.materials = nil
	r.assignments = nil
	r.submissions = nil
	r.logger.Warn("repository reset to seeded defaults")
	return nil
}

// loadCollection decodes one key into dst, falling back to fallback when the
// key is absent or its value cannot be parsed. Corrupt data never crashes the
// application.
func loadCollection[T any](ctx context.Context, r *Repository, key string, dst *[]T, fallback []T) {
	data, err := r.store.Load(ctx, key)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			r.logger.Warn("collection unreadable, using default", zap.String("key", key), zap.Error(err))
		}
		*dst = fallback
		return
	}
	var decoded []T
	if err := json.Unmarshal(data, &decoded); err != nil {
		r.logger.Warn("collection corrupt, using default", zap.String("key", key), zap.Error(err))
		*dst = fallback
		return
	}
	*dst = decoded
}

// persist mirrors the full collection to the store. Write failures are
// logged, never surfaced: durability is best-effort by contract. Callers hold
// the write lock.
func (r *Repository) persist(ctx context.Context, key string, collection interface{}) {
	start := time.Now()
	data, err := json.Marshal(collection)
	if err == nil {
		err = r.store.Save(ctx, key, data)
	}
	if r.observer != nil {
		r.observer.ObservePersist(key, time.Since(start), err)
	}
	if err != nil {
		r.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}
