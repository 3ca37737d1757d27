package repository

import (
	"context"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

// AddUser appends the user to the collection and mirrors it to the store. No
// validation happens here; uniqueness and required fields are the caller's
// responsibility.
func (r *Repository) AddUser(ctx context.Context, user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, user)
	r.persist(ctx, kvstore.KeyUsers, r.users)
}

// UpdateUserStatus replaces the status of the user matching id. A missing id
// is a silent no-op; re-applying the same status yields the same state.
func (r *Repository) UpdateUserStatus(ctx context.Context, id string, status models.UserStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Status = status
			r.persist(ctx, kvstore.KeyUsers, r.users)
			return
		}
	}
}

// UserByID returns the user matching id, or nil.
func (r *Repository) UserByID(id string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u
		}
	}
	return nil
}

// UserByEmail returns the first user with the exact (case-sensitive) email,
// or nil. When duplicates exist the first match wins.
func (r *Repository) UserByEmail(email string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u
		}
	}
	return nil
}

// Users returns a copy of the users collection in insertion order.
func (r *Repository) Users() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// PendingTeachers returns teachers awaiting approval, in insertion order.
func (r *Repository) PendingTeachers() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.User
	for _, u := range r.users {
		if u.Role == models.RoleTeacher && u.Status == models.StatusPending {
			out = append(out, u)
		}
	}
	return out
}
