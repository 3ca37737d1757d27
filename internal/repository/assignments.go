package repository

import (
	"context"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

// AddAssignment prepends the assignment, newest first.
func (r *Repository) AddAssignment(ctx context.Context, assignment models.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assignments = append([]models.Assignment{assignment}, r.assignments...)
	r.persist(ctx, kvstore.KeyAssignments, r.assignments)
}

// AssignmentByID returns the assignment matching id, or nil.
func (r *Repository) AssignmentByID(id string) *models.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.assignments {
		if r.assignments[i].ID == id {
			a := r.assignments[i]
			return &a
		}
	}
	return nil
}

// AssignmentsByGrade returns the assignments whose grade matches, preserving
// collection order. Pure query, no side effects.
func (r *Repository) AssignmentsByGrade(grade models.SchoolGrade) []models.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Assignment
	for _, a := range r.assignments {
		if a.Grade == grade {
			out = append(out, a)
		}
	}
	return out
}

// Assignments returns a copy of the assignments collection, newest first.
func (r *Repository) Assignments() []models.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Assignment, len(r.assignments))
	copy(out, r.assignments)
	return out
}
