package repository

import (
	"context"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

// AddMaterial prepends the material: the collection stays ordered most
// recently created first, which the presentation layer relies on.
func (r *Repository) AddMaterial(ctx context.Context, material models.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.materials = append([]models.Material{material}, r.materials...)
	r.persist(ctx, kvstore.KeyMaterials, r.materials)
}

// MaterialsByGrade returns the materials whose grade matches, preserving
// collection order. Pure query, no side effects.
func (r *Repository) MaterialsByGrade(grade models.SchoolGrade) []models.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Material
	for _, m := range r.materials {
		if m.Grade == grade {
			out = append(out, m)
		}
	}
	return out
}

// MaterialsByGradeSubject narrows MaterialsByGrade to one subject.
func (r *Repository) MaterialsByGradeSubject(grade models.SchoolGrade, subject models.Subject) []models.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Material
	for _, m := range r.materials {
		if m.Grade == grade && m.Subject == subject {
			out = append(out, m)
		}
	}
	return out
}

// Materials returns a copy of the materials collection, newest first.
func (r *Repository) Materials() []models.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Material, len(r.materials))
	copy(out, r.materials)
	return out
}
