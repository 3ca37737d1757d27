package repository

import (
	"context"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

// AddSubmission prepends the submission, newest first. The assignment id is
// not checked and repeat submissions by the same student accumulate.
func (r *Repository) AddSubmission(ctx context.Context, submission models.Submission) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.submissions = append([]models.Submission{submission}, r.submissions...)
	r.persist(ctx, kvstore.KeySubmissions, r.submissions)
}

// SetAIGrade records the automatic grade and feedback on a submission and
// marks it graded. Missing ids are a silent no-op.
func (r *Repository) SetAIGrade(ctx context.Context, id string, grade int, feedback string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].ID == id {
			r.submissions[i].AIGrade = &grade
			r.submissions[i].AIFeedback = feedback
			r.submissions[i].Status = models.SubmissionGraded
			r.persist(ctx, kvstore.KeySubmissions, r.submissions)
			return
		}
	}
}

// SetTeacherGrade records a teacher's override grade and marks the
// submission graded. Missing ids are a silent no-op.
func (r *Repository) SetTeacherGrade(ctx context.Context, id string, grade int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].ID == id {
			r.submissions[i].TeacherGrade = &grade
			r.submissions[i].Status = models.SubmissionGraded
			r.persist(ctx, kvstore.KeySubmissions, r.submissions)
			return
		}
	}
}

// SubmissionByID returns the submission matching id, or nil.
func (r *Repository) SubmissionByID(id string) *models.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.submissions {
		if r.submissions[i].ID == id {
			s := r.submissions[i]
			return &s
		}
	}
	return nil
}

// SubmissionsByAssignment returns submissions referencing the assignment,
// newest first.
func (r *Repository) SubmissionsByAssignment(assignmentID string) []models.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Submission
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out
}

// SubmissionsByStudent returns one student's submissions, newest first.
func (r *Repository) SubmissionsByStudent(studentID string) []models.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Submission
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out
}

// Submissions returns a copy of the submissions collection, newest first.
func (r *Repository) Submissions() []models.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Submission, len(r.submissions))
	copy(out, r.submissions)
	return out
}
