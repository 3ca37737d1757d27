package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/dto"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/repository"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/jobs"
)

// GradeJobKind identifies auto-grading jobs on the background queue.
const GradeJobKind = "auto_grade_submission"

// answerGrader is the slice of the tutor collaborator the grading flow needs.
type answerGrader interface {
	AutoGradeAnswer(ctx context.Context, question, answer string, grade models.SchoolGrade) models.AutoGradeResult
}

// ContentService implements material, assignment and submission use cases.
type ContentService struct {
	repo      *repository.Repository
	grader    answerGrader
	queue     *jobs.Queue
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContentService constructs a ContentService. The grading queue is
// attached separately because the queue's handler is this service.
func NewContentService(repo *repository.Repository, grader answerGrader, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, grader: grader, validator: validate, logger: logger}
}

// AttachGradeQueue enables background auto-grading of new submissions.
func (s *ContentService) AttachGradeQueue(q *jobs.Queue) {
	s.queue = q
}

// CreateMaterial publishes a material authored by the given teacher.
func (s *ContentService) CreateMaterial(ctx context.Context, author *models.User, req dto.CreateMaterialRequest) (*models.Material, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}

	material := models.Material{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ContentURL:  req.ContentURL,
		TextContent: req.TextContent,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		Grade:       req.Grade,
		Subject:     req.Subject,
		CreatedAt:   time.Now().UTC(),
	}
	s.repo.AddMaterial(ctx, material)
	return &material, nil
}

// CreateAssignment issues a graded task with ordered questions.
func (s *ContentService) CreateAssignment(ctx context.Context, author *models.User, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	questions := make([]models.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = models.Question{ID: uuid.NewString(), Text: q.Text}
	}

	assignment := models.Assignment{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Grade:       req.Grade,
		Subject:     req.Subject,
		DueDate:     req.DueDate,
		Questions:   questions,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		CreatedAt:   time.Now().UTC(),
	}
	s.repo.AddAssignment(ctx, assignment)
	return &assignment, nil
}

// SubmitAssignment records a student's answers. Whether the assignment id
// exists is not checked, and repeat submissions accumulate. When the grading
// queue is attached an auto-grade job is enqueued.
func (s *ContentService) SubmitAssignment(ctx context.Context, student *models.User, req dto.SubmitAssignmentRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	answers := make([]models.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = models.Answer{QuestionID: a.QuestionID, Text: a.Text}
	}

	submission := models.Submission{
		ID:           uuid.NewString(),
		AssignmentID: req.AssignmentID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		Answers:      answers,
		Status:       models.SubmissionSubmitted,
		SubmittedAt:  time.Now().UTC(),
	}
	s.repo.AddSubmission(ctx, submission)

	if s.queue != nil {
		job := jobs.Job{ID: uuid.NewString(), Kind: GradeJobKind, Payload: submission.ID}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("failed to enqueue auto-grade job", zap.String("submission_id", submission.ID), zap.Error(err))
		}
	}

	return &submission, nil
}

// GradeSubmission records a teacher's override grade.
func (s *ContentService) GradeSubmission(ctx context.Context, id string, req dto.TeacherGradeRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if s.repo.SubmissionByID(id) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}

	s.repo.SetTeacherGrade(ctx, id, req.Grade)
	return s.repo.SubmissionByID(id), nil
}

// HandleGradeJob is the queue handler that grades one submission through the
// tutor collaborator. The collaborator already degrades to a zero score on
// failure, so the job itself only fails on stale references.
func (s *ContentService) HandleGradeJob(ctx context.Context, job jobs.Job) error {
	submissionID, ok := job.Payload.(string)
	if !ok {
		s.logger.Warn("auto-grade job carries unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	submission := s.repo.SubmissionByID(submissionID)
	if submission == nil {
		s.logger.Warn("auto-grade job references missing submission", zap.String("submission_id", submissionID))
		return nil
	}
	if submission.Status == models.SubmissionGraded {
		return nil
	}

	questionText := map[string]string{}
	grade := models.SchoolGrade("")
	if assignment := s.repo.AssignmentByID(submission.AssignmentID); assignment != nil {
		grade = assignment.Grade
		for _, q := range assignment.Questions {
			questionText[q.ID] = q.Text
		}
	}

	total := 0
	feedback := ""
	for _, answer := range submission.Answers {
		result := s.grader.AutoGradeAnswer(ctx, questionText[answer.QuestionID], answer.Text, grade)
		total += result.Grade
		if feedback == "" {
			feedback = result.Feedback
		}
	}

	average := 0
	if len(submission.Answers) > 0 {
		average = total / len(submission.Answers)
	}

	s.repo.SetAIGrade(ctx, submissionID, average, feedback)
	s.logger.Info("submission auto-graded", zap.String("submission_id", submissionID), zap.Int("grade", average))
	return nil
}

// MaterialsByGrade exposes the repository query at the service boundary.
func (s *ContentService) MaterialsByGrade(grade models.SchoolGrade) []models.Material {
	return s.repo.MaterialsByGrade(grade)
}

// MaterialsByGradeSubject narrows the grade listing to a subject.
func (s *ContentService) MaterialsByGradeSubject(grade models.SchoolGrade, subject models.Subject) []models.Material {
	return s.repo.MaterialsByGradeSubject(grade, subject)
}

// AssignmentsByGrade exposes the repository query at the service boundary.
func (s *ContentService) AssignmentsByGrade(grade models.SchoolGrade) []models.Assignment {
	return s.repo.AssignmentsByGrade(grade)
}

// SubmissionsByAssignment lists submissions referencing one assignment.
func (s *ContentService) SubmissionsByAssignment(assignmentID string) []models.Submission {
	return s.repo.SubmissionsByAssignment(assignmentID)
}

// SubmissionsByStudent lists one student's submissions.
func (s *ContentService) SubmissionsByStudent(studentID string) []models.Submission {
	return s.repo.SubmissionsByStudent(studentID)
}
