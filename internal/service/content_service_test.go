package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/dto"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/repository"
	"github.com/educafacil/educafacil-api/pkg/jobs"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

type stubGrader struct {
	grade    int
	feedback string
	calls    int
}

func (g *stubGrader) AutoGradeAnswer(_ context.Context, _, _ string, _ models.SchoolGrade) models.AutoGradeResult {
	g.calls++
	return models.AutoGradeResult{Grade: g.grade, Feedback: g.feedback}
}

func newContentFixture(t *testing.T, grader answerGrader) (*ContentService, *repository.Repository) {
	t.Helper()
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := repository.New(store, "Admin", "admin@educa.com", zap.NewNop())
	require.NoError(t, repo.Hydrate(context.Background()))
	return NewContentService(repo, grader, validator.New(), zap.NewNop()), repo
}

func teacherUser() *models.User {
	return &models.User{
		ID:     "t-1",
		Name:   "Ana",
		Email:  "ana@x.com",
		Role:   models.RoleTeacher,
		Status: models.StatusActive,
		Teacher: &models.TeacherProfile{
			Grades:   []models.SchoolGrade{models.Grade5},
			Subjects: []models.Subject{models.SubjectMath},
		},
	}
}

func studentUser() *models.User {
	return &models.User{
		ID:     "s-1",
		Name:   "Bruno",
		Email:  "bruno@x.com",
		Role:   models.RoleStudent,
		Status: models.StatusActive,
		Student: &models.StudentProfile{
			Grade:         models.Grade5,
			LearningStyle: models.StyleVisual,
		},
	}
}

func TestCreateMaterialStampsAuthor(t *testing.T) {
	svc, repo := newContentFixture(t, &stubGrader{})

	material, err := svc.CreateMaterial(context.Background(), teacherUser(), dto.CreateMaterialRequest{
		Title:       "Frações",
		Type:        models.MaterialText,
		TextContent: "Conteúdo",
		Grade:       models.Grade5,
		Subject:     models.SubjectMath,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, material.ID)
	assert.Equal(t, "t-1", material.AuthorID)
	assert.Equal(t, "Ana", material.AuthorName)
	assert.False(t, material.CreatedAt.IsZero())
	require.Len(t, repo.MaterialsByGrade(models.Grade5), 1)
}

func TestCreateMaterialRejectsInvalidPayload(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})

	_, err := svc.CreateMaterial(context.Background(), teacherUser(), dto.CreateMaterialRequest{
		Type: models.MaterialType("AUDIO"),
	})
	require.Error(t, err)
}

func TestCreateAssignmentAssignsQuestionIDs(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})

	assignment, err := svc.CreateAssignment(context.Background(), teacherUser(), dto.CreateAssignmentRequest{
		Title:   "Prova 1",
		Grade:   models.Grade5,
		Subject: models.SubjectMath,
		Questions: []dto.QuestionPayload{
			{Text: "Quanto é 2+2?"},
			{Text: "Quanto é 3x3?"},
		},
	})
	require.NoError(t, err)

	require.Len(t, assignment.Questions, 2)
	assert.NotEmpty(t, assignment.Questions[0].ID)
	assert.NotEqual(t, assignment.Questions[0].ID, assignment.Questions[1].ID)
	assert.Equal(t, "Quanto é 2+2?", assignment.Questions[0].Text)
}

func TestCreateAssignmentRequiresQuestions(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})

	_, err := svc.CreateAssignment(context.Background(), teacherUser(), dto.CreateAssignmentRequest{
		Title:   "Prova vazia",
		Grade:   models.Grade5,
		Subject: models.SubjectMath,
	})
	require.Error(t, err)
}

func TestSubmitAssignmentAccumulates(t *testing.T) {
	svc, repo := newContentFixture(t, &stubGrader{})
	ctx := context.Background()
	student := studentUser()

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitAssignment(ctx, student, dto.SubmitAssignmentRequest{
			AssignmentID: "a-1",
			Answers:      []dto.AnswerPayload{{QuestionID: "q-1", Text: "4"}},
		})
		require.NoError(t, err)
	}

	assert.Len(t, repo.SubmissionsByAssignment("a-1"), 2)
	assert.Len(t, repo.SubmissionsByStudent(student.ID), 2)
}

func TestSubmitAssignmentDoesNotRequireKnownAssignment(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})

	submission, err := svc.SubmitAssignment(context.Background(), studentUser(), dto.SubmitAssignmentRequest{
		AssignmentID: "ghost",
		Answers:      []dto.AnswerPayload{{QuestionID: "q-1", Text: "42"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, submission.Status)
}

func TestSubmitAssignmentEnqueuesGradeJob(t *testing.T) {
	grader := &stubGrader{grade: 80, feedback: "Bom trabalho"}
	svc, repo := newContentFixture(t, grader)
	ctx := context.Background()

	done := make(chan struct{}, 1)
	queue := jobs.NewQueue("grading", func(ctx context.Context, job jobs.Job) error {
		err := svc.HandleGradeJob(ctx, job)
		done <- struct{}{}
		return err
	}, jobs.QueueConfig{Workers: 1})
	queue.Start(ctx)
	defer queue.Stop()
	svc.AttachGradeQueue(queue)

	submission, err := svc.SubmitAssignment(ctx, studentUser(), dto.SubmitAssignmentRequest{
		AssignmentID: "a-1",
		Answers:      []dto.AnswerPayload{{QuestionID: "q-1", Text: "4"}},
	})
	require.NoError(t, err)

	<-done
	graded := repo.SubmissionByID(submission.ID)
	require.NotNil(t, graded)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
	require.NotNil(t, graded.AIGrade)
	assert.Equal(t, 80, *graded.AIGrade)
	assert.Equal(t, "Bom trabalho", graded.AIFeedback)
}

func TestHandleGradeJobAveragesAnswers(t *testing.T) {
	grader := &stubGrader{grade: 70, feedback: "Ok"}
	svc, repo := newContentFixture(t, grader)
	ctx := context.Background()

	assignment, err := svc.CreateAssignment(ctx, teacherUser(), dto.CreateAssignmentRequest{
		Title:   "Prova",
		Grade:   models.Grade5,
		Subject: models.SubjectMath,
		Questions: []dto.QuestionPayload{
			{Text: "Pergunta A"},
			{Text: "Pergunta B"},
		},
	})
	require.NoError(t, err)

	submission, err := svc.SubmitAssignment(ctx, studentUser(), dto.SubmitAssignmentRequest{
		AssignmentID: assignment.ID,
		Answers: []dto.AnswerPayload{
			{QuestionID: assignment.Questions[0].ID, Text: "resposta"},
			{QuestionID: assignment.Questions[1].ID, Text: "resposta"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.HandleGradeJob(ctx, jobs.Job{ID: "j-1", Kind: GradeJobKind, Payload: submission.ID}))

	assert.Equal(t, 2, grader.calls)
	graded := repo.SubmissionByID(submission.ID)
	require.NotNil(t, graded.AIGrade)
	assert.Equal(t, 70, *graded.AIGrade)
}

func TestHandleGradeJobSkipsMissingSubmission(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})

	err := svc.HandleGradeJob(context.Background(), jobs.Job{ID: "j-1", Kind: GradeJobKind, Payload: "ghost"})
	assert.NoError(t, err)
}

func TestHandleGradeJobSkipsAlreadyGraded(t *testing.T) {
	grader := &stubGrader{grade: 50}
	svc, repo := newContentFixture(t, grader)
	ctx := context.Background()

	submission, err := svc.SubmitAssignment(ctx, studentUser(), dto.SubmitAssignmentRequest{
		AssignmentID: "a-1",
		Answers:      []dto.AnswerPayload{{QuestionID: "q-1", Text: "4"}},
	})
	require.NoError(t, err)
	repo.SetAIGrade(ctx, submission.ID, 90, "já corrigido")

	require.NoError(t, svc.HandleGradeJob(ctx, jobs.Job{ID: "j-1", Kind: GradeJobKind, Payload: submission.ID}))
	assert.Zero(t, grader.calls)
}

func TestGradeSubmissionOverride(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})
	ctx := context.Background()

	submission, err := svc.SubmitAssignment(ctx, studentUser(), dto.SubmitAssignmentRequest{
		AssignmentID: "a-1",
		Answers:      []dto.AnswerPayload{{QuestionID: "q-1", Text: "4"}},
	})
	require.NoError(t, err)

	graded, err := svc.GradeSubmission(ctx, submission.ID, dto.TeacherGradeRequest{Grade: 95})
	require.NoError(t, err)
	require.NotNil(t, graded.TeacherGrade)
	assert.Equal(t, 95, *graded.TeacherGrade)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
}

func TestGradeSubmissionUnknownID(t *testing.T) {
	svc, _ := newContentFixture(t, &stubGrader{})

	_, err := svc.GradeSubmission(context.Background(), "ghost", dto.TeacherGradeRequest{Grade: 95})
	require.Error(t, err)
}
