package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/dto"
	"github.com/educafacil/educafacil-api/internal/middleware"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/repository"
	"github.com/educafacil/educafacil-api/internal/service"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

type noopGrader struct{}

func (noopGrader) AutoGradeAnswer(_ context.Context, _, _ string, _ models.SchoolGrade) models.AutoGradeResult {
	return models.AutoGradeResult{}
}

func newSubmissionFixture(t *testing.T) (*SubmissionHandler, *repository.Repository) {
	t.Helper()
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := repository.New(store, "Administrador Principal", "admin@educa.com", zap.NewNop())
	require.NoError(t, repo.Hydrate(context.Background()))
	content := service.NewContentService(repo, noopGrader{}, nil, zap.NewNop())
	return NewSubmissionHandler(content), repo
}

func submissionContext(t *testing.T, user *models.User, method, path string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req, _ = http.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, user)
	return c, w
}

func testStudent() *models.User {
	return &models.User{
		ID:      "s-1",
		Name:    "Bruno",
		Email:   "bruno@x.com",
		Role:    models.RoleStudent,
		Status:  models.StatusActive,
		Student: &models.StudentProfile{Grade: models.Grade5},
	}
}

func TestSubmitCreatesSubmission(t *testing.T) {
	handler, repo := newSubmissionFixture(t)

	c, w := submissionContext(t, testStudent(), http.MethodPost, "/submissions", dto.SubmitAssignmentRequest{
		AssignmentID: "a-1",
		Answers:      []dto.AnswerPayload{{QuestionID: "q-1", Text: "4"}},
	})
	handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.SubmissionsByStudent("s-1"), 1)
}

func TestSubmitRejectsEmptyAnswers(t *testing.T) {
	handler, _ := newSubmissionFixture(t)

	c, w := submissionContext(t, testStudent(), http.MethodPost, "/submissions", dto.SubmitAssignmentRequest{
		AssignmentID: "a-1",
	})
	handler.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReturnsOwnSubmissionsForStudent(t *testing.T) {
	handler, repo := newSubmissionFixture(t)
	ctx := context.Background()
	repo.AddSubmission(ctx, models.Submission{ID: "sub-1", AssignmentID: "a-1", StudentID: "s-1", Status: models.SubmissionSubmitted})
	repo.AddSubmission(ctx, models.Submission{ID: "sub-2", AssignmentID: "a-1", StudentID: "s-2", Status: models.SubmissionSubmitted})

	c, w := submissionContext(t, testStudent(), http.MethodGet, "/submissions", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "sub-1", envelope.Data[0].ID)
}

func TestListRequiresAssignmentFilterForTeacher(t *testing.T) {
	handler, _ := newSubmissionFixture(t)
	teacher := &models.User{ID: "t-1", Role: models.RoleTeacher, Status: models.StatusActive}

	c, w := submissionContext(t, teacher, http.MethodGet, "/submissions", nil)
	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradeOverride(t *testing.T) {
	handler, repo := newSubmissionFixture(t)
	repo.AddSubmission(context.Background(), models.Submission{ID: "sub-1", AssignmentID: "a-1", StudentID: "s-1", Status: models.SubmissionSubmitted})

	c, w := submissionContext(t, testStudent(), http.MethodPost, "/submissions/sub-1/grade", dto.TeacherGradeRequest{Grade: 88})
	c.Params = gin.Params{{Key: "id", Value: "sub-1"}}
	handler.Grade(c)

	require.Equal(t, http.StatusOK, w.Code)
	graded := repo.SubmissionByID("sub-1")
	require.NotNil(t, graded.TeacherGrade)
	assert.Equal(t, 88, *graded.TeacherGrade)
}

func TestGradeUnknownSubmission(t *testing.T) {
	handler, _ := newSubmissionFixture(t)

	c, w := submissionContext(t, testStudent(), http.MethodPost, "/submissions/ghost/grade", dto.TeacherGradeRequest{Grade: 88})
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	handler.Grade(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
