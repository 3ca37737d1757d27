package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/config"
)

func tutorServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func tutorConfig(baseURL string) config.TutorConfig {
	return config.TutorConfig{
		Enabled: true,
		BaseURL: baseURL,
		Model:   "gemini-2.5-flash",
		Timeout: 2 * time.Second,
	}
}

func candidateBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + text + `}]}}]}`
}

func TestTutorHelpSuccess(t *testing.T) {
	server := tutorServer(t, http.StatusOK, candidateBody(`"Frações são partes de um todo! 🍰"`))
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	text := svc.TutorHelp(context.Background(), models.TutorHelpRequest{
		Question: "O que são frações?",
		Grade:    models.Grade5,
		Subject:  models.SubjectMath,
	})

	assert.Equal(t, "Frações são partes de um todo! 🍰", text)
}

func TestTutorHelpDegradesOnServerError(t *testing.T) {
	server := tutorServer(t, http.StatusInternalServerError, "")
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	text := svc.TutorHelp(context.Background(), models.TutorHelpRequest{Question: "?", Grade: models.Grade5, Subject: models.SubjectMath})

	assert.Equal(t, fallbackTutorHelp, text)
}

func TestTutorHelpEmptyCandidate(t *testing.T) {
	server := tutorServer(t, http.StatusOK, `{"candidates":[]}`)
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	text := svc.TutorHelp(context.Background(), models.TutorHelpRequest{Question: "?", Grade: models.Grade5, Subject: models.SubjectMath})

	assert.Equal(t, fallbackTutorEmpty, text)
}

func TestAutoGradeAnswerParsesJSON(t *testing.T) {
	server := tutorServer(t, http.StatusOK, candidateBody(`"{\"grade\": 85, \"feedback\": \"Muito bem!\"}"`))
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	result := svc.AutoGradeAnswer(context.Background(), "2+2?", "4", models.Grade5)

	assert.Equal(t, 85, result.Grade)
	assert.Equal(t, "Muito bem!", result.Feedback)
}

func TestAutoGradeAnswerDegradesToZero(t *testing.T) {
	server := tutorServer(t, http.StatusOK, candidateBody(`"not json at all"`))
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	result := svc.AutoGradeAnswer(context.Background(), "2+2?", "4", models.Grade5)

	assert.Equal(t, 0, result.Grade)
	assert.Equal(t, fallbackGradeFeedback, result.Feedback)
}

func TestAutoGradeAnswerClampsRange(t *testing.T) {
	server := tutorServer(t, http.StatusOK, candidateBody(`"{\"grade\": 250, \"feedback\": \"ok\"}"`))
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	result := svc.AutoGradeAnswer(context.Background(), "q", "a", models.Grade5)

	assert.Equal(t, 100, result.Grade)
}

func TestTutorDisabledReturnsFallback(t *testing.T) {
	svc := NewTutorService(config.TutorConfig{Enabled: false, Timeout: time.Second}, zap.NewNop())

	assert.Equal(t, fallbackLessonContent, svc.GenerateLessonContent(context.Background(), models.LessonContentRequest{Topic: "Frações", Grade: models.Grade5, Subject: models.SubjectMath}))
	assert.Equal(t, fallbackRecommendations, svc.AdaptiveRecommendations(context.Background(), models.RecommendationsRequest{Style: models.StyleVisual, Grade: models.Grade5, Subject: models.SubjectMath}))
	assert.Equal(t, fallbackGapsAnalysis, svc.AnalyzePerformanceGaps(context.Background(), models.PerformanceGapsRequest{Subject: models.SubjectMath, Scores: []int{70, 80}}))
	assert.Equal(t, fallbackStudyModels, svc.GenerateStudyModels(context.Background(), models.StudyModelsRequest{Topic: "Frações", Grade: models.Grade5, Subject: models.SubjectMath}))
}

func TestTutorObserverRecordsOutcome(t *testing.T) {
	server := tutorServer(t, http.StatusOK, candidateBody(`"tudo certo"`))
	svc := NewTutorService(tutorConfig(server.URL), zap.NewNop())

	recorder := &tutorCallRecorder{}
	svc.SetObserver(recorder)

	svc.TutorHelp(context.Background(), models.TutorHelpRequest{Question: "?", Grade: models.Grade5, Subject: models.SubjectMath})

	assert.Equal(t, []string{"tutor_help"}, recorder.operations)
	assert.Equal(t, []bool{true}, recorder.outcomes)
}

type tutorCallRecorder struct {
	operations []string
	outcomes   []bool
}

func (r *tutorCallRecorder) ObserveTutorCall(operation string, ok bool) {
	r.operations = append(r.operations, operation)
	r.outcomes = append(r.outcomes, ok)
}
