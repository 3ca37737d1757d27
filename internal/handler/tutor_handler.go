package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/service"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// TutorHandler wires HTTP endpoints to the virtual tutor. Every endpoint
// degrades to a friendly fallback text; none of them surfaces a collaborator
// failure as an HTTP error.
type TutorHandler struct {
	tutor *service.TutorService
}

// NewTutorHandler creates a new handler.
func NewTutorHandler(tutor *service.TutorService) *TutorHandler {
	return &TutorHandler{tutor: tutor}
}

// Help godoc
// @Summary Ask the virtual tutor a question
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body models.TutorHelpRequest true "Question payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/help [post]
func (h *TutorHandler) Help(c *gin.Context) {
	var req models.TutorHelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tutor payload"))
		return
	}
	text := h.tutor.TutorHelp(c.Request.Context(), req)
	response.JSON(c, http.StatusOK, models.TutorText{Text: text}, nil)
}

// LessonContent godoc
// @Summary Generate introductory lesson content
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body models.LessonContentRequest true "Lesson payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/lesson-content [post]
func (h *TutorHandler) LessonContent(c *gin.Context) {
	var req models.LessonContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lesson payload"))
		return
	}
	text := h.tutor.GenerateLessonContent(c.Request.Context(), req)
	response.JSON(c, http.StatusOK, models.TutorText{Text: text}, nil)
}

// Recommendations godoc
// @Summary Study recommendations for a learning style
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body models.RecommendationsRequest true "Recommendations payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/recommendations [post]
func (h *TutorHandler) Recommendations(c *gin.Context) {
	var req models.RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid recommendations payload"))
		return
	}
	text := h.tutor.AdaptiveRecommendations(c.Request.Context(), req)
	response.JSON(c, http.StatusOK, models.TutorText{Text: text}, nil)
}

// PerformanceGaps godoc
// @Summary Analyze recent scores for knowledge gaps
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body models.PerformanceGapsRequest true "Scores payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/performance-gaps [post]
func (h *TutorHandler) PerformanceGaps(c *gin.Context) {
	var req models.PerformanceGapsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid scores payload"))
		return
	}
	text := h.tutor.AnalyzePerformanceGaps(c.Request.Context(), req)
	response.JSON(c, http.StatusOK, models.TutorText{Text: text}, nil)
}

// StudyModels godoc
// @Summary Generate alternative study plans for a topic
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body models.StudyModelsRequest true "Topic payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/study-models [post]
func (h *TutorHandler) StudyModels(c *gin.Context) {
	var req models.StudyModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid topic payload"))
		return
	}
	text := h.tutor.GenerateStudyModels(c.Request.Context(), req)
	response.JSON(c, http.StatusOK, models.TutorText{Text: text}, nil)
}
