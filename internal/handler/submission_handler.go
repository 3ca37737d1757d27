package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/dto"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/service"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// SubmissionHandler wires HTTP endpoints to submission use cases.
type SubmissionHandler struct {
	content *service.ContentService
}

// NewSubmissionHandler creates a new handler.
func NewSubmissionHandler(content *service.ContentService) *SubmissionHandler {
	return &SubmissionHandler{content: content}
}

// Submit godoc
// @Summary Submit answers to an assignment
// @Description Student-only. Repeat submissions accumulate; grading runs in the background.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.SubmitAssignmentRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	submission, err := h.content.SubmitAssignment(c.Request.Context(), userFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// List godoc
// @Summary List submissions
// @Description Students always see their own. Teachers filter by assignment id.
// @Tags Submissions
// @Produce json
// @Param assignment_id query string false "Assignment filter, teachers only"
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	user := userFromContext(c)
	if user.Role == models.RoleStudent {
		response.JSON(c, http.StatusOK, h.content.SubmissionsByStudent(user.ID), nil)
		return
	}
	if assignmentID := c.Query("assignment_id"); assignmentID != "" {
		response.JSON(c, http.StatusOK, h.content.SubmissionsByAssignment(assignmentID), nil)
		return
	}
	response.Error(c, appErrors.Clone(appErrors.ErrValidation, "assignment_id is required"))
}

// Grade godoc
// @Summary Override a submission grade
// @Description Teacher-only manual grade that supersedes the automatic one.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param payload body dto.TeacherGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/{id}/grade [post]
func (h *SubmissionHandler) Grade(c *gin.Context) {
	var req dto.TeacherGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
		return
	}

	submission, err := h.content.GradeSubmission(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, submission, nil)
}
