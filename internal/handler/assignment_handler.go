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

// AssignmentHandler wires HTTP endpoints to assignment use cases.
type AssignmentHandler struct {
	content *service.ContentService
}

// NewAssignmentHandler creates a new handler.
func NewAssignmentHandler(content *service.ContentService) *AssignmentHandler {
	return &AssignmentHandler{content: content}
}

// Create godoc
// @Summary Issue an assignment
// @Description Teacher-only. Question ids are assigned server-side.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	assignment, err := h.content.CreateAssignment(c.Request.Context(), userFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, assignment)
}

// List godoc
// @Summary List assignments for a grade
// @Description Newest first. Students see their own grade; teachers pass the grade explicitly.
// @Tags Assignments
// @Produce json
// @Param grade query string false "School grade, defaults to the student's own"
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	grade := models.SchoolGrade(c.Query("grade"))
	if grade == "" {
		grade = userFromContext(c).Grade()
	}
	response.JSON(c, http.StatusOK, h.content.AssignmentsByGrade(grade), nil)
}
