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

// MaterialHandler wires HTTP endpoints to material use cases.
type MaterialHandler struct {
	content *service.ContentService
}

// NewMaterialHandler creates a new handler.
func NewMaterialHandler(content *service.ContentService) *MaterialHandler {
	return &MaterialHandler{content: content}
}

// Create godoc
// @Summary Publish a material
// @Description Teacher-only. The authenticated teacher is stamped as author.
// @Tags Materials
// @Accept json
// @Produce json
// @Param payload body dto.CreateMaterialRequest true "Material payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
		return
	}

	material, err := h.content.CreateMaterial(c.Request.Context(), userFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, material)
}

// List godoc
// @Summary List materials for a grade
// @Description Newest first. Students see their own grade; teachers pass the grade explicitly.
// @Tags Materials
// @Produce json
// @Param grade query string false "School grade, defaults to the student's own"
// @Param subject query string false "Optional subject filter"
// @Success 200 {object} response.Envelope
// @Router /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	grade := models.SchoolGrade(c.Query("grade"))
	if grade == "" {
		grade = userFromContext(c).Grade()
	}

	if subject := c.Query("subject"); subject != "" {
		response.JSON(c, http.StatusOK, h.content.MaterialsByGradeSubject(grade, models.Subject(subject)), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.content.MaterialsByGrade(grade), nil)
}
