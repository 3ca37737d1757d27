package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/service"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// AdminHandler wires HTTP endpoints to administrator use cases.
type AdminHandler struct {
	admin   *service.AdminService
	metrics *service.MetricsService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(admin *service.AdminService, metrics *service.MetricsService) *AdminHandler {
	return &AdminHandler{admin: admin, metrics: metrics}
}

// ListUsers godoc
// @Summary List all users
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admin.ListUsers(), nil)
}

// ListPendingTeachers godoc
// @Summary List teachers awaiting approval
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/teachers/pending [get]
func (h *AdminHandler) ListPendingTeachers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admin.ListPendingTeachers(), nil)
}

// ApproveTeacher godoc
// @Summary Approve a pending teacher
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/teachers/{id}/approve [post]
func (h *AdminHandler) ApproveTeacher(c *gin.Context) {
	user, err := h.admin.ApproveTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// RejectTeacher godoc
// @Summary Reject a pending teacher
// @Description Rejection is terminal; a rejected account cannot be reactivated.
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/teachers/{id}/reject [post]
func (h *AdminHandler) RejectTeacher(c *gin.Context) {
	user, err := h.admin.RejectTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// SuspendTeacher godoc
// @Summary Suspend an active teacher
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/teachers/{id}/suspend [post]
func (h *AdminHandler) SuspendTeacher(c *gin.Context) {
	user, err := h.admin.SuspendTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// ReactivateTeacher godoc
// @Summary Reactivate a suspended teacher
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/teachers/{id}/reactivate [post]
func (h *AdminHandler) ReactivateTeacher(c *gin.Context) {
	user, err := h.admin.ReactivateTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// ExportUsers godoc
// @Summary Export the user roster
// @Description Download the roster as CSV or PDF.
// @Tags Admin
// @Produce application/octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/users/export [get]
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	data, filename, err := h.admin.ExportUsers(format)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "text/csv"
	if format == service.ExportFormatPDF {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// SystemMetrics godoc
// @Summary Aggregated runtime metrics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/metrics [get]
func (h *AdminHandler) SystemMetrics(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
