package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/repository"
	"github.com/educafacil/educafacil-api/internal/service"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// SystemHandler exposes platform maintenance endpoints.
type SystemHandler struct {
	repo     *repository.Repository
	sessions *service.SessionService
	metrics  *service.MetricsService
}

// NewSystemHandler creates a new handler.
func NewSystemHandler(repo *repository.Repository, sessions *service.SessionService, metrics *service.MetricsService) *SystemHandler {
	return &SystemHandler{repo: repo, sessions: sessions, metrics: metrics}
}

// Reset godoc
// @Summary Wipe all platform data
// @Description Last-resort recovery. Deletes every persisted collection, ends the session and reseeds the administrator account.
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /system/reset [post]
func (h *SystemHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	h.sessions.Logout(ctx)
	if err := h.repo.Reset(ctx); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "reset failed"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"status": "reset"}, nil)
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *SystemHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness once the repository has hydrated.
func (h *SystemHandler) Ready(c *gin.Context) {
	if !h.repo.Hydrated() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "hydrating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
