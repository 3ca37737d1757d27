package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/authz"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/service"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the session service.
type AuthHandler struct {
	sessions *service.SessionService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate user by exact email match
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	user, ok := h.sessions.Login(c.Request.Context(), req.Email)
	if !ok {
		response.Error(c, appErrors.ErrUserNotFound)
		return
	}

	response.JSON(c, http.StatusOK, sessionInfo(user), nil)
}

// Register godoc
// @Summary Register a new account
// @Description Create a student or teacher account. Students are logged in immediately; teachers await approval.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	user, err := h.sessions.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, sessionInfo(user), nil)
}

// Logout godoc
// @Summary End the current session
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	response.NoContent(c)
}

// Me godoc
// @Summary Describe the current session
// @Description Return the current user along with the authorization verdict. Never errors; an anonymous session is reported as unauthenticated.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	response.JSON(c, http.StatusOK, sessionInfo(h.sessions.Current()), nil)
}

func sessionInfo(user *models.User) models.SessionInfo {
	return models.SessionInfo{
		User:          user,
		Authenticated: user != nil,
		Authorized:    authz.Decide(user).Allowed(),
	}
}
