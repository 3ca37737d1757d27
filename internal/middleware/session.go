package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/service"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// ContextUserKey is the gin context key storing the current user.
const ContextUserKey = "currentUser"

// Session protects routes by requiring a logged-in user. The user is
// re-derived from the repository on every request, so administrative status
// changes take effect without a new login.
func Session(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessions.Current()
		if user == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser extracts the user attached by Session. Nil when absent.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
