package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/authz"
	"github.com/educafacil/educafacil-api/internal/models"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/response"
)

// Gate enforces the account authorization verdict for routes. Runs after
// Session, which guarantees a user is attached.
func Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		verdict := authz.Decide(user)
		if verdict.Allowed() {
			c.Next()
			return
		}

		response.Error(c, verdictError(verdict))
		c.Abort()
	}
}

func verdictError(verdict authz.Verdict) *appErrors.Error {
	switch verdict {
	case authz.DenyPending:
		return appErrors.ErrPendingApproval
	case authz.DenySuspended:
		return appErrors.ErrAccountSuspended
	case authz.DenyRejected:
		return appErrors.ErrAccountRejected
	default:
		return appErrors.ErrUnauthorized
	}
}

// RequireRoles restricts a route to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
