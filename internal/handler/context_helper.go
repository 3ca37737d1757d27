package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/educafacil/educafacil-api/internal/middleware"
	"github.com/educafacil/educafacil-api/internal/models"
)

func userFromContext(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
