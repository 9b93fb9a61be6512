package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnexpectedErrorMessage is returned to clients when a handler panics
const UnexpectedErrorMessage = "An unexpected error occurred. Please try again later."

// Recovery turns handler panics into a generic JSON 500 and logs the cause
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorw("Handler panicked",
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": UnexpectedErrorMessage,
		})
	})
}
