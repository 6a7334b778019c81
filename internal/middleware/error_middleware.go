package middleware

import (
	"visiontrain/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs every error a handler recorded on the context. Handlers
// own the response body; this middleware only reports.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if l == nil {
			return
		}
		for _, e := range c.Errors {
			l.ErrorfCtx(c.Request.Context(), "request error: %s", e.Err.Error())
		}
	}
}
