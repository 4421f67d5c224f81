package middleware

import (
	"net/http"

	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/web/session"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware logs every mutating request of an authenticated user after
// it completes, tagged with the request id.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.Next()

		uid, ok := session.GetLoginUserId(c)
		if !ok {
			return
		}

		logger.Infof("audit: user=%d %s %s status=%d request_id=%s",
			uid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), RequestIDFromContext(c))
	}
}
