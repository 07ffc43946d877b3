package middleware

import "github.com/gin-gonic/gin"

// SSEMiddleware sets the event-stream headers for endpoints that emit
// server-sent events. CORS headers come from the CORS middleware.
func SSEMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Next()
	}
}
