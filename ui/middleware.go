package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(s.requestLogger())
}

// requestLogger logs every API request at debug level and failures at warn.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			s.logger.Warn("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
			return
		}
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}

// multipartOverhead leaves room for multipart framing around the file part.
const multipartOverhead = 1 << 20

// limitBody caps the request body at the upload limit.
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.config.MaxUploadBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadBytes+multipartOverhead)
		}
		c.Next()
	}
}
