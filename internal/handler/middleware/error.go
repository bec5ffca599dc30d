package middleware

import (
	"log/slog"
	"net/http"

	"cappa-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the most recent public error attached to the
// context when no handler has written a response yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if resp, ok := lastPublicError(c); ok {
			c.JSON(resp.Status, resp)
			return
		}

		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func lastPublicError(c *gin.Context) (httperr.Response, bool) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		e := c.Errors[i]
		if !e.IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := e.Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

// CustomRecovery turns panics into a JSON 500 instead of gin's default
// plain-text page.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered from panic",
					"error", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
