package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/animeshelf/library/internal/apperr"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Message string      `json:"message"`
	Code    apperr.Kind `json:"code,omitempty"`    // machine-readable error kind
	Details any         `json:"details,omitempty"` // per-field validation failures
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Internal failures are logged and reported without their cause.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		ginErr := c.Errors.Last()
		if ginErr == nil || c.Writer.Written() {
			return
		}

		appErr, ok := apperr.As(ginErr.Err)
		if !ok || appErr.Kind == apperr.KindInternal {
			log.Printf("Internal error (%s %s): %v", c.Request.Method, c.FullPath(), ginErr.Err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: "internal server error",
				Code:    apperr.KindInternal,
			})
			return
		}

		c.JSON(appErr.Status(), ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Kind,
			Details: appErr.Details,
		})
	}
}

// CORSMiddleware allows browser clients from any origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondMessage sends a 200 OK response carrying only a message.
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
