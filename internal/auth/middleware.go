package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/animeshelf/library/internal/apperr"
)

// ContextKeyUserID holds the verified user id for the rest of the request.
const ContextKeyUserID = "auth_user_id"

// TokenVerifier validates a bearer token and returns the embedded user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// header. The error is left on the context for the error handler to render.
func RequireBearer(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			_ = c.Error(apperr.Unauthorized("Authentication failed!").Wrap(ErrMissingToken))
			c.Abort()
			return
		}

		userID, err := verifier.VerifyToken(token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns "" on routes without RequireBearer.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

// SecurityHeadersMiddleware sets response headers for a JSON-only API that
// is never framed and whose responses must not be cached.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	headers := map[string]string{
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Cache-Control":           "no-store",
	}
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}
