package auth

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/animeshelf/library/internal/apperr"
	"github.com/animeshelf/library/internal/config"
)

// AuditLogger records authentication events. Implementations must not block.
type AuditLogger interface {
	LogAuth(userID, action, ipAddr, userAgent string, success bool)
}

type signupRequest struct {
	Username        string `json:"username" binding:"required,min=5"`
	Password        string `json:"password" binding:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=5"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthController handles the /users endpoints.
type AuthController struct {
	service     *Service
	rateLimiter *RateLimiter
	audit       AuditLogger
}

// NewAuthController creates a new authentication controller. audit may be nil.
func NewAuthController(service *Service, cfg config.Auth, audit AuditLogger) *AuthController {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:     service,
		rateLimiter: rateLimiter,
		audit:       audit,
	}
}

// RegisterRoutes registers the user routes on the group.
func (ac *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/signup", ac.Signup)
	group.POST("/login", ac.Login)
	group.DELETE("/unsubscribe", ac.Unsubscribe)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	ac.rateLimiter.Stop()
}

// Signup creates an account and returns a session. 201 on success.
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.FromBinding(msgInvalidInputs, err))
		return
	}

	session, err := ac.service.Signup(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ac.logAuth(c, session.UserID, "signup", true)
	c.JSON(http.StatusCreated, session)
}

// Login verifies credentials and returns a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.FromBinding(msgInvalidInputs, err))
		return
	}

	if !ac.allow(c, req.Username) {
		return
	}

	session, err := ac.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ac.recordFailure(c, req.Username, "login", err)
		_ = c.Error(err)
		return
	}

	ac.rateLimiter.RecordSuccess(c.ClientIP(), req.Username)
	ac.logAuth(c, session.UserID, "login", true)
	c.JSON(http.StatusOK, session)
}

// Unsubscribe deletes the account named by the credentials in the body,
// along with its library.
func (ac *AuthController) Unsubscribe(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.FromBinding(msgInvalidInputs, err))
		return
	}

	if !ac.allow(c, req.Username) {
		return
	}

	user, err := ac.service.Unsubscribe(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ac.recordFailure(c, req.Username, "unsubscribe", err)
		_ = c.Error(err)
		return
	}

	ac.rateLimiter.RecordSuccess(c.ClientIP(), req.Username)
	ac.logAuth(c, user.ID, "unsubscribe", true)
	c.JSON(http.StatusOK, gin.H{"message": "User Deleted."})
}

// allow checks the lockout for this client and username, writing a 429 error
// when locked.
func (ac *AuthController) allow(c *gin.Context, username string) bool {
	allowed, retryAfter := ac.rateLimiter.Allow(c.ClientIP(), username)
	if allowed {
		return true
	}
	c.Header("Retry-After", retryAfterSeconds(retryAfter))
	_ = c.Error(apperr.RateLimited("Too many failed attempts. Please try again later."))
	return false
}

// recordFailure counts rejected credentials towards the lockout. Other
// failures (e.g. store outages) do not count.
func (ac *AuthController) recordFailure(c *gin.Context, username, action string, err error) {
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		return
	}
	ac.rateLimiter.RecordFailure(c.ClientIP(), username)
	ac.logAuth(c, "", action, false)
}

func (ac *AuthController) logAuth(c *gin.Context, userID, action string, success bool) {
	if ac.audit == nil {
		return
	}
	ac.audit.LogAuth(userID, action, c.ClientIP(), c.Request.UserAgent(), success)
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
