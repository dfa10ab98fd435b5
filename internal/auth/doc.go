// Package auth provides account management and bearer-token authentication.
//
// Accounts are created with Signup and checked with Login; both return a
// Session carrying an HS256 JWT that embeds the user id and expires after
// AUTH_TOKEN_EXPIRY (1h by default). Unsubscribe re-checks the password and
// deletes the account together with its library.
//
// # Configuration
//
//	AUTH_SECRET_KEY=<secret>         # Required, HMAC key for tokens
//	AUTH_TOKEN_EXPIRY=1h             # Token lifetime
//	AUTH_BCRYPT_COST=12              # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5        # Failures before lockout
//	AUTH_LOCKOUT_DURATION=30m        # Lockout length
//
// # Usage
//
//	authService := auth.NewService(userStore, cfg.Auth)
//	controller := auth.NewAuthController(authService, cfg.Auth, auditService)
//	controller.RegisterRoutes(api.Group("/users"))
//	api.POST("/library/:uid", auth.RequireBearer(authService), handler)
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c)
package auth
