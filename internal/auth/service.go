package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/animeshelf/library/internal/apperr"
	"github.com/animeshelf/library/internal/config"
	"github.com/animeshelf/library/internal/database"
	"github.com/animeshelf/library/internal/entities"
)

// DefaultBcryptCost is used when the configuration leaves the cost unset.
const DefaultBcryptCost = 12

// Client-facing messages.
const (
	msgInvalidInputs      = "Invalid inputs. Please check your data."
	msgPasswordMismatch   = "Password did not match. Please try again."
	msgUserExists         = "User exists already. Please login instead"
	msgInvalidCredentials = "Invalid credentials."
)

// UserStore is the slice of the credential store the auth service needs.
// Both the gorm repository and the mongo store satisfy it.
type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
	DeleteUserWithAnimes(ctx context.Context, id string) (int64, error)
}

// Session is returned by Signup and Login.
type Session struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Service handles signup, login and unsubscribe.
type Service struct {
	users      UserStore
	tokens     *TokenIssuer
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	return &Service{
		users:      users,
		tokens:     NewTokenIssuer(cfg.SecretKey, cfg.TokenExpiry),
		bcryptCost: cost,
	}
}

// Signup creates a user and returns a session for it.
func (s *Service) Signup(ctx context.Context, username, password, confirmPassword string) (*Session, error) {
	if !signupFieldsLongEnough(username, password, confirmPassword) {
		return nil, apperr.Validation(msgInvalidInputs)
	}
	if password != confirmPassword {
		return nil, apperr.Validation(msgPasswordMismatch)
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperr.Conflict(msgUserExists)
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperr.Internal("Signing up failed, please try again later.", err)
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, apperr.Validation(msgInvalidInputs).WithDetails([]string{err.Error()})
	}
	if err != nil {
		return nil, apperr.Internal("Signing up failed, please try again later.", err)
	}

	user := &entities.User{Username: username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Conflict(msgUserExists)
		}
		return nil, apperr.Internal("Signing up failed, please try again later.", err)
	}

	return s.newSession(user)
}

// Login verifies credentials and returns a fresh session.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

// Unsubscribe re-checks the credentials, then deletes the user together with
// every anime it owns.
func (s *Service) Unsubscribe(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	removed, err := s.users.DeleteUserWithAnimes(ctx, user.ID)
	if errors.Is(err, database.ErrNotFound) {
		// Deleted concurrently by another request with the same credentials.
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperr.Internal("Deleting user failed, please try again later.", err)
	}

	log.Printf("Deleted user %s and %d animes", user.ID, removed)
	return user, nil
}

// VerifyToken returns the user id embedded in a valid bearer token.
func (s *Service) VerifyToken(token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", apperr.Unauthorized("Authentication failed!").Wrap(err)
	}
	return userID, nil
}

// authenticate returns the same error for an unknown user and a wrong password.
func (s *Service) authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperr.Internal("Logging in failed, please try again later.", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.Internal("Logging in failed, please try again later.", err)
	}
	return user, nil
}

func (s *Service) newSession(user *entities.User) (*Session, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Internal("Could not issue token.", fmt.Errorf("user %s: %w", user.ID, err))
	}
	return &Session{UserID: user.ID, Username: user.Username, Token: token}, nil
}
