package auth

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Minimum signup field lengths, counted in characters rather than bytes.
const (
	MinPasswordLength = 5
	MinUsernameLength = 5
)

// bcrypt ignores everything past this many bytes.
const maxPasswordBytes = 72

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 5 characters")
	ErrPasswordTooLong  = errors.New("password exceeds maximum length of 72 bytes")
)

// signupFieldsLongEnough reports whether every signup field meets its minimum.
func signupFieldsLongEnough(username, password, confirmPassword string) bool {
	return utf8.RuneCountInString(username) >= MinUsernameLength &&
		utf8.RuneCountInString(password) >= MinPasswordLength &&
		utf8.RuneCountInString(confirmPassword) >= MinPasswordLength
}

func HashPassword(password string, cost int) (string, error) {
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return "", ErrPasswordTooShort
	case len(password) > maxPasswordBytes:
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// CheckPassword maps a bcrypt mismatch to ErrInvalidPassword and passes
// malformed-hash errors through unchanged.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}
	return err
}
