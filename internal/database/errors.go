package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Store-level sentinels shared by every backend (gorm and mongo). Callers
// match them with errors.Is.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// TranslateError maps gorm errors onto the store sentinels and leaves
// everything else untouched.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return ErrDuplicate
	}
	return err
}
