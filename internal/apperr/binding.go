package apperr

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// FromBinding converts a request binding failure into a validation error.
// Validator failures are listed per field in Details.
func FromBinding(message string, err error) *Error {
	appErr := Validation(message).Wrap(err)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErr
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return appErr.WithDetails(details)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
