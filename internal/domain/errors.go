package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across layers. Nothing here is fatal: every
// failure is reported to the caller and leaves prior state intact.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPayload  = errors.New("invalid catalog payload")
	ErrMissingFields   = errors.New("username and password are required")
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAccessDenied    = errors.New("access denied")
	ErrMissingQuery    = errors.New("search requires a query")
)

// ValidationError reports which admin-form fields were missing or empty.
// The operation that returns it has not mutated anything.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
