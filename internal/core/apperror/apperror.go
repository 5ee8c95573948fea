package apperror

import "errors"

var (
	// ErrDuplicateUsername is returned when a signup reuses a taken username.
	ErrDuplicateUsername  = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated means no valid session identity was supplied.
	ErrUnauthenticated    = errors.New("authentication required")
	// ErrNotFound is returned by repositories for missing records.
	ErrNotFound           = errors.New("record not found")
)

// ValidationError reports user input that cannot be accepted as submitted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError wraps a user-facing message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
