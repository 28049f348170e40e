package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitrackr/internal/logger"
)

var (
	// ErrValidation is returned when user input fails validation
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrPersistenceUnavailable is returned when the record store cannot be read or written
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrInvalidCredentials is returned when an email/password pair does not match any user
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when registering or renaming to an email already in use
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotLoggedIn is returned when a command requires a session and none is active
	ErrNotLoggedIn = errors.New("not logged in, run 'habitrackr login' first")
	// ErrFutureDate is returned when toggling a day after today
	ErrFutureDate = errors.New("future dates cannot be checked")
)

// ValidationError carries a user-facing validation message.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for the given field
func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Unavailable wraps a storage failure so callers can distinguish it from other errors
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistenceUnavailable, op, err)
}

// Wrapf annotates a sentinel with context while keeping it matchable with errors.Is
func Wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
