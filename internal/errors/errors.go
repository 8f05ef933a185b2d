package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/nicolog/internal/logger"
)

// Sentinels for matching with errors.Is
var (
	ErrStorage          = errors.New("storage write rejected")
	ErrNotFound         = errors.New("record not found")
	ErrParse            = errors.New("stored data is corrupt")
	ErrImportValidation = errors.New("invalid import file")
	ErrImportRead       = errors.New("import file unreadable")
)

// StorageError is returned when the storage medium rejects a write.
type StorageError struct {
	Slot string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Slot, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// NotFoundError is returned when an amend targets an unknown record id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ParseError describes a stored slot that could not be decoded. The log store
// swallows it on read; it is surfaced only by diagnostics.
type ParseError struct {
	Slot string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Slot, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// ImportValidationError is returned for a readable import file with the
// wrong shape.
type ImportValidationError struct {
	Reason string
}

func (e *ImportValidationError) Error() string {
	return fmt.Sprintf("invalid import file: %s", e.Reason)
}

func (e *ImportValidationError) Unwrap() error { return ErrImportValidation }

// ImportReadError is returned when the import file cannot be read at all.
type ImportReadError struct {
	Err error
}

func (e *ImportReadError) Error() string {
	return fmt.Sprintf("failed to read import file: %v", e.Err)
}

func (e *ImportReadError) Unwrap() []error { return []error{ErrImportRead, e.Err} }

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
