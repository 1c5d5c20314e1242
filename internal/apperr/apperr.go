package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error carrying an HTTP-style
// status category alongside a machine-readable code.
type AppError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, preserving status and code
// when the cause is already an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Status:  appErr.Status,
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// StatusOf returns the HTTP status for an error, defaulting to 500 for
// anything that is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the error code if it's an AppError, otherwise "UNKNOWN"
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes
const (
	CodeMalformedWorkbook     = "MALFORMED_WORKBOOK"
	CodeHeaderNotFound        = "HEADER_NOT_FOUND"
	CodeColumnMismatch        = "COLUMN_MISMATCH"
	CodeMissingRequiredColumn = "MISSING_REQUIRED_COLUMN"
	CodeExtractionFailed      = "EXTRACTION_FAILED"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeNotFound              = "NOT_FOUND"
	CodeConfigInvalid         = "CONFIG_INVALID"
	CodeDatabaseError         = "DATABASE_ERROR"
	CodeInternal              = "INTERNAL_ERROR"
)

// MalformedWorkbook signals bytes that cannot be parsed as a spreadsheet.
// Fatal for the request, no retry.
func MalformedWorkbook(cause error) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeMalformedWorkbook,
		Message: "file is not a readable spreadsheet",
		Cause:   cause,
	}
}

// HeaderNotFound signals that neither scoring nor the fixed fallback row
// produced a usable header.
func HeaderNotFound() *AppError {
	return New(http.StatusBadRequest, CodeHeaderNotFound, "could not identify a header row in the first 10 rows")
}

// ColumnMismatch surfaces both expected and actual column lists to aid
// correction, naming the missing columns when known.
func ColumnMismatch(expected, actual, missing []string) *AppError {
	msg := fmt.Sprintf("column mismatch: expected %v, got %v", expected, actual)
	if len(missing) > 0 {
		msg = fmt.Sprintf("column mismatch: missing %v (expected %v, got %v)", missing, expected, actual)
	}
	return New(http.StatusBadRequest, CodeColumnMismatch, msg)
}

// MissingRequiredColumn aborts an upload before any writes.
func MissingRequiredColumn(column string) *AppError {
	return New(http.StatusBadRequest, CodeMissingRequiredColumn,
		fmt.Sprintf("uploaded sheet has no %s column", column))
}

// ExtractionFailed is recoverable: the caller may proceed with an empty
// formula-template map instead of aborting the upload.
func ExtractionFailed(cause error) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeExtractionFailed,
		Message: "formula extraction failed",
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(http.StatusBadRequest, CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func ConfigInvalid(message string) *AppError {
	return New(http.StatusInternalServerError, CodeConfigInvalid, message)
}

func DatabaseError(cause error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeDatabaseError,
		Message: "database operation failed",
		Cause:   cause,
	}
}

func Internal(message string) *AppError {
	return New(http.StatusInternalServerError, CodeInternal, message)
}
