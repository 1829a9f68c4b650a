package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"ppi/domain/core"
)

// AppError represents a structured application error
type AppError struct {
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
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. Codes of wrapped AppErrors are
// kept; domain sentinels are mapped to their code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := GetCode(err)
	if code == "UNKNOWN" {
		code = CodeInternalError
	}
	return &AppError{
		Code:    code,
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

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr == err {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the outermost AppError code, else the code of a known
// domain sentinel, else "UNKNOWN".
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Code != CodeInternalError {
		return appErr.Code
	}
	switch {
	case stderrors.Is(err, core.ErrNotFound):
		return CodeNotFound
	case stderrors.Is(err, core.ErrIndexOutOfRange):
		return CodeIndexOutOfRange
	case stderrors.Is(err, core.ErrInvalidPayload):
		return CodeInvalidPayload
	case stderrors.Is(err, core.ErrParseFailure):
		return CodeParseFailure
	case stderrors.Is(err, core.ErrFileTooLarge):
		return CodeFileTooLarge
	}
	if appErr != nil {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HTTPStatus maps an error to the status the API answers with.
// Out-of-range row indices answer 404 like a missing list.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetCode(err) {
	case CodeNotFound, CodeIndexOutOfRange:
		return http.StatusNotFound
	case CodeInvalidPayload, CodeInvalidInput, CodeValidationError:
		return http.StatusBadRequest
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
	CodeInvalidPayload  = "INVALID_PAYLOAD"
	CodeParseFailure    = "PARSE_FAILURE"
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeStorageError    = "STORAGE_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabaseError,
		Message: message,
		Cause:   cause,
	}
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func StorageError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeStorageError,
		Message: message,
		Cause:   cause,
	}
}
