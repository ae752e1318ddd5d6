package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable error kind returned to callers.
type ErrorCode string

const (
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrCodeConflict       ErrorCode = "CONFLICT"
	ErrCodeInfrastructure ErrorCode = "INFRASTRUCTURE_ERROR"
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
)

// AppError is the single error shape services return.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the whole operation.
func (e *AppError) Retryable() bool {
	return e.Code == ErrCodeInfrastructure
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func InvalidInput(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, nil)
}

func Infrastructure(message string, err error) *AppError {
	return NewAppError(ErrCodeInfrastructure, message, err)
}

// InvalidOperation is returned whenever an order is missing, in the wrong state
// or not owned by the actor.
func InvalidOperation() *AppError {
	return Forbidden("invalid operation")
}

// IsAppError reports whether err wraps an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the kind of err. Errors that are not AppErrors are infrastructure failures.
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ErrCodeInfrastructure
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
