package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error with a caller-facing message and metadata
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// WithMetaMap adds multiple metadata entries
func (e *Error) WithMetaMap(meta map[string]interface{}) *Error {
	for k, v := range meta {
		e.WithMeta(k, v)
	}
	return e
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err, keeping its code and metadata when it is an *Error.
// Anything else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: message, Cause: err, Meta: existing.Meta}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under a new code. Metadata is copied so the new
// error can be annotated without touching the cause.
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	meta := make(map[string]interface{})
	for k, v := range GetMeta(err) {
		meta[k] = v
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: meta}
}

// NotFound creates a not found error
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf creates a not found error with a formatted message
func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf creates an invalid argument error with a formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }

// AlreadyExistsf creates an already exists error with a formatted message
func AlreadyExistsf(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition creates a failed precondition error
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf creates a failed precondition error with a formatted message
func FailedPreconditionf(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Aborted creates an aborted error, used for version conflicts
func Aborted(message string) *Error { return New(CodeAborted, message) }

// Abortedf creates an aborted error with a formatted message
func Abortedf(format string, args ...interface{}) *Error {
	return Newf(CodeAborted, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error { return New(CodeInternal, message) }

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of err; nil is OK and foreign errors are Internal
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of err, if any
func GetMeta(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the caller-facing message of err
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports a not found error
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument reports an invalid argument error
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists reports an already exists error
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsFailedPrecondition reports a failed precondition error
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsAborted reports an aborted error
func IsAborted(err error) bool { return GetCode(err) == CodeAborted }
