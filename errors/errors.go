package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError. The set is closed: every error surfaced to a
// caller maps onto exactly one kind and therefore one status code.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindProvider
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider"
	case KindConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"-"`
	Message string `json:"detail"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func E(kind Kind, op string, err error, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    statusFor(kind),
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(KindInvalidInput, op, err, message)
}

func NotFound(op string, err error, message string) *AppError {
	return E(KindNotFound, op, err, message)
}

// Provider wraps a failure that originated in an external dependency.
func Provider(op string, err error, message string) *AppError {
	return E(KindProvider, op, err, message)
}

// Configuration is only produced while the process is starting.
func Configuration(op string, err error, message string) *AppError {
	return E(KindConfiguration, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return E(KindInternal, op, err, message)
}

func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode maps err to an HTTP status code.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}
