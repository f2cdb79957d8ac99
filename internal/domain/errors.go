package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes failure semantics across the domain.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeInvalidState       ErrorCode = "invalid_state"
	CodeInsufficientStock  ErrorCode = "insufficient_stock"
	CodeProductUnavailable ErrorCode = "product_unavailable"
	CodeCurrencyMismatch   ErrorCode = "currency_mismatch"
	CodeConflict           ErrorCode = "conflict"
	CodeRetryable          ErrorCode = "retryable"
	CodeUnavailable        ErrorCode = "unavailable"
	CodeInternal           ErrorCode = "internal"
)

// Error is the canonical domain error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a domain error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with domain error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var domErr *Error
	if !errors.As(err, &domErr) {
		return false
	}
	return domErr.Code == code
}

// CodeOf extracts the domain error code when available.
func CodeOf(err error) ErrorCode {
	var domErr *Error
	if !errors.As(err, &domErr) {
		return ""
	}
	return domErr.Code
}

// MessageOf extracts the human-readable message when available.
func MessageOf(err error) string {
	var domErr *Error
	if !errors.As(err, &domErr) {
		if err != nil {
			return err.Error()
		}
		return ""
	}
	if domErr.Message != "" {
		return domErr.Message
	}
	return domErr.Error()
}

// IsBusinessCode reports whether the code is an expected business outcome,
// as opposed to an infrastructure fault that should propagate past handlers.
func IsBusinessCode(code ErrorCode) bool {
	switch code {
	case CodeValidation,
		CodeNotFound,
		CodeInvalidState,
		CodeInsufficientStock,
		CodeProductUnavailable,
		CodeCurrencyMismatch,
		CodeConflict:
		return true
	default:
		return false
	}
}
