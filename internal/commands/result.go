package commands

import (
	"github.com/voltstack/commerce-backend/internal/domain"
)

// Result is the only shape handlers produce for expected outcomes. Failures
// carry a stable error code and a human-readable message; the transport
// layer decides what those mean on the wire.
type Result[T any] struct {
	ok      bool
	value   T
	code    domain.ErrorCode
	message string
}

func Success[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

func Failure[T any](code domain.ErrorCode, message string) Result[T] {
	if code == "" {
		code = domain.CodeInternal
	}
	return Result[T]{code: code, message: message}
}

func (r Result[T]) IsSuccess() bool                 { return r.ok }
func (r Result[T]) Value() T                        { return r.value }
func (r Result[T]) FailureCode() domain.ErrorCode   { return r.code }
func (r Result[T]) FailureMessage() string          { return r.message }
func (r Result[T]) Payload() any {
	if !r.ok {
		return nil
	}
	return r.value
}

// Outcome is the type-erased view the dispatcher and the transport layer
// share across all Result instantiations.
type Outcome interface {
	IsSuccess() bool
	FailureCode() domain.ErrorCode
	FailureMessage() string
	Payload() any
}

// resultFromError turns an expected business failure into a typed Result
// and lets infrastructure faults keep propagating as plain errors.
func resultFromError[T any](err error) (Result[T], error) {
	code := domain.CodeOf(err)
	if domain.IsBusinessCode(code) {
		return Failure[T](code, domain.MessageOf(err)), nil
	}
	var zero Result[T]
	return zero, err
}
