package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/domain"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// statusForCode maps the error taxonomy onto HTTP. Business rule rejections
// that are neither bad input nor missing resources land on 422.
func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeInvalidState,
		domain.CodeInsufficientStock,
		domain.CodeProductUnavailable,
		domain.CodeCurrencyMismatch:
		return http.StatusUnprocessableEntity
	case domain.CodeRetryable, domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondOutcome writes a dispatched outcome: payload on success, the error
// envelope with a mapped status otherwise.
func RespondOutcome(c *gin.Context, status int, out commands.Outcome) {
	if out.IsSuccess() {
		c.JSON(status, out.Payload())
		return
	}
	c.JSON(statusForCode(out.FailureCode()), ErrorEnvelope{
		Error: APIError{
			Message: out.FailureMessage(),
			Code:    string(out.FailureCode()),
		},
	})
}

// RespondFault handles infrastructure errors that escaped the handlers. The
// raw cause stays out of the response body.
func RespondFault(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	if code == "" {
		code = domain.CodeInternal
	}
	c.JSON(statusForCode(code), ErrorEnvelope{
		Error: APIError{
			Message: "request could not be processed",
			Code:    string(code),
		},
	})
}

func RespondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Error: APIError{Message: message, Code: string(domain.CodeValidation)},
	})
}
