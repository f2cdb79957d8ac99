package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/domain"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code domain.ErrorCode
		want int
	}{
		{domain.CodeValidation, http.StatusBadRequest},
		{domain.CodeNotFound, http.StatusNotFound},
		{domain.CodeConflict, http.StatusConflict},
		{domain.CodeInvalidState, http.StatusUnprocessableEntity},
		{domain.CodeInsufficientStock, http.StatusUnprocessableEntity},
		{domain.CodeProductUnavailable, http.StatusUnprocessableEntity},
		{domain.CodeCurrencyMismatch, http.StatusUnprocessableEntity},
		{domain.CodeRetryable, http.StatusServiceUnavailable},
		{domain.CodeUnavailable, http.StatusServiceUnavailable},
		{domain.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForCode(tc.code); got != tc.want {
			t.Fatalf("statusForCode(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestRespondOutcomeSuccess(t *testing.T) {
	c, rec := testContext(t)
	RespondOutcome(c, http.StatusCreated, commands.Success(map[string]string{"hello": "world"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["hello"] != "world" {
		t.Fatalf("body = %v", body)
	}
}

func TestRespondOutcomeFailure(t *testing.T) {
	c, rec := testContext(t)
	RespondOutcome(c, http.StatusOK, commands.Failure[bool](domain.CodeNotFound, "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if envelope.Error.Code != "not_found" || envelope.Error.Message != "missing" {
		t.Fatalf("envelope = %+v", envelope)
	}
}

func TestRespondFaultHidesCause(t *testing.T) {
	c, rec := testContext(t)
	RespondFault(c, domain.NewError(domain.CodeUnavailable, "db.ping", "dial tcp 10.0.0.5: connection refused", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if envelope.Error.Message != "request could not be processed" {
		t.Fatalf("raw cause leaked: %+v", envelope)
	}
}
