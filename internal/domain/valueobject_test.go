package domain

import "testing"

func TestNewEmail(t *testing.T) {
	e, err := NewEmail("Alice@Example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.String() != "alice@example.com" {
		t.Fatalf("email not normalized: %q", e)
	}
}

func TestNewEmailRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "no-at-sign", "a@b", "Alice <alice@example.com>", "@example.com"} {
		if _, err := NewEmail(raw); !IsCode(err, CodeValidation) {
			t.Fatalf("email %q: want validation error, got %v", raw, err)
		}
	}
}

func TestNewAddressRequiredFields(t *testing.T) {
	if _, err := NewAddress("", "Springfield", "IL", "62701", "USA"); !IsCode(err, CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if _, err := NewAddress("123 Main St", "Springfield", "IL", "62701", ""); !IsCode(err, CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	a, err := NewAddress("123 Main St", "Springfield", "", "62701", "USA")
	if err != nil {
		t.Fatalf("region should be optional: %v", err)
	}
	if a.Street != "123 Main St" {
		t.Fatalf("street: got %q", a.Street)
	}
}

func TestAddressStructuralEquality(t *testing.T) {
	a, _ := NewAddress("123 Main St", "Springfield", "IL", "62701", "USA")
	b, _ := NewAddress("123 Main St  ", " Springfield", "IL", "62701", "USA")
	if !a.Equals(b) {
		t.Fatalf("expected structural equality")
	}
	c, _ := NewAddress("456 Oak Ave", "Springfield", "IL", "62702", "USA")
	if a.Equals(c) {
		t.Fatalf("different addresses must not be equal")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	pm, err := ParsePaymentMethod(" Credit_Card ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pm != PaymentMethodCreditCard {
		t.Fatalf("payment method: got %q", pm)
	}
	if _, err := ParsePaymentMethod("barter"); !IsCode(err, CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}
