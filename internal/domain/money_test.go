package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoneyRejectsNegativeAmount(t *testing.T) {
	if _, err := NewMoney(decimal.NewFromInt(-1), "USD"); !IsCode(err, CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestNewMoneyNormalizesCurrency(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(5), " usd ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Currency != "USD" {
		t.Fatalf("currency: want=USD got=%q", m.Currency)
	}
}

func TestNewMoneyRejectsBadCurrency(t *testing.T) {
	for _, cur := range []string{"US", "DOLLAR", "U$D"} {
		if _, err := NewMoney(decimal.NewFromInt(1), cur); !IsCode(err, CodeValidation) {
			t.Fatalf("currency %q: want validation error, got %v", cur, err)
		}
	}
}

func TestMoneyAddCurrencyMismatch(t *testing.T) {
	usd, _ := MoneyFromString("10.00", "USD")
	eur, _ := MoneyFromString("10.00", "EUR")
	if _, err := usd.Add(eur); !IsCode(err, CodeCurrencyMismatch) {
		t.Fatalf("want currency mismatch, got %v", err)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	price, err := MoneyFromString("39.99", "USD")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	tripled, err := price.MultiplyBy(3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := tripled.Amount.StringFixed(2); got != "119.97" {
		t.Fatalf("amount: want=119.97 got=%s", got)
	}
	sum, err := tripled.Add(price)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := sum.Amount.StringFixed(2); got != "159.96" {
		t.Fatalf("amount: want=159.96 got=%s", got)
	}
}

func TestMoneyMultiplyByRejectsNonPositiveQuantity(t *testing.T) {
	m, _ := MoneyFromString("1.00", "USD")
	for _, q := range []int{0, -2} {
		if _, err := m.MultiplyBy(q); !IsCode(err, CodeValidation) {
			t.Fatalf("quantity %d: want validation error, got %v", q, err)
		}
	}
}

func TestMoneyEquals(t *testing.T) {
	a, _ := MoneyFromString("10.00", "USD")
	b, _ := MoneyFromString("10", "usd")
	if !a.Equals(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
}
