package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when a caller does not specify one, matching
// the single-currency catalog the service started with.
const DefaultCurrency = "USD"

// Money is an immutable amount + ISO currency code pair. The zero value is
// not valid; construct through NewMoney or MoneyFromString.
type Money struct {
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency string          `gorm:"type:varchar(3);not null" json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	const op = "Money.New"
	if amount.IsNegative() {
		return Money{}, NewError(CodeValidation, op, "amount cannot be negative", nil)
	}
	cur, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: amount, Currency: cur}, nil
}

// MoneyFromString parses a decimal string such as "39.99".
func MoneyFromString(amount, currency string) (Money, error) {
	const op = "Money.FromString"
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, NewError(CodeValidation, op, fmt.Sprintf("invalid amount %q", amount), err)
	}
	return NewMoney(d, currency)
}

func ZeroMoney(currency string) Money {
	cur, err := normalizeCurrency(currency)
	if err != nil {
		cur = DefaultCurrency
	}
	return Money{Amount: decimal.Zero, Currency: cur}
}

func (m Money) Add(other Money) (Money, error) {
	const op = "Money.Add"
	if m.Currency != other.Currency {
		return Money{}, NewError(CodeCurrencyMismatch, op,
			fmt.Sprintf("cannot add %s to %s", other.Currency, m.Currency), nil)
	}
	sum := m.Amount.Add(other.Amount)
	if sum.IsNegative() {
		return Money{}, NewError(CodeValidation, op, "result cannot be negative", nil)
	}
	return Money{Amount: sum, Currency: m.Currency}, nil
}

// MultiplyBy scales the amount by a positive quantity.
func (m Money) MultiplyBy(quantity int) (Money, error) {
	const op = "Money.MultiplyBy"
	if quantity <= 0 {
		return Money{}, NewError(CodeValidation, op, "quantity must be positive", nil)
	}
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}, nil
}

func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

func normalizeCurrency(currency string) (string, error) {
	const op = "Money.New"
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = DefaultCurrency
	}
	if len(cur) != 3 {
		return "", NewError(CodeValidation, op, fmt.Sprintf("invalid currency code %q", currency), nil)
	}
	for _, r := range cur {
		if r < 'A' || r > 'Z' {
			return "", NewError(CodeValidation, op, fmt.Sprintf("invalid currency code %q", currency), nil)
		}
	}
	return cur, nil
}
