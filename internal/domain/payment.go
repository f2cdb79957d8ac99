package domain

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	const op = "PaymentMethod.Parse"
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentMethodCreditCard:
		return PaymentMethodCreditCard, nil
	case PaymentMethodDebitCard:
		return PaymentMethodDebitCard, nil
	case PaymentMethodPayPal:
		return PaymentMethodPayPal, nil
	case PaymentMethodBankTransfer:
		return PaymentMethodBankTransfer, nil
	default:
		return "", NewError(CodeValidation, op, fmt.Sprintf("unknown payment method %q", raw), nil)
	}
}
