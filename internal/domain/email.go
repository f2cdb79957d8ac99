package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// Email is a validated, normalized address. Construct through NewEmail.
type Email string

func NewEmail(raw string) (Email, error) {
	const op = "Email.New"
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewError(CodeValidation, op, "email is required", nil)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", NewError(CodeValidation, op, fmt.Sprintf("invalid email %q", raw), err)
	}
	at := strings.LastIndex(trimmed, "@")
	if at <= 0 || !strings.Contains(trimmed[at+1:], ".") {
		return "", NewError(CodeValidation, op, fmt.Sprintf("invalid email %q", raw), nil)
	}
	return Email(strings.ToLower(trimmed)), nil
}

func (e Email) String() string { return string(e) }
