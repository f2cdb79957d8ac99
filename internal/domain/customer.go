package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Email       Email     `gorm:"type:varchar(254);not null;uniqueIndex" json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     Address   `gorm:"embedded;embeddedPrefix:addr_" json:"address"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customer" }

func NewCustomer(firstName, lastName string, email Email, phoneNumber string, address Address) (*Customer, error) {
	const op = "Customer.New"
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	switch {
	case firstName == "":
		return nil, NewError(CodeValidation, op, "first name is required", nil)
	case lastName == "":
		return nil, NewError(CodeValidation, op, "last name is required", nil)
	case email == "":
		return nil, NewError(CodeValidation, op, "email is required", nil)
	case address.IsZero():
		return nil, NewError(CodeValidation, op, "address is required", nil)
	}
	now := time.Now().UTC()
	return &Customer{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (c *Customer) Rename(firstName, lastName string) error {
	const op = "Customer.Rename"
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return NewError(CodeValidation, op, "first and last name are required", nil)
	}
	c.FirstName = firstName
	c.LastName = lastName
	return nil
}

func (c *Customer) Relocate(address Address) error {
	const op = "Customer.Relocate"
	if address.IsZero() {
		return NewError(CodeValidation, op, "address is required", nil)
	}
	c.Address = address
	return nil
}
