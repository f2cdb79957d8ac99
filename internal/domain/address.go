package domain

import "strings"

// Address is an immutable postal address compared by value.
type Address struct {
	Street     string `gorm:"not null" json:"street"`
	City       string `gorm:"not null" json:"city"`
	Region     string `json:"region"`
	PostalCode string `gorm:"not null" json:"postal_code"`
	Country    string `gorm:"not null" json:"country"`
}

func NewAddress(street, city, region, postalCode, country string) (Address, error) {
	const op = "Address.New"
	a := Address{
		Street:     strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		Region:     strings.TrimSpace(region),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
	}
	switch {
	case a.Street == "":
		return Address{}, NewError(CodeValidation, op, "street is required", nil)
	case a.City == "":
		return Address{}, NewError(CodeValidation, op, "city is required", nil)
	case a.PostalCode == "":
		return Address{}, NewError(CodeValidation, op, "postal code is required", nil)
	case a.Country == "":
		return Address{}, NewError(CodeValidation, op, "country is required", nil)
	}
	return a, nil
}

func (a Address) Equals(other Address) bool { return a == other }

func (a Address) IsZero() bool { return a == Address{} }
