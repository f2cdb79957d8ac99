package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is the catalog aggregate. Stock never goes below zero; all stock
// movement goes through AdjustStock or ReserveStock so the invariant is
// checked in exactly one place.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Price         Money     `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	StockQuantity int       `gorm:"not null" json:"stock_quantity"`
	Category      string    `json:"category"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	Version       int       `gorm:"not null;default:0" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

func NewProduct(name, description string, price Money, stockQuantity int, category string) (*Product, error) {
	const op = "Product.New"
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(CodeValidation, op, "name is required", nil)
	}
	if price.Amount.IsNegative() {
		return nil, NewError(CodeValidation, op, "price cannot be negative", nil)
	}
	if stockQuantity < 0 {
		return nil, NewError(CodeValidation, op, "stock quantity cannot be negative", nil)
	}
	now := time.Now().UTC()
	return &Product{
		ID:            uuid.New(),
		Name:          name,
		Description:   strings.TrimSpace(description),
		Price:         price,
		StockQuantity: stockQuantity,
		Category:      strings.TrimSpace(category),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Activate is idempotent; deactivation never cancels existing orders.
func (p *Product) Activate()   { p.IsActive = true }
func (p *Product) Deactivate() { p.IsActive = false }

// AdjustStock applies a signed delta and returns the new quantity.
func (p *Product) AdjustStock(delta int) (int, error) {
	const op = "Product.AdjustStock"
	next := p.StockQuantity + delta
	if next < 0 {
		return p.StockQuantity, NewError(CodeInsufficientStock, op,
			fmt.Sprintf("stock %d cannot absorb adjustment %d", p.StockQuantity, delta), nil)
	}
	p.StockQuantity = next
	return next, nil
}

// ReserveStock decrements stock for an order line. The caller commits the
// reservation together with the order change in one unit of work.
func (p *Product) ReserveStock(quantity int) error {
	const op = "Product.ReserveStock"
	if quantity <= 0 {
		return NewError(CodeValidation, op, "quantity must be positive", nil)
	}
	if !p.IsActive {
		return NewError(CodeProductUnavailable, op,
			fmt.Sprintf("product %q is not active", p.Name), nil)
	}
	if p.StockQuantity < quantity {
		return NewError(CodeInsufficientStock, op,
			fmt.Sprintf("requested %d but only %d in stock", quantity, p.StockQuantity), nil)
	}
	p.StockQuantity -= quantity
	return nil
}
