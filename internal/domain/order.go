package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is owned by its Order and never outlives it. UnitPrice is the
// product price captured when the line was added; later price changes on the
// product do not touch existing orders.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice Money     `gorm:"embedded;embeddedPrefix:unit_price_" json:"unit_price"`
}

func (OrderItem) TableName() string { return "order_item" }

// Order is the root aggregate for a purchase. It references Product and
// Customer by id only; reserving product stock is the command handler's job
// so the two aggregates commit in the same unit of work.
type Order struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(32);not null" json:"payment_method"`
	ShippingAddress Address       `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Status          OrderStatus   `gorm:"type:varchar(16);not null" json:"status"`
	Version         int           `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "order" }

func NewOrder(customerID uuid.UUID, payment PaymentMethod, shipping Address) (*Order, error) {
	const op = "Order.New"
	if customerID == uuid.Nil {
		return nil, NewError(CodeValidation, op, "customer id is required", nil)
	}
	if _, err := ParsePaymentMethod(string(payment)); err != nil {
		return nil, err
	}
	if shipping.IsZero() {
		return nil, NewError(CodeValidation, op, "shipping address is required", nil)
	}
	now := time.Now().UTC()
	return &Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		PaymentMethod:   payment,
		ShippingAddress: shipping,
		Status:          OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AddItem appends a line capturing the product's current price. A second add
// of the same product merges quantities into the existing line instead of
// duplicating it; the originally captured price is kept. AddItem validates
// availability but does not mutate the product.
func (o *Order) AddItem(p *Product, quantity int) error {
	const op = "Order.AddItem"
	if p == nil {
		return NewError(CodeValidation, op, "product is required", nil)
	}
	if quantity <= 0 {
		return NewError(CodeValidation, op, "quantity must be positive", nil)
	}
	if o.Status != OrderStatusPending {
		return NewError(CodeInvalidState, op,
			fmt.Sprintf("cannot add items to a %s order", o.Status), nil)
	}
	if !p.IsActive {
		return NewError(CodeProductUnavailable, op,
			fmt.Sprintf("product %q is not active", p.Name), nil)
	}
	if p.StockQuantity < quantity {
		return NewError(CodeInsufficientStock, op,
			fmt.Sprintf("requested %d of %q but only %d in stock", quantity, p.Name, p.StockQuantity), nil)
	}
	for i := range o.Items {
		if o.Items[i].ProductID == p.ID {
			o.Items[i].Quantity += quantity
			return nil
		}
	}
	o.Items = append(o.Items, OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: p.Price,
	})
	return nil
}

func (o *Order) Confirm() error {
	const op = "Order.Confirm"
	if o.Status != OrderStatusPending {
		return invalidTransition(op, o.Status, OrderStatusConfirmed)
	}
	if len(o.Items) == 0 {
		return NewError(CodeInvalidState, op, "cannot confirm an empty order", nil)
	}
	o.Status = OrderStatusConfirmed
	return nil
}

func (o *Order) Ship() error {
	const op = "Order.Ship"
	if o.Status != OrderStatusConfirmed {
		return invalidTransition(op, o.Status, OrderStatusShipped)
	}
	o.Status = OrderStatusShipped
	return nil
}

// Cancel is allowed from pending or confirmed; shipped and cancelled are
// terminal.
func (o *Order) Cancel() error {
	const op = "Order.Cancel"
	if o.Status != OrderStatusPending && o.Status != OrderStatusConfirmed {
		return invalidTransition(op, o.Status, OrderStatusCancelled)
	}
	o.Status = OrderStatusCancelled
	return nil
}

// Total is derived from the lines on every read, never stored.
func (o *Order) Total() (Money, error) {
	total := ZeroMoney(DefaultCurrency)
	for i, item := range o.Items {
		line, err := item.UnitPrice.MultiplyBy(item.Quantity)
		if err != nil {
			return Money{}, err
		}
		if i == 0 {
			total = line
			continue
		}
		sum, err := total.Add(line)
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}

func invalidTransition(op string, from, to OrderStatus) error {
	return NewError(CodeInvalidState, op,
		fmt.Sprintf("cannot move order from %s to %s", from, to), nil)
}
