package commands

import (
	"time"

	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/domain"
)

// Command and query contracts are plain data records mapped 1:1 to one
// handler method; they are the only inputs the core accepts.

type CreateProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceAmount string `json:"price_amount"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
}

type ActivateProduct struct {
	ID uuid.UUID `json:"id"`
}

type DeactivateProduct struct {
	ID uuid.UUID `json:"id"`
}

type DeleteProduct struct {
	ID uuid.UUID `json:"id"`
}

type UpdateProductStock struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}

type GetProducts struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type CreateCustomer struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
}

type RenameCustomer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type RelocateCustomer struct {
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	Region     string    `json:"region"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
}

type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type PlaceOrder struct {
	CustomerID    uuid.UUID   `json:"customer_id"`
	PaymentMethod string      `json:"payment_method"`
	Street        string      `json:"street"`
	City          string      `json:"city"`
	Region        string      `json:"region"`
	PostalCode    string      `json:"postal_code"`
	Country       string      `json:"country"`
	Lines         []OrderLine `json:"lines"`
}

type AddOrderItem struct {
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type ConfirmOrder struct {
	ID uuid.UUID `json:"id"`
}

type ShipOrder struct {
	ID uuid.UUID `json:"id"`
}

type CancelOrder struct {
	ID uuid.UUID `json:"id"`
}

type GetOrder struct {
	ID uuid.UUID `json:"id"`
}

type GetOrders struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ProductDTO is the flat projection for listings; no business logic hangs
// off it.
type ProductDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceAmount   string    `json:"price_amount"`
	Currency      string    `json:"currency"`
	StockQuantity int       `json:"stock_quantity"`
	Category      string    `json:"category"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func productDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PriceAmount:   p.Price.Amount.StringFixed(2),
		Currency:      p.Price.Currency,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}

type OrderItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
	Currency  string    `json:"currency"`
}

type OrderDTO struct {
	ID            uuid.UUID          `json:"id"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	Status        domain.OrderStatus `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderItemDTO     `json:"items"`
	TotalAmount   string             `json:"total_amount"`
	Currency      string             `json:"currency"`
	CreatedAt     time.Time          `json:"created_at"`
}

func orderDTO(o *domain.Order) (OrderDTO, error) {
	total, err := o.Total()
	if err != nil {
		return OrderDTO{}, err
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.Amount.StringFixed(2),
			Currency:  it.UnitPrice.Currency,
		})
	}
	return OrderDTO{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		Status:        o.Status,
		PaymentMethod: string(o.PaymentMethod),
		Items:         items,
		TotalAmount:   total.Amount.StringFixed(2),
		Currency:      total.Currency,
		CreatedAt:     o.CreatedAt,
	}, nil
}

type CustomerDTO struct {
	ID          uuid.UUID      `json:"id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	Address     domain.Address `json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
}

func customerDTO(c *domain.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email.String(),
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
	}
}

// PagedResponse is the paging envelope for list queries.
type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}
