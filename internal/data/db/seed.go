package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// Seed populates an empty database with a small demo catalog. Each section
// is skipped when its table already has rows, so running it twice is safe.
func Seed(ctx context.Context, handle *gorm.DB, logg *logger.Logger) error {
	seedLog := logg.With("service", "Seeder")
	return handle.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := seedProducts(tx, seedLog)
		if err != nil {
			return err
		}
		customers, err := seedCustomers(tx, seedLog)
		if err != nil {
			return err
		}
		return seedOrder(tx, seedLog, products, customers)
	})
}

func seedProducts(tx *gorm.DB, seedLog *logger.Logger) ([]*domain.Product, error) {
	var count int64
	if err := tx.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		var existing []*domain.Product
		if err := tx.Order("created_at ASC").Limit(2).Find(&existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	specs := []struct {
		name, description, price string
		stock                    int
		category                 string
	}{
		{"Laptop Pro 15", "High performance laptop", "1499.00", 50, "Computers"},
		{"Wireless Mouse", "Ergonomic mouse", "39.99", 200, "Accessories"},
		{"Mechanical Keyboard", "RGB backlit", "89.50", 120, "Accessories"},
		{"USB-C Dock", "8-in-1 adapter", "69.00", 80, "Accessories"},
	}
	out := make([]*domain.Product, 0, len(specs))
	for _, s := range specs {
		price, err := domain.MoneyFromString(s.price, domain.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		p, err := domain.NewProduct(s.name, s.description, price, s.stock, s.category)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := tx.Create(&out).Error; err != nil {
		return nil, err
	}
	seedLog.Info("seeded products", "count", len(out))
	return out, nil
}

func seedCustomers(tx *gorm.DB, seedLog *logger.Logger) ([]*domain.Customer, error) {
	var count int64
	if err := tx.Model(&domain.Customer{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		var existing []*domain.Customer
		if err := tx.Order("created_at ASC").Limit(1).Find(&existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	specs := []struct {
		first, last, email, phone, street, city, region, postal, country string
	}{
		{"Alice", "Johnson", "alice@example.com", "+1-555-0101", "123 Main St", "Springfield", "IL", "62701", "USA"},
		{"Bob", "Smith", "bob@example.com", "+1-555-0102", "456 Oak Ave", "Springfield", "IL", "62702", "USA"},
		{"Charlie", "Brown", "charlie@example.com", "+1-555-0103", "789 Pine Rd", "Springfield", "IL", "62703", "USA"},
	}
	out := make([]*domain.Customer, 0, len(specs))
	for _, s := range specs {
		email, err := domain.NewEmail(s.email)
		if err != nil {
			return nil, err
		}
		addr, err := domain.NewAddress(s.street, s.city, s.region, s.postal, s.country)
		if err != nil {
			return nil, err
		}
		c, err := domain.NewCustomer(s.first, s.last, email, s.phone, addr)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := tx.Create(&out).Error; err != nil {
		return nil, err
	}
	seedLog.Info("seeded customers", "count", len(out))
	return out, nil
}

func seedOrder(tx *gorm.DB, seedLog *logger.Logger, products []*domain.Product, customers []*domain.Customer) error {
	var count int64
	if err := tx.Model(&domain.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(products) < 2 || len(customers) == 0 {
		return nil
	}

	order, err := domain.NewOrder(customers[0].ID, domain.PaymentMethodCreditCard, customers[0].Address)
	if err != nil {
		return err
	}
	for i, quantity := range []int{1, 2} {
		p := products[i]
		if err := order.AddItem(p, quantity); err != nil {
			return err
		}
		if err := p.ReserveStock(quantity); err != nil {
			return err
		}
		if err := tx.Model(&domain.Product{}).Where("id = ?", p.ID).
			Update("stock_quantity", p.StockQuantity).Error; err != nil {
			return err
		}
	}
	if err := tx.Create(order).Error; err != nil {
		return err
	}
	seedLog.Info("seeded demo order", "items", len(order.Items))
	return nil
}
