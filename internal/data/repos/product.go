package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voltstack/commerce-backend/internal/data/uow"
	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// ProductRepo is the load/save port for the Product aggregate. GetByID
// returns (nil, nil) when the row is absent; callers decide whether that is
// an error.
type ProductRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Product, error)
	GetPaged(dbc dbctx.Context, page, pageSize int) ([]*domain.Product, int64, error)
	Create(dbc dbctx.Context, row *domain.Product) error
	Update(dbc dbctx.Context, row *domain.Product) error
	Delete(dbc dbctx.Context, row *domain.Product) error
}

type productRepo struct {
	db    *gorm.DB
	log   *logger.Logger
	guard uow.CASGuard
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo"), guard: uow.NewCASGuard(db)}
}

func (r *productRepo) handle(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *productRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Product
	if err := r.handle(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *productRepo) GetPaged(dbc dbctx.Context, page, pageSize int) ([]*domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	db := r.handle(dbc)

	var total int64
	if err := db.Model(&domain.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*domain.Product
	if err := db.
		Order("created_at DESC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *productRepo) Create(dbc dbctx.Context, row *domain.Product) error {
	if row == nil {
		return nil
	}
	return r.handle(dbc).Create(row).Error
}

// Update writes the mutable fields guarded by the version column; a stale
// version surfaces as a concurrency conflict.
func (r *productRepo) Update(dbc dbctx.Context, row *domain.Product) error {
	const op = "ProductRepo.Update"
	if row == nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	ok, err := r.guard.UpdateByVersion(dbc, row.TableName(), row.ID, row.Version, map[string]any{
		"name":           row.Name,
		"description":    row.Description,
		"price_amount":   row.Price.Amount,
		"price_currency": row.Price.Currency,
		"stock_quantity": row.StockQuantity,
		"category":       row.Category,
		"is_active":      row.IsActive,
		"updated_at":     row.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if err := uow.RequireCASSuccess(ok, op, "product changed concurrently"); err != nil {
		return err
	}
	row.Version++
	return nil
}

// Delete hard-deletes the product. A product still referenced by order
// lines is reported as an explicit conflict rather than a driver fault;
// the database-level foreign key stays as a backstop.
func (r *productRepo) Delete(dbc dbctx.Context, row *domain.Product) error {
	const op = "ProductRepo.Delete"
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	db := r.handle(dbc)

	var refs int64
	if err := db.Model(&domain.OrderItem{}).Where("product_id = ?", row.ID).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return domain.NewError(domain.CodeConflict, op, "product is referenced by existing orders", nil)
	}

	res := db.Where("id = ?", row.ID).Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
