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

type OrderRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Order, error)
	GetPagedByCustomer(dbc dbctx.Context, customerID uuid.UUID, page, pageSize int) ([]*domain.Order, int64, error)
	Create(dbc dbctx.Context, row *domain.Order) error
	Update(dbc dbctx.Context, row *domain.Order) error
	SaveItems(dbc dbctx.Context, items []domain.OrderItem) error
}

type orderRepo struct {
	db    *gorm.DB
	log   *logger.Logger
	guard uow.CASGuard
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo"), guard: uow.NewCASGuard(db)}
}

func (r *orderRepo) handle(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *orderRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Order, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Order
	if err := r.handle(dbc).Preload("Items").Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *orderRepo) GetPagedByCustomer(dbc dbctx.Context, customerID uuid.UUID, page, pageSize int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	db := r.handle(dbc)

	query := db.Model(&domain.Order{})
	if customerID != uuid.Nil {
		query = query.Where("customer_id = ?", customerID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listing := db.Preload("Items")
	if customerID != uuid.Nil {
		listing = listing.Where("customer_id = ?", customerID)
	}
	var out []*domain.Order
	if err := listing.
		Order("created_at DESC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Create persists the order together with its owned items.
func (r *orderRepo) Create(dbc dbctx.Context, row *domain.Order) error {
	if row == nil {
		return nil
	}
	return r.handle(dbc).Create(row).Error
}

// Update writes the order row fields guarded by version; items are saved
// separately through SaveItems so the caller controls which lines changed.
func (r *orderRepo) Update(dbc dbctx.Context, row *domain.Order) error {
	const op = "OrderRepo.Update"
	if row == nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	ok, err := r.guard.UpdateByVersion(dbc, row.TableName(), row.ID, row.Version, map[string]any{
		"status":     row.Status,
		"updated_at": row.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if err := uow.RequireCASSuccess(ok, op, "order changed concurrently"); err != nil {
		return err
	}
	row.Version++
	return nil
}

func (r *orderRepo) SaveItems(dbc dbctx.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.handle(dbc).Save(&items).Error
}
