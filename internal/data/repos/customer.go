package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

type CustomerRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(dbc dbctx.Context, email domain.Email) (*domain.Customer, error)
	Create(dbc dbctx.Context, row *domain.Customer) error
	Update(dbc dbctx.Context, row *domain.Customer) error
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return &customerRepo{db: db, log: baseLog.With("repo", "CustomerRepo")}
}

func (r *customerRepo) handle(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *customerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Customer, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Customer
	if err := r.handle(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *customerRepo) GetByEmail(dbc dbctx.Context, email domain.Email) (*domain.Customer, error) {
	if email == "" {
		return nil, nil
	}
	var out []*domain.Customer
	if err := r.handle(dbc).Where("email = ?", email.String()).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *customerRepo) Create(dbc dbctx.Context, row *domain.Customer) error {
	if row == nil {
		return nil
	}
	return r.handle(dbc).Create(row).Error
}

func (r *customerRepo) Update(dbc dbctx.Context, row *domain.Customer) error {
	if row == nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	return r.handle(dbc).Save(row).Error
}
