package uow

import (
	"strings"

	"github.com/google/uuid"
	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// CASGuard implements compare-and-set writes against a version column.
// Concurrent writers that raced past the load step lose here instead of
// silently overwriting each other.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx), nil
	}
	if g.db != nil {
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, domain.NewError(domain.CodeInternal, "uow.CASGuard", "missing db transaction context", nil)
}

// UpdateByVersion updates a row only when id+version still match, bumping
// the version as part of the write.
func (g CASGuard) UpdateByVersion(dbc dbctx.Context, table string, id uuid.UUID, expectedVersion int, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id == uuid.Nil {
		return false, domain.NewError(domain.CodeValidation, "uow.UpdateByVersion", "table and id are required", nil)
	}
	if expectedVersion < 0 {
		return false, domain.NewError(domain.CodeValidation, "uow.UpdateByVersion", "expected version must be >= 0", nil)
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["version"] = expectedVersion + 1
	res := db.Table(table).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RequireCASSuccess converts a failed compare-and-set into a typed
// concurrency conflict.
func RequireCASSuccess(ok bool, op, message string) error {
	if ok {
		return nil
	}
	return domain.NewError(domain.CodeConflict, op, strings.TrimSpace(message), nil)
}
