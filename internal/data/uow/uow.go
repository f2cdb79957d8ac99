package uow

import (
	"context"
	"strings"
	"time"

	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// UnitOfWork is the transaction boundary for command handlers: every
// repository mutation performed inside fn commits or discards as one
// operation.
type UnitOfWork interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork returns a unit of work backed by GORM transactions.
func NewGormUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if u == nil || u.db == nil {
		return domain.NewError(domain.CodeInternal, "uow.InTx", "unit of work has nil db", nil)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

// Deps carries the shared write-path collaborators for command handlers.
type Deps struct {
	DB    *gorm.DB
	UoW   UnitOfWork
	Guard CASGuard
	Hooks Hooks
}

func (d Deps) WithDefaults() Deps {
	if d.UoW == nil {
		d.UoW = NewGormUnitOfWork(d.DB)
	}
	if d.Guard.db == nil {
		d.Guard = NewCASGuard(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	return d
}

// Execute runs fn inside one transaction, maps whatever comes out into the
// domain error taxonomy, and records the outcome on the hooks.
func Execute(ctx context.Context, deps Deps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.WithDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "uow.write"
	}
	err := deps.UoW.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = errorStatus(mapped)
		if domain.IsCode(mapped, domain.CodeConflict) {
			deps.Hooks.IncConflict(op)
		}
	}
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

func errorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domain.CodeOf(err)))
	if code == "" {
		return "failure"
	}
	return code
}
