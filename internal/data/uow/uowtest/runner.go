package uowtest

import (
	"context"
	"sync"

	"github.com/voltstack/commerce-backend/internal/data/uow"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
)

// InjectedUnitOfWork is a unit-of-work fake for handler tests. It counts
// commits and rollbacks and supports failure injection without a real DB.
type InjectedUnitOfWork struct {
	mu sync.Mutex

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ uow.UnitOfWork = (*InjectedUnitOfWork)(nil)

func (r *InjectedUnitOfWork) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if fn == nil {
		r.bump(&r.CommitCalls)
		return nil
	}
	if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
		r.bump(&r.RollbackCalls)
		return err
	}
	if failCommit != nil {
		r.bump(&r.RollbackCalls)
		return failCommit
	}
	r.bump(&r.CommitCalls)
	return nil
}

func (r *InjectedUnitOfWork) bump(counter *int) {
	r.mu.Lock()
	*counter++
	r.mu.Unlock()
}
