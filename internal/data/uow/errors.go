package uow

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voltstack/commerce-backend/internal/domain"
	"gorm.io/gorm"
)

// MapError re-expresses persistence failures in the domain error taxonomy.
// Nothing engine-specific may leak past this function.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Wrap(domain.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.Wrap(domain.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return domain.Wrap(domain.CodeConflict, op, err)
		case "23503": // foreign_key_violation
			return domain.Wrap(domain.CodeConflict, op, err)
		case "40001", "40P01", "55P03": // serialization/deadlock/lock_not_available
			return domain.Wrap(domain.CodeRetryable, op, err)
		case "08000", "08003", "08006": // connection failures
			return domain.Wrap(domain.CodeUnavailable, op, err)
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "foreign key constraint"):
		return domain.Wrap(domain.CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"):
		return domain.Wrap(domain.CodeRetryable, op, err)
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "database is closed"):
		return domain.Wrap(domain.CodeUnavailable, op, err)
	default:
		return domain.Wrap(domain.CodeInternal, op, err)
	}
}
