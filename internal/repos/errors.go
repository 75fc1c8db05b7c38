package repos

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/flashflow/flashflow-backend/internal/domain/funnel"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// classify maps store-level failures onto the engine error taxonomy so
// services never have to know about driver error codes.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return funnel.Wrap(funnel.CodeNotFound, op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgUniqueViolation:
			return funnel.Wrap(funnel.CodeDataIntegrity, op, err)
		}
	}
	return funnel.Wrap(funnel.CodeTransactionFailed, op, err)
}
