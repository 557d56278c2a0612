package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE of a unique constraint failure.
const uniqueViolation = "23505"

// BaseRepository holds the pool shared by the pgsql adapters.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// inTx runs fn in a transaction, committing when it returns nil. Errors returned by fn
// pass through unchanged so callers can still match apperrors sentinels.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	var fnErr error
	err := pgx.BeginFunc(ctx, r.Pool, func(tx pgx.Tx) error {
		fnErr = fn(tx)
		return fnErr
	})
	if err != nil && fnErr == nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "transaction failed", err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
