package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/persistence"
	"github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

// withConn runs fn on a pooled connection and always releases it. Any
// failure that is not already a DomainError is logged and replaced by an
// internal error carrying failMsg.
func withConn(ctx context.Context, db persistence.Connector, logger *zap.Logger, failMsg string, fn func(persistence.Conn) error) error {
	conn, err := db.Connect(ctx)
	if err != nil {
		logger.Error("acquire connection", zap.String("operation", failMsg), zap.Error(err))
		return errorutil.NewInternalError(failMsg, err)
	}
	defer conn.Release()

	if err := fn(conn); err != nil {
		var domainErr *errorutil.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		logger.Error("query failed", zap.String("operation", failMsg), zap.Error(err))
		return errorutil.NewInternalError(failMsg, err)
	}
	return nil
}

// queryOne returns the first row mapped through mapFn, or mapFn(nil) when no
// row matched.
func queryOne[R any, D any](ctx context.Context, conn persistence.Conn, mapFn func(*R) *D, sql string, args ...any) (*D, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[R])
	if errors.Is(err, pgx.ErrNoRows) {
		return mapFn(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return mapFn(row), nil
}

// queryMany maps every returned row through mapFn.
func queryMany[R any, D any](ctx context.Context, conn persistence.Conn, mapFn func(*R) *D, sql string, args ...any) ([]*D, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[R])
	if err != nil {
		return nil, err
	}
	out := make([]*D, 0, len(collected))
	for _, row := range collected {
		out = append(out, mapFn(row))
	}
	return out, nil
}

// insertReturningID runs an INSERT ... RETURNING of a single integer key.
func insertReturningID(ctx context.Context, conn persistence.Conn, sql string, args ...any) (int, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return pgx.CollectOneRow(rows, pgx.RowTo[int])
}
