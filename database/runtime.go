package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so repositories run
// unchanged inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Result is what execute reports back for a write.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

type runtime struct {
	q   querier
	now func() time.Time
}

// fetchOne runs a single-row query. A missing row is reported as found=false,
// never as an error.
func fetchOne[T any](ctx context.Context, q querier, scan func(scanner) (T, error), query string, args ...any) (T, bool, error) {
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, storeError("get", err)
	}
	return v, true, nil
}

// fetchMany runs a query and scans every row. The result is never nil.
func fetchMany[T any](ctx context.Context, q querier, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("all", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, storeError("all", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("all", err)
	}
	return out, nil
}

func execute(ctx context.Context, q querier, query string, args ...any) (Result, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, storeError("run", err)
	}
	var out Result
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return Result{}, storeError("run", err)
	}
	if out.LastInsertID, err = res.LastInsertId(); err != nil {
		return Result{}, storeError("run", err)
	}
	return out, nil
}
