// Package repository handles all interactions with the database.
//
// It builds parameterized SQL with a query builder and executes it through
// pgx, abstracting SQL logic away from the service layer.
//
// Repositories hold no connection state: every method receives the Querier
// to run against, so the same code works on the pool, a single connection,
// or inside a caller-owned transaction.
package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TableShoppingList is the only table this repository touches.
const TableShoppingList = "shopping_list"

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// collect runs a select and scans every row with fn. No rows gives an empty slice.
func collect[T any](ctx context.Context, db Querier, b sq.SelectBuilder, fn pgx.RowToFunc[T]) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	result, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []T{}
	}
	return result, nil
}
