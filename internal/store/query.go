package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// builder renders SQL in the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// insert executes an INSERT and returns the new row id.
func insert(ctx context.Context, q querier, b *entsql.InsertBuilder) (int, error) {
	query, args := b.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, conflict(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return int(id), nil
}

// conflict turns a SQLite unique violation into a *ConflictError and
// returns any other error unchanged.
func conflict(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	if se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && se.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return err
	}
	ce := &ConflictError{Err: err}
	// Message shape: "constraint failed: UNIQUE constraint failed: users.nickname (2067)".
	if _, after, ok := strings.Cut(se.Error(), "UNIQUE constraint failed: "); ok {
		col, _, _ := strings.Cut(after, " ")
		col, _, _ = strings.Cut(col, ",")
		ce.Table, ce.Column, _ = strings.Cut(col, ".")
	}
	return ce
}

// update executes an UPDATE and reports ErrNotFound when no row matched.
func update(ctx context.Context, q querier, b *entsql.UpdateBuilder) error {
	query, args := b.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// queryOne runs a single-row SELECT, translating sql.ErrNoRows to ErrNotFound.
func queryOne[T any](ctx context.Context, q querier, sel *entsql.Selector, scan func(scanner) (T, error)) (T, error) {
	query, args := sel.Query()
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, ErrNotFound
	}
	return v, err
}

// queryAll runs a SELECT and scans every row.
func queryAll[T any](ctx context.Context, q querier, sel *entsql.Selector, scan func(scanner) (T, error)) ([]T, error) {
	query, args := sel.Query()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// applyOpts narrows sel to the created_at window and limit in opts.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if !opts.Since.IsZero() {
		sel.Where(entsql.GTE(colCreatedAt, opts.Since.UTC()))
	}
	if !opts.Until.IsZero() {
		sel.Where(entsql.LT(colCreatedAt, opts.Until.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// now returns the current time as stored: UTC, so lexical and chronological
// order agree in SQLite.
func now() time.Time {
	return time.Now().UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

const (
	colID        = "id"
	colUserID    = "user_id"
	colCreatedAt = "created_at"
)
