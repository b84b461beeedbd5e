// Package sqlstore provides a database/sql implementation of the storage.Store
// interface for SQLite and PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage"
)

// Ensure SQLStore implements storage.Store
var _ storage.Store = (*SQLStore)(nil)

// Driver selects the database backend.
type Driver string

const (
	SQLite   Driver = "sqlite"
	Postgres Driver = "postgres"
)

// SQLStore implements storage.Store on top of database/sql.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

// New opens a store for the given driver and data source and runs
// migrations. For SQLite the DSN is a file path whose parent directories are
// created as needed.
func New(driver Driver, dsn string) (*SQLStore, error) {
	switch driver {
	case SQLite:
		return newSQLite(dsn)
	case Postgres:
		return newPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func newSQLite(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return open(db, SQLite)
}

func newPostgres(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return open(db, Postgres)
}

func open(db *sql.DB, driver Driver) (*SQLStore, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLStore{db: db, driver: driver}, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind rewrites ? placeholders into PostgreSQL's $n form.
func (s *SQLStore) rebind(query string) string {
	if s.driver != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// execer is implemented by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLStore) exec(ctx context.Context, e execer, query string, args ...any) error {
	_, err := e.ExecContext(ctx, s.rebind(query), args...)
	return err
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// windowClause appends inclusive bounds on column for a non-nil window.
func windowClause(column string, w *models.Window, args []any) (string, []any) {
	if w == nil {
		return "", args
	}
	var clause string
	if w.From != nil {
		clause += " AND " + column + " >= ?"
		args = append(args, w.From.Unix())
	}
	if w.To != nil {
		clause += " AND " + column + " <= ?"
		args = append(args, w.To.Unix())
	}
	return clause, args
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func fromUnix(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

func nullableUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromUnix(v.Int64)
	return &t
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decimalFromNull(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
