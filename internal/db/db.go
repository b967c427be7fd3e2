// Package db provides database persistence for scope.
//
// A single database holds users, projects and everything a project owns:
// sprints, tasks, risks, minutes and kanban columns. PostgreSQL is the
// production store; SQLite backs local development and tests.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/randalmurphal/scope/internal/db/driver"
)

//go:embed schema/*.sql schema/postgres/*.sql
var schemaFS embed.FS

// schemaType is the migration file prefix (schema/scope_NNN.sql).
const schemaType = "scope"

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// embedFSAdapter wraps embed.FS to implement driver.SchemaFS.
type embedFSAdapter struct {
	fs embed.FS
}

func (e *embedFSAdapter) ReadDir(name string) ([]driver.DirEntry, error) {
	entries, err := e.fs.ReadDir(name)
	if err != nil {
		return nil, err
	}
	result := make([]driver.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = dirEntryAdapter{entry}
	}
	return result, nil
}

func (e *embedFSAdapter) ReadFile(name string) ([]byte, error) {
	return e.fs.ReadFile(name)
}

type dirEntryAdapter struct {
	fs.DirEntry
}

func (d dirEntryAdapter) Name() string {
	return d.DirEntry.Name()
}

func (d dirEntryAdapter) IsDir() bool {
	return d.DirEntry.IsDir()
}

// Options tunes the connection pool.
type Options struct {
	// MaxOpenConns bounds the pool. Zero leaves the driver default.
	// Ignored for SQLite, which always uses one connection.
	MaxOpenConns int
}

// DB wraps a database connection with driver abstraction.
type DB struct {
	driver driver.Driver
	path   string
}

// Open opens a SQLite database at the given path.
// Creates the parent directory if it doesn't exist.
func Open(path string) (*DB, error) {
	return OpenWithDialect(path, driver.DialectSQLite, Options{})
}

// OpenInMemory opens an in-memory SQLite database.
// Each call creates a new isolated database.
func OpenInMemory() (*DB, error) {
	drv, err := driver.New(driver.DialectSQLite)
	if err != nil {
		return nil, err
	}

	if err := drv.Open(":memory:"); err != nil {
		return nil, err
	}

	return &DB{driver: drv, path: ":memory:"}, nil
}

// OpenWithDialect opens a database with a specific dialect.
// For SQLite, dsn is the file path. For PostgreSQL, dsn is the connection string.
func OpenWithDialect(dsn string, dialect driver.Dialect, opts Options) (*DB, error) {
	// For SQLite, create parent directory if needed
	if dialect == driver.DialectSQLite && dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	drv, err := driver.New(dialect)
	if err != nil {
		return nil, err
	}

	if err := drv.Open(dsn); err != nil {
		return nil, err
	}

	if dialect == driver.DialectPostgres && opts.MaxOpenConns > 0 {
		drv.DB().SetMaxOpenConns(opts.MaxOpenConns)
	}

	return &DB{driver: drv, path: dsn}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.driver.Close()
}

// Path returns the database DSN/path.
func (d *DB) Path() string {
	return d.path
}

// Dialect returns the database dialect.
func (d *DB) Dialect() driver.Dialect {
	return d.driver.Dialect()
}

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.driver.DB().PingContext(ctx)
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	adapter := &embedFSAdapter{fs: schemaFS}
	if err := d.driver.Migrate(ctx, adapter, schemaType); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// resetTables lists every table in drop order: dependents first.
var resetTables = []string{
	"minutes",
	"risks",
	"sprint_tasks",
	"kanban_columns",
	"tasks",
	"sprints",
	"projects",
	"users",
	"_migrations",
}

// Reset drops every table and re-applies the schema from scratch.
// All data is lost.
func (d *DB) Reset(ctx context.Context) error {
	for _, table := range resetTables {
		if _, err := d.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+d.driver.DropCascade()); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return d.Migrate(ctx)
}

// ExecContext executes a query without returning rows.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.driver.Exec(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.driver.Query(ctx, query, args...)
}

// QueryRowContext executes a query that returns at most one row.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.driver.QueryRow(ctx, query, args...)
}

// BeginTx starts a transaction.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (driver.Tx, error) {
	return d.driver.BeginTx(ctx, opts)
}

// Now returns the SQL expression for the current timestamp.
func (d *DB) Now() string {
	return d.driver.Now()
}

// IsUniqueViolation reports whether err is a duplicate-key failure.
func (d *DB) IsUniqueViolation(err error) bool {
	return d.driver.IsUniqueViolation(err)
}
