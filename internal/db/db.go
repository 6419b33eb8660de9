package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"nzpt/migrations"
)

// Supported database dialects.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// DB wraps a database/sql handle for either dialect. Queries are written in
// SQL both dialects accept, with $n placeholders.
type DB struct {
	Conn    *sql.DB
	Dialect string
}

// New opens the database named by connString and verifies it is reachable.
// connString is sqlite3://<path> (":memory:" allowed) or postgres://...
func New(ctx context.Context, connString string) (*DB, error) {
	dialect, driver, dsn, err := parseConnString(connString)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		// One connection keeps :memory: databases alive and shared.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Conn: conn, Dialect: dialect}, nil
}

func parseConnString(connString string) (dialect, driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(connString, "sqlite3://"):
		path := strings.TrimPrefix(connString, "sqlite3://")
		if path == "" {
			return "", "", "", fmt.Errorf("%w: empty sqlite3 path", ErrUnsupportedDatabase)
		}
		return DialectSQLite, "sqlite3", path, nil
	case strings.HasPrefix(connString, "postgres://"), strings.HasPrefix(connString, "postgresql://"):
		return DialectPostgres, "pgx", connString, nil
	default:
		return "", "", "", fmt.Errorf("%w: %q", ErrUnsupportedDatabase, connString)
	}
}

// RunMigrations applies the embedded schema for the current dialect.
func (d *DB) RunMigrations() error {
	sourceDriver, err := iofs.New(migrations.FS, d.Dialect)
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	var dbDriver database.Driver
	switch d.Dialect {
	case DialectSQLite:
		dbDriver, err = migratesqlite.WithInstance(d.Conn, &migratesqlite.Config{})
	case DialectPostgres:
		dbDriver, err = migratepgx.WithInstance(d.Conn, &migratepgx.Config{})
	default:
		err = ErrUnsupportedDatabase
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// The migrator is not closed: closing it would close d.Conn.
	m, err := migrate.NewWithInstance("iofs", sourceDriver, d.Dialect, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Conn.PingContext(ctx)
}

// Close closes the database handle.
func (d *DB) Close() error {
	return d.Conn.Close()
}
