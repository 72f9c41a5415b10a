// Package sqlite implements the domain repositories on an embedded
// SQLite database. Every entity is a self-contained row addressed by an
// opaque uuid; single-row writes are atomic, which is all the services
// rely on.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/voltgrid/chargefinder/internal/domain"
	"github.com/voltgrid/chargefinder/internal/repository/sqlite/migrations"
)

// DB wraps the SQLite handle and hands out repositories. SqlDB is
// exported for tests that need to inspect raw rows.
type DB struct {
	SqlDB  *sql.DB
	hasher domain.PasswordHasher
}

// New opens a SQLite database at the given path and configures it for
// use. It enables WAL mode and foreign keys. The hasher is invoked by
// the user store's write path to hash transient plaintext passwords
// immediately before persistence.
func New(dbPath string, hasher domain.PasswordHasher) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db, hasher: hasher}, nil
}

// Migrate applies all unapplied schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository.
func (db *DB) Users() domain.UserRepository {
	return &UserRepository{db: db.SqlDB, hasher: db.hasher}
}

// Chargers returns the charger repository.
func (db *DB) Chargers() domain.ChargerRepository {
	return &ChargerRepository{db: db.SqlDB}
}
