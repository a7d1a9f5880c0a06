package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is stamped into PRAGMA user_version. There are no migration
// steps yet; a database stamped with a newer version is refused.
const SchemaVersion = 1

var ErrSchemaVersion = errors.New("unsupported database schema version")

type DB struct {
	*sql.DB
}

func New(dbPath string) (*DB, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		// Ensure directory exists
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// Every transaction takes the write lock up front so a read-modify-write
		// never fails on lock upgrade.
		dsn = dbPath + "?_busy_timeout=5000&_txlock=immediate"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// each connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)

		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return &DB{db}, nil
}

// Migrate creates the schema and stamps SchemaVersion.
func (db *DB) Migrate() error {
	version, err := db.Version()
	if err != nil {
		return err
	}
	if version > SchemaVersion {
		return fmt.Errorf("%w: database is at %d, application supports %d", ErrSchemaVersion, version, SchemaVersion)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id TEXT PRIMARY KEY,
			icon BLOB,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			birthday DATETIME NOT NULL,
			gender TEXT NOT NULL,
			department TEXT NOT NULL,
			join_date DATETIME NOT NULL,
			employee_number TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT ''
		)`,

		// Listing is always by name
		`CREATE INDEX IF NOT EXISTS idx_employees_name ON employees(name)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	if version < SchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return fmt.Errorf("failed to stamp schema version: %w", err)
		}
	}

	return nil
}

// Version returns the schema version stamped in the database file.
func (db *DB) Version() (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
