package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"
)

// SchemaVersion is bumped on any breaking schema change. There are no
// migration scripts: a version mismatch drops everything and recreates the
// tables from scratch.
const SchemaVersion = 3

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_info (
		version INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		document TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 0,
		threshold INT NOT NULL DEFAULT 0,
		cost_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		sale_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		category_id INT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS years (
		id SERIAL PRIMARY KEY,
		year INT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS months (
		id SERIAL PRIMARY KEY,
		month INT NOT NULL,
		year_id INT NOT NULL REFERENCES years(id),
		UNIQUE (month, year_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		client_id INT NOT NULL,
		client_name TEXT NOT NULL,
		total DOUBLE PRECISION NOT NULL,
		month_id INT NOT NULL REFERENCES months(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id SERIAL PRIMARY KEY,
		sale_id INT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id INT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		remind_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS promos (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Tables in drop order, children before parents.
var dropStatements = []string{
	`DROP TABLE IF EXISTS sale_items`,
	`DROP TABLE IF EXISTS sales`,
	`DROP TABLE IF EXISTS months`,
	`DROP TABLE IF EXISTS years`,
	`DROP TABLE IF EXISTS products`,
	`DROP TABLE IF EXISTS categories`,
	`DROP TABLE IF EXISTS notes`,
	`DROP TABLE IF EXISTS promos`,
	`DROP TABLE IF EXISTS clients`,
	`DROP TABLE IF EXISTS users`,
	`DROP TABLE IF EXISTS schema_info`,
}

// EnsureSchema creates all tables on first run and destructively recreates
// them when the stored version does not match SchemaVersion.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	version, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	if version == SchemaVersion {
		return nil
	}

	if version != 0 {
		log.Printf("schema version %d found, want %d: recreating all tables", version, SchemaVersion)
		for _, stmt := range dropStatements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}

	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM schema_info`); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES ($1)`, SchemaVersion)
	return err
}

func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'schema_info')`).
		Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}
