package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationsFS embed.FS

const schemaPlaceholder = "{{schema}}"

// ApplyMigrations runs the embedded migrations for the connection's driver against schema.
// Each file is applied at most once and recorded in <schema>.schema_migrations.
func ApplyMigrations(ctx context.Context, db *sqlx.DB, schema string) error {
	driver := db.DriverName()
	if !IsSupportedDriver(driver) {
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if strings.TrimSpace(schema) == "" {
		return fmt.Errorf("database schema cannot be empty")
	}

	log.Printf("📋 Starting to apply %s migrations to schema %s", driver, schema)

	if driver == DriverPostgres {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)`, schema)
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	applied := []string{}
	if err := db.SelectContext(ctx, &applied, fmt.Sprintf("SELECT name FROM %s.schema_migrations", schema)); err != nil {
		return fmt.Errorf("failed to list applied migrations: %w", err)
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, name := range applied {
		appliedSet[name] = true
	}

	files, err := migrationFiles(driver)
	if err != nil {
		return err
	}

	count := 0
	for _, file := range files {
		name := path.Base(file)
		if appliedSet[name] {
			continue
		}

		content, err := migrationsFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		statement := strings.ReplaceAll(string(content), schemaPlaceholder, schema)

		if err := applyMigration(ctx, db, schema, name, statement); err != nil {
			return err
		}
		count++
	}

	log.Printf("📋 Completed successfully - applied %d migrations", count)
	return nil
}

func migrationFiles(driver string) ([]string, error) {
	root := path.Join("migrations", driver)
	entries, err := fs.ReadDir(migrationsFS, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir: %w", err)
	}

	files := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, path.Join(root, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, schema, name, statement string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, statement); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %s: %w", name, err)
	}

	record := db.Rebind(fmt.Sprintf("INSERT INTO %s.schema_migrations (name, applied_at) VALUES (?, ?)", schema))
	if _, err := tx.ExecContext(ctx, record, name, time.Now().UTC().UnixMilli()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}

	log.Printf("✅ Applied migration %s", name)
	return nil
}
