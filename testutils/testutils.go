package testutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"commandapi/config"
	"commandapi/core"
	"commandapi/db"
	"commandapi/models"
)

// LoadTestConfig loads database settings for tests.
// TEST_DB_DRIVER=postgres with TEST_DB_URL runs against a real server,
// otherwise sqlite is used and NewTestDB places the file in the test's temp dir.
func LoadTestConfig() (*config.AppConfig, error) {
	_ = godotenv.Load("../.env.test")    // From package directories
	_ = godotenv.Load("../../.env.test") // From nested package directories
	_ = godotenv.Load(".env.test")       // From root directory

	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" || driver == db.DriverSQLite {
		return &config.AppConfig{
			DatabaseDriver: db.DriverSQLite,
			DatabaseSchema: "main",
		}, nil
	}

	databaseURL := os.Getenv("TEST_DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("TEST_DB_URL is not set")
	}

	return &config.AppConfig{
		DatabaseDriver: driver,
		DatabaseURL:    databaseURL,
		// a fresh schema per test keeps the commands table empty
		DatabaseSchema: strings.ToLower(core.NewID("test")),
	}, nil
}

// NewTestDB opens a migrated test database and closes it when the test ends
func NewTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()

	cfg, err := LoadTestConfig()
	require.NoError(t, err)

	if cfg.DatabaseDriver == db.DriverSQLite {
		cfg.DatabaseURL = filepath.Join(t.TempDir(), "commands.db") + "?_pragma=busy_timeout(5000)"
	}

	dbConn, err := db.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL)
	require.NoError(t, err, "Failed to create database connection")

	err = db.ApplyMigrations(context.Background(), dbConn, cfg.DatabaseSchema)
	require.NoError(t, err, "Failed to apply migrations")

	t.Cleanup(func() {
		if cfg.DatabaseDriver == db.DriverPostgres {
			_, _ = dbConn.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", cfg.DatabaseSchema))
		}
		dbConn.Close()
	})

	return dbConn, cfg.DatabaseSchema
}

// CreateTestCommand stores a command with distinguishable field values
func CreateTestCommand(t *testing.T, repo *db.SQLCommandsRepository, suffix string) *models.Command {
	t.Helper()

	command := &models.Command{
		HowTo:       "How to " + suffix,
		CommandLine: "run " + suffix,
		Platform:    "Linux",
	}
	err := repo.CreateCommand(context.Background(), command)
	require.NoError(t, err, "Failed to create test command")
	return command
}
