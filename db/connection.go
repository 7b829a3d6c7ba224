package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// necessary imports to wire up the postgres and sqlite drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// IsSupportedDriver reports whether NewConnection can open the given driver
func IsSupportedDriver(driver string) bool {
	return driver == DriverPostgres || driver == DriverSQLite
}

func NewConnection(driver, databaseURL string) (*sqlx.DB, error) {
	if !IsSupportedDriver(driver) {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sqlx.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows a single writer; one connection also keeps in-memory databases alive
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
