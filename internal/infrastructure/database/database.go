package database

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jmoiron/sqlx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Connect opens the store for the configured driver. SQLite stores get their
// schema created on first use.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, "":
		db, err := ConnectSQLite(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		db.SetMaxOpenConns(runtime.NumCPU() * 2)
		if err := InitSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	case DriverPostgres:
		return ConnectPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
