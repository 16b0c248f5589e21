package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"zbxstats/internal/schema"
)

func ConnectSQLite(dbName string) (*sqlx.DB, error) {
	return sqlx.Open(DriverSQLite, fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbName))
}

// InitSchema creates the store tables when they do not exist yet
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema.DDL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
