package database

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS user_filters (
    user_id TEXT PRIMARY KEY,
    min_price NUMERIC(10,2) DEFAULT 0,
    max_distance NUMERIC(10,2),
    updated_at TIMESTAMPTZ DEFAULT NOW()
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
