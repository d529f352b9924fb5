package store

import (
	"context"
	"database/sql"
	"fmt"

	"ridewatch/internal/model"
)

// PostgresStore is the opt-in hardened backend for deployments where the
// flat-file record is not enough. Same whole-mapping contract as FileStore.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context) (model.Filters, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, min_price, max_distance FROM user_filters`)
	if err != nil {
		return nil, fmt.Errorf("query filters: %w", err)
	}
	defer rows.Close()

	filters := model.Filters{}
	for rows.Next() {
		var userID string
		var minPrice sql.NullFloat64
		var maxDistance sql.NullFloat64
		if err := rows.Scan(&userID, &minPrice, &maxDistance); err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}

		var f model.UserFilter
		if minPrice.Valid {
			f.MinPrice = minPrice.Float64
		}
		if maxDistance.Valid {
			d := maxDistance.Float64
			f.MaxDistance = &d
		}
		filters[userID] = f
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return filters, nil
}

func (s *PostgresStore) Save(ctx context.Context, filters model.Filters) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_filters`); err != nil {
		return fmt.Errorf("clear filters: %w", err)
	}

	for userID, f := range filters {
		var maxDistance sql.NullFloat64
		if f.MaxDistance != nil {
			maxDistance = sql.NullFloat64{Float64: *f.MaxDistance, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_filters (user_id, min_price, max_distance, updated_at) VALUES ($1, $2, $3, NOW())`,
			userID, f.MinPrice, maxDistance,
		)
		if err != nil {
			return fmt.Errorf("insert filter for %s: %w", userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
