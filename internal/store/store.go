package store

import (
	"context"

	"ridewatch/internal/model"
)

// FilterStore persists the whole user-filter mapping. Load is called fresh at
// the start of each matching pass; Save overwrites the full record
// (last-write-wins, no per-field transactions).
type FilterStore interface {
	Load(ctx context.Context) (model.Filters, error)
	Save(ctx context.Context, filters model.Filters) error
}
