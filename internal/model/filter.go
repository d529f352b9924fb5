package model

// UserFilter holds one user's notification criteria. A zero MinPrice means no
// lower bound; a nil MaxDistance means the distance check is skipped entirely,
// so no geocoding happens for that user.
type UserFilter struct {
	MinPrice    float64  `json:"minPrice,omitempty"`
	MaxDistance *float64 `json:"maxDistance,omitempty"`
}

// Filters maps a platform-assigned user id to that user's criteria.
// It is the unit of persistence: read whole, written whole.
type Filters map[string]UserFilter
