package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridewatch/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "filters.json"))

	filters, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, filters)
	assert.NotNil(t, filters)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	filters, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, filters)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	s := NewFileStore(path)
	ctx := context.Background()

	maxDist := 10.5
	saved := model.Filters{
		"111": {MinPrice: 40},
		"222": {MinPrice: 25, MaxDistance: &maxDist},
		"333": {},
	}
	require.NoError(t, s.Save(ctx, saved))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, 40.0, loaded["111"].MinPrice)
	assert.Nil(t, loaded["111"].MaxDistance)
	require.NotNil(t, loaded["222"].MaxDistance)
	assert.Equal(t, 10.5, *loaded["222"].MaxDistance)
	assert.Equal(t, model.UserFilter{}, loaded["333"])
}

func TestSaveWritesSingleJSONObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(context.Background(), model.Filters{"42": {MinPrice: 15}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "42")
}

func TestSaveOverwritesWholeRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, model.Filters{"old": {MinPrice: 1}}))
	require.NoError(t, s.Save(ctx, model.Filters{"new": {MinPrice: 2}}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded, "old")
	assert.Contains(t, loaded, "new")
}
