package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ridewatch/internal/model"
)

// FileStore keeps the filter mapping as a single JSON object on disk.
// It is the default backend; writes are whole-file, via rename.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the full mapping. A missing or unreadable file and corrupt JSON
// all yield an empty mapping; the system must stay operational with no
// filters configured.
func (s *FileStore) Load(_ context.Context) (model.Filters, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("filter file unreadable, treating as empty", "path", s.path, "error", err)
		}
		return model.Filters{}, nil
	}

	var filters model.Filters
	if err := json.Unmarshal(data, &filters); err != nil {
		slog.Warn("filter file corrupt, treating as empty", "path", s.path, "error", err)
		return model.Filters{}, nil
	}
	if filters == nil {
		filters = model.Filters{}
	}
	return filters, nil
}

// Save replaces the whole record. The temp-file rename keeps readers from
// ever observing a partial write.
func (s *FileStore) Save(_ context.Context, filters model.Filters) error {
	data, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "filters-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write filters: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace filter file: %w", err)
	}
	return nil
}
