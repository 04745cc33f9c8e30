package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
)

// EventFileStore persists the event collection as a JSON array in a single
// flat file.
type EventFileStore struct {
	path   string
	logger *logger.Logger
}

// NewEventFileStore creates a file store for the given path.
func NewEventFileStore(path string, log *logger.Logger) *EventFileStore {
	return &EventFileStore{path: path, logger: log.WithComponent("event_store")}
}

// Load reads the persisted event records. A missing, empty, malformed or
// non-array file is treated as "no data" and yields an empty list; loading
// never fails.
func (s *EventFileStore) Load() []map[string]any {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Infow("Events file not found, starting empty", "path", s.path)
		} else {
			s.logger.Warnw("Failed to read events file, starting empty", "path", s.path, "error", err)
		}
		return nil
	}

	if len(content) == 0 {
		s.logger.Infow("Events file is empty", "path", s.path)
		return nil
	}

	var records []map[string]any
	if err := json.Unmarshal(content, &records); err != nil {
		s.logger.Warnw("Events file is not a valid JSON array, starting empty", "path", s.path, "error", err)
		return nil
	}

	return records
}

// Save writes all records to the events file. The write is all-or-nothing:
// data goes to a temporary file first and replaces the target atomically, so
// a failed save never leaves a partially written file behind.
func (s *EventFileStore) Save(records []entities.EventRecord) error {
	if records == nil {
		records = []entities.EventRecord{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes data to path via a temporary file in the same
// directory, creating the directory if needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
