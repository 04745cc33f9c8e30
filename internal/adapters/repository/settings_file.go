package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kickoff/core/internal/infrastructure/logger"
)

// SettingsFileStore persists user settings as a flat JSON object.
type SettingsFileStore struct {
	path   string
	logger *logger.Logger
}

// NewSettingsFileStore creates a settings store for the given path.
func NewSettingsFileStore(path string, log *logger.Logger) *SettingsFileStore {
	return &SettingsFileStore{path: path, logger: log.WithComponent("settings_store")}
}

// Load reads the persisted settings. A missing file yields an empty map; a
// corrupt file yields an error so the caller can fall back to defaults.
func (s *SettingsFileStore) Load() (map[string]any, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Infow("Settings file not found, using defaults", "path", s.path)
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings map[string]any
	if err := json.Unmarshal(content, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return settings, nil
}

// Save writes the settings object, all-or-nothing.
func (s *SettingsFileStore) Save(settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return writeFileAtomic(s.path, data)
}
