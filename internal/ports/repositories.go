package ports

import (
	"github.com/kickoff/core/internal/domain/entities"
)

// EventStorage persists the flat events file. Load is tolerant: a missing,
// empty or structurally wrong file yields an empty record list; loading
// never fails.
type EventStorage interface {
	Load() []map[string]any
	Save(records []entities.EventRecord) error
}

// SettingsStorage persists the settings file as a flat key/value object. A
// missing file loads as an empty map.
type SettingsStorage interface {
	Load() (map[string]any, error)
	Save(settings map[string]any) error
}

// CatalogStorage loads the thematic content catalog. Implementations fall
// back to the injected default catalog when the file is missing or invalid.
type CatalogStorage interface {
	Load() entities.Catalog
}
