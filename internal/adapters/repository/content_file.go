package repository

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
)

// ContentFileStore loads the thematic content catalog from a JSON file,
// falling back to an injected default catalog when the file is missing or
// unusable.
type ContentFileStore struct {
	path     string
	fallback func() entities.Catalog
	logger   *logger.Logger
}

// NewContentFileStore creates a catalog store for the given path. The
// fallback function supplies a fresh default catalog on demand so instances
// never share mutable default state.
func NewContentFileStore(path string, fallback func() entities.Catalog, log *logger.Logger) *ContentFileStore {
	return &ContentFileStore{path: path, fallback: fallback, logger: log.WithComponent("content_store")}
}

// Load reads and decodes the catalog. Any failure (missing file, bad JSON,
// non-object top level) yields the fallback catalog.
func (s *ContentFileStore) Load() entities.Catalog {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Infow("Content file not found, using built-in catalog", "path", s.path)
		} else {
			s.logger.Warnw("Failed to read content file, using built-in catalog", "path", s.path, "error", err)
		}
		return s.fallback()
	}

	catalog, err := DecodeCatalog(content)
	if err != nil {
		s.logger.Warnw("Content file is not a valid catalog, using built-in catalog", "path", s.path, "error", err)
		return s.fallback()
	}

	s.logger.Infow("Thematic content loaded", "path", s.path, "categories", len(catalog.Categories))
	return catalog
}

// DecodeCatalog decodes the raw content file. The top level must be a JSON
// object; the reserved date-index category gets its two tiers decoded and
// every other key is kept only when it holds a list of items.
func DecodeCatalog(data []byte) (entities.Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return entities.Catalog{}, err
	}

	catalog := entities.Catalog{
		Categories: make(map[string][]entities.ContentItem),
		Dates: entities.DateIndex{
			ByDate:     map[string]entities.ContentItem{},
			ByMonthDay: map[string]entities.ContentItem{},
		},
	}

	for key, value := range raw {
		if key == entities.DateIndexCategory {
			var index struct {
				ByDate     map[string]entities.ContentItem `json:"YYYY-MM-DD"`
				ByMonthDay map[string]entities.ContentItem `json:"MM-DD"`
			}
			if err := json.Unmarshal(value, &index); err != nil {
				continue
			}
			if index.ByDate != nil {
				catalog.Dates.ByDate = index.ByDate
			}
			if index.ByMonthDay != nil {
				catalog.Dates.ByMonthDay = index.ByMonthDay
			}
			continue
		}

		var items []entities.ContentItem
		if err := json.Unmarshal(value, &items); err != nil {
			// Non-list categories carry nothing usable.
			continue
		}
		catalog.Categories[key] = items
	}

	return catalog, nil
}
