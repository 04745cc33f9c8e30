package ports

import (
	"time"

	"github.com/kickoff/core/internal/domain/entities"
)

// CreateEventRequest carries the raw field values for a new event. Field
// validation beyond basic shape happens in the entity constructor.
type CreateEventRequest struct {
	Title   string   `json:"title" validate:"required"`
	Date    string   `json:"date" validate:"required"`
	Time    string   `json:"time"`
	Type    string   `json:"type" validate:"required"`
	Details string   `json:"details"`
	Tags    []string `json:"tags"`
}

// UpdateEventRequest carries the full replacement values for an existing
// event. Updates are whole-record: the stored event is swapped, never patched
// field by field.
type UpdateEventRequest struct {
	Title   string   `json:"title" validate:"required"`
	Date    string   `json:"date" validate:"required"`
	Time    string   `json:"time"`
	Type    string   `json:"type" validate:"required"`
	Details string   `json:"details"`
	Tags    []string `json:"tags"`
}

// EventFilter selects events by exact date, exact type and exact tag
// membership. Zero values pass everything through.
type EventFilter struct {
	Date string
	Type string
	Tag  string
}

// EventStore is the entire contract between the presentation layer and the
// event collection; callers never reach into the underlying mapping.
type EventStore interface {
	Add(req CreateEventRequest) *entities.Event
	Update(id string, req UpdateEventRequest) *entities.Event
	Remove(id string) bool
	Get(id string) *entities.Event
	All() []entities.Event
	ForDate(date time.Time) []entities.Event
	ForDateText(text string) []entities.Event
	Filtered(filter EventFilter) []entities.Event
	Upcoming(today time.Time, daysAhead int) []entities.Event
	LoadRecords(records []map[string]any)
	ExportRecords() []entities.EventRecord
}

// ContentProvider resolves thematic content for a date with tiered fallback.
type ContentProvider interface {
	DailyInfo(today time.Time) string
	RandomFromCategory(categoryKey string) (string, bool)
	AvailableRandomCategories() []string
}

// SettingsManager exposes the persisted user settings with a known-key gate
// on updates.
type SettingsManager interface {
	Get(key string) (any, bool)
	All() map[string]any
	Update(key string, value any) error
	Reset() error
	Save() error
}
