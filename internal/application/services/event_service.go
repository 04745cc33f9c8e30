package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
	"github.com/kickoff/core/internal/ports"
)

// AllEventTypes is the type filter sentinel meaning "no type filter". It
// exists for callers that present a type picker with an explicit
// all-types choice.
const AllEventTypes = "All types"

// EventService owns the in-memory event collection, keyed by event ID, and
// persists it through the configured storage after every successful
// mutation. All operations are synchronous; the mutex only serializes
// concurrent HTTP handlers, the collection itself has no internal
// concurrency.
type EventService struct {
	mu      sync.Mutex
	events  map[string]entities.Event
	storage ports.EventStorage
	logger  *logger.Logger
}

// NewEventService creates an empty event service. Storage may be nil, in
// which case mutations are kept in memory only.
func NewEventService(storage ports.EventStorage, log *logger.Logger) *EventService {
	return &EventService{
		events:  make(map[string]entities.Event),
		storage: storage,
		logger:  log.WithComponent("event_service"),
	}
}

var _ ports.EventStore = (*EventService)(nil)

// Restore bulk-loads the persisted records from storage, replacing the
// current collection.
func (s *EventService) Restore() {
	if s.storage == nil {
		return
	}
	s.LoadRecords(s.storage.Load())
}

// Add validates and inserts a new event. On validation failure the error is
// reported and nil is returned; the collection is left untouched.
func (s *EventService) Add(req ports.CreateEventRequest) *entities.Event {
	event, err := entities.NewEvent(req.Title, req.Date, req.Time, req.Type, req.Details, req.Tags, "")
	if err != nil {
		s.logger.Warnw("Failed to add event", "error", err, "title", req.Title)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Practically unreachable with 128-bit random IDs, kept as a guard.
	if _, exists := s.events[event.ID]; exists {
		event.ID = uuid.NewString()
	}
	s.events[event.ID] = event
	s.persistLocked()

	s.logger.Infow("Event added", "event_id", event.ID, "title", event.Title, "date", event.DateText())
	result := event.Clone()
	return &result
}

// Update replaces the stored event under id with a freshly validated one
// built from req. It returns nil when the id is unknown or the new data is
// invalid; in both cases the stored event is left unchanged.
func (s *EventService) Update(id string, req ports.UpdateEventRequest) *entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		s.logger.Warnw("Cannot update event: not found", "event_id", id)
		return nil
	}

	replacement, err := entities.NewEvent(req.Title, req.Date, req.Time, req.Type, req.Details, req.Tags, id)
	if err != nil {
		s.logger.Warnw("Failed to update event", "error", err, "event_id", id)
		return nil
	}

	s.events[id] = replacement
	s.persistLocked()

	s.logger.Infow("Event updated", "event_id", id, "title", replacement.Title)
	result := replacement.Clone()
	return &result
}

// Remove deletes the event under id, reporting whether it existed.
func (s *EventService) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		s.logger.Warnw("Cannot remove event: not found", "event_id", id)
		return false
	}

	delete(s.events, id)
	s.persistLocked()

	s.logger.Infow("Event removed", "event_id", id)
	return true
}

// Get returns the event under id, or nil.
func (s *EventService) Get(id string) *entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil
	}
	result := event.Clone()
	return &result
}

// All returns every event, in no particular order.
func (s *EventService) All() []entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLocked()
}

func (s *EventService) allLocked() []entities.Event {
	events := make([]entities.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event.Clone())
	}
	return events
}

// ForDate returns the events whose date equals the given one.
func (s *EventService) ForDate(date time.Time) []entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forDateLocked(date)
}

func (s *EventService) forDateLocked(date time.Time) []entities.Event {
	key := date.Format(entities.DateLayout)
	events := make([]entities.Event, 0)
	for _, event := range s.events {
		if event.DateText() == key {
			events = append(events, event.Clone())
		}
	}
	return events
}

// ForDateText is ForDate for a textual YYYY-MM-DD value. An unparseable
// value is reported and yields an empty result.
func (s *EventService) ForDateText(text string) []entities.Event {
	date, err := entities.ParseDate(text)
	if err != nil {
		s.logger.Errorw("Invalid date for lookup", "date", text)
		return []entities.Event{}
	}
	return s.ForDate(date)
}

// Filtered returns the events matching every set filter field. Filters are
// applied in date, type, tag order; an unparseable date filter is ignored
// with a warning rather than excluding everything, and the AllEventTypes
// sentinel disables the type filter.
func (s *EventService) Filtered(filter ports.EventFilter) []entities.Event {
	s.mu.Lock()
	events := s.allLocked()
	s.mu.Unlock()

	if filter.Date != "" {
		if date, err := entities.ParseDate(filter.Date); err != nil {
			s.logger.Warnw("Ignoring invalid date filter", "date", filter.Date)
		} else {
			key := date.Format(entities.DateLayout)
			events = keepEvents(events, func(e entities.Event) bool { return e.DateText() == key })
		}
	}

	if filter.Type != "" && filter.Type != AllEventTypes {
		events = keepEvents(events, func(e entities.Event) bool { return e.Type == filter.Type })
	}

	if filter.Tag != "" {
		events = keepEvents(events, func(e entities.Event) bool { return e.HasTag(filter.Tag) })
	}

	return events
}

func keepEvents(events []entities.Event, keep func(entities.Event) bool) []entities.Event {
	kept := make([]entities.Event, 0, len(events))
	for _, event := range events {
		if keep(event) {
			kept = append(kept, event)
		}
	}
	return kept
}

// Upcoming returns the events falling on today through today+daysAhead
// inclusive, in chronological order.
func (s *EventService) Upcoming(today time.Time, daysAhead int) []entities.Event {
	if daysAhead < 0 {
		daysAhead = 0
	}

	s.mu.Lock()
	upcoming := make([]entities.Event, 0)
	for i := 0; i <= daysAhead; i++ {
		upcoming = append(upcoming, s.forDateLocked(today.AddDate(0, 0, i))...)
	}
	s.mu.Unlock()

	entities.SortChronological(upcoming)
	return upcoming
}

// LoadRecords replaces the collection with the events decoded from records.
// Records failing validation are skipped with a warning; the load itself
// never fails.
func (s *EventService) LoadRecords(records []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = make(map[string]entities.Event, len(records))
	for _, record := range records {
		event, err := entities.EventFromRecord(record)
		if err != nil {
			s.logger.Warnw("Skipping invalid event record", "error", err, "record", record)
			continue
		}
		s.events[event.ID] = event
	}

	s.logger.Infow("Events loaded", "count", len(s.events))
}

// ExportRecords returns every event in its persisted form, in no particular
// order.
func (s *EventService) ExportRecords() []entities.EventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

func (s *EventService) exportLocked() []entities.EventRecord {
	records := make([]entities.EventRecord, 0, len(s.events))
	for _, event := range s.events {
		records = append(records, event.Record())
	}
	return records
}

// persistLocked saves the collection after a successful mutation. A failed
// save is reported but never touches the in-memory state.
func (s *EventService) persistLocked() {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.exportLocked()); err != nil {
		s.logger.Errorw("Failed to persist events", "error", err)
	}
}

// ReminderText formats the upcoming-events reminder, one line per event. It
// returns an empty string when there is nothing to announce.
func ReminderText(today time.Time, events []entities.Event) string {
	if len(events) == 0 {
		return ""
	}

	text := "Upcoming events:"
	for _, event := range events {
		dayDiff := int(event.Date.Sub(today).Hours() / 24)
		var when string
		switch {
		case dayDiff <= 0:
			when = "Today"
		case dayDiff == 1:
			when = "Tomorrow"
		default:
			when = fmt.Sprintf("In %d days (%s)", dayDiff, event.Date.Format("02.01."))
		}

		at := event.Time
		if at == "" {
			at = "--:--"
		}

		text += fmt.Sprintf("\n- %s, %s: %s (%s)", when, at, event.Title, event.Type)
	}
	return text
}
