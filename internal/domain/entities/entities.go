package entities

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Textual formats accepted for event fields. Parsing is strict: a value must
// reproduce itself exactly when formatted back.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// missingTimeSortKey orders events without a time after every timed event on
// the same day.
const missingTimeSortKey = "24:00"

// Validation errors
var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrMissingTitle      = errors.New("event title must not be empty")
	ErrMissingType       = errors.New("event type must not be empty")
	ErrMalformedRecord   = errors.New("malformed event record")
)

// Event represents a single calendar event. Instances are only built through
// NewEvent, so a held Event is always valid. Events are passed by value and
// never mutated; editing means constructing a replacement under the same ID
// and swapping it into the store.
type Event struct {
	ID      string
	Title   string
	Date    time.Time
	Time    string // "HH:MM", empty when no time is set
	Type    string
	Details string
	Tags    []string
}

// NewEvent validates the raw field values and constructs an Event. The id is
// kept when given and generated otherwise. Title, type and details are
// trimmed; tags are trimmed with empty entries dropped (duplicates are kept).
func NewEvent(title, dateText, timeText, eventType, details string, tags []string, id string) (Event, error) {
	date, err := ParseDate(dateText)
	if err != nil {
		return Event{}, ErrInvalidDateFormat
	}

	timeText = strings.TrimSpace(timeText)
	if timeText != "" {
		if !validTimeText(timeText) {
			return Event{}, ErrInvalidTimeFormat
		}
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, ErrMissingTitle
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return Event{}, ErrMissingType
	}

	if id == "" {
		id = uuid.NewString()
	}

	return Event{
		ID:      id,
		Title:   title,
		Date:    date,
		Time:    timeText,
		Type:    eventType,
		Details: strings.TrimSpace(details),
		Tags:    normalizeTags(tags),
	}, nil
}

// Today returns the current local calendar day as a date value comparable
// with event dates.
func Today() time.Time {
	year, month, day := time.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a strict YYYY-MM-DD value.
func ParseDate(text string) (time.Time, error) {
	date, err := time.Parse(DateLayout, text)
	if err != nil || date.Format(DateLayout) != text {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

func validTimeText(text string) bool {
	parsed, err := time.Parse(TimeLayout, text)
	return err == nil && parsed.Format(TimeLayout) == text
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}

// DateText returns the date in its YYYY-MM-DD textual form.
func (e Event) DateText() string {
	return e.Date.Format(DateLayout)
}

// HasTag reports whether the tag appears verbatim among the event's tags.
func (e Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no tag storage with the receiver.
func (e Event) Clone() Event {
	clone := e
	clone.Tags = append([]string(nil), e.Tags...)
	return clone
}

func (e Event) sortKey() string {
	if e.Time == "" {
		return missingTimeSortKey
	}
	return e.Time
}

// SortChronological orders events in place by date, then by time with
// untimed events last on their day.
func SortChronological(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].sortKey() < events[j].sortKey()
	})
}

// EventRecord is the persisted form of an Event, one element of the events
// JSON array on disk.
type EventRecord struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Time    string   `json:"time"`
	Type    string   `json:"type"`
	Details string   `json:"details"`
	Tags    []string `json:"tags"`
}

// Record converts the event to its persisted form.
func (e Event) Record() EventRecord {
	return EventRecord{
		ID:      e.ID,
		Title:   e.Title,
		Date:    e.DateText(),
		Time:    e.Time,
		Type:    e.Type,
		Details: e.Details,
		Tags:    append([]string(nil), e.Tags...),
	}
}

// EventFromRecord rebuilds an Event from a decoded record. The id, title,
// date, time and type keys are mandatory; details and tags default to empty.
// Field validation is delegated to NewEvent with the stored id passed through.
func EventFromRecord(data map[string]any) (Event, error) {
	required := make(map[string]string, 5)
	for _, key := range []string{"id", "title", "date", "time", "type"} {
		raw, ok := data[key]
		if !ok {
			return Event{}, ErrMalformedRecord
		}
		text, ok := raw.(string)
		if !ok {
			return Event{}, ErrMalformedRecord
		}
		required[key] = text
	}

	details, _ := data["details"].(string)
	var tags []string
	if rawTags, ok := data["tags"].([]any); ok {
		for _, rawTag := range rawTags {
			if tag, ok := rawTag.(string); ok {
				tags = append(tags, tag)
			}
		}
	}

	return NewEvent(required["title"], required["date"], required["time"], required["type"], details, tags, required["id"])
}
