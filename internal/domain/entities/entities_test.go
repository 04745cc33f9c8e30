package entities

import (
	"errors"
	"reflect"
	"testing"
)

func mustEvent(t *testing.T, title, date, timeText, eventType string) Event {
	t.Helper()
	event, err := NewEvent(title, date, timeText, eventType, "", nil, "")
	if err != nil {
		t.Fatalf("NewEvent(%q, %q, %q, %q) failed: %v", title, date, timeText, eventType, err)
	}
	return event
}

func TestNewEventValidation(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		date      string
		time      string
		eventType string
		wantErr   error
	}{
		{"valid minimal", "Match vs Rivals", "2024-01-01", "", "Match", nil},
		{"valid with time", "Training", "2024-06-15", "18:30", "Training", nil},
		{"missing title", "", "2024-01-01", "", "Match", ErrMissingTitle},
		{"whitespace title", "   ", "2024-01-01", "", "Match", ErrMissingTitle},
		{"missing type", "T", "2024-01-01", "", "", ErrMissingType},
		{"whitespace type", "T", "2024-01-01", "", "  ", ErrMissingType},
		{"invalid date", "T", "2024-13-40", "", "Match", ErrInvalidDateFormat},
		{"wrong date shape", "T", "01.02.2024", "", "Match", ErrInvalidDateFormat},
		{"unpadded date", "T", "2024-1-1", "", "Match", ErrInvalidDateFormat},
		{"invalid time", "T", "2024-01-01", "25:99", "Match", ErrInvalidTimeFormat},
		{"unpadded time", "T", "2024-01-01", "9:30", "Match", ErrInvalidTimeFormat},
		{"whitespace time ok", "T", "2024-01-01", "   ", "Match", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEvent(tt.title, tt.date, tt.time, tt.eventType, "", nil, "")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewEventTitleCheckedBeforeType(t *testing.T) {
	// With both title and type missing, the title error must fire first.
	_, err := NewEvent("", "2024-01-01", "", "", "", nil, "")
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected %v, got %v", ErrMissingTitle, err)
	}
}

func TestNewEventNormalization(t *testing.T) {
	event, err := NewEvent("  Derby  ", "2024-03-10", " 17:00 ", " Match ", "  bring shin guards  ", []string{"  ", "a", "a", " b "}, "")
	if err != nil {
		t.Fatalf("NewEvent failed: %v", err)
	}

	if event.Title != "Derby" {
		t.Errorf("title not trimmed: %q", event.Title)
	}
	if event.Type != "Match" {
		t.Errorf("type not trimmed: %q", event.Type)
	}
	if event.Time != "17:00" {
		t.Errorf("time not trimmed: %q", event.Time)
	}
	if event.Details != "bring shin guards" {
		t.Errorf("details not trimmed: %q", event.Details)
	}
	// Empties dropped, duplicates kept, whitespace trimmed.
	if want := []string{"a", "a", "b"}; !reflect.DeepEqual(event.Tags, want) {
		t.Errorf("tags = %v, want %v", event.Tags, want)
	}
}

func TestNewEventAssignsUniqueIDs(t *testing.T) {
	first := mustEvent(t, "A", "2024-01-01", "", "Match")
	second := mustEvent(t, "B", "2024-01-01", "", "Match")

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected generated IDs")
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct IDs")
	}
}

func TestNewEventKeepsGivenID(t *testing.T) {
	event, err := NewEvent("A", "2024-01-01", "", "Match", "", nil, "fixed-id")
	if err != nil {
		t.Fatalf("NewEvent failed: %v", err)
	}
	if event.ID != "fixed-id" {
		t.Errorf("ID = %q, want fixed-id", event.ID)
	}
}

func recordAsMap(record EventRecord) map[string]any {
	tags := make([]any, len(record.Tags))
	for i, tag := range record.Tags {
		tags[i] = tag
	}
	return map[string]any{
		"id":      record.ID,
		"title":   record.Title,
		"date":    record.Date,
		"time":    record.Time,
		"type":    record.Type,
		"details": record.Details,
		"tags":    tags,
	}
}

func TestEventRecordRoundTrip(t *testing.T) {
	original, err := NewEvent("Cup final", "2024-05-25", "20:45", "Match", "bring the trophy", []string{"cup", "final"}, "")
	if err != nil {
		t.Fatalf("NewEvent failed: %v", err)
	}

	restored, err := EventFromRecord(recordAsMap(original.Record()))
	if err != nil {
		t.Fatalf("EventFromRecord failed: %v", err)
	}

	if restored.ID != original.ID {
		t.Errorf("ID changed: %q -> %q", original.ID, restored.ID)
	}
	if restored.Title != original.Title || restored.Type != original.Type ||
		restored.Time != original.Time || restored.Details != original.Details {
		t.Errorf("fields changed: %+v -> %+v", original, restored)
	}
	if !restored.Date.Equal(original.Date) {
		t.Errorf("date changed: %v -> %v", original.Date, restored.Date)
	}
	if !reflect.DeepEqual(restored.Tags, original.Tags) {
		t.Errorf("tags changed: %v -> %v", original.Tags, restored.Tags)
	}
}

func TestEventFromRecordMissingKeys(t *testing.T) {
	base := recordAsMap(mustEvent(t, "A", "2024-01-01", "", "Match").Record())

	for _, key := range []string{"id", "title", "date", "time", "type"} {
		t.Run(key, func(t *testing.T) {
			record := make(map[string]any, len(base))
			for k, v := range base {
				record[k] = v
			}
			delete(record, key)

			if _, err := EventFromRecord(record); !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("expected %v without %q, got %v", ErrMalformedRecord, key, err)
			}
		})
	}
}

func TestEventFromRecordOptionalFields(t *testing.T) {
	event, err := EventFromRecord(map[string]any{
		"id":    "x",
		"title": "A",
		"date":  "2024-01-01",
		"time":  "",
		"type":  "Match",
	})
	if err != nil {
		t.Fatalf("EventFromRecord failed: %v", err)
	}
	if event.Details != "" {
		t.Errorf("details = %q, want empty", event.Details)
	}
	if len(event.Tags) != 0 {
		t.Errorf("tags = %v, want empty", event.Tags)
	}
}

func TestSortChronological(t *testing.T) {
	timed := mustEvent(t, "timed", "2024-01-02", "09:00", "Match")
	untimed := mustEvent(t, "untimed", "2024-01-02", "", "Match")
	earlier := mustEvent(t, "earlier", "2024-01-01", "23:00", "Match")
	late := mustEvent(t, "late", "2024-01-02", "22:00", "Match")

	events := []Event{untimed, late, timed, earlier}
	SortChronological(events)

	var got []string
	for _, event := range events {
		got = append(got, event.Title)
	}
	// Untimed events sort after every timed event on the same day.
	want := []string{"earlier", "timed", "late", "untimed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestParseDateStrict(t *testing.T) {
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Error("expected error for impossible date")
	}
	date, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("leap day rejected: %v", err)
	}
	if got := date.Format(DateLayout); got != "2024-02-29" {
		t.Errorf("parsed %q", got)
	}
}

func TestHasTagExactMembership(t *testing.T) {
	event, err := NewEvent("A", "2024-01-01", "", "Match", "", []string{"xy", "z"}, "")
	if err != nil {
		t.Fatalf("NewEvent failed: %v", err)
	}

	if !event.HasTag("xy") {
		t.Error("expected exact tag to match")
	}
	// Substrings are not membership.
	if event.HasTag("x") {
		t.Error("substring must not match")
	}
}

func TestCloneIsolatesTags(t *testing.T) {
	event := mustEvent(t, "A", "2024-01-01", "", "Match")
	event.Tags = []string{"one"}

	clone := event.Clone()
	clone.Tags[0] = "changed"

	if event.Tags[0] != "one" {
		t.Error("clone shares tag storage with original")
	}
}

func TestTodayIsMidnight(t *testing.T) {
	today := Today()
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("Today() = %v, want midnight", today)
	}
	if _, err := ParseDate(today.Format(DateLayout)); err != nil {
		t.Errorf("Today() not comparable with parsed dates: %v", err)
	}
}
