package services

import (
	"errors"
	"testing"

	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
	"github.com/kickoff/core/internal/ports"
)

// stubStorage records saves and can be told to fail.
type stubStorage struct {
	records []map[string]any
	saved   [][]entities.EventRecord
	failSave bool
}

func (s *stubStorage) Load() []map[string]any { return s.records }

func (s *stubStorage) Save(records []entities.EventRecord) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.saved = append(s.saved, records)
	return nil
}

func newTestService(t *testing.T) *EventService {
	t.Helper()
	return NewEventService(&stubStorage{}, logger.NewNop())
}

func createReq(title, date, timeText, eventType string, tags ...string) ports.CreateEventRequest {
	return ports.CreateEventRequest{Title: title, Date: date, Time: timeText, Type: eventType, Tags: tags}
}

func updateReq(title, date, timeText, eventType string, tags ...string) ports.UpdateEventRequest {
	return ports.UpdateEventRequest{Title: title, Date: date, Time: timeText, Type: eventType, Tags: tags}
}

func TestAddAndGet(t *testing.T) {
	svc := newTestService(t)

	event := svc.Add(createReq("Derby", "2024-03-10", "17:00", "Match", "home"))
	if event == nil {
		t.Fatal("Add returned nil for valid input")
	}

	got := svc.Get(event.ID)
	if got == nil {
		t.Fatal("Get returned nil after Add")
	}
	if got.Title != "Derby" || got.Time != "17:00" {
		t.Errorf("stored event mismatch: %+v", got)
	}
}

func TestAddInvalidDoesNotMutate(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("Keep", "2024-01-01", "", "Match"))

	if event := svc.Add(createReq("", "2024-01-01", "", "Match")); event != nil {
		t.Fatal("Add accepted an event without a title")
	}
	if event := svc.Add(createReq("X", "not-a-date", "", "Match")); event != nil {
		t.Fatal("Add accepted an invalid date")
	}

	if got := len(svc.All()); got != 1 {
		t.Errorf("store size = %d, want 1", got)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService(t)

	if event := svc.Update("missing", updateReq("A", "2024-01-01", "", "Match")); event != nil {
		t.Fatal("Update created an event for an unknown id")
	}
	if got := len(svc.All()); got != 0 {
		t.Errorf("store size = %d, want 0", got)
	}
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	svc := newTestService(t)
	original := svc.Add(createReq("Before", "2024-01-01", "10:00", "Match", "old"))

	updated := svc.Update(original.ID, updateReq("After", "2024-02-02", "", "Training"))
	if updated == nil {
		t.Fatal("Update failed for valid input")
	}
	if updated.ID != original.ID {
		t.Errorf("ID changed on update: %q -> %q", original.ID, updated.ID)
	}

	got := svc.Get(original.ID)
	if got.Title != "After" || got.Type != "Training" || got.Time != "" {
		t.Errorf("update not whole-record: %+v", got)
	}
	if len(got.Tags) != 0 {
		t.Errorf("old tags survived the update: %v", got.Tags)
	}
}

func TestUpdateInvalidKeepsOriginal(t *testing.T) {
	svc := newTestService(t)
	original := svc.Add(createReq("Keep me", "2024-01-01", "10:00", "Match"))

	if event := svc.Update(original.ID, updateReq("", "2024-01-01", "", "Match")); event != nil {
		t.Fatal("Update accepted invalid data")
	}

	got := svc.Get(original.ID)
	if got == nil || got.Title != "Keep me" || got.Time != "10:00" {
		t.Errorf("original event modified: %+v", got)
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService(t)
	event := svc.Add(createReq("A", "2024-01-01", "", "Match"))

	if !svc.Remove(event.ID) {
		t.Fatal("Remove failed for existing event")
	}
	if svc.Remove(event.ID) {
		t.Fatal("Remove succeeded twice")
	}
	if svc.Get(event.ID) != nil {
		t.Fatal("event still present after Remove")
	}
}

func TestForDateText(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("A", "2024-01-01", "", "Match"))
	svc.Add(createReq("B", "2024-01-02", "", "Match"))

	events := svc.ForDateText("2024-01-01")
	if len(events) != 1 || events[0].Title != "A" {
		t.Errorf("ForDateText = %+v, want only A", events)
	}

	// An invalid date reports and returns empty, it does not panic or error.
	if events := svc.ForDateText("garbage"); len(events) != 0 {
		t.Errorf("expected empty result for invalid date, got %+v", events)
	}
}

func TestFiltered(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("MatchDay", "2024-01-01", "", "Match", "x"))
	svc.Add(createReq("Practice", "2024-01-01", "", "Training", "y"))
	svc.Add(createReq("AwayGame", "2024-01-02", "", "Match", "x", "away"))

	tests := []struct {
		name   string
		filter ports.EventFilter
		want   []string
	}{
		{"no filter", ports.EventFilter{}, []string{"AwayGame", "MatchDay", "Practice"}},
		{"date only", ports.EventFilter{Date: "2024-01-01"}, []string{"MatchDay", "Practice"}},
		{"type only", ports.EventFilter{Type: "Match"}, []string{"AwayGame", "MatchDay"}},
		{"all-types sentinel", ports.EventFilter{Type: AllEventTypes}, []string{"AwayGame", "MatchDay", "Practice"}},
		{"tag exact", ports.EventFilter{Tag: "x"}, []string{"AwayGame", "MatchDay"}},
		{"tag no substring", ports.EventFilter{Tag: "a"}, nil},
		{"conjunction", ports.EventFilter{Date: "2024-01-02", Type: "Match", Tag: "away"}, []string{"AwayGame"}},
		{"invalid date ignored", ports.EventFilter{Date: "bogus", Type: "Training"}, []string{"Practice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := svc.Filtered(tt.filter)

			titles := map[string]bool{}
			for _, event := range events {
				titles[event.Title] = true
			}
			if len(events) != len(tt.want) {
				t.Fatalf("got %d events, want %d (%v)", len(events), len(tt.want), titles)
			}
			for _, title := range tt.want {
				if !titles[title] {
					t.Errorf("missing %q in %v", title, titles)
				}
			}
		})
	}
}

func TestUpcoming(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("today untimed", "2024-01-01", "", "Match"))
	svc.Add(createReq("today timed", "2024-01-01", "08:00", "Training"))
	svc.Add(createReq("tomorrow", "2024-01-02", "10:00", "Match"))
	svc.Add(createReq("too far", "2024-01-05", "", "Match"))

	today, _ := entities.ParseDate("2024-01-01")
	upcoming := svc.Upcoming(today, 2)

	if len(upcoming) != 3 {
		t.Fatalf("got %d events, want 3", len(upcoming))
	}
	// Chronological order with untimed events last on their day.
	wantOrder := []string{"today timed", "today untimed", "tomorrow"}
	for i, title := range wantOrder {
		if upcoming[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, upcoming[i].Title, title)
		}
	}
}

func TestLoadRecordsSkipsInvalid(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("will be replaced", "2024-01-01", "", "Match"))

	svc.LoadRecords([]map[string]any{
		{"id": "ok", "title": "Valid", "date": "2024-01-01", "time": "", "type": "Match"},
		{"id": "bad", "title": "No date key", "time": "", "type": "Match"},
		{"id": "bad2", "title": "Bad date", "date": "nope", "time": "", "type": "Match"},
	})

	events := svc.All()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Title != "Valid" {
		t.Errorf("kept %q, want Valid", events[0].Title)
	}
}

func TestRestoreLoadsFromStorage(t *testing.T) {
	storage := &stubStorage{records: []map[string]any{
		{"id": "a", "title": "Persisted", "date": "2024-04-01", "time": "", "type": "Match"},
	}}
	svc := NewEventService(storage, logger.NewNop())
	svc.Restore()

	if got := svc.Get("a"); got == nil || got.Title != "Persisted" {
		t.Fatalf("Restore did not load persisted event: %+v", got)
	}
}

func TestMutationsPersist(t *testing.T) {
	storage := &stubStorage{}
	svc := NewEventService(storage, logger.NewNop())

	event := svc.Add(createReq("A", "2024-01-01", "", "Match"))
	svc.Update(event.ID, updateReq("B", "2024-01-01", "", "Match"))
	svc.Remove(event.ID)

	if got := len(storage.saved); got != 3 {
		t.Fatalf("storage saved %d times, want 3", got)
	}
	if last := storage.saved[len(storage.saved)-1]; len(last) != 0 {
		t.Errorf("final save has %d records, want 0", len(last))
	}
}

func TestFailedSaveKeepsMemoryState(t *testing.T) {
	storage := &stubStorage{failSave: true}
	svc := NewEventService(storage, logger.NewNop())

	event := svc.Add(createReq("Survives", "2024-01-01", "", "Match"))
	if event == nil {
		t.Fatal("Add failed because of storage")
	}
	if got := svc.Get(event.ID); got == nil {
		t.Fatal("in-memory state lost after failed save")
	}
}

func TestExportRecords(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("A", "2024-01-01", "12:00", "Match", "tag"))

	records := svc.ExportRecords()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Date != "2024-01-01" || records[0].Time != "12:00" {
		t.Errorf("record mismatch: %+v", records[0])
	}
}

func TestReminderText(t *testing.T) {
	today, _ := entities.ParseDate("2024-01-01")

	if text := ReminderText(today, nil); text != "" {
		t.Errorf("expected empty reminder, got %q", text)
	}

	todayEvent, _ := entities.NewEvent("Kickoff", "2024-01-01", "18:00", "Match", "", nil, "")
	tomorrowEvent, _ := entities.NewEvent("Recovery", "2024-01-02", "", "Training", "", nil, "")
	laterEvent, _ := entities.NewEvent("Final", "2024-01-04", "20:00", "Match", "", nil, "")

	text := ReminderText(today, []entities.Event{todayEvent, tomorrowEvent, laterEvent})
	want := "Upcoming events:\n" +
		"- Today, 18:00: Kickoff (Match)\n" +
		"- Tomorrow, --:--: Recovery (Training)\n" +
		"- In 3 days (04.01.), 20:00: Final (Match)"
	if text != want {
		t.Errorf("reminder = %q, want %q", text, want)
	}
}

func TestUpcomingNegativeWindowClamped(t *testing.T) {
	svc := newTestService(t)
	svc.Add(createReq("today", "2024-01-01", "", "Match"))

	today, _ := entities.ParseDate("2024-01-01")
	if got := len(svc.Upcoming(today, -5)); got != 1 {
		t.Errorf("got %d events, want 1 (today only)", got)
	}
}
