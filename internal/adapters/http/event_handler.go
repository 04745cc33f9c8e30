package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kickoff/core/internal/application/services"
	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
	"github.com/kickoff/core/internal/ports"
)

// EventHandler handles event CRUD and query requests
type EventHandler struct {
	events   *services.EventService
	settings *services.SettingsService
	logger   *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService, settings *services.SettingsService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		events:   events,
		settings: settings,
		logger:   logger,
	}
}

// ListEvents returns events matching the optional date, type and tag query
// filters.
func (h *EventHandler) ListEvents(c echo.Context) error {
	filter := ports.EventFilter{
		Date: c.QueryParam("date"),
		Type: c.QueryParam("type"),
		Tag:  c.QueryParam("tag"),
	}

	events := h.events.Filtered(filter)
	entities.SortChronological(events)

	return c.JSON(http.StatusOK, EventListResponse{Events: toRecords(events), Total: len(events)})
}

// CreateEvent handles event creation
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := h.events.Add(req)
	if event == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event data")
	}

	return c.JSON(http.StatusCreated, event.Record())
}

// GetEvent returns a single event by id
func (h *EventHandler) GetEvent(c echo.Context) error {
	event := h.events.Get(c.Param("id"))
	if event == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	return c.JSON(http.StatusOK, event.Record())
}

// UpdateEvent replaces an event with the submitted values
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id := c.Param("id")

	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if h.events.Get(id) == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	event := h.events.Update(id, req)
	if event == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event data")
	}

	return c.JSON(http.StatusOK, event.Record())
}

// DeleteEvent removes an event by id
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if !h.events.Remove(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event removed"})
}

// UpcomingEvents returns the events inside the reminder window, with the
// formatted reminder text. The window defaults to the reminder_days_ahead
// setting and can be overridden with the days query parameter.
func (h *EventHandler) UpcomingEvents(c echo.Context) error {
	days := h.settings.ReminderDays()
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a non-negative integer")
		}
		days = parsed
	}

	today := entities.Today()
	upcoming := h.events.Upcoming(today, days)

	return c.JSON(http.StatusOK, UpcomingEventsResponse{
		Events:   toRecords(upcoming),
		Days:     days,
		Reminder: services.ReminderText(today, upcoming),
	})
}

func toRecords(events []entities.Event) []entities.EventRecord {
	records := make([]entities.EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, event.Record())
	}
	return records
}
