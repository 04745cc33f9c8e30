package http

import "github.com/kickoff/core/internal/domain/entities"

// MessageResponse is a simple confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error payload shape
type ErrorResponse struct {
	Error string `json:"error"`
}

// EventListResponse wraps a list of events
type EventListResponse struct {
	Events []entities.EventRecord `json:"events"`
	Total  int                    `json:"total"`
}

// UpcomingEventsResponse carries the reminder window contents
type UpcomingEventsResponse struct {
	Events   []entities.EventRecord `json:"events"`
	Days     int                    `json:"days"`
	Reminder string                 `json:"reminder,omitempty"`
}

// DailyInfoResponse carries the thematic info for today
type DailyInfoResponse struct {
	Info string `json:"info"`
}

// CategoriesResponse lists the random-pick content categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// CategoryItemResponse carries one rendered content item
type CategoryItemResponse struct {
	Category string `json:"category"`
	Info     string `json:"info"`
}

// UpdateSettingRequest carries a new value for a single setting key
type UpdateSettingRequest struct {
	Value any `json:"value"`
}
