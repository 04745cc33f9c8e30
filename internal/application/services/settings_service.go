package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kickoff/core/internal/infrastructure/logger"
	"github.com/kickoff/core/internal/ports"
)

// Settings errors
var (
	ErrUnknownSetting      = errors.New("unknown setting")
	ErrInvalidSettingValue = errors.New("invalid setting value")
)

// ReminderDaysKey is the setting controlling how many days ahead the
// upcoming-events reminder looks.
const ReminderDaysKey = "reminder_days_ahead"

// DefaultSettings returns a fresh copy of the built-in defaults. Callers own
// the returned map.
func DefaultSettings() map[string]any {
	return map[string]any{
		"calendar_event_day_bg":          "lightblue",
		"calendar_selected_day_bg":       "yellow",
		"calendar_selected_event_day_bg": "orange",
		"calendar_day_fg":                "black",
		"main_window_bg":                 "#e0e0e0",
		ReminderDaysKey:                  2,
	}
}

// SettingsService manages the persisted user settings. Loaded values are
// merged over the defaults, unknown keys are preserved on load but rejected
// on update.
type SettingsService struct {
	mu       sync.Mutex
	settings map[string]any
	storage  ports.SettingsStorage
	validate *validator.Validate
	logger   *logger.Logger
}

// NewSettingsService creates a settings service and loads the persisted
// settings, falling back to defaults when the file is unreadable.
func NewSettingsService(storage ports.SettingsStorage, log *logger.Logger) *SettingsService {
	s := &SettingsService{
		storage:  storage,
		validate: validator.New(),
		logger:   log.WithComponent("settings_service"),
	}
	s.settings = s.load()
	return s
}

var _ ports.SettingsManager = (*SettingsService)(nil)

func (s *SettingsService) load() map[string]any {
	if s.storage == nil {
		return DefaultSettings()
	}

	loaded, err := s.storage.Load()
	if err != nil {
		s.logger.Warnw("Failed to load settings, using defaults", "error", err)
		return DefaultSettings()
	}
	return mergeSettings(DefaultSettings(), loaded)
}

// mergeSettings overlays loaded values over a copy of the defaults without
// mutating either input.
func mergeSettings(defaults, loaded map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(loaded))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range loaded {
		merged[key] = value
	}
	return merged
}

// Get returns the value for key, falling back to the default when the key is
// not present.
func (s *SettingsService) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.settings[key]; ok {
		return value, true
	}
	value, ok := DefaultSettings()[key]
	return value, ok
}

// All returns a copy of the current settings.
func (s *SettingsService) All() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make(map[string]any, len(s.settings))
	for key, value := range s.settings {
		all[key] = value
	}
	return all
}

// Update sets a known key to a validated value and persists the change.
// Unknown keys are rejected.
func (s *SettingsService) Update(key string, value any) error {
	if _, known := DefaultSettings()[key]; !known {
		s.logger.Warnw("Rejected update of unknown setting", "key", key)
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	checked, err := s.checkValue(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings[key] = checked
	s.mu.Unlock()

	return s.Save()
}

// checkValue validates a setting value against its key's expectations:
// reminder_days_ahead must be a non-negative integer, everything else a
// non-empty string.
func (s *SettingsService) checkValue(key string, value any) (any, error) {
	if key == ReminderDaysKey {
		days, ok := asInt(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidSettingValue, key)
		}
		if err := s.validate.Var(days, "min=0"); err != nil {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidSettingValue, key)
		}
		return days, nil
	}

	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidSettingValue, key)
	}
	if err := s.validate.Var(text, "required"); err != nil {
		return nil, fmt.Errorf("%w: %s must not be empty", ErrInvalidSettingValue, key)
	}
	return text, nil
}

// asInt coerces the JSON number forms a setting value may arrive in.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// ReminderDays returns the reminder window in days, never negative.
func (s *SettingsService) ReminderDays() int {
	value, _ := s.Get(ReminderDaysKey)
	if days, ok := asInt(value); ok && days >= 0 {
		return days
	}
	return 0
}

// Reset restores the defaults and persists them immediately.
func (s *SettingsService) Reset() error {
	s.mu.Lock()
	s.settings = DefaultSettings()
	s.mu.Unlock()

	return s.Save()
}

// Save persists the current settings.
func (s *SettingsService) Save() error {
	if s.storage == nil {
		return nil
	}

	if err := s.storage.Save(s.All()); err != nil {
		s.logger.Errorw("Failed to save settings", "error", err)
		return err
	}
	return nil
}
