package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickoff/core/internal/application/services"
	"github.com/kickoff/core/internal/infrastructure/logger"
)

// SettingsHandler handles user settings requests
type SettingsHandler struct {
	settings *services.SettingsService
	logger   *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *services.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

// GetSettings returns all current settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settings.All())
}

// UpdateSetting sets a single known setting key
func (h *SettingsHandler) UpdateSetting(c echo.Context) error {
	key := c.Param("key")

	var req UpdateSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.settings.Update(key, req.Value); err != nil {
		h.logger.Warnw("Setting update rejected", "key", key, "error", err)
		if errors.Is(err, services.ErrUnknownSetting) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrInvalidSettingValue) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save settings")
	}

	return c.JSON(http.StatusOK, h.settings.All())
}

// ResetSettings restores the default settings
func (h *SettingsHandler) ResetSettings(c echo.Context) error {
	if err := h.settings.Reset(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save settings")
	}

	return c.JSON(http.StatusOK, h.settings.All())
}
