package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickoff/core/internal/application/services"
	"github.com/kickoff/core/internal/infrastructure/logger"
)

// ExportHandler serves event exports as file downloads
type ExportHandler struct {
	events *services.EventService
	export *services.ExportService
	logger *logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(events *services.EventService, export *services.ExportService, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{
		events: events,
		export: export,
		logger: logger,
	}
}

// ExportCSV downloads all events as CSV
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	data, err := h.export.CSV(h.events.All())
	if err != nil {
		h.logger.Errorw("CSV export failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Export failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// ExportICS downloads all events as an iCalendar file
func (h *ExportHandler) ExportICS(c echo.Context) error {
	data, err := h.export.ICS(h.events.All())
	if err != nil {
		h.logger.Errorw("ICS export failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Export failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.ics"`)
	return c.Blob(http.StatusOK, "text/calendar", data)
}

// ExportPDF downloads all events as a PDF document
func (h *ExportHandler) ExportPDF(c echo.Context) error {
	data, err := h.export.PDF(h.events.All())
	if err != nil {
		h.logger.Errorw("PDF export failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Export failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
