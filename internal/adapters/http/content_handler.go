package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickoff/core/internal/application/services"
	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
)

// ContentHandler handles thematic content requests
type ContentHandler struct {
	content *services.ContentService
	logger  *logger.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(content *services.ContentService, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		content: content,
		logger:  logger,
	}
}

// DailyInfo returns today's thematic info
func (h *ContentHandler) DailyInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, DailyInfoResponse{Info: h.content.DailyInfo(entities.Today())})
}

// ListCategories returns the category keys usable for random picks
func (h *ContentHandler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, CategoriesResponse{Categories: h.content.AvailableRandomCategories()})
}

// RandomFromCategory returns a random item from the named category
func (h *ContentHandler) RandomFromCategory(c echo.Context) error {
	key := c.Param("key")

	info, ok := h.content.RandomFromCategory(key)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found or empty")
	}

	return c.JSON(http.StatusOK, CategoryItemResponse{Category: key, Info: info})
}
