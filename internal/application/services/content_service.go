package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
	"github.com/kickoff/core/internal/ports"
)

// FallbackMessage is returned when no thematic content can be resolved. It
// is a plain constant, so catalog content that happens to equal it is
// indistinguishable from "nothing found" — the daily lookup deliberately
// treats such entries as missing and falls through to the next tier.
const FallbackMessage = "No special football info today, but every day is a good day for football!"

// ContentService resolves thematic content for a date with tiered fallback:
// exact date, then year-agnostic month-day, then a random pick from the
// remaining categories.
type ContentService struct {
	catalog entities.Catalog
	rng     *rand.Rand
	logger  *logger.Logger
}

// NewContentService creates a content service over the given catalog. A nil
// rng gets a time-seeded source; tests inject a fixed seed.
func NewContentService(catalog entities.Catalog, rng *rand.Rand, log *logger.Logger) *ContentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ContentService{
		catalog: catalog,
		rng:     rng,
		logger:  log.WithComponent("content_service"),
	}
}

var _ ports.ContentProvider = (*ContentService)(nil)

// DailyInfo returns the thematic info for the given day. An exact-date entry
// wins over a month-day entry; with neither present a random item from a
// random category is returned, or the fallback message when the catalog has
// no usable categories at all.
func (s *ContentService) DailyInfo(today time.Time) string {
	exactKey := today.Format(entities.DateLayout)
	if item, ok := s.catalog.Dates.ByDate[exactKey]; ok {
		if rendered := s.Render(item); rendered != FallbackMessage {
			return fmt.Sprintf("For today (%s):\n%s", today.Format("02.01.2006"), rendered)
		}
	}

	monthDayKey := today.Format("01-02")
	if item, ok := s.catalog.Dates.ByMonthDay[monthDayKey]; ok {
		if rendered := s.Render(item); rendered != FallbackMessage {
			return fmt.Sprintf("Info for %s:\n%s", today.Format("02.01."), rendered)
		}
	}

	categories := s.AvailableRandomCategories()
	if len(categories) == 0 {
		return FallbackMessage
	}

	categoryKey := categories[s.rng.Intn(len(categories))]
	items := s.catalog.Categories[categoryKey]
	item := items[s.rng.Intn(len(items))]

	return fmt.Sprintf("%s:\n%s", categoryTitle(categoryKey), s.Render(item))
}

// RandomFromCategory returns a random rendered item from the category, or
// false when the category is absent or empty.
func (s *ContentService) RandomFromCategory(categoryKey string) (string, bool) {
	items, ok := s.catalog.Categories[categoryKey]
	if !ok || len(items) == 0 {
		return "", false
	}
	return s.Render(items[s.rng.Intn(len(items))]), true
}

// AvailableRandomCategories lists the category keys usable for random picks,
// sorted for stable output. The reserved date index is never included.
func (s *ContentService) AvailableRandomCategories() []string {
	keys := make([]string, 0, len(s.catalog.Categories))
	for key, items := range s.catalog.Categories {
		if len(items) > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Render formats a content item for display. Plain items render verbatim;
// structured items render as a heading line (bare heading with a colon, or
// "Rule: ..." when only a rule name is set), a body line and the optional
// supplementary lines, joined by newlines. Anything that produces no parts
// renders as the fallback message.
func (s *ContentService) Render(item entities.ContentItem) string {
	switch item.Kind {
	case entities.ItemPlain:
		return item.Text
	case entities.ItemStructured:
		var parts []string
		if item.Heading != "" {
			parts = append(parts, item.Heading+":")
		} else if item.Rule != "" {
			parts = append(parts, "Rule: "+item.Rule)
		}

		if item.Body != "" {
			parts = append(parts, item.Body)
		} else if item.Description != "" {
			parts = append(parts, item.Description)
		}

		if item.WhenPenalized != "" {
			parts = append(parts, "When penalized: "+item.WhenPenalized)
		}
		if item.Example != "" {
			parts = append(parts, "Example: "+item.Example)
		}

		if len(parts) == 0 {
			return FallbackMessage
		}
		return strings.Join(parts, "\n")
	default:
		return FallbackMessage
	}
}

// categoryTitle turns a category key into a display title: underscores
// become spaces and the first letter is capitalized.
func categoryTitle(key string) string {
	title := strings.ReplaceAll(key, "_", " ")
	runes := []rune(title)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
