package entities

import "encoding/json"

// DateIndexCategory is the reserved catalog key holding the two-tier date
// index instead of a plain item list.
const DateIndexCategory = "historical_events"

// Sub-keys of the reserved date index category in the content file.
const (
	DateIndexExactKey    = "YYYY-MM-DD"
	DateIndexMonthDayKey = "MM-DD"
)

// ItemKind tags the closed set of content item shapes. The shape is decided
// once when the catalog is decoded, never re-inspected at render time.
type ItemKind int

const (
	ItemInvalid ItemKind = iota
	ItemPlain
	ItemStructured
)

// ContentItem is a single piece of thematic content: either plain text or a
// structured record with optional fields.
type ContentItem struct {
	Kind          ItemKind
	Text          string
	Heading       string
	Rule          string
	Body          string
	Description   string
	WhenPenalized string
	Example       string
}

// PlainItem builds a plain-text content item.
func PlainItem(text string) ContentItem {
	return ContentItem{Kind: ItemPlain, Text: text}
}

// UnmarshalJSON decodes a catalog item. Strings become plain items, objects
// become structured items and anything else is tagged invalid rather than
// failing the whole catalog load.
func (i *ContentItem) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*i = ContentItem{Kind: ItemPlain, Text: text}
		return nil
	}

	var structured struct {
		Heading       string `json:"heading"`
		Rule          string `json:"rule"`
		Text          string `json:"text"`
		Description   string `json:"description"`
		WhenPenalized string `json:"when_penalized"`
		Example       string `json:"example"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		*i = ContentItem{Kind: ItemInvalid}
		return nil
	}

	*i = ContentItem{
		Kind:          ItemStructured,
		Heading:       structured.Heading,
		Rule:          structured.Rule,
		Body:          structured.Text,
		Description:   structured.Description,
		WhenPenalized: structured.WhenPenalized,
		Example:       structured.Example,
	}
	return nil
}

// DateIndex maps date strings to content items, with an exact-date tier and a
// year-agnostic month-day tier.
type DateIndex struct {
	ByDate     map[string]ContentItem
	ByMonthDay map[string]ContentItem
}

// Catalog is the full thematic content store: named item categories plus the
// reserved date index.
type Catalog struct {
	Categories map[string][]ContentItem
	Dates      DateIndex
}

// DefaultCatalog returns a fresh copy of the built-in content used whenever
// the content file is missing or unreadable. Callers own the returned value.
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: map[string][]ContentItem{
			"football_tips": {
				PlainItem("Don't forget a proper warm-up before the match!"),
			},
			"fun_facts": {
				{Kind: ItemStructured, Heading: "Info", Body: "Football is the most popular sport in the world."},
			},
			"football_rules": {
				{Kind: ItemStructured, Rule: "Basic rule", Description: "The game is played with a ball."},
			},
		},
		Dates: DateIndex{
			ByDate: map[string]ContentItem{},
			ByMonthDay: map[string]ContentItem{
				"01-01": PlainItem("New year, new football challenges!"),
			},
		},
	}
}
