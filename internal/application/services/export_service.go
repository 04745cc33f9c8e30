package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/jung-kurt/gofpdf"

	"github.com/kickoff/core/internal/domain/entities"
	"github.com/kickoff/core/internal/infrastructure/logger"
)

// ExportService renders the event collection into downloadable formats. All
// exports list events in chronological order.
type ExportService struct {
	logger *logger.Logger
}

// NewExportService creates an export service.
func NewExportService(log *logger.Logger) *ExportService {
	return &ExportService{logger: log.WithComponent("export_service")}
}

func sortedCopy(events []entities.Event) []entities.Event {
	sorted := append([]entities.Event(nil), events...)
	entities.SortChronological(sorted)
	return sorted
}

// CSV renders the events as a CSV document with a header row. Tags are
// joined with a comma into a single column.
func (s *ExportService) CSV(events []entities.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Date", "Time", "Type", "Details", "Tags"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, event := range sortedCopy(events) {
		row := []string{
			event.ID,
			event.Title,
			event.DateText(),
			event.Time,
			event.Type,
			event.Details,
			strings.Join(event.Tags, ", "),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Infow("CSV export generated", "events", len(events))
	return buf.Bytes(), nil
}

// ICS renders the events as an iCalendar document, one VEVENT per event.
// Events without a time become all-day entries; timed events get an hour of
// duration.
func (s *ExportService) ICS(events []entities.Event) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Kickoff//Calendar//EN")

	now := time.Now()
	for _, event := range sortedCopy(events) {
		entry := cal.AddEvent(event.ID)
		entry.SetDtStampTime(now)
		entry.SetSummary(event.Title)

		description := event.Details
		if len(event.Tags) > 0 {
			if description != "" {
				description += "\n"
			}
			description += "Tags: " + strings.Join(event.Tags, ", ")
		}
		if description != "" {
			entry.SetDescription(description)
		}
		entry.SetProperty(ics.ComponentPropertyCategories, event.Type)

		if event.Time == "" {
			entry.SetAllDayStartAt(event.Date)
			entry.SetAllDayEndAt(event.Date.AddDate(0, 0, 1))
			continue
		}

		start, err := time.Parse(entities.DateLayout+" "+entities.TimeLayout, event.DateText()+" "+event.Time)
		if err != nil {
			// Cannot happen for a constructed Event; keep the entry all-day.
			entry.SetAllDayStartAt(event.Date)
			entry.SetAllDayEndAt(event.Date.AddDate(0, 0, 1))
			continue
		}
		entry.SetStartAt(start)
		entry.SetEndAt(start.Add(time.Hour))
	}

	s.logger.Infow("ICS export generated", "events", len(events))
	return []byte(cal.Serialize()), nil
}

// PDF renders the events as an A4 document: a title, one block per event
// with its detail lines, and a generation timestamp in the footer of every
// page.
func (s *ExportService) PDF(events []entities.Event) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	generated := time.Now().Format("02.01.2006 15:04:05")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, translate("Generated: "+generated), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Football events overview", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sorted := sortedCopy(events)
	if len(sorted) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, "No events to export.", "", 1, "L", false, 0, "")
	}

	for _, event := range sorted {
		pdf.SetFont("Helvetica", "B", 12)
		heading := fmt.Sprintf("%s - %s (%s)", event.Date.Format("02.01.2006"), event.Title, event.Type)
		pdf.MultiCell(0, 6, translate(heading), "", "L", false)

		pdf.SetFont("Helvetica", "", 9)
		leftMargin, _, _, _ := pdf.GetMargins()
		pdf.SetLeftMargin(leftMargin + 5)
		pdf.SetX(leftMargin + 5)
		if event.Time != "" {
			pdf.MultiCell(0, 5, translate("Time: "+event.Time), "", "L", false)
		}
		if event.Details != "" {
			pdf.MultiCell(0, 5, translate("Details: "+event.Details), "", "L", false)
		}
		if len(event.Tags) > 0 {
			pdf.MultiCell(0, 5, translate("Tags: "+strings.Join(event.Tags, ", ")), "", "L", false)
		}
		pdf.SetLeftMargin(leftMargin)
		pdf.SetX(leftMargin)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.logger.Infow("PDF export generated", "events", len(events))
	return buf.Bytes(), nil
}
