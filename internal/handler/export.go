// export.go implements GET /export.
// Returns every activity of the caller's plans as a flat table.
// Supports ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"plan_id", "destination", "start_date", "end_date", "people_count", "budget_type",
	"day", "date", "time", "title", "location", "category", "estimated_cost",
}

// ExportRow is the JSON shape of one export row. Day and activity fields
// are omitted when the row has none.
type ExportRow struct {
	PlanID        openapi_types.UUID `json:"plan_id"`
	Destination   string             `json:"destination"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	PeopleCount   int                `json:"people_count"`
	BudgetType    string             `json:"budget_type"`
	Day           *int               `json:"day,omitempty"`
	Date          *string            `json:"date,omitempty"`
	Time          *string            `json:"time,omitempty"`
	Title         *string            `json:"title,omitempty"`
	Location      *string            `json:"location,omitempty"`
	Category      *string            `json:"category,omitempty"`
	EstimatedCost *float64           `json:"estimated_cost,omitempty"`
}

// GetExport implements GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format, err := queryString(r, "format")
	if err != nil || (format != nil && *format != "json" && *format != "csv") {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer.Write never returns an error.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-plans.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToExportRow maps a domain.ExportRow to its JSON shape.
// Empty day and activity fields become nil pointers.
func domainRowToExportRow(r domain.ExportRow) ExportRow {
	planID, _ := uuid.Parse(r.PlanID)
	row := ExportRow{
		PlanID:        planID,
		Destination:   r.Destination,
		StartDate:     mustParseDate(r.StartDate),
		EndDate:       mustParseDate(r.EndDate),
		PeopleCount:   r.PeopleCount,
		BudgetType:    r.BudgetType,
		Title:         optional(r.Title),
		Time:          optional(r.Time),
		Location:      optional(r.Location),
		Category:      optional(r.Category),
		Date:          optional(r.Date),
		EstimatedCost: r.EstimatedCost,
	}
	if r.Day > 0 {
		row.Day = &r.Day
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A day of 0 and a nil cost are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	day := ""
	if r.Day > 0 {
		day = strconv.Itoa(r.Day)
	}
	cost := ""
	if r.EstimatedCost != nil {
		cost = strconv.FormatFloat(*r.EstimatedCost, 'f', -1, 64)
	}
	return []string{
		r.PlanID,
		r.Destination,
		r.StartDate,
		r.EndDate,
		strconv.Itoa(r.PeopleCount),
		r.BudgetType,
		day,
		r.Date,
		r.Time,
		r.Title,
		r.Location,
		r.Category,
		cost,
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers pass service-formatted dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
