package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/handler"
)

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	cost := 17.5
	return domain.ExportRow{
		PlanID:        uuid.New().String(),
		Destination:   "Paris, France",
		StartDate:     "2025-06-01",
		EndDate:       "2025-06-03",
		PeopleCount:   2,
		BudgetType:    "medium",
		Day:           1,
		Date:          "2025-06-01",
		Time:          "09:00",
		Title:         "Louvre",
		Location:      "Rue de Rivoli",
		Category:      "culture",
		EstimatedCost: &cost,
	}
}

func exportReturning(rows []domain.ExportRow) *mockExportService {
	return &mockExportService{
		export: func(_ context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
			if userID != alice {
				return nil, domain.ErrNotFound
			}
			return rows, nil
		},
	}
}

// ---- GET /export: JSON ----------------------------------------------------

func TestGetExport_DefaultJSON_EmptyResult(t *testing.T) {
	h := newRouter(handler.Services{Export: exportReturning([]domain.ExportRow{})})

	rec := do(t, h, http.MethodGet, "/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.Empty(t, rows)
}

func TestGetExport_JSON_OmitsEmptyFields(t *testing.T) {
	full := exportRowFixture()
	bare := domain.ExportRow{
		PlanID: full.PlanID, Destination: "Rome", StartDate: "2025-07-01", EndDate: "2025-07-02",
		PeopleCount: 1, BudgetType: "low",
	}
	h := newRouter(handler.Services{Export: exportReturning([]domain.ExportRow{full, bare})})

	rec := do(t, h, http.MethodGet, "/export?format=json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)

	assert.Equal(t, full.PlanID, rows[0].PlanID.String())
	assert.Equal(t, "2025-06-01", rows[0].StartDate.Format("2006-01-02"))
	require.NotNil(t, rows[0].Day)
	assert.Equal(t, 1, *rows[0].Day)
	require.NotNil(t, rows[0].Title)
	assert.Equal(t, "Louvre", *rows[0].Title)

	assert.Nil(t, rows[1].Day)
	assert.Nil(t, rows[1].Title)
	assert.Nil(t, rows[1].EstimatedCost)
}

// ---- GET /export: CSV -----------------------------------------------------

func TestGetExport_CSV(t *testing.T) {
	row := exportRowFixture()
	h := newRouter(handler.Services{Export: exportReturning([]domain.ExportRow{row})})

	rec := do(t, h, http.MethodGet, "/export?format=csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "plan_id", records[0][0])
	assert.Equal(t, []string{
		row.PlanID, "Paris, France", "2025-06-01", "2025-06-03", "2", "medium",
		"1", "2025-06-01", "09:00", "Louvre", "Rue de Rivoli", "culture", "17.5",
	}, records[1])
}

func TestGetExport_CSV_HeaderOnlyWhenEmpty(t *testing.T) {
	h := newRouter(handler.Services{Export: exportReturning([]domain.ExportRow{})})

	rec := do(t, h, http.MethodGet, "/export?format=csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// ---- errors ----------------------------------------------------------------

func TestGetExport_UnknownFormat(t *testing.T) {
	h := newRouter(handler.Services{Export: exportReturning(nil)})

	rec := do(t, h, http.MethodGet, "/export?format=xml", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetExport_ServiceError(t *testing.T) {
	svc := &mockExportService{
		export: func(context.Context, uuid.UUID) ([]domain.ExportRow, error) { return nil, errStore },
	}
	h := newRouter(handler.Services{Export: svc})

	rec := do(t, h, http.MethodGet, "/export", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetExport_RequiresSession(t *testing.T) {
	h := newRouter(handler.Services{Export: exportReturning(nil)})
	req := authedRequest(http.MethodGet, "/export", "")
	req.Header.Del("Authorization")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
