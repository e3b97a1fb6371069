package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/compliance/mocks"
	"github.com/mmdatafocus/schedule3_backend/handlers"
	"github.com/mmdatafocus/schedule3_backend/middlewares"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/models/reports"
	"github.com/mmdatafocus/schedule3_backend/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const companyId = "7d0c5a3e-2f41-4b8e-9c6d-1a2b3c4d5e6f"

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fixedClock() time.Time { return testutil.AsOf }

func newRouter(loader compliance.Loader) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	handlers.RegisterRoutes(r, handlers.Deps{
		Engine:      compliance.NewEngine(loader, compliance.WithClock(fixedClock), compliance.WithLogger(quietLogger())),
		Diagnostics: compliance.NewDiagnostics(models.DBInspector{}, loader).WithClock(fixedClock),
	})
	return r
}

// seededRouter serves a compliant company from an in-memory database.
func seededRouter(t *testing.T) *gin.Engine {
	t.Helper()
	testutil.NewTestDB(t)
	testutil.SeedCompliantCompany(t, context.Background(), companyId)
	return newRouter(compliance.NewSnapshotStore())
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestComplianceReport(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/"+companyId+"/compliance", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decode[compliance.Report](t, w)
	assert.Equal(t, compliance.StatusCompliant, report.OverallStatus)
	assert.Equal(t, 100, report.ComplianceScore)
	assert.Equal(t, report.TotalChecks, report.PassedChecks)
	assert.True(t, testutil.AsOf.Truncate(24*time.Hour).Equal(report.AsOf))
	assert.NotEmpty(t, w.Header().Get(middlewares.CorrelationHeader))
}

func TestComplianceReportUnknownCompany(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/missing/compliance", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, "engine_error", body["kind"])
	assert.Equal(t, "company_not_found", body["code"])
	assert.Equal(t, "/api/companies/missing/diagnostics", body["diagnostics"])
	assert.NotEmpty(t, body["error"])
}

func TestComplianceReportDataUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockLoader(ctrl)
	m.EXPECT().LoadEntity(gomock.Any(), companyId).Return(testutil.CompliantEntity(companyId), nil).AnyTimes()
	m.EXPECT().LoadTrialBalance(gomock.Any(), companyId).Return(nil, errors.New("i/o timeout")).AnyTimes()
	m.EXPECT().LoadMajorHeads(gomock.Any()).Return(testutil.StandardHeadPointers(), nil).AnyTimes()
	m.EXPECT().LoadNoteSelections(gomock.Any(), companyId).Return(nil, nil).AnyTimes()
	m.EXPECT().LoadAging(gomock.Any(), companyId).Return(&models.AgingSummary{}, nil).AnyTimes()

	w := do(newRouter(m), http.MethodGet, "/api/companies/"+companyId+"/compliance", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, "engine_error", body["kind"])
	assert.Equal(t, "data_unavailable", body["code"])
	assert.Contains(t, body["error"], "i/o timeout")
}

func TestNoteStatus(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/"+companyId+"/compliance/notes/"+models.NoteTradeReceivables, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	status := decode[compliance.NoteStatus](t, w)
	assert.Equal(t, models.NoteTradeReceivables, status.NoteRef)
	assert.Equal(t, compliance.StatusCompliant, status.Status)
	assert.Positive(t, status.TotalChecks)

	w = do(r, http.MethodGet, "/api/companies/"+companyId+"/compliance/notes/Z.99", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decode[map[string]string](t, w)["kind"])
}

func TestComplianceExport(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/"+companyId+"/compliance/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reports.XlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "compliance-"+companyId+"-20250630.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, reports.WorkbookSheets, f.GetSheetList())

	status, err := f.GetCellValue(reports.SheetCompliance, "B4")
	require.NoError(t, err)
	assert.Equal(t, string(compliance.StatusCompliant), status)
}

func TestDiagnostics(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/"+companyId+"/diagnostics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	report := decode[compliance.DiagnosticReport](t, w)
	assert.True(t, report.DatabaseConnection)
	for _, table := range models.ExpectedTables {
		assert.True(t, report.TablesStatus[table].Exists, table)
	}
	for name, check := range report.BasicChecks {
		assert.Equal(t, compliance.CheckPass, check.Status, name)
	}
}

func TestStatements(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/"+companyId+"/statements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CompanyId string          `json:"company_id"`
		Formatted json.RawMessage `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, companyId, body.CompanyId)
	assert.Contains(t, string(body.Formatted), "17,60,000.00")

	w = do(r, http.MethodGet, "/api/companies/missing/statements", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrialBalanceResolvesHeadNames(t *testing.T) {
	r := seededRouter(t)

	w := do(r, http.MethodGet, "/api/companies/"+companyId+"/trial-balance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, len(testutil.CompliantTrialBalanceInput()))
	for _, row := range rows {
		if row["major_head_id"] != nil {
			assert.NotEmpty(t, row["major_head_name"], row["ledger_name"])
			assert.NotEqual(t, "Unclassified", row["major_head_name"])
		}
	}
}

func TestUpdateEntity(t *testing.T) {
	r := seededRouter(t)
	path := "/api/companies/" + companyId + "/entity"

	input := testutil.CompliantNewEntity()
	input.Name = "Acme Manufacturing Private Limited"
	w := do(r, http.MethodPut, path, input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, input.Name, decode[models.EntityConfig](t, w).Name)

	input.CIN = "12345"
	input.Units = "gallons"
	w = do(r, http.MethodPut, path, input)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Kind    string            `json:"kind"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body.Kind)
	assert.Contains(t, body.Details, "CIN")
	assert.Contains(t, body.Details, "Units")
}

func TestSaveAndNumberNotes(t *testing.T) {
	r := seededRouter(t)
	base := "/api/companies/" + companyId + "/notes"

	notes := []map[string]any{
		{"note_ref": models.NoteCorporateInfo, "user_selected": true},
		{"note_ref": models.NoteBasisOfPreparation, "user_selected": true},
		{"note_ref": models.NoteAccountingPolicies, "user_selected": true},
	}
	w := do(r, http.MethodPut, base, map[string]any{"notes": notes})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPost, base+"/auto-number", nil)
	require.Equal(t, http.StatusOK, w.Code)

	numbered := 0
	for _, n := range decode[[]models.NoteSelection](t, w) {
		if n.UserSelected {
			require.NotNil(t, n.AutoNumber, n.NoteRef)
			numbered++
			assert.Equal(t, numbered, *n.AutoNumber)
		} else {
			assert.Nil(t, n.AutoNumber, n.NoteRef)
		}
	}
	assert.Equal(t, len(notes), numbered)

	duplicate := []map[string]any{
		{"note_ref": models.NoteRevenue, "user_selected": true},
		{"note_ref": models.NoteRevenue, "user_selected": false},
	}
	w = do(r, http.MethodPut, base, map[string]any{"notes": duplicate})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/companies/missing/notes", map[string]any{"notes": notes})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
