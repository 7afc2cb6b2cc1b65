package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/export"
	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/internal/reporting"
	"github.com/phonglive/live-manager/internal/repository"
	"github.com/phonglive/live-manager/internal/service"
)

type fakeExpenseStore struct {
	expenses []models.Expense
}

func (f *fakeExpenseStore) List() ([]models.Expense, error) { return f.expenses, nil }

func (f *fakeExpenseStore) Create(e *models.Expense) error {
	e.ID = int64(len(f.expenses) + 1)
	f.expenses = append(f.expenses, *e)
	return nil
}

func (f *fakeExpenseStore) Update(id int64, e *models.Expense) error {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			e.ID = id
			f.expenses[i] = *e
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeExpenseStore) Delete(id int64) error {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeReportStore struct {
	reports []models.DailyReport
}

func (f *fakeReportStore) List() ([]models.DailyReport, error) { return f.reports, nil }

func (f *fakeReportStore) Create(d *models.DailyReport) error {
	d.ID = int64(len(f.reports) + 1)
	f.reports = append(f.reports, *d)
	return nil
}

func (f *fakeReportStore) Update(id int64, d *models.DailyReport) error { return nil }
func (f *fakeReportStore) Delete(id int64) error { return nil }

type fakeMetricStore struct {
	videos []models.VideoMetric
	lives  []models.LiveReport
}

func (f *fakeMetricStore) ListVideoMetrics() ([]models.VideoMetric, error) { return f.videos, nil }
func (f *fakeMetricStore) ListLiveReports() ([]models.LiveReport, error) { return f.lives, nil }

type fakeStoreDirectory struct {
	stores []models.Store
}

func (f *fakeStoreDirectory) List() ([]models.Store, error) { return f.stores, nil }

type fakePersonnelDirectory struct{}

func (f *fakePersonnelDirectory) List() ([]models.Personnel, error) { return nil, nil }

func newTestServer(expenseStore *fakeExpenseStore, metricStore *fakeMetricStore, storeDir *fakeStoreDirectory) *Server {
	logger := zap.NewNop()
	expenses := service.NewExpenseService(expenseStore, logger)
	reports := service.NewReportService(
		&fakeReportStore{},
		metricStore,
		storeDir,
		&fakePersonnelDirectory{},
		reporting.CrossMetricOptions{},
		logger,
	)
	return NewServer(DefaultServerConfig(), expenses, reports, export.NewExcelExporter(logger), logger)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(&fakeExpenseStore{}, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestListExpensesWithFilter(t *testing.T) {
	store := &fakeExpenseStore{expenses: []models.Expense{
		{ID: 1, Date: "2024-03-05", PeriodType: models.PeriodTypeMonth, SalaryCost: 100},
		{ID: 2, Date: "2024-04-05", PeriodType: models.PeriodTypeMonth, SalaryCost: 200},
	}}
	srv := newTestServer(store, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/expenses?date_from=2024-04-01&date_to=2024-04-30", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	list, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestExpenseSummaryEndpoint(t *testing.T) {
	store := &fakeExpenseStore{expenses: []models.Expense{
		{ID: 1, Date: "2024-03-05", SalaryCost: 100000, KitchenCost: 50000},
	}}
	srv := newTestServer(store, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/expenses/summary", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	totals, ok := data["totals"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 150000.0, totals["total"])
}

func TestCreateExpense(t *testing.T) {
	store := &fakeExpenseStore{}
	srv := newTestServer(store, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/expenses", models.Expense{
		Date:        "2024-03-05",
		Description: "Chi phí bếp",
		Items: []models.ExpenseItem{
			{CostType: models.CostTypeKitchen, Amount: 50000},
		},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.expenses, 1)
	assert.Equal(t, models.PeriodTypeMonth, store.expenses[0].PeriodType)

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1.0, data["id"])
}

func TestCreateExpenseValidationError(t *testing.T) {
	store := &fakeExpenseStore{}
	srv := newTestServer(store, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/expenses", models.Expense{Date: "bad-date"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "date")
	assert.Empty(t, store.expenses)
}

func TestUpdateExpenseNotFound(t *testing.T) {
	srv := newTestServer(&fakeExpenseStore{}, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/expenses/99", models.Expense{Date: "2024-03-05"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "record not found", resp.Error)
}

func TestUpdateExpenseInvalidID(t *testing.T) {
	srv := newTestServer(&fakeExpenseStore{}, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/expenses/abc", models.Expense{Date: "2024-03-05"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrossMetricsEndpoint(t *testing.T) {
	metrics := &fakeMetricStore{
		videos: []models.VideoMetric{
			{ID: 1, UploadDate: "2024-03-05T08:00:00Z", ProductID: "P1", StoreID: "S1", Sales: 500, Orders: 4},
		},
		lives: []models.LiveReport{
			{ID: 1, Date: "2024-03-05", ChannelID: "S1", HostName: "Linh", GMV: 300, Orders: 3},
		},
	}
	stores := &fakeStoreDirectory{stores: []models.Store{{ID: "S1", Name: "Shop Hà Nội"}}}
	srv := newTestServer(&fakeExpenseStore{}, metrics, stores)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/reports/cross-metrics?stores=S1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	summary, ok := data["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 800.0, summary["total_gmv"])
}

func TestListStoresExcludesSentinel(t *testing.T) {
	stores := &fakeStoreDirectory{stores: []models.Store{
		{ID: models.StoreAllID, Name: "Tất cả"},
		{ID: "S1", Name: "Shop Hà Nội"},
	}}
	srv := newTestServer(&fakeExpenseStore{}, &fakeMetricStore{}, stores)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stores", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	list, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestExportExpensesDownload(t *testing.T) {
	store := &fakeExpenseStore{expenses: []models.Expense{
		{ID: 1, Date: "2024-03-05", SalaryCost: 100000},
	}}
	srv := newTestServer(store, &fakeMetricStore{}, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/exports/expenses", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expense-management-")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestExportCrossMetricsDownload(t *testing.T) {
	metrics := &fakeMetricStore{
		videos: []models.VideoMetric{
			{ID: 1, UploadDate: "2024-03-05T08:00:00Z", ProductID: "P1", StoreID: "S1", Sales: 500, Orders: 4},
		},
	}
	srv := newTestServer(&fakeExpenseStore{}, metrics, &fakeStoreDirectory{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/exports/cross-metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "team-cd-report-")
}
