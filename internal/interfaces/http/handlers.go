package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/export"
	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/internal/reporting"
	"github.com/phonglive/live-manager/internal/repository"
	"github.com/phonglive/live-manager/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers contains all HTTP request handlers
type Handlers struct {
	expenses *service.ExpenseService
	reports  *service.ReportService
	exporter *export.ExcelExporter
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	expenses *service.ExpenseService,
	reports *service.ReportService,
	exporter *export.ExcelExporter,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		expenses: expenses,
		reports:  reports,
		exporter: exporter,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// ListExpenses handles GET /api/v1/expenses
func (h *Handlers) ListExpenses(c *gin.Context) {
	var f reporting.ExpenseFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	expenses, err := h.expenses.List(f)
	if err != nil {
		h.serviceError(c, "Failed to list expenses", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: expenses})
}

// ExpenseSummary handles GET /api/v1/expenses/summary
func (h *Handlers) ExpenseSummary(c *gin.Context) {
	var f reporting.ExpenseFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	summary, err := h.expenses.Summary(f)
	if err != nil {
		h.serviceError(c, "Failed to build expense summary", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: summary})
}

// CreateExpense handles POST /api/v1/expenses
func (h *Handlers) CreateExpense(c *gin.Context) {
	var e models.Expense
	if err := c.ShouldBindJSON(&e); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.expenses.Create(&e); err != nil {
		h.serviceError(c, "Failed to create expense", err)
		return
	}
	// Clients re-list after mutations; only the new id is returned.
	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{"id": e.ID}})
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *Handlers) UpdateExpense(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var e models.Expense
	if err := c.ShouldBindJSON(&e); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.expenses.Update(id, &e); err != nil {
		h.serviceError(c, "Failed to update expense", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *Handlers) DeleteExpense(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.expenses.Delete(id); err != nil {
		h.serviceError(c, "Failed to delete expense", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListDailyReports handles GET /api/v1/daily-reports
func (h *Handlers) ListDailyReports(c *gin.Context) {
	reports, err := h.reports.DailyReports(reportFilter(c))
	if err != nil {
		h.serviceError(c, "Failed to list daily reports", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: reports})
}

// CreateDailyReport handles POST /api/v1/daily-reports
func (h *Handlers) CreateDailyReport(c *gin.Context) {
	var d models.DailyReport
	if err := c.ShouldBindJSON(&d); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.reports.CreateDailyReport(&d); err != nil {
		h.serviceError(c, "Failed to create daily report", err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{"id": d.ID}})
}

// UpdateDailyReport handles PUT /api/v1/daily-reports/:id
func (h *Handlers) UpdateDailyReport(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var d models.DailyReport
	if err := c.ShouldBindJSON(&d); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.reports.UpdateDailyReport(id, &d); err != nil {
		h.serviceError(c, "Failed to update daily report", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// DeleteDailyReport handles DELETE /api/v1/daily-reports/:id
func (h *Handlers) DeleteDailyReport(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.reports.DeleteDailyReport(id); err != nil {
		h.serviceError(c, "Failed to delete daily report", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListVideoMetrics handles GET /api/v1/video-metrics
func (h *Handlers) ListVideoMetrics(c *gin.Context) {
	metrics, err := h.reports.ListVideoMetrics()
	if err != nil {
		h.serviceError(c, "Failed to list video metrics", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: metrics})
}

// ListLiveReports handles GET /api/v1/live-reports
func (h *Handlers) ListLiveReports(c *gin.Context) {
	reports, err := h.reports.ListLiveReports()
	if err != nil {
		h.serviceError(c, "Failed to list live reports", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: reports})
}

// ListStores handles GET /api/v1/stores
func (h *Handlers) ListStores(c *gin.Context) {
	stores, err := h.reports.ListStores()
	if err != nil {
		h.serviceError(c, "Failed to list stores", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: stores})
}

// ListPersonnel handles GET /api/v1/personnel
func (h *Handlers) ListPersonnel(c *gin.Context) {
	people, err := h.reports.ListPersonnel()
	if err != nil {
		h.serviceError(c, "Failed to list personnel", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: people})
}

// CrossMetrics handles GET /api/v1/reports/cross-metrics
func (h *Handlers) CrossMetrics(c *gin.Context) {
	report, err := h.reports.CrossMetrics(reportFilter(c))
	if err != nil {
		h.serviceError(c, "Failed to build cross-metric report", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// ExportExpenses handles GET /api/v1/exports/expenses
func (h *Handlers) ExportExpenses(c *gin.Context) {
	var f reporting.ExpenseFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	expenses, err := h.expenses.List(f)
	if err != nil {
		h.serviceError(c, "Failed to export expenses", err)
		return
	}

	workbook, err := h.exporter.ExpenseWorkbook(expenses)
	if err != nil {
		h.serviceError(c, "Failed to build expense workbook", err)
		return
	}
	h.sendWorkbook(c, workbook, export.ExpenseFilename(time.Now()))
}

// ExportCrossMetrics handles GET /api/v1/exports/cross-metrics
func (h *Handlers) ExportCrossMetrics(c *gin.Context) {
	report, err := h.reports.CrossMetrics(reportFilter(c))
	if err != nil {
		h.serviceError(c, "Failed to export cross-metric report", err)
		return
	}

	workbook, err := h.exporter.CrossMetricWorkbook(report.Rows)
	if err != nil {
		h.serviceError(c, "Failed to build cross-metric workbook", err)
		return
	}
	h.sendWorkbook(c, workbook, export.CrossMetricFilename(time.Now()))
}

func (h *Handlers) sendWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.serviceError(c, "Failed to serialize workbook", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// reportFilter reads the shared report query parameters. The stores and
// products facets arrive comma-separated.
func reportFilter(c *gin.Context) reporting.ReportFilter {
	return reporting.ReportFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		StoreIDs: splitFacet(c.Query("stores")),
		Products: splitFacet(c.Query("products")),
		Search:   c.Query("search"),
	}
}

func splitFacet(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func (h *Handlers) pathID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid record ID", zap.String("id", idStr), zap.Error(err))
		h.badRequest(c, "invalid record ID")
		return 0, false
	}
	return id, true
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// serviceError maps a service failure onto the envelope: validation failures
// are client errors, a missing record is 404 and anything else is a server
// fault.
func (h *Handlers) serviceError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))

	switch {
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: msg})
	}
}
