package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/internal/reporting"
	"github.com/phonglive/live-manager/pkg/utils"
)

// DailyReportStore is the persistence contract for daily shift reports.
type DailyReportStore interface {
	List() ([]models.DailyReport, error)
	Create(*models.DailyReport) error
	Update(int64, *models.DailyReport) error
	Delete(int64) error
}

// MetricStore supplies the read-only video and livestream snapshots.
type MetricStore interface {
	ListVideoMetrics() ([]models.VideoMetric, error)
	ListLiveReports() ([]models.LiveReport, error)
}

// StoreDirectory supplies the store reference collection.
type StoreDirectory interface {
	List() ([]models.Store, error)
}

// PersonnelDirectory supplies the personnel lookup collection.
type PersonnelDirectory interface {
	List() ([]models.Personnel, error)
}

// CrossMetricReport is the derived view behind the team dashboard: the
// filtered rows plus their summary cards.
type CrossMetricReport struct {
	Rows    []reporting.CrossMetricRow   `json:"rows"`
	Summary reporting.CrossMetricSummary `json:"summary"`
}

// ReportService implements daily report CRUD and the cross-metric dashboard.
type ReportService struct {
	reports   DailyReportStore
	metrics   MetricStore
	stores    StoreDirectory
	personnel PersonnelDirectory
	opts      reporting.CrossMetricOptions
	logger    *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	reports DailyReportStore,
	metrics MetricStore,
	stores StoreDirectory,
	personnel PersonnelDirectory,
	opts reporting.CrossMetricOptions,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reports:   reports,
		metrics:   metrics,
		stores:    stores,
		personnel: personnel,
		opts:      opts,
		logger:    logger,
	}
}

// CrossMetrics loads a fresh snapshot of videos, live reports and stores,
// aggregates them into cross-metric rows and applies the filter.
func (s *ReportService) CrossMetrics(f reporting.ReportFilter) (*CrossMetricReport, error) {
	videos, err := s.metrics.ListVideoMetrics()
	if err != nil {
		return nil, err
	}
	lives, err := s.metrics.ListLiveReports()
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List()
	if err != nil {
		return nil, err
	}

	rows := reporting.BuildCrossMetricReport(videos, lives, stores, s.opts)
	filtered := reporting.FilterCrossMetricRows(rows, f)

	return &CrossMetricReport{
		Rows:    filtered,
		Summary: reporting.SummarizeCrossMetrics(filtered),
	}, nil
}

// DailyReports returns the filtered daily report collection, newest first.
func (s *ReportService) DailyReports(f reporting.ReportFilter) ([]models.DailyReport, error) {
	reports, err := s.reports.List()
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List()
	if err != nil {
		return nil, err
	}
	return reporting.FilterDailyReports(reports, stores, f), nil
}

// CreateDailyReport validates and persists a new daily report.
func (s *ReportService) CreateDailyReport(d *models.DailyReport) error {
	if err := validateDailyReport(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.reports.Create(d); err != nil {
		return err
	}
	s.logger.Info("Daily report created",
		zap.Int64("id", d.ID),
		zap.String("date", d.Date),
		zap.String("store_id", d.StoreID))
	return nil
}

// UpdateDailyReport validates and persists changes to a daily report.
func (s *ReportService) UpdateDailyReport(id int64, d *models.DailyReport) error {
	if err := validateDailyReport(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.reports.Update(id, d); err != nil {
		return err
	}
	s.logger.Info("Daily report updated", zap.Int64("id", id))
	return nil
}

// DeleteDailyReport removes a daily report.
func (s *ReportService) DeleteDailyReport(id int64) error {
	if err := s.reports.Delete(id); err != nil {
		return err
	}
	s.logger.Info("Daily report deleted", zap.Int64("id", id))
	return nil
}

// ListVideoMetrics exposes the raw video snapshot.
func (s *ReportService) ListVideoMetrics() ([]models.VideoMetric, error) {
	return s.metrics.ListVideoMetrics()
}

// ListLiveReports exposes the raw livestream snapshot.
func (s *ReportService) ListLiveReports() ([]models.LiveReport, error) {
	return s.metrics.ListLiveReports()
}

// ListStores returns the selectable stores. The "all" sentinel never appears
// in selection lists.
func (s *ReportService) ListStores() ([]models.Store, error) {
	stores, err := s.stores.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.Store, 0, len(stores))
	for _, store := range stores {
		if store.ID == models.StoreAllID {
			continue
		}
		out = append(out, store)
	}
	return out, nil
}

// ListPersonnel returns the personnel lookup collection.
func (s *ReportService) ListPersonnel() ([]models.Personnel, error) {
	return s.personnel.List()
}

func validateDailyReport(d *models.DailyReport) error {
	if err := utils.ValidateDate(d.Date); err != nil {
		return err
	}
	if d.StoreID == "" {
		return fmt.Errorf("store_id is required")
	}
	if d.Session == "" {
		d.Session = models.SessionMorning
	}
	if err := utils.ValidateOneOf("session", d.Session, models.Sessions); err != nil {
		return err
	}
	if err := utils.ValidateAmount(d.Time); err != nil {
		return err
	}
	if err := utils.ValidateAmount(d.Salary); err != nil {
		return err
	}
	for _, p := range d.Products {
		if p.Quantity < 0 {
			return fmt.Errorf("product quantity must not be negative: %d", p.Quantity)
		}
	}

	d.Shift = utils.SanitizeString(d.Shift)
	d.Account = utils.SanitizeString(d.Account)
	d.PIC = utils.SanitizeString(d.PIC)
	d.Admin = utils.SanitizeString(d.Admin)
	return nil
}
