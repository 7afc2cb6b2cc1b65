package repository

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/pkg/database"
)

// MetricRepository reads the synced video and livestream performance
// snapshots. These collections are written by the platform sync job, not by
// this service, so only list operations exist.
type MetricRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(db *database.DB, logger *zap.Logger) *MetricRepository {
	return &MetricRepository{
		db:     db,
		logger: logger,
	}
}

// ListVideoMetrics returns every video performance record.
func (r *MetricRepository) ListVideoMetrics() ([]models.VideoMetric, error) {
	rows, err := r.db.Query(`
		SELECT id, upload_date, product_id, store_id, person_in_charge, sales, orders
		FROM video_metrics
		ORDER BY upload_date DESC
	`)
	if err != nil {
		r.logger.Error("Failed to list video metrics", zap.Error(err))
		return nil, fmt.Errorf("failed to list video metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.VideoMetric
	for rows.Next() {
		var m models.VideoMetric
		if err := rows.Scan(&m.ID, &m.UploadDate, &m.ProductID, &m.StoreID, &m.PersonInCharge, &m.Sales, &m.Orders); err != nil {
			return nil, fmt.Errorf("failed to scan video metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// ListLiveReports returns every livestream performance record.
func (r *MetricRepository) ListLiveReports() ([]models.LiveReport, error) {
	rows, err := r.db.Query(`
		SELECT id, date, channel_id, host_name, gmv, orders
		FROM live_reports
		ORDER BY date DESC
	`)
	if err != nil {
		r.logger.Error("Failed to list live reports", zap.Error(err))
		return nil, fmt.Errorf("failed to list live reports: %w", err)
	}
	defer rows.Close()

	var reports []models.LiveReport
	for rows.Next() {
		var l models.LiveReport
		if err := rows.Scan(&l.ID, &l.Date, &l.ChannelID, &l.HostName, &l.GMV, &l.Orders); err != nil {
			return nil, fmt.Errorf("failed to scan live report: %w", err)
		}
		reports = append(reports, l)
	}
	return reports, rows.Err()
}
