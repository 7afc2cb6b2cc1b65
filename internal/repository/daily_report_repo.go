package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/pkg/database"
)

// DailyReportRepository handles daily shift report database operations
type DailyReportRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewDailyReportRepository creates a new daily report repository
func NewDailyReportRepository(db *database.DB, logger *zap.Logger) *DailyReportRepository {
	return &DailyReportRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every daily report with its product lines.
func (r *DailyReportRepository) List() ([]models.DailyReport, error) {
	query := `
		SELECT id, date, store_id, shift, session, time, salary,
			account, pic, admin, data_screenshot, created_at, updated_at
		FROM daily_reports
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list daily reports", zap.Error(err))
		return nil, fmt.Errorf("failed to list daily reports: %w", err)
	}
	defer rows.Close()

	var reports []models.DailyReport
	index := make(map[int64]int)
	for rows.Next() {
		var d models.DailyReport
		if err := rows.Scan(
			&d.ID, &d.Date, &d.StoreID, &d.Shift, &d.Session, &d.Time, &d.Salary,
			&d.Account, &d.PIC, &d.Admin, &d.DataScreenshot, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily report: %w", err)
		}
		index[d.ID] = len(reports)
		reports = append(reports, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily reports: %w", err)
	}

	if err := r.attachProducts(reports, index); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *DailyReportRepository) attachProducts(reports []models.DailyReport, index map[int64]int) error {
	if len(reports) == 0 {
		return nil
	}

	rows, err := r.db.Query(`SELECT id, report_id, product_name, quantity FROM report_products ORDER BY id`)
	if err != nil {
		r.logger.Error("Failed to list report products", zap.Error(err))
		return fmt.Errorf("failed to list report products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ProductItem
		var reportID int64
		if err := rows.Scan(&p.ID, &reportID, &p.ProductName, &p.Quantity); err != nil {
			return fmt.Errorf("failed to scan report product: %w", err)
		}
		if i, ok := index[reportID]; ok {
			reports[i].Products = append(reports[i].Products, p)
		}
	}
	return rows.Err()
}

// Create inserts a daily report and its product lines in one transaction.
func (r *DailyReportRepository) Create(d *models.DailyReport) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO daily_reports (
				date, store_id, shift, session, time, salary,
				account, pic, admin, data_screenshot
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.Date, d.StoreID, d.Shift, d.Session, d.Time, d.Salary,
			d.Account, d.PIC, d.Admin, d.DataScreenshot,
		)
		if err != nil {
			r.logger.Error("Failed to create daily report", zap.Error(err))
			return fmt.Errorf("failed to create daily report: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		d.ID = id

		return insertReportProducts(tx, id, d.Products)
	})
}

// Update rewrites a daily report and replaces its product lines.
func (r *DailyReportRepository) Update(id int64, d *models.DailyReport) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE daily_reports SET
				date = ?, store_id = ?, shift = ?, session = ?, time = ?, salary = ?,
				account = ?, pic = ?, admin = ?, data_screenshot = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			d.Date, d.StoreID, d.Shift, d.Session, d.Time, d.Salary,
			d.Account, d.PIC, d.Admin, d.DataScreenshot, id,
		)
		if err != nil {
			r.logger.Error("Failed to update daily report", zap.Int64("id", id), zap.Error(err))
			return fmt.Errorf("failed to update daily report: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(`DELETE FROM report_products WHERE report_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear report products: %w", err)
		}

		d.ID = id
		return insertReportProducts(tx, id, d.Products)
	})
}

// Delete removes a daily report; its product lines cascade.
func (r *DailyReportRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM daily_reports WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete daily report", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete daily report: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func insertReportProducts(tx *sql.Tx, reportID int64, products []models.ProductItem) error {
	for _, p := range products {
		if _, err := tx.Exec(
			`INSERT INTO report_products (report_id, product_name, quantity) VALUES (?, ?, ?)`,
			reportID, p.ProductName, p.Quantity,
		); err != nil {
			return fmt.Errorf("failed to insert report product: %w", err)
		}
	}
	return nil
}
