package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/pkg/database"
)

// ExpenseRepository handles expense database operations
type ExpenseRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *database.DB, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every expense with its line items, newest insert first.
func (r *ExpenseRepository) List() ([]models.Expense, error) {
	query := `
		SELECT id, date, accounting, period_type, period_value,
			salary_cost, office_cost, kitchen_cost, customer_service_cost,
			warehouse_cost, other_cost,
			payer, receiver, description, maintenance_process, payment_voucher,
			is_urgent, created_at, updated_at
		FROM expenses
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[int64]int)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(
			&e.ID, &e.Date, &e.Accounting, &e.PeriodType, &e.PeriodValue,
			&e.SalaryCost, &e.OfficeCost, &e.KitchenCost, &e.CustomerServiceCost,
			&e.WarehouseCost, &e.OtherCost,
			&e.Payer, &e.Receiver, &e.Description, &e.MaintenanceProcess, &e.PaymentVoucher,
			&e.IsUrgent, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := r.attachItems(expenses, index); err != nil {
		return nil, err
	}
	return expenses, nil
}

// attachItems loads every expense's line items in a single query.
func (r *ExpenseRepository) attachItems(expenses []models.Expense, index map[int64]int) error {
	if len(expenses) == 0 {
		return nil
	}

	rows, err := r.db.Query(`SELECT id, expense_id, cost_type, amount FROM expense_items ORDER BY id`)
	if err != nil {
		r.logger.Error("Failed to list expense items", zap.Error(err))
		return fmt.Errorf("failed to list expense items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ExpenseItem
		var expenseID int64
		if err := rows.Scan(&item.ID, &expenseID, &item.CostType, &item.Amount); err != nil {
			return fmt.Errorf("failed to scan expense item: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Items = append(expenses[i].Items, item)
		}
	}
	return rows.Err()
}

// Create inserts an expense and its line items in one transaction.
func (r *ExpenseRepository) Create(e *models.Expense) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO expenses (
				date, accounting, period_type, period_value,
				salary_cost, office_cost, kitchen_cost, customer_service_cost,
				warehouse_cost, other_cost,
				payer, receiver, description, maintenance_process, payment_voucher, is_urgent
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Date, e.Accounting, e.PeriodType, e.PeriodValue,
			e.SalaryCost, e.OfficeCost, e.KitchenCost, e.CustomerServiceCost,
			e.WarehouseCost, e.OtherCost,
			e.Payer, e.Receiver, e.Description, e.MaintenanceProcess, e.PaymentVoucher, e.IsUrgent,
		)
		if err != nil {
			r.logger.Error("Failed to create expense", zap.Error(err))
			return fmt.Errorf("failed to create expense: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		e.ID = id

		return insertExpenseItems(tx, id, e.Items)
	})
}

// Update rewrites an expense row and replaces its line items.
func (r *ExpenseRepository) Update(id int64, e *models.Expense) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE expenses SET
				date = ?, accounting = ?, period_type = ?, period_value = ?,
				salary_cost = ?, office_cost = ?, kitchen_cost = ?, customer_service_cost = ?,
				warehouse_cost = ?, other_cost = ?,
				payer = ?, receiver = ?, description = ?, maintenance_process = ?,
				payment_voucher = ?, is_urgent = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			e.Date, e.Accounting, e.PeriodType, e.PeriodValue,
			e.SalaryCost, e.OfficeCost, e.KitchenCost, e.CustomerServiceCost,
			e.WarehouseCost, e.OtherCost,
			e.Payer, e.Receiver, e.Description, e.MaintenanceProcess,
			e.PaymentVoucher, e.IsUrgent, id,
		)
		if err != nil {
			r.logger.Error("Failed to update expense", zap.Int64("id", id), zap.Error(err))
			return fmt.Errorf("failed to update expense: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(`DELETE FROM expense_items WHERE expense_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear expense items: %w", err)
		}

		e.ID = id
		return insertExpenseItems(tx, id, e.Items)
	})
}

// Delete removes an expense; its line items cascade.
func (r *ExpenseRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete expense", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete expense: %w", err)
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

func insertExpenseItems(tx *sql.Tx, expenseID int64, items []models.ExpenseItem) error {
	for _, item := range items {
		if _, err := tx.Exec(
			`INSERT INTO expense_items (expense_id, cost_type, amount) VALUES (?, ?, ?)`,
			expenseID, item.CostType, item.Amount,
		); err != nil {
			return fmt.Errorf("failed to insert expense item: %w", err)
		}
	}
	return nil
}
