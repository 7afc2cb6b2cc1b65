// Package service wires the record store to the reporting core. Each request
// loads a full snapshot of the affected collection and runs the pure
// filter/normalize/aggregate pipeline on it; mutations never touch derived
// state, clients re-list after writing.
package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/internal/reporting"
	"github.com/phonglive/live-manager/pkg/utils"
)

// ExpenseStore is the persistence contract the expense service needs.
type ExpenseStore interface {
	List() ([]models.Expense, error)
	Create(*models.Expense) error
	Update(int64, *models.Expense) error
	Delete(int64) error
}

// ExpenseSummary is the derived view behind the expense dashboard: category
// totals plus the monthly series, both computed over the filtered collection.
type ExpenseSummary struct {
	Totals  reporting.CategoryTotals `json:"totals"`
	Monthly []reporting.MonthBucket  `json:"monthly"`
}

// ExpenseService implements expense CRUD and the expense dashboard views.
type ExpenseService struct {
	store  ExpenseStore
	logger *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(store ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		store:  store,
		logger: logger,
	}
}

// List returns the filtered expense collection, newest first.
func (s *ExpenseService) List(f reporting.ExpenseFilter) ([]models.Expense, error) {
	expenses, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return reporting.FilterExpenses(expenses, f), nil
}

// Summary recomputes the category totals and monthly series for the filtered
// collection.
func (s *ExpenseService) Summary(f reporting.ExpenseFilter) (*ExpenseSummary, error) {
	filtered, err := s.List(f)
	if err != nil {
		return nil, err
	}
	return &ExpenseSummary{
		Totals:  reporting.ComputeCategoryTotals(filtered),
		Monthly: reporting.ComputeMonthlySeries(filtered),
	}, nil
}

// Create validates and persists a new expense.
func (s *ExpenseService) Create(e *models.Expense) error {
	if err := validateExpense(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.store.Create(e); err != nil {
		return err
	}
	s.logger.Info("Expense created", zap.Int64("id", e.ID), zap.String("date", e.Date))
	return nil
}

// Update validates and persists changes to an existing expense.
func (s *ExpenseService) Update(id int64, e *models.Expense) error {
	if err := validateExpense(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.store.Update(id, e); err != nil {
		return err
	}
	s.logger.Info("Expense updated", zap.Int64("id", id))
	return nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(id int64) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.logger.Info("Expense deleted", zap.Int64("id", id))
	return nil
}

// validateExpense rejects a record at the form boundary before any store
// call is issued.
func validateExpense(e *models.Expense) error {
	if err := utils.ValidateDate(e.Date); err != nil {
		return err
	}
	if e.PeriodType == "" {
		e.PeriodType = models.PeriodTypeMonth
	}
	if err := utils.ValidateOneOf("period_type", e.PeriodType, []string{models.PeriodTypeMonth, models.PeriodTypeYear}); err != nil {
		return err
	}
	for _, item := range e.Items {
		if err := utils.ValidateAmount(item.Amount); err != nil {
			return fmt.Errorf("invalid line item: %w", err)
		}
	}
	for _, amount := range []float64{
		e.SalaryCost, e.OfficeCost, e.KitchenCost,
		e.CustomerServiceCost, e.WarehouseCost, e.OtherCost,
	} {
		if err := utils.ValidateAmount(amount); err != nil {
			return err
		}
	}

	e.Accounting = utils.SanitizeString(e.Accounting)
	e.Payer = utils.SanitizeString(e.Payer)
	e.Receiver = utils.SanitizeString(e.Receiver)
	e.Description = utils.SanitizeString(e.Description)
	e.MaintenanceProcess = utils.SanitizeString(e.MaintenanceProcess)
	return nil
}
