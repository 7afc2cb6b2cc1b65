package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phonglive/live-manager/internal/models"
)

func TestNormalizeExpense_ItemizedRecord(t *testing.T) {
	e := models.Expense{
		Items: []models.ExpenseItem{
			{CostType: models.CostTypeSalary, Amount: 100000},
			{CostType: models.CostTypeKitchen, Amount: 50000},
			{CostType: models.CostTypeSalary, Amount: 20000},
		},
	}

	b := NormalizeExpense(e)

	assert.Equal(t, 120000.0, b.Buckets[models.CostTypeSalary])
	assert.Equal(t, 50000.0, b.Buckets[models.CostTypeKitchen])
	assert.Equal(t, 0.0, b.Buckets[models.CostTypeOffice])
	assert.Equal(t, 170000.0, b.Total)
}

func TestNormalizeExpense_LegacyRecord(t *testing.T) {
	e := models.Expense{
		SalaryCost:          20000,
		KitchenCost:         5000,
		CustomerServiceCost: 3000,
	}

	b := NormalizeExpense(e)

	assert.Equal(t, 20000.0, b.Buckets[models.CostTypeSalary])
	assert.Equal(t, 5000.0, b.Buckets[models.CostTypeKitchen])
	assert.Equal(t, 3000.0, b.Buckets[models.CostTypeCustomerService])
	assert.Equal(t, 0.0, b.Buckets[models.CostTypeWarehouse])
	assert.Equal(t, 28000.0, b.Total)
}

func TestNormalizeExpense_ItemsSupersedeLegacyFields(t *testing.T) {
	// A record edited across the schema migration can carry both
	// representations; the legacy scalars must be ignored entirely, never
	// double-counted.
	e := models.Expense{
		Items:      []models.ExpenseItem{{CostType: models.CostTypeSalary, Amount: 100000}},
		SalaryCost: 999999,
		OtherCost:  50000,
	}

	b := NormalizeExpense(e)

	assert.Equal(t, 100000.0, b.Buckets[models.CostTypeSalary])
	assert.Equal(t, 0.0, b.Buckets[models.CostTypeOther])
	assert.Equal(t, 100000.0, b.Total)
}

func TestNormalizeExpense_UnrecognizedCategoryFoldsIntoOther(t *testing.T) {
	tests := []struct {
		name     string
		costType string
	}{
		{name: "free-text label", costType: "MARKETING"},
		{name: "blank label", costType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.Expense{
				Items: []models.ExpenseItem{{CostType: tt.costType, Amount: 7000}},
			}

			b := NormalizeExpense(e)

			assert.Equal(t, 7000.0, b.Buckets[models.CostTypeOther])
			assert.Equal(t, 7000.0, b.Total)
		})
	}
}

func TestNormalizeExpense_EmptyRecordIsAllZero(t *testing.T) {
	b := NormalizeExpense(models.Expense{})

	assert.Equal(t, 0.0, b.Total)
	for _, costType := range models.CostTypes {
		assert.Equal(t, 0.0, b.Buckets[costType])
	}
}

func TestTotalQuantity(t *testing.T) {
	r := models.DailyReport{
		Products: []models.ProductItem{
			{ProductName: "Áo thun", Quantity: 12},
			{ProductName: "Quần jean", Quantity: 3},
			{ProductName: "Chưa đặt tên", Quantity: 0},
		},
	}

	assert.Equal(t, 15, TotalQuantity(r))
	assert.Equal(t, 0, TotalQuantity(models.DailyReport{}))
}
