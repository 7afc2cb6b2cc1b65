package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/internal/reporting"
)

func TestExpenseWorkbook(t *testing.T) {
	ex := NewExcelExporter(zap.NewNop())

	expenses := []models.Expense{
		{
			Date:       "2024-03-05",
			Accounting: "Kế toán A",
			PeriodType: models.PeriodTypeMonth,
			IsUrgent:   true,
			Items: []models.ExpenseItem{
				{CostType: models.CostTypeSalary, Amount: 100000},
				{CostType: models.CostTypeKitchen, Amount: 50000},
			},
			Payer:       "Phòng HC",
			Receiver:    "Bếp Việt",
			Description: "Chi phí bếp tháng 3",
		},
		{
			Date:       "2024-03-20",
			PeriodType: models.PeriodTypeYear,
			OfficeCost: 20000,
		},
	}

	f, err := ex.ExpenseWorkbook(expenses)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ngày (日期)", header)

	// Itemized record: category columns reflect the line items, never the
	// legacy scalars, and the total matches the breakdown.
	salary, _ := f.GetCellValue(sheet, "D2")
	assert.Equal(t, "100000", salary)
	kitchen, _ := f.GetCellValue(sheet, "F2")
	assert.Equal(t, "50000", kitchen)
	total, _ := f.GetCellValue(sheet, "K2")
	assert.Equal(t, "150000", total)
	urgent, _ := f.GetCellValue(sheet, "J2")
	assert.Equal(t, "Có", urgent)
	period, _ := f.GetCellValue(sheet, "C2")
	assert.Equal(t, "THEO THÁNG", period)

	// Legacy record on the second data row.
	office, _ := f.GetCellValue(sheet, "E3")
	assert.Equal(t, "20000", office)
	period3, _ := f.GetCellValue(sheet, "C3")
	assert.Equal(t, "THEO NĂM", period3)
	urgent3, _ := f.GetCellValue(sheet, "J3")
	assert.Equal(t, "Không", urgent3)
}

func TestCrossMetricWorkbook(t *testing.T) {
	ex := NewExcelExporter(zap.NewNop())

	rows := []reporting.CrossMetricRow{
		{
			Date:             "2024-03-05",
			ProductName:      "Áo thun",
			StoreName:        "Shop Hà Nội",
			TotalGMV:         800,
			VideoGMV:         500,
			VideoOrders:      4,
			LivestreamGMV:    300,
			LivestreamOrders: 3,
			NewKOCVideo:      1,
			NewKOCLivestream: 1,
		},
	}

	f, err := ex.CrossMetricWorkbook(rows)
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "D1")
	require.NoError(t, err)
	assert.Equal(t, "TỔNG GMV (GMV 总额)", header)

	first, _ := f.GetCellValue(sheet, "A1")
	assert.Equal(t, "Ngày tháng (日期)", first)
	last, _ := f.GetCellValue(sheet, "J1")
	assert.Equal(t, "SỐ LƯỢNG KOC HỢP TÁC LIVESTREAM (mới) (合作直播的 KOC 数量(新增))", last)

	product, _ := f.GetCellValue(sheet, "B2")
	assert.Equal(t, "Áo thun", product)
	totalGMV, _ := f.GetCellValue(sheet, "D2")
	assert.Equal(t, "800", totalGMV)
	liveOrders, _ := f.GetCellValue(sheet, "H2")
	assert.Equal(t, "3", liveOrders)
}

func TestExportFilenames(t *testing.T) {
	day := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "expense-management-2024-03-05.xlsx", ExpenseFilename(day))
	assert.Equal(t, "team-cd-report-2024-03-05.xlsx", CrossMetricFilename(day))
}
