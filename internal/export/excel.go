// Package export renders dashboard collections into Excel workbooks with the
// bilingual Vietnamese/Chinese column headers the operations team shares with
// the accounting side.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/internal/reporting"
)

var expenseHeaders = []string{
	"Ngày (日期)",
	"Hạch toán (会计)",
	"Kỳ hạch toán (会计期间)",
	"CHI PHÍ LƯƠNG (工资成本)",
	"CHI PHÍ VĂN PHÒNG (办公室成本)",
	"CHI PHÍ BẾP (厨房成本)",
	"CHI PHÍ CSKH (客服成本)",
	"CHI PHÍ KHO (仓库成本)",
	"KHÁC (其他)",
	"DUYỆT GẤP (紧急审批)",
	"TỔNG CHI PHÍ (总成本)",
	"Người chi (付款人)",
	"Người nhận (收款人)",
	"Mô tả (描述)",
}

var crossMetricHeaders = []string{
	"Ngày tháng (日期)",
	"Sản phẩm (产品)",
	"Cửa hàng (店铺)",
	"TỔNG GMV (GMV 总额)",
	"GVM VIDEO (视频 GMV)",
	"SỐ LƯỢNG ĐƠN (订单数量(视频))",
	"GMV LIVESTREAM (直播 GMV)",
	"SỐ LƯỢNG ĐƠN (订单数量(直播))",
	"SỐ LƯỢNG KOC HỢP TÁC VIDEO (mới) (合作视频的 KOC 数量(新增))",
	"SỐ LƯỢNG KOC HỢP TÁC LIVESTREAM (mới) (合作直播的 KOC 数量(新增))",
}

// ExcelExporter builds downloadable workbooks from the filtered collections.
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// ExpenseFilename names the expense download for a given day.
func ExpenseFilename(now time.Time) string {
	return fmt.Sprintf("expense-management-%s.xlsx", now.Format("2006-01-02"))
}

// CrossMetricFilename names the team report download for a given day.
func CrossMetricFilename(now time.Time) string {
	return fmt.Sprintf("team-cd-report-%s.xlsx", now.Format("2006-01-02"))
}

// ExpenseWorkbook renders one row per expense record. Category columns come
// from the normalized breakdown, so itemized and legacy records export the
// same way they total on the dashboard.
func (ex *ExcelExporter) ExpenseWorkbook(expenses []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := ex.writeHeaders(f, sheet, expenseHeaders); err != nil {
		return nil, err
	}

	for i, e := range expenses {
		b := reporting.NormalizeExpense(e)
		urgent := "Không"
		if e.IsUrgent {
			urgent = "Có"
		}
		row := []interface{}{
			e.Date,
			e.Accounting,
			periodLabel(e.PeriodType),
			b.Buckets[models.CostTypeSalary],
			b.Buckets[models.CostTypeOffice],
			b.Buckets[models.CostTypeKitchen],
			b.Buckets[models.CostTypeCustomerService],
			b.Buckets[models.CostTypeWarehouse],
			b.Buckets[models.CostTypeOther],
			urgent,
			b.Total,
			e.Payer,
			e.Receiver,
			e.Description,
		}
		if err := ex.writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	ex.logger.Info("Expense workbook built", zap.Int("rows", len(expenses)))
	return f, nil
}

// CrossMetricWorkbook renders one row per cross-metric cell.
func (ex *ExcelExporter) CrossMetricWorkbook(rows []reporting.CrossMetricRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := ex.writeHeaders(f, sheet, crossMetricHeaders); err != nil {
		return nil, err
	}

	for i, r := range rows {
		row := []interface{}{
			r.Date,
			r.ProductName,
			r.StoreName,
			r.TotalGMV,
			r.VideoGMV,
			r.VideoOrders,
			r.LivestreamGMV,
			r.LivestreamOrders,
			r.NewKOCVideo,
			r.NewKOCLivestream,
		}
		if err := ex.writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	ex.logger.Info("Cross-metric workbook built", zap.Int("rows", len(rows)))
	return f, nil
}

func (ex *ExcelExporter) writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}
	return nil
}

func (ex *ExcelExporter) writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}
	return nil
}

func periodLabel(periodType string) string {
	if periodType == models.PeriodTypeYear {
		return "THEO NĂM"
	}
	return "THEO THÁNG"
}
