package models

import "time"

// Cost type labels used across the console (Vietnamese, as entered by the ops team)
const (
	CostTypeSalary          = "LƯƠNG"
	CostTypeOffice          = "VĂN PHÒNG"
	CostTypeKitchen         = "BẾP"
	CostTypeCustomerService = "CSKH"
	CostTypeWarehouse       = "KHO"
	CostTypeOther           = "KHÁC"
)

// CostTypes lists the fixed cost categories in display order.
var CostTypes = []string{
	CostTypeSalary,
	CostTypeOffice,
	CostTypeKitchen,
	CostTypeCustomerService,
	CostTypeWarehouse,
	CostTypeOther,
}

// Accounting period type constants
const (
	PeriodTypeMonth = "MONTH"
	PeriodTypeYear  = "YEAR"
)

// ExpenseItem is one (cost type, amount) entry in an expense's itemized list.
type ExpenseItem struct {
	ID       int64   `json:"id,omitempty"`
	CostType string  `json:"cost_type"`
	Amount   float64 `json:"amount"`
}

// Expense represents one expense record entered through the console.
//
// Records created before the itemized list existed carry their amounts in the
// six legacy *Cost fields instead of Items. A record uses one representation
// or the other, never both: when Items is non-empty the legacy fields are
// ignored everywhere.
type Expense struct {
	ID                  int64         `json:"id"`
	Date                string        `json:"date"` // YYYY-MM-DD
	Accounting          string        `json:"accounting"`
	PeriodType          string        `json:"period_type"`  // MONTH or YEAR
	PeriodValue         string        `json:"period_value"` // "2024" or "2024-03"
	Items               []ExpenseItem `json:"items"`
	SalaryCost          float64       `json:"salary_cost"`
	OfficeCost          float64       `json:"office_cost"`
	KitchenCost         float64       `json:"kitchen_cost"`
	CustomerServiceCost float64       `json:"customer_service_cost"`
	WarehouseCost       float64       `json:"warehouse_cost"`
	OtherCost           float64       `json:"other_cost"`
	Payer               string        `json:"payer"`
	Receiver            string        `json:"receiver"`
	Description         string        `json:"description"`
	MaintenanceProcess  string        `json:"maintenance_process"`
	PaymentVoucher      string        `json:"payment_voucher"` // data URL or remote URL, opaque to this service
	IsUrgent            bool          `json:"is_urgent"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// Itemized reports whether the record uses the itemized representation.
func (e *Expense) Itemized() bool {
	return len(e.Items) > 0
}
