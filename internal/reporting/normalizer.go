// Package reporting implements the pure filter/normalize/aggregate pipeline
// behind the console's dashboards. Every function here is total over
// well-typed input: malformed or missing optional fields degrade to zero or
// the KHÁC bucket, never to an error.
package reporting

import "github.com/phonglive/live-manager/internal/models"

// CategoryBreakdown is one expense record's amounts resolved into the six
// fixed cost categories plus a grand total.
type CategoryBreakdown struct {
	Buckets map[string]float64
	Total   float64
}

// NormalizeExpense resolves an expense into per-category amounts.
//
// A record with a non-empty itemized list uses only that list; amounts under
// an unrecognized or blank cost type fold into KHÁC. Otherwise the six legacy
// scalar fields are read directly. The two representations are never mixed
// for a single record, so records written before and after the itemized
// migration aggregate identically.
func NormalizeExpense(e models.Expense) CategoryBreakdown {
	b := CategoryBreakdown{Buckets: emptyBuckets()}

	if e.Itemized() {
		for _, item := range e.Items {
			costType := item.CostType
			if _, ok := b.Buckets[costType]; !ok {
				costType = models.CostTypeOther
			}
			b.Buckets[costType] += item.Amount
			b.Total += item.Amount
		}
		return b
	}

	b.Buckets[models.CostTypeSalary] = e.SalaryCost
	b.Buckets[models.CostTypeOffice] = e.OfficeCost
	b.Buckets[models.CostTypeKitchen] = e.KitchenCost
	b.Buckets[models.CostTypeCustomerService] = e.CustomerServiceCost
	b.Buckets[models.CostTypeWarehouse] = e.WarehouseCost
	b.Buckets[models.CostTypeOther] = e.OtherCost
	for _, amount := range b.Buckets {
		b.Total += amount
	}
	return b
}

// TotalQuantity sums the product quantities of a daily report.
func TotalQuantity(r models.DailyReport) int {
	total := 0
	for _, p := range r.Products {
		total += p.Quantity
	}
	return total
}

func emptyBuckets() map[string]float64 {
	buckets := make(map[string]float64, len(models.CostTypes))
	for _, costType := range models.CostTypes {
		buckets[costType] = 0
	}
	return buckets
}
