package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phonglive/live-manager/internal/models"
)

// UnknownProductID is the placeholder product key for records that carry no
// product dimension. Live reports always aggregate under it.
const UnknownProductID = "unknown"

// UnknownProductName is the display name for the placeholder product.
const UnknownProductName = "Chưa xác định"

// CategoryTotals holds per-category expense sums over a filtered collection.
type CategoryTotals struct {
	SalaryCost          float64 `json:"salary_cost"`
	OfficeCost          float64 `json:"office_cost"`
	KitchenCost         float64 `json:"kitchen_cost"`
	CustomerServiceCost float64 `json:"customer_service_cost"`
	WarehouseCost       float64 `json:"warehouse_cost"`
	OtherCost           float64 `json:"other_cost"`
	Total               float64 `json:"total"`
}

// MonthBucket is one calendar month's category totals in the monthly series.
type MonthBucket struct {
	Month               string  `json:"month"` // display label, MM/YYYY
	SalaryCost          float64 `json:"salary_cost"`
	OfficeCost          float64 `json:"office_cost"`
	KitchenCost         float64 `json:"kitchen_cost"`
	CustomerServiceCost float64 `json:"customer_service_cost"`
	WarehouseCost       float64 `json:"warehouse_cost"`
	OtherCost           float64 `json:"other_cost"`
	Total               float64 `json:"total"`
}

// CrossMetricRow is one (date, product, store) cell of the video/livestream
// cross report.
type CrossMetricRow struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	StoreID          string  `json:"store_id"`
	StoreName        string  `json:"store_name"`
	TotalGMV         float64 `json:"total_gmv"`
	VideoGMV         float64 `json:"video_gmv"`
	VideoOrders      int     `json:"video_orders"`
	LivestreamGMV    float64 `json:"livestream_gmv"`
	LivestreamOrders int     `json:"livestream_orders"`
	NewKOCVideo      int     `json:"new_koc_video_count"`
	NewKOCLivestream int     `json:"new_koc_livestream_count"`
}

// CrossMetricSummary holds the dashboard totals over a set of rows.
type CrossMetricSummary struct {
	TotalGMV         float64 `json:"total_gmv"`
	VideoGMV         float64 `json:"video_gmv"`
	VideoOrders      int     `json:"video_orders"`
	LivestreamGMV    float64 `json:"livestream_gmv"`
	LivestreamOrders int     `json:"livestream_orders"`
	NewKOCVideo      int     `json:"new_koc_video_count"`
	NewKOCLivestream int     `json:"new_koc_livestream_count"`
}

// CrossMetricOptions tunes cross-report aggregation.
//
// DistinctKOC switches the "new KOC" columns from the historical 0/1
// presence flag per row to a count of distinct KOC identities contributing
// to the row.
type CrossMetricOptions struct {
	DistinctKOC bool
}

// ComputeCategoryTotals sums every record's normalized breakdown into
// per-category totals plus a grand total.
func ComputeCategoryTotals(list []models.Expense) CategoryTotals {
	var t CategoryTotals
	for _, e := range list {
		b := NormalizeExpense(e)
		t.SalaryCost += b.Buckets[models.CostTypeSalary]
		t.OfficeCost += b.Buckets[models.CostTypeOffice]
		t.KitchenCost += b.Buckets[models.CostTypeKitchen]
		t.CustomerServiceCost += b.Buckets[models.CostTypeCustomerService]
		t.WarehouseCost += b.Buckets[models.CostTypeWarehouse]
		t.OtherCost += b.Buckets[models.CostTypeOther]
		t.Total += b.Total
	}
	return t
}

// ComputeMonthlySeries groups records by calendar month and returns the
// buckets sorted ascending by (year, month). Ordering is numeric, never a
// string sort of the MM/YYYY label, so a series spanning a year boundary
// comes out in calendar order. Records whose date does not parse contribute
// to no bucket.
func ComputeMonthlySeries(list []models.Expense) []MonthBucket {
	type monthKey struct{ year, month int }
	buckets := make(map[monthKey]*MonthBucket)

	for _, e := range list {
		d, err := time.Parse(dayLayout, e.Date)
		if err != nil {
			continue
		}
		key := monthKey{year: d.Year(), month: int(d.Month())}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthBucket{Month: fmt.Sprintf("%02d/%04d", key.month, key.year)}
			buckets[key] = bucket
		}

		b := NormalizeExpense(e)
		bucket.SalaryCost += b.Buckets[models.CostTypeSalary]
		bucket.OfficeCost += b.Buckets[models.CostTypeOffice]
		bucket.KitchenCost += b.Buckets[models.CostTypeKitchen]
		bucket.CustomerServiceCost += b.Buckets[models.CostTypeCustomerService]
		bucket.WarehouseCost += b.Buckets[models.CostTypeWarehouse]
		bucket.OtherCost += b.Buckets[models.CostTypeOther]
		bucket.Total += b.Total
	}

	keys := make([]monthKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	series := make([]MonthBucket, 0, len(keys))
	for _, key := range keys {
		series = append(series, *buckets[key])
	}
	return series
}

// BuildCrossMetricReport folds video metrics and live reports into rows keyed
// by (date, product, store). Live reports carry no product dimension and
// always land under UnknownProductID, so a video row for a concrete product
// is never merged with a livestream row even when date and store match.
// Store display names are resolved at row creation; an unresolved id is shown
// as-is.
func BuildCrossMetricReport(videos []models.VideoMetric, lives []models.LiveReport, stores []models.Store, opts CrossMetricOptions) []CrossMetricRow {
	names := storeNameIndex(stores)
	rows := make(map[string]*CrossMetricRow)
	videoKOCs := make(map[string]map[string]struct{})
	liveKOCs := make(map[string]map[string]struct{})

	resolve := func(date, productID, productName, storeID string) *CrossMetricRow {
		key := fmt.Sprintf("%s_%s_%s", date, productID, storeID)
		row, ok := rows[key]
		if !ok {
			storeName := names[storeID]
			if storeName == "" {
				storeName = storeID
			}
			row = &CrossMetricRow{
				ID:          key,
				Date:        date,
				ProductID:   productID,
				ProductName: productName,
				StoreID:     storeID,
				StoreName:   storeName,
			}
			rows[key] = row
		}
		return row
	}

	for _, v := range videos {
		date := datePart(v.UploadDate)
		productID := v.ProductID
		productName := v.ProductID
		if productID == "" {
			productID = UnknownProductID
			productName = UnknownProductName
		}

		row := resolve(date, productID, productName, v.StoreID)
		row.VideoGMV += v.Sales
		row.VideoOrders += v.Orders
		if v.PersonInCharge != "" {
			if opts.DistinctKOC {
				addKOC(videoKOCs, row.ID, v.PersonInCharge)
				row.NewKOCVideo = len(videoKOCs[row.ID])
			} else {
				row.NewKOCVideo = 1
			}
		}
	}

	for _, l := range lives {
		row := resolve(l.Date, UnknownProductID, UnknownProductName, l.ChannelID)
		row.LivestreamGMV += l.GMV
		row.LivestreamOrders += l.Orders
		if l.HostName != "" {
			if opts.DistinctKOC {
				addKOC(liveKOCs, row.ID, l.HostName)
				row.NewKOCLivestream = len(liveKOCs[row.ID])
			} else {
				row.NewKOCLivestream = 1
			}
		}
	}

	out := make([]CrossMetricRow, 0, len(rows))
	for _, row := range rows {
		row.TotalGMV = row.VideoGMV + row.LivestreamGMV
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SummarizeCrossMetrics sums rows into the dashboard card totals.
func SummarizeCrossMetrics(rows []CrossMetricRow) CrossMetricSummary {
	var s CrossMetricSummary
	for _, row := range rows {
		s.TotalGMV += row.TotalGMV
		s.VideoGMV += row.VideoGMV
		s.VideoOrders += row.VideoOrders
		s.LivestreamGMV += row.LivestreamGMV
		s.LivestreamOrders += row.LivestreamOrders
		s.NewKOCVideo += row.NewKOCVideo
		s.NewKOCLivestream += row.NewKOCLivestream
	}
	return s
}

func addKOC(sets map[string]map[string]struct{}, key, name string) {
	if sets[key] == nil {
		sets[key] = make(map[string]struct{})
	}
	sets[key][name] = struct{}{}
}

// datePart truncates an RFC3339 timestamp to its date portion.
func datePart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}
