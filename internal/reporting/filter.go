package reporting

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/phonglive/live-manager/internal/models"
)

const dayLayout = "2006-01-02"

// ExpenseFilter narrows an expense collection. Zero values impose no
// restriction: empty date bounds are unbounded, an empty PeriodType matches
// every record and blank search text matches everything.
type ExpenseFilter struct {
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	PeriodType string `form:"period_type"`
	Search     string `form:"search"`
}

// ReportFilter narrows cross-metric rows and daily reports. Empty facet
// slices impose no restriction on that facet.
type ReportFilter struct {
	DateFrom string
	DateTo   string
	StoreIDs []string
	Products []string
	Search   string
}

// FilterExpenses returns the records passing every predicate of f, sorted
// descending by date. The input slice is never mutated.
func FilterExpenses(list []models.Expense, f ExpenseFilter) []models.Expense {
	search := normalizeSearch(f.Search)
	out := make([]models.Expense, 0, len(list))
	for _, e := range list {
		if !dateWithin(e.Date, f.DateFrom, f.DateTo) {
			continue
		}
		if f.PeriodType != "" && e.PeriodType != f.PeriodType {
			continue
		}
		if search != "" && !expenseMatches(e, search) {
			continue
		}
		out = append(out, e)
	}
	sortByDateDesc(out, func(e models.Expense) string { return e.Date })
	return out
}

// FilterCrossMetricRows returns the rows passing every predicate of f.
func FilterCrossMetricRows(rows []CrossMetricRow, f ReportFilter) []CrossMetricRow {
	search := normalizeSearch(f.Search)
	storeSet := toSet(f.StoreIDs)
	productSet := toSet(f.Products)

	out := make([]CrossMetricRow, 0, len(rows))
	for _, row := range rows {
		if !dateWithin(row.Date, f.DateFrom, f.DateTo) {
			continue
		}
		if len(storeSet) > 0 && !storeSet[row.StoreID] {
			continue
		}
		if len(productSet) > 0 && !productSet[row.ProductID] && !productSet[row.ProductName] {
			continue
		}
		if search != "" && !crossMetricMatches(row, search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FilterDailyReports returns the reports passing every predicate of f, sorted
// descending by date. Store names are resolved against stores for the search
// predicate only.
func FilterDailyReports(list []models.DailyReport, stores []models.Store, f ReportFilter) []models.DailyReport {
	search := normalizeSearch(f.Search)
	storeSet := toSet(f.StoreIDs)
	names := storeNameIndex(stores)

	out := make([]models.DailyReport, 0, len(list))
	for _, r := range list {
		if !dateWithin(r.Date, f.DateFrom, f.DateTo) {
			continue
		}
		if len(storeSet) > 0 && !storeSet[r.StoreID] {
			continue
		}
		if search != "" && !dailyReportMatches(r, names[r.StoreID], search) {
			continue
		}
		out = append(out, r)
	}
	sortByDateDesc(out, func(r models.DailyReport) string { return r.Date })
	return out
}

// dateWithin reports whether a YYYY-MM-DD date falls inside [from, to], with
// from taken at start of day and to inclusive through end of day. Empty
// bounds are unbounded; a date that fails to parse never matches a bounded
// range.
func dateWithin(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, err := time.Parse(dayLayout, date)
	if err != nil {
		return false
	}
	if from != "" {
		if fromDay, err := time.Parse(dayLayout, from); err == nil && d.Before(fromDay) {
			return false
		}
	}
	if to != "" {
		if toDay, err := time.Parse(dayLayout, to); err == nil && !d.Before(toDay.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

func expenseMatches(e models.Expense, search string) bool {
	return containsAny(search,
		e.Date,
		e.Accounting,
		e.Payer,
		e.Receiver,
		e.Description,
	)
}

func crossMetricMatches(row CrossMetricRow, search string) bool {
	return containsAny(search,
		row.Date,
		row.ProductName,
		row.StoreName,
		formatAmount(row.TotalGMV),
		formatAmount(row.VideoGMV),
		formatAmount(row.LivestreamGMV),
	)
}

func dailyReportMatches(r models.DailyReport, storeName, search string) bool {
	return containsAny(search,
		r.Date,
		storeName,
		r.PIC,
		r.Account,
		r.Shift,
	)
}

func containsAny(search string, fields ...string) bool {
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// formatAmount renders a monetary value the way the dashboards do for the
// free-text search: shortest decimal form, no grouping.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func storeNameIndex(stores []models.Store) map[string]string {
	names := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
	}
	return names
}

// sortByDateDesc orders records newest-first. ISO dates compare correctly as
// strings, so no parsing is needed here.
func sortByDateDesc[T any](list []T, date func(T) string) {
	sort.SliceStable(list, func(i, j int) bool {
		return date(list[i]) > date(list[j])
	})
}
