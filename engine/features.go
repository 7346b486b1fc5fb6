package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ngim/models"
)

// BuildMonthly aggregates the sales history into one row per (product,
// calendar month) and derives the lag, rolling and calendar features the
// model consumes. Rows are ordered by product id then month; a product's
// first observed month has no Lag1Qty.
//
// Product metadata is left-joined so aggregates survive catalog removals:
// rows for unknown products carry the Unknown category and price 0.
func BuildMonthly(sales []models.SalesRecord, products []models.ProductRecord) []models.MonthlyAggregate {
	byID := make(map[int]models.ProductRecord, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Category code used for sales of products no longer in the catalog.
	unknownCode := -1
	if p, ok := findCategory(products, models.UnknownCategory); ok {
		unknownCode = p
	}

	type bucketKey struct {
		pid   int
		month time.Time
	}
	type bucket struct {
		qty     float64
		revenue decimal.Decimal
	}
	buckets := make(map[bucketKey]*bucket)
	for _, s := range sales {
		key := bucketKey{pid: s.ProductID, month: monthStart(s.InvoiceDate)}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.qty += float64(s.Quantity)
		// Revenue deliberately sums unit_price alone, not price*qty: the
		// historical reports were built on these numbers.
		b.revenue = b.revenue.Add(decimal.NewFromFloat(s.UnitPrice))
	}

	keys := make([]bucketKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pid != keys[j].pid {
			return keys[i].pid < keys[j].pid
		}
		return keys[i].month.Before(keys[j].month)
	})

	monthly := make([]models.MonthlyAggregate, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		row := models.MonthlyAggregate{
			ProductID:      k.pid,
			Month:          k.month,
			MonthlyQty:     b.qty,
			MonthlyRevenue: b.revenue,
			Year:           k.month.Year(),
			MonthNum:       int(k.month.Month()),
			Category:       models.UnknownCategory,
			CategoryID:     unknownCode,
		}
		if p, ok := byID[k.pid]; ok {
			row.Category = p.Category
			row.CategoryID = p.CategoryID
			row.BasePrice = p.BasePrice
		}
		monthly = append(monthly, row)
	}

	// Lag and trailing-3 rolling mean, computed per product over the
	// month-ordered rows.
	for i := range monthly {
		start := i
		for start > 0 && monthly[start-1].ProductID == monthly[i].ProductID {
			start--
		}
		if i > start {
			lag := monthly[i-1].MonthlyQty
			monthly[i].Lag1Qty = &lag
		}
		windowStart := i - 2
		if windowStart < start {
			windowStart = start
		}
		sum := 0.0
		for j := windowStart; j <= i; j++ {
			sum += monthly[j].MonthlyQty
		}
		monthly[i].Rolling3Qty = sum / float64(i-windowStart+1)
	}

	return monthly
}

func findCategory(products []models.ProductRecord, category string) (int, bool) {
	for _, p := range products {
		if p.Category == category {
			return p.CategoryID, true
		}
	}
	return 0, false
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
