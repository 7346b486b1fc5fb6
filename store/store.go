// Package store loads the read-only catalog and transaction snapshot the
// pipeline runs over, either from a CSV data directory or from Postgres.
// Nothing in this package writes back to the source.
package store

import (
	"errors"
	"sort"

	"ngim/models"
)

// ErrDataLoad marks a missing or unreadable data source. Callers treat it as
// fatal at startup; once a snapshot is loaded, empty tables are tolerated.
var ErrDataLoad = errors.New("data load failed")

// Dataset is an immutable snapshot of the store. SkippedSales counts sales
// rows discarded for unparseable dates.
type Dataset struct {
	Sales        []models.SalesRecord
	Products     []models.ProductRecord
	SkippedSales int
}

// AssignCategoryIDs normalizes empty categories to the Unknown sentinel and
// assigns dense integer codes over the sorted set of distinct category
// names, matching how the historical snapshots encoded them.
func AssignCategoryIDs(products []models.ProductRecord) {
	for i := range products {
		if products[i].Category == "" {
			products[i].Category = models.UnknownCategory
		}
	}

	seen := make(map[string]bool)
	var cats []string
	for i := range products {
		if !seen[products[i].Category] {
			seen[products[i].Category] = true
			cats = append(cats, products[i].Category)
		}
	}
	sort.Strings(cats)

	codes := make(map[string]int, len(cats))
	for i, c := range cats {
		codes[c] = i
	}
	for i := range products {
		products[i].CategoryID = codes[products[i].Category]
	}
}
