package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ngim/models"
)

// Accepted invoice_date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02-01-2006",
}

// LoadCSV reads the sales and products snapshot from dir. A missing or
// unreadable file is an ErrDataLoad; individual malformed rows are skipped
// or defaulted, never fatal.
func LoadCSV(dir, salesFile, productsFile string) (*Dataset, error) {
	sales, skipped, err := loadSalesCSV(filepath.Join(dir, salesFile))
	if err != nil {
		return nil, err
	}
	products, err := loadProductsCSV(filepath.Join(dir, productsFile))
	if err != nil {
		return nil, err
	}
	AssignCategoryIDs(products)

	if skipped > 0 {
		log.Printf("⚠️  [STORE] Skipped %d sales rows with unparseable dates", skipped)
	}
	log.Printf("✅ [STORE] Loaded %d sales rows, %d products from %s", len(sales), len(products), dir)

	return &Dataset{Sales: sales, Products: products, SkippedSales: skipped}, nil
}

func loadSalesCSV(path string) ([]models.SalesRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open sales csv %s: %v", ErrDataLoad, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read sales csv header: %v", ErrDataLoad, err)
	}
	col := headerIndex(header)

	var (
		sales   []models.SalesRecord
		skipped int
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		date, ok := parseDate(field(row, col, "invoice_date"))
		if !ok {
			skipped++
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(field(row, col, "product_id")))
		if err != nil {
			skipped++
			continue
		}

		// Missing numeric inputs default rather than fail the row.
		qty := 1
		if q, err := strconv.Atoi(strings.TrimSpace(field(row, col, "quantity"))); err == nil {
			qty = q
		}
		price := 0.0
		if p, err := strconv.ParseFloat(strings.TrimSpace(field(row, col, "unit_price")), 64); err == nil {
			price = p
		}

		sales = append(sales, models.SalesRecord{
			InvoiceID:   strings.TrimSpace(field(row, col, "invoice_id")),
			ProductID:   pid,
			InvoiceDate: date,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return sales, skipped, nil
}

func loadProductsCSV(path string) ([]models.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open products csv %s: %v", ErrDataLoad, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read products csv header: %v", ErrDataLoad, err)
	}
	col := headerIndex(header)

	var products []models.ProductRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(field(row, col, "product_id")))
		if err != nil {
			continue
		}

		price := 0.0
		if p, err := strconv.ParseFloat(strings.TrimSpace(field(row, col, "base_price")), 64); err == nil {
			price = p
		}

		products = append(products, models.ProductRecord{
			ID:        pid,
			Name:      strings.TrimSpace(field(row, col, "product_name")),
			Category:  strings.TrimSpace(field(row, col, "category")),
			BasePrice: price,
		})
	}
	return products, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
