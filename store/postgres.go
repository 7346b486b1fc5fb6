package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"ngim/models"
)

// LoadPostgres reads the sales and products snapshot from the database.
// Column shapes mirror the CSV snapshot.
func LoadPostgres(ctx context.Context, db *pgxpool.Pool) (*Dataset, error) {
	salesQuery := `
		SELECT invoice_id, product_id, invoice_date, quantity, unit_price
		FROM sales
		ORDER BY invoice_date
	`
	rows, err := db.Query(ctx, salesQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query sales: %v", ErrDataLoad, err)
	}
	defer rows.Close()

	var sales []models.SalesRecord
	for rows.Next() {
		var (
			rec   models.SalesRecord
			qty   *int
			price *float64
		)
		if err := rows.Scan(&rec.InvoiceID, &rec.ProductID, &rec.InvoiceDate, &qty, &price); err != nil {
			log.Printf("⚠️  [STORE] Failed to scan sales row: %v", err)
			continue
		}
		rec.Quantity = 1
		if qty != nil {
			rec.Quantity = *qty
		}
		if price != nil {
			rec.UnitPrice = *price
		}
		sales = append(sales, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read sales rows: %v", ErrDataLoad, err)
	}

	productsQuery := `
		SELECT product_id, product_name, category, base_price
		FROM products
		ORDER BY product_id
	`
	prows, err := db.Query(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %v", ErrDataLoad, err)
	}
	defer prows.Close()

	var products []models.ProductRecord
	for prows.Next() {
		var (
			rec      models.ProductRecord
			category *string
			price    *float64
		)
		if err := prows.Scan(&rec.ID, &rec.Name, &category, &price); err != nil {
			log.Printf("⚠️  [STORE] Failed to scan product row: %v", err)
			continue
		}
		if category != nil {
			rec.Category = *category
		}
		if price != nil {
			rec.BasePrice = *price
		}
		products = append(products, rec)
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read product rows: %v", ErrDataLoad, err)
	}

	AssignCategoryIDs(products)

	log.Printf("✅ [STORE] Loaded %d sales rows, %d products from database", len(sales), len(products))
	return &Dataset{Sales: sales, Products: products}, nil
}
