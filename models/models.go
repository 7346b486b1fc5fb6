package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownCategory is the sentinel assigned to products with no category.
const UnknownCategory = "Unknown"

// SalesRecord is one observed line item of an invoice. Many records share an
// invoice_id and form one basket.
type SalesRecord struct {
	InvoiceID   string    `json:"invoice_id"`
	ProductID   int       `json:"product_id"`
	InvoiceDate time.Time `json:"invoice_date"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// ProductRecord is one catalog entry. CategoryID is a dense integer code
// assigned over the sorted set of distinct category names.
type ProductRecord struct {
	ID         int     `json:"product_id"`
	Name       string  `json:"product_name"`
	Category   string  `json:"category"`
	CategoryID int     `json:"category_id"`
	BasePrice  float64 `json:"base_price"`
}

// MonthlyAggregate is one (product, calendar month) observation derived from
// the sales history.
//
// MonthlyRevenue sums unit_price only, not unit_price*quantity. That matches
// the numbers downstream consumers already see; do not "fix" it here.
type MonthlyAggregate struct {
	ProductID      int             `json:"product_id"`
	Month          time.Time       `json:"month"`
	MonthlyQty     float64         `json:"monthly_qty"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	Lag1Qty        *float64        `json:"lag_1_qty,omitempty"`
	Rolling3Qty    float64         `json:"rolling_3_qty"`
	Year           int             `json:"year"`
	MonthNum       int             `json:"month_num"`
	Category       string          `json:"category"`
	CategoryID     int             `json:"category_id"`
	BasePrice      float64         `json:"base_price"`
}
