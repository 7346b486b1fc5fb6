package engine

import (
	"errors"
	"testing"

	"ngim/models"
)

func TestTopForecastRanking(t *testing.T) {
	// Three products with clearly separated historical means; below the
	// training gate the forecast is exactly that mean.
	sales := append(monthlySales(1, 10, 10, 10), monthlySales(2, 300, 300, 300)...)
	sales = append(sales, monthlySales(3, 50, 50, 50)...)
	products := []models.ProductRecord{
		product(1, "Tea", "Beverages", 10),
		product(2, "Sugar", "Grocery", 5),
		product(3, "Milk", "Dairy", 8),
	}
	e := New(dataset(sales, products), MiningOptions{})

	rows, err := e.TopForecast("2023-04", 10)
	if err != nil {
		t.Fatalf("top forecast: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ProductID != 2 || rows[1].ProductID != 3 || rows[2].ProductID != 1 {
		t.Fatalf("wrong order: %+v", rows)
	}
	if rows[0].ForecastQty != 300 || rows[0].ProductName != "Sugar" {
		t.Fatalf("top row wrong: %+v", rows[0])
	}
}

func TestTopForecastLimit(t *testing.T) {
	sales := append(monthlySales(1, 10), monthlySales(2, 20)...)
	products := []models.ProductRecord{
		product(1, "Tea", "Beverages", 10),
		product(2, "Sugar", "Grocery", 5),
	}
	e := New(dataset(sales, products), MiningOptions{})

	rows, err := e.TopForecast("2023-06", 1)
	if err != nil {
		t.Fatalf("top forecast: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductID != 2 {
		t.Fatalf("limit not applied: %+v", rows)
	}
}

func TestTopForecastTiesBreakByProductID(t *testing.T) {
	sales := append(monthlySales(2, 40), monthlySales(1, 40)...)
	products := []models.ProductRecord{
		product(2, "Sugar", "Grocery", 5),
		product(1, "Tea", "Beverages", 10),
	}
	e := New(dataset(sales, products), MiningOptions{})

	rows, err := e.TopForecast("2023-06", 10)
	if err != nil {
		t.Fatalf("top forecast: %v", err)
	}
	if rows[0].ProductID != 1 || rows[1].ProductID != 2 {
		t.Fatalf("tie must break by product id: %+v", rows)
	}
}

func TestTopForecastEmptyCatalog(t *testing.T) {
	e := New(dataset(nil, nil), MiningOptions{})
	rows, err := e.TopForecast("2024-01", 10)
	if err != nil {
		t.Fatalf("top forecast: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty report, got %+v", rows)
	}
}

func TestTopForecastInvalidMonth(t *testing.T) {
	e := New(dataset(nil, nil), MiningOptions{})
	if _, err := e.TopForecast("nope", 10); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
