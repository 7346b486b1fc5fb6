package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"ngim/models"
)

func TestComputeInventory(t *testing.T) {
	tests := []struct {
		name           string
		forecast       float64
		stock          float64
		avgDaily       float64
		daysOfSupply   float64
		targetStock    int
		suggestedOrder int
	}{
		{"documented example", 90, 0, 3.0, 0.0, 99, 99},
		{"zero forecast", 0, 5, 0, 5.0, 0, 0},
		{"stock covers target", 100, 200, 3.33, 60.1, 110, 0},
		{"fractional stock truncates", 90, 0.5, 3.0, 0.2, 99, 98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeInventory(tt.forecast, tt.stock)
			want := models.InventoryMetrics{
				AvgDaily:       tt.avgDaily,
				DaysOfSupply:   tt.daysOfSupply,
				TargetStock:    tt.targetStock,
				SuggestedOrder: tt.suggestedOrder,
			}
			if got != want {
				t.Fatalf("ComputeInventory(%v, %v) = %+v, want %+v", tt.forecast, tt.stock, got, want)
			}
		})
	}
}

func TestInventoryInvariants(t *testing.T) {
	for _, f := range []float64{0, 1, 29, 30, 90, 333.3} {
		for _, s := range []float64{0, 10, 500} {
			inv := ComputeInventory(f, s)
			if inv.SuggestedOrder < 0 {
				t.Fatalf("F=%v S=%v: negative suggested order", f, s)
			}
			if float64(inv.TargetStock) < f {
				t.Fatalf("F=%v: target stock %d below forecast", f, inv.TargetStock)
			}
		}
	}
}

func TestRecommendDailyBreakdown(t *testing.T) {
	products := []models.ProductRecord{product(1, "Tea", "Beverages", 10)}
	e := New(dataset(monthlySales(1, 100, 120, 80), products), MiningOptions{})

	result, err := e.Recommend(1, "2023-04", 50)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	if len(result.ForecastList) != 30 || len(result.DailyBreakdown) != 30 {
		t.Fatalf("expected 30 daily entries, got %d/%d", len(result.ForecastList), len(result.DailyBreakdown))
	}

	// Fallback forecast is 100; the flat daily value is round(100/30) = 3.
	sum := 0
	for i, d := range result.DailyBreakdown {
		if d.Quantity != 3 {
			t.Fatalf("day %d quantity = %d, want 3", i, d.Quantity)
		}
		if d.Trend != "flat" {
			t.Fatalf("day %d trend = %q, want flat (series is flat by construction)", i, d.Trend)
		}
		sum += d.Quantity
	}
	if sum != result.ForecastTotal {
		t.Fatalf("breakdown sums to %d, total says %d", sum, result.ForecastTotal)
	}
	// Total is within rounding of the monthly forecast.
	if math.Abs(float64(sum)-100) > 15 {
		t.Fatalf("total %d too far from monthly forecast 100", sum)
	}

	if result.DailyAvg != 3 || result.DailyMin != 3 || result.DailyMax != 3 {
		t.Fatalf("daily stats = %d/%d/%d, want 3/3/3", result.DailyAvg, result.DailyMin, result.DailyMax)
	}
	if result.Days != 30 || result.Stock != 50 || result.ForecastMonth != "2023-04" {
		t.Fatalf("echoed inputs wrong: %+v", result)
	}
	if result.Product.Name != "Tea" {
		t.Fatalf("product echo wrong: %+v", result.Product)
	}

	// Inventory is computed from the un-rounded monthly forecast.
	if result.Inventory.TargetStock != 110 || result.Inventory.SuggestedOrder != 60 {
		t.Fatalf("inventory = %+v, want target 110, suggested 60", result.Inventory)
	}
}

func TestRecommendSentinelBundle(t *testing.T) {
	// Single-product invoices can never form pairs, so mining is empty and
	// the sentinel bundle must appear.
	products := []models.ProductRecord{product(1, "Tea", "Beverages", 10)}
	e := New(dataset(monthlySales(1, 100, 120, 80), products), MiningOptions{})

	result, err := e.Recommend(1, "2023-04", 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !reflect.DeepEqual(result.Bundles, []models.Combo{{Products: []string{"No Data"}}}) {
		t.Fatalf("expected sentinel bundle, got %+v", result.Bundles)
	}
}

func TestRecommendUnknownProduct(t *testing.T) {
	e := New(dataset(nil, nil), MiningOptions{})

	result, err := e.Recommend(7, "2024-01", 10)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if result.Product.ID != 7 || result.Product.Name != "P7" {
		t.Fatalf("placeholder product wrong: %+v", result.Product)
	}
	if result.ForecastTotal != 0 {
		t.Fatalf("no-history product should forecast 0, got %d", result.ForecastTotal)
	}
	if result.Season.PeakMonth != "—" || result.Season.LowMonth != "—" {
		t.Fatalf("no-history season = %+v, want em dashes", result.Season)
	}
}

func TestRecommendInvalidMonth(t *testing.T) {
	e := New(dataset(nil, nil), MiningOptions{})
	if _, err := e.Recommend(1, "bogus", 0); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestSeasonalAnalysis(t *testing.T) {
	// Qty peaks in February, bottoms in March.
	products := []models.ProductRecord{product(1, "Tea", "Beverages", 10)}
	e := New(dataset(monthlySales(1, 100, 120, 80), products), MiningOptions{})

	season := e.SeasonalAnalysis(1)
	if season.PeakMonth != "Feb" || season.LowMonth != "Mar" {
		t.Fatalf("season = %+v, want peak Feb, low Mar", season)
	}

	if s := e.SeasonalAnalysis(99); s.PeakMonth != "—" || s.LowMonth != "—" {
		t.Fatalf("no-history season = %+v", s)
	}
}
