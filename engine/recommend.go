package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"ngim/models"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// noDataBundle is the sentinel returned when mining yields nothing, so
// consumers always have at least one bundle entry to render.
var noDataBundle = models.Combo{Products: []string{"No Data"}}

// Recommend assembles the full decision-support result for one product: the
// 30-day forecast breakdown, inventory guidance, seasonal summary and mined
// bundles. Only a malformed forecast month is an error.
func (e *Engine) Recommend(pid int, monthStr string, stock float64) (*models.RecommendationResult, error) {
	target, err := ParseMonth(monthStr)
	if err != nil {
		return nil, err
	}

	forecast := e.forecastAt(pid, target)
	if forecast == 0 {
		// Models can return a hard zero on edge cases; the overall
		// historical mean is a more useful floor.
		forecast = e.historicalMean(pid)
	}

	daily := 0
	if forecast > 0 {
		daily = int(math.Round(forecast / 30))
	}

	forecastList := make([]int, 30)
	breakdown := make([]models.DailyForecast, 30)
	base := time.Now()
	base = time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	total := 0
	for i := range forecastList {
		forecastList[i] = daily
		total += daily

		prev := daily
		if i > 0 {
			prev = forecastList[i-1]
		}
		trend := "flat"
		if daily > prev {
			trend = "up"
		} else if daily < prev {
			trend = "down"
		}
		breakdown[i] = models.DailyForecast{
			Date:     base.AddDate(0, 0, i+1).Format("Jan 02, 2006"),
			Quantity: daily,
			Trend:    trend,
		}
	}

	product, ok := e.productByID[pid]
	if !ok {
		product = models.ProductRecord{
			ID:       pid,
			Name:     fmt.Sprintf("P%d", pid),
			Category: models.UnknownCategory,
		}
	}

	bundles := []models.Combo{noDataBundle}
	if outcome, err := e.MineCombos(monthStr, e.opts); err == nil && len(outcome.Combos) > 0 {
		bundles = outcome.Combos
	}

	return &models.RecommendationResult{
		Product:        product,
		ForecastList:   forecastList,
		ForecastTotal:  total,
		DailyBreakdown: breakdown,
		DailyAvg:       daily,
		DailyMin:       daily,
		DailyMax:       daily,
		Inventory:      ComputeInventory(forecast, stock),
		Season:         e.SeasonalAnalysis(pid),
		Bundles:        bundles,
		Days:           30,
		Stock:          stock,
		ForecastMonth:  monthStr,
	}, nil
}

// ComputeInventory derives reorder guidance from a monthly forecast F and
// current stock S. The arithmetic runs on decimals: ceil(1.1*F) must not
// pick up float drift (ceil(90*1.1) is 99, not 100).
func ComputeInventory(forecast, stock float64) models.InventoryMetrics {
	f := decimal.NewFromFloat(forecast)
	s := decimal.NewFromFloat(stock)

	avgDaily := f.Div(decimal.NewFromInt(30)).Round(2)

	divisor := avgDaily
	if !avgDaily.IsPositive() {
		divisor = decimal.NewFromInt(1)
	}
	daysOfSupply := s.Div(divisor).Round(1)

	target := f.Mul(decimal.RequireFromString("1.1")).Ceil()
	suggested := target.Sub(s)
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}

	return models.InventoryMetrics{
		AvgDaily:       avgDaily.InexactFloat64(),
		DaysOfSupply:   daysOfSupply.InexactFloat64(),
		TargetStock:    int(target.IntPart()),
		SuggestedOrder: int(suggested.IntPart()),
	}
}

// SeasonalAnalysis sums the product's quantity by calendar month over its
// whole history and names the peak and low months. Ties go to the earliest
// month; no history reports both as "—".
func (e *Engine) SeasonalAnalysis(pid int) models.SeasonSummary {
	hist := e.history(pid)
	if len(hist) == 0 {
		return models.SeasonSummary{PeakMonth: "—", LowMonth: "—"}
	}

	var sums [13]float64
	var present [13]bool
	for _, row := range hist {
		sums[row.MonthNum] += row.MonthlyQty
		present[row.MonthNum] = true
	}

	peak, low := 0, 0
	for m := 1; m <= 12; m++ {
		if !present[m] {
			continue
		}
		if peak == 0 || sums[m] > sums[peak] {
			peak = m
		}
		if low == 0 || sums[m] < sums[low] {
			low = m
		}
	}

	return models.SeasonSummary{
		PeakMonth: monthNames[peak-1],
		LowMonth:  monthNames[low-1],
	}
}
