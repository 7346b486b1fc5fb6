package engine

import (
	"fmt"
	"time"

	"ngim/models"
)

// ParseMonth normalizes a forecast month given as "YYYY-MM" or "YYYY-MM-DD"
// to the first day of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return monthStart(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return monthStart(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// ForecastProductMonth predicts the product's demand for the target month.
// Products with no history before the target month forecast 0; an inference
// failure falls back to the mean of the prior months. The result is never
// negative.
func (e *Engine) ForecastProductMonth(pid int, monthStr string) (float64, error) {
	target, err := ParseMonth(monthStr)
	if err != nil {
		return 0, err
	}
	return e.forecastAt(pid, target), nil
}

func (e *Engine) forecastAt(pid int, target time.Time) float64 {
	var hist []models.MonthlyAggregate
	for _, row := range e.history(pid) {
		if row.Month.Before(target) {
			hist = append(hist, row)
		}
	}
	if len(hist) == 0 {
		return 0
	}

	last := hist[len(hist)-1]
	tail := hist
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	rolling := 0.0
	for _, row := range tail {
		rolling += row.MonthlyQty
	}
	rolling /= float64(len(tail))

	basePrice := 0.0
	categoryID := -1
	if meta, ok := e.productByID[pid]; ok {
		basePrice = meta.BasePrice
		categoryID = meta.CategoryID
	}

	features := []float64{
		float64(pid),
		basePrice,
		float64(categoryID),
		last.MonthlyQty,
		rolling,
		float64(target.Year()),
		float64(int(target.Month())),
	}

	pred, err := e.predictor.Predict(features)
	if err != nil {
		// Recover with the mean of the months we just collected.
		sum := 0.0
		for _, row := range hist {
			sum += row.MonthlyQty
		}
		pred = sum / float64(len(hist))
	}

	if pred < 0 {
		return 0
	}
	return pred
}
