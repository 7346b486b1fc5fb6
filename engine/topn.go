package engine

import (
	"math"
	"sort"

	"ngim/models"
)

// TopForecast forecasts every catalog product for the target month and
// returns the top limit rows by forecast quantity (ties broken by product
// id). An empty catalog yields an empty list.
func (e *Engine) TopForecast(monthStr string, limit int) ([]models.TopForecastRow, error) {
	target, err := ParseMonth(monthStr)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows := make([]models.TopForecastRow, 0, len(e.products))
	seen := make(map[int]bool)
	for _, p := range e.products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true

		qty := e.forecastAt(p.ID, target)
		rows = append(rows, models.TopForecastRow{
			ProductID:   p.ID,
			ProductName: p.Name,
			ForecastQty: int(math.Round(qty)),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ForecastQty != rows[j].ForecastQty {
			return rows[i].ForecastQty > rows[j].ForecastQty
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
