package engine

import (
	"fmt"
	"log"

	"ngim/models"
)

// Feature vector layout consumed by the regression model. Order matters: the
// trained trees index features by position.
const (
	featProductID = iota
	featBasePrice
	featCategoryID
	featLag1Qty
	featRolling3Qty
	featYear
	featMonth
	numFeatures
)

// minTrainingRows is the cold-start gate: below this many rows with a valid
// lag feature, statistical training is skipped in favor of the historical
// mean.
const minTrainingRows = 10

// Predictor estimates a monthly quantity from a feature vector. Exactly two
// implementations exist: the trained gradient-boosted regressor and the
// historical-mean fallback.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// HistoricalMeanFallback predicts a product's mean monthly quantity across
// its full history, and 0 for products never seen.
type HistoricalMeanFallback struct {
	means map[int]float64
}

// NewHistoricalMeanFallback computes per-product means over all aggregate
// rows, lagless first months included.
func NewHistoricalMeanFallback(monthly []models.MonthlyAggregate) *HistoricalMeanFallback {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, row := range monthly {
		sums[row.ProductID] += row.MonthlyQty
		counts[row.ProductID]++
	}
	means := make(map[int]float64, len(sums))
	for pid, sum := range sums {
		means[pid] = sum / float64(counts[pid])
	}
	return &HistoricalMeanFallback{means: means}
}

// Predict returns the product's historical mean monthly quantity.
func (m *HistoricalMeanFallback) Predict(features []float64) (float64, error) {
	if len(features) != numFeatures {
		return 0, fmt.Errorf("%w: expected %d features, got %d", ErrInference, numFeatures, len(features))
	}
	return m.means[int(features[featProductID])], nil
}

// TrainPredictor builds the demand model from the monthly feature table.
// Rows without a lag feature (each product's first observed month) do not
// qualify for training.
func TrainPredictor(monthly []models.MonthlyAggregate) Predictor {
	var (
		X [][]float64
		y []float64
	)
	for _, row := range monthly {
		if row.Lag1Qty == nil {
			continue
		}
		X = append(X, featureRow(row))
		y = append(y, row.MonthlyQty)
	}

	if len(X) < minTrainingRows {
		log.Printf("⚠️  [MODEL] Only %d trainable rows (< %d), using historical-mean fallback", len(X), minTrainingRows)
		return NewHistoricalMeanFallback(monthly)
	}

	log.Printf("✅ [MODEL] Training gradient-boosted regressor on %d rows", len(X))
	return trainGBT(X, y, defaultGBTConfig())
}

func featureRow(row models.MonthlyAggregate) []float64 {
	lag := 0.0
	if row.Lag1Qty != nil {
		lag = *row.Lag1Qty
	}
	return []float64{
		float64(row.ProductID),
		row.BasePrice,
		float64(row.CategoryID),
		lag,
		row.Rolling3Qty,
		float64(row.Year),
		float64(row.MonthNum),
	}
}
