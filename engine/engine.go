// Package engine implements the forecasting and combo-mining pipeline: the
// monthly feature builder, the demand model with its cold-start fallback,
// the frequent-pair miner, and the recommendation assembly on top of them.
//
// An Engine is an immutable snapshot of the pipeline state: build it once
// from a store dataset and share it freely. The only mutable piece is the
// combo cache, which is guarded by its own lock and replaced wholesale on
// refresh.
package engine

import (
	"log"
	"sync"

	"ngim/models"
	"ngim/store"
)

// MiningOptions are the tunables of the combo mining engine.
type MiningOptions struct {
	MinSupport    float64
	MinConfidence float64
	MaxCombos     int
}

// DefaultMiningOptions returns the stock tunables.
func DefaultMiningOptions() MiningOptions {
	return MiningOptions{MinSupport: 0.01, MinConfidence: 0.10, MaxCombos: 10}
}

func (o MiningOptions) withDefaults() MiningOptions {
	d := DefaultMiningOptions()
	if o.MinSupport <= 0 {
		o.MinSupport = d.MinSupport
	}
	if o.MinConfidence <= 0 {
		o.MinConfidence = d.MinConfidence
	}
	if o.MaxCombos <= 0 {
		o.MaxCombos = d.MaxCombos
	}
	return o
}

// Engine holds the loaded tables, the trained predictor and the combo cache
// for the lifetime of the process (or until an explicit data reload builds a
// replacement Engine).
type Engine struct {
	sales       []models.SalesRecord
	products    []models.ProductRecord
	productByID map[int]models.ProductRecord
	monthly     []models.MonthlyAggregate
	histByID    map[int][]models.MonthlyAggregate
	predictor   Predictor
	opts        MiningOptions

	comboMu    sync.RWMutex
	comboCache []models.Combo
}

// New builds the full pipeline from a dataset snapshot: monthly features,
// the predictor, and a primed cache of the unconditioned combo result.
func New(ds *store.Dataset, opts MiningOptions) *Engine {
	e := &Engine{
		sales:       ds.Sales,
		products:    ds.Products,
		productByID: make(map[int]models.ProductRecord, len(ds.Products)),
		histByID:    make(map[int][]models.MonthlyAggregate),
		opts:        opts.withDefaults(),
	}
	for _, p := range ds.Products {
		e.productByID[p.ID] = p
	}

	e.monthly = BuildMonthly(ds.Sales, ds.Products)
	for _, row := range e.monthly {
		e.histByID[row.ProductID] = append(e.histByID[row.ProductID], row)
	}
	e.predictor = TrainPredictor(e.monthly)

	outcome, err := e.MineCombos("", e.opts)
	if err == nil {
		e.comboCache = outcome.Combos
	}

	log.Printf("✅ [ENGINE] Ready — products=%d sales_rows=%d monthly_rows=%d combos_cached=%d",
		len(e.products), len(e.sales), len(e.monthly), len(e.comboCache))
	return e
}

// Products returns the catalog snapshot.
func (e *Engine) Products() []models.ProductRecord {
	return e.products
}

// Monthly returns the derived monthly aggregate table.
func (e *Engine) Monthly() []models.MonthlyAggregate {
	return e.monthly
}

// Predictor exposes the trained (or fallback) demand model.
func (e *Engine) Predictor() Predictor {
	return e.predictor
}

// Options returns the engine's default mining tunables.
func (e *Engine) Options() MiningOptions {
	return e.opts
}

// CachedCombos returns the most recent unconditioned combo result.
func (e *Engine) CachedCombos() []models.Combo {
	e.comboMu.RLock()
	defer e.comboMu.RUnlock()
	combos := make([]models.Combo, len(e.comboCache))
	copy(combos, e.comboCache)
	return combos
}

// RefreshCombos recomputes the unconditioned combo result and atomically
// replaces the cache, returning the new value. Concurrent readers see the
// old or new slice, never a partial one.
func (e *Engine) RefreshCombos() []models.Combo {
	outcome, err := e.MineCombos("", e.opts)
	combos := outcome.Combos
	if err != nil {
		combos = nil
	}

	e.comboMu.Lock()
	e.comboCache = combos
	e.comboMu.Unlock()

	log.Printf("🔄 [ENGINE] Combo cache refreshed — %d combos", len(combos))
	return combos
}

// history returns a product's monthly aggregates in month order.
func (e *Engine) history(pid int) []models.MonthlyAggregate {
	return e.histByID[pid]
}

// historicalMean is the product's mean monthly quantity over its entire
// history, 0 if it has none.
func (e *Engine) historicalMean(pid int) float64 {
	hist := e.history(pid)
	if len(hist) == 0 {
		return 0
	}
	sum := 0.0
	for _, row := range hist {
		sum += row.MonthlyQty
	}
	return sum / float64(len(hist))
}
