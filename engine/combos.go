package engine

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"ngim/models"
)

// ComboWindow names the transaction window a mining run actually used.
type ComboWindow string

const (
	// WindowPrevYearMonth is the same calendar month of the previous year.
	WindowPrevYearMonth ComboWindow = "prev_year_month"
	// WindowTrailing3 is the 3 months ending at the latest known sale.
	WindowTrailing3 ComboWindow = "trailing_3_months"
	// WindowEmpty means no transactions were available to mine.
	WindowEmpty ComboWindow = "empty"
)

// ComboOutcome carries the mined bundles plus enough context to tell "no
// data in the window" apart from "mining failed and was recovered".
type ComboOutcome struct {
	Combos   []models.Combo `json:"combos"`
	Window   ComboWindow    `json:"window"`
	Degraded bool           `json:"degraded"`
}

// MineCombos derives product bundles for the given forecast month ("" for
// the unconditioned trailing window). A month is first mined against the
// same month of the previous year; if that window has no transactions it
// falls back to the trailing 3 months. Internal mining failures degrade to
// an empty list; only a malformed month string is returned as an error.
func (e *Engine) MineCombos(monthStr string, opts MiningOptions) (ComboOutcome, error) {
	opts = opts.withDefaults()

	var window []models.SalesRecord
	used := WindowEmpty

	if monthStr != "" {
		target, err := ParseMonth(monthStr)
		if err != nil {
			return ComboOutcome{Window: WindowEmpty}, err
		}
		prevYear := target.Year() - 1
		for _, s := range e.sales {
			if s.InvoiceDate.Year() == prevYear && s.InvoiceDate.Month() == target.Month() {
				window = append(window, s)
			}
		}
		if len(window) > 0 {
			used = WindowPrevYearMonth
		}
	}

	if len(window) == 0 {
		window = e.trailingWindow()
		if len(window) > 0 {
			used = WindowTrailing3
		}
	}
	if len(window) == 0 {
		return ComboOutcome{Window: WindowEmpty}, nil
	}

	rules, err := mineRules(window, opts)
	if err != nil {
		return ComboOutcome{Window: used, Degraded: true}, nil
	}

	return ComboOutcome{Combos: e.selectUnique(rules, opts.MaxCombos), Window: used}, nil
}

// trailingWindow returns the sales of the 3 months ending at the latest
// invoice date in the dataset.
func (e *Engine) trailingWindow() []models.SalesRecord {
	if len(e.sales) == 0 {
		return nil
	}
	var last time.Time
	for _, s := range e.sales {
		if s.InvoiceDate.After(last) {
			last = s.InvoiceDate
		}
	}
	start := last.AddDate(0, -3, 0)

	var window []models.SalesRecord
	for _, s := range e.sales {
		if !s.InvoiceDate.Before(start) {
			window = append(window, s)
		}
	}
	return window
}

// mineRules builds presence baskets for the window, mines frequent pairs and
// derives the best association rule per unordered pair. Any panic from the
// mining internals is recovered into an ErrMiningFailure.
func mineRules(window []models.SalesRecord, opts MiningOptions) (rules []models.ComboRule, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMiningFailure, r)
		}
	}()

	// invoice_id x product_id quantity matrix, binarized to presence.
	quantities := make(map[string]map[int]int)
	for _, s := range window {
		if quantities[s.InvoiceID] == nil {
			quantities[s.InvoiceID] = make(map[int]int)
		}
		quantities[s.InvoiceID][s.ProductID] += s.Quantity
	}

	invoices := make([]string, 0, len(quantities))
	for id := range quantities {
		invoices = append(invoices, id)
	}
	sort.Strings(invoices)

	baskets := make([][]int, 0, len(invoices))
	for _, id := range invoices {
		var basket []int
		for pid, qty := range quantities[id] {
			if qty > 0 {
				basket = append(basket, pid)
			}
		}
		baskets = append(baskets, basket)
	}

	singles, pairs := minePairs(baskets, opts.MinSupport)
	if len(pairs) == 0 {
		return nil, nil
	}

	support := make(map[int]float64, len(singles))
	for _, s := range singles {
		support[s.Item] = s.Support
	}

	for _, p := range pairs {
		supA, supB := support[p.A], support[p.B]
		confAB := p.Support / supA
		confBA := p.Support / supB
		lift := p.Support / (supA * supB)

		// Both orientations are candidate rules; lift is symmetric, so the
		// best-scoring one is simply the higher-confidence direction.
		best := confAB
		if confBA > best {
			best = confBA
		}
		if best < opts.MinConfidence {
			continue
		}
		rules = append(rules, models.ComboRule{
			AID:        p.A,
			BID:        p.B,
			Support:    p.Support,
			Confidence: best,
			Lift:       lift,
		})
	}
	return rules, nil
}

// selectUnique greedily picks the top-scoring pairs such that no product
// appears in more than one accepted bundle. The sort order is fully pinned:
// lift, confidence, support (all descending), then product ids ascending.
func (e *Engine) selectUnique(rules []models.ComboRule, maxCombos int) []models.Combo {
	sort.Slice(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.Lift != b.Lift {
			return a.Lift > b.Lift
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.AID != b.AID {
			return a.AID < b.AID
		}
		return a.BID < b.BID
	})

	var combos []models.Combo
	used := make(map[int]bool)
	for _, r := range rules {
		if used[r.AID] || used[r.BID] {
			continue
		}
		used[r.AID] = true
		used[r.BID] = true
		combos = append(combos, models.Combo{
			Products: []string{e.productName(r.AID), e.productName(r.BID)},
		})
		if len(combos) >= maxCombos {
			break
		}
	}
	return combos
}

func (e *Engine) productName(pid int) string {
	if p, ok := e.productByID[pid]; ok {
		return p.Name
	}
	return strconv.Itoa(pid)
}
