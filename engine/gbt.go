package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Gradient-boosted regression trees for the squared-error objective. Each
// round fits a depth-limited CART tree to the current residuals on a row and
// feature subsample, then shrinks its contribution by the learning rate.
// The rng is seeded from config so identical inputs yield identical models.

type gbtConfig struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	Subsample    float64
	ColSample    float64
	Seed         int64
}

func defaultGBTConfig() gbtConfig {
	return gbtConfig{
		NEstimators:  300,
		LearningRate: 0.05,
		MaxDepth:     6,
		Subsample:    0.9,
		ColSample:    0.9,
		Seed:         42,
	}
}

type treeNode struct {
	// Internal node fields; leaf when left is nil.
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
}

func (n *treeNode) predict(features []float64) float64 {
	for n.left != nil {
		if features[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// GBTRegressor is the trained demand model.
type GBTRegressor struct {
	cfg   gbtConfig
	base  float64
	trees []*treeNode
}

// NumTrees reports how many boosting rounds produced a tree.
func (g *GBTRegressor) NumTrees() int { return len(g.trees) }

// Predict runs the boosted ensemble on one feature vector.
func (g *GBTRegressor) Predict(features []float64) (float64, error) {
	if len(features) != numFeatures {
		return 0, fmt.Errorf("%w: expected %d features, got %d", ErrInference, numFeatures, len(features))
	}
	pred := g.base
	for _, t := range g.trees {
		pred += g.cfg.LearningRate * t.predict(features)
	}
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return 0, fmt.Errorf("%w: non-finite prediction", ErrInference)
	}
	return pred, nil
}

func trainGBT(X [][]float64, y []float64, cfg gbtConfig) *GBTRegressor {
	n := len(X)
	rng := rand.New(rand.NewSource(cfg.Seed))

	base := mean(y)
	residuals := make([]float64, n)
	for i := range y {
		residuals[i] = y[i] - base
	}

	rowSample := int(math.Ceil(cfg.Subsample * float64(n)))
	if rowSample < 1 {
		rowSample = 1
	}
	colSample := int(math.Ceil(cfg.ColSample * float64(numFeatures)))
	if colSample < 1 {
		colSample = 1
	}

	g := &GBTRegressor{cfg: cfg, base: base}
	for round := 0; round < cfg.NEstimators; round++ {
		rows := rng.Perm(n)[:rowSample]
		cols := rng.Perm(numFeatures)[:colSample]
		sort.Ints(rows)
		sort.Ints(cols)

		tree := buildTree(X, residuals, rows, cols, cfg.MaxDepth)
		g.trees = append(g.trees, tree)

		// Update residuals on the full training set.
		for i := range residuals {
			residuals[i] -= cfg.LearningRate * tree.predict(X[i])
		}
	}
	return g
}

// buildTree fits a regression tree to residuals over the given row subset,
// splitting on the feature/threshold pair with the largest SSE reduction.
func buildTree(X [][]float64, residuals []float64, rows []int, features []int, depth int) *treeNode {
	leaf := &treeNode{value: meanAt(residuals, rows)}
	if depth <= 0 || len(rows) < 2 {
		return leaf
	}

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	parentSSE := sseAt(residuals, rows, leaf.value)

	for _, f := range features {
		ordered := make([]int, len(rows))
		copy(ordered, rows)
		sort.Slice(ordered, func(i, j int) bool {
			return X[ordered[i]][f] < X[ordered[j]][f]
		})

		// Prefix sums over targets in feature order let each candidate
		// split be scored in O(1).
		total, totalSq := 0.0, 0.0
		for _, r := range ordered {
			total += residuals[r]
			totalSq += residuals[r] * residuals[r]
		}

		leftSum, leftSq := 0.0, 0.0
		for i := 0; i < len(ordered)-1; i++ {
			r := ordered[i]
			leftSum += residuals[r]
			leftSq += residuals[r] * residuals[r]

			cur, next := X[r][f], X[ordered[i+1]][f]
			if cur == next {
				continue
			}

			nl := float64(i + 1)
			nr := float64(len(ordered) - i - 1)
			leftSSE := leftSq - leftSum*leftSum/nl
			rightSum := total - leftSum
			rightSSE := (totalSq - leftSq) - rightSum*rightSum/nr

			gain := parentSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return leaf
	}

	var left, right []int
	for _, r := range rows {
		if X[r][bestFeature] < bestThreshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      buildTree(X, residuals, left, features, depth-1),
		right:     buildTree(X, residuals, right, features, depth-1),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanAt(values []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += values[i]
	}
	return sum / float64(len(idx))
}

func sseAt(values []float64, idx []int, m float64) float64 {
	sse := 0.0
	for _, i := range idx {
		d := values[i] - m
		sse += d * d
	}
	return sse
}
