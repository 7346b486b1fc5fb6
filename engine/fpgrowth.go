package engine

import "sort"

// FP-growth frequent-itemset mining, restricted to itemsets of size one and
// two. Baskets are item-id sets; supports are fractions of the basket count.
// With the size cap at two, mining a conditional pattern base reduces to
// walking each item's node links up the tree and accumulating ancestor
// counts, which this implementation does directly.

type fpNode struct {
	item     int
	count    int
	parent   *fpNode
	children map[int]*fpNode
}

type itemSupport struct {
	Item    int
	Support float64
}

type pairSupport struct {
	A, B    int // A < B
	Support float64
}

// minePairs returns the frequent single items and frequent pairs at
// minSupport over the given baskets.
func minePairs(baskets [][]int, minSupport float64) ([]itemSupport, []pairSupport) {
	n := len(baskets)
	if n == 0 {
		return nil, nil
	}

	counts := make(map[int]int)
	for _, basket := range baskets {
		for _, item := range basket {
			counts[item]++
		}
	}

	frequent := make(map[int]int)
	for item, c := range counts {
		if float64(c)/float64(n) >= minSupport {
			frequent[item] = c
		}
	}
	if len(frequent) == 0 {
		return nil, nil
	}

	// Canonical FP ordering: count descending, item id ascending.
	order := make([]int, 0, len(frequent))
	for item := range frequent {
		order = append(order, item)
	}
	sort.Slice(order, func(i, j int) bool {
		if frequent[order[i]] != frequent[order[j]] {
			return frequent[order[i]] > frequent[order[j]]
		}
		return order[i] < order[j]
	})
	rank := make(map[int]int, len(order))
	for i, item := range order {
		rank[item] = i
	}

	root := &fpNode{item: -1, children: make(map[int]*fpNode)}
	header := make(map[int][]*fpNode)

	for _, basket := range baskets {
		var items []int
		for _, item := range basket {
			if _, ok := frequent[item]; ok {
				items = append(items, item)
			}
		}
		sort.Slice(items, func(i, j int) bool { return rank[items[i]] < rank[items[j]] })

		node := root
		for _, item := range items {
			child, ok := node.children[item]
			if !ok {
				child = &fpNode{item: item, parent: node, children: make(map[int]*fpNode)}
				node.children[item] = child
				header[item] = append(header[item], child)
			}
			child.count++
			node = child
		}
	}

	singles := make([]itemSupport, 0, len(order))
	for _, item := range order {
		singles = append(singles, itemSupport{Item: item, Support: float64(frequent[item]) / float64(n)})
	}

	var pairs []pairSupport
	for _, item := range order {
		// Conditional counts of every ancestor co-occurring with item.
		cond := make(map[int]int)
		for _, node := range header[item] {
			for p := node.parent; p != nil && p.item >= 0; p = p.parent {
				cond[p.item] += node.count
			}
		}
		for other, c := range cond {
			if float64(c)/float64(n) < minSupport {
				continue
			}
			a, b := item, other
			if a > b {
				a, b = b, a
			}
			pairs = append(pairs, pairSupport{A: a, B: b, Support: float64(c) / float64(n)})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return singles, pairs
}
