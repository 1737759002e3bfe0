package combine

import (
	"sort"

	"github.com/nlplab-oss/ccgchart/supercat"
)

// resultItem is one entry in the cube-pruning priority queue: either a
// scored supercategory or a sentinel (node == nil) carrying only the
// frontier coordinate it was produced from, so that coordinate's
// neighbours are still explored even when no rule applied there.
type resultItem struct {
	node   *supercat.SuperCategory
	li, ri int
	seq    int // insertion order, used to break ties among sentinels
}

// resultQueue is a max-heap by score, with sentinel entries (node == nil)
// always comparing as the smallest so that real supercategories surface
// before them.
type resultQueue []*resultItem

func (q resultQueue) Len() int { return len(q) }

func (q resultQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.node == nil && b.node == nil {
		return a.seq < b.seq
	}
	if a.node == nil {
		return false // sentinel never outranks a real result
	}
	if b.node == nil {
		return true
	}
	if a.node.Score != b.node.Score {
		return a.node.Score > b.node.Score
	}
	return a.node.Seq() < b.node.Seq()
}

func (q resultQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *resultQueue) Push(x any) {
	*q = append(*q, x.(*resultItem))
}

func (q *resultQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// sortNodesByScoreDesc sorts nodes descending by score, ties broken by
// insertion order — the same frozen tiebreaker chart.ApplyBeam uses.
func sortNodesByScoreDesc(nodes []*supercat.SuperCategory) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Score != nodes[j].Score {
			return nodes[i].Score > nodes[j].Score
		}
		return nodes[i].Seq() < nodes[j].Seq()
	})
}
