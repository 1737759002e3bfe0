package chart

import (
	"math"
	"sort"

	"github.com/nlplab-oss/ccgchart/supercat"
)

// sortByScoreDesc sorts nodes descending by score, breaking ties by
// insertion order (ascending sequence number). This is the one frozen
// tiebreaker this chart uses: ordering stability among equal-scored
// supercategories is otherwise unspecified, so this chart picks insertion
// order and keeps it.
func sortByScoreDesc(nodes []*supercat.SuperCategory) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Score != nodes[j].Score {
			return nodes[i].Score > nodes[j].Score
		}
		return nodes[i].Seq() < nodes[j].Seq()
	})
}

// ApplyBeam sorts descending by score, drops anything
// scoring below max+logBeta, then truncates to maxCount if maxCount > 0.
// logBeta == 0 keeps only nodes tied with the max; a negative logBeta
// widens the admitted band. maxCount == 0 disables the cap (β-only
// pruning), as used for the leaves pass.
//
// Postconditions: the cell is sorted descending by score, has size
// <= maxCount when maxCount > 0, and every retained score is within
// logBeta of the cell's maximum.
func (c *Cell) ApplyBeam(maxCount int, logBeta float64) {
	if len(c.superCategories) == 0 {
		return
	}
	sortByScoreDesc(c.superCategories)

	maxScore := c.superCategories[0].Score
	threshold := maxScore + logBeta
	if math.IsInf(logBeta, -1) {
		threshold = math.Inf(-1)
	}

	cut := len(c.superCategories)
	for i, n := range c.superCategories {
		if n.Score < threshold {
			cut = i
			break
		}
	}
	c.superCategories = c.superCategories[:cut]

	if maxCount > 0 && len(c.superCategories) > maxCount {
		c.superCategories = c.superCategories[:maxCount]
	}
}
