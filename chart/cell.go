// Package chart implements the chart data structure: a triangular array of
// cells addressed by (position, span), each holding the supercategories
// derived over that span, and the β/beam pruning primitive.
package chart

import "github.com/nlplab-oss/ccgchart/supercat"

// Cell is the container of supercategories for one (position, span). It
// holds a committed, ordered list (superCategories) and a staging list
// (preSuperCategories) that only cube pruning populates.
type Cell struct {
	Position int
	Span     int

	superCategories    []*supercat.SuperCategory
	preSuperCategories []*supercat.SuperCategory
}

// expectedCapacity implements the reservation formula:
// (j−1)·beamSize²·2 for cells at width j > 1, covering combine enumerations
// plus unary-expansion headroom. Width-1 (lexical) cells get a small fixed
// reservation instead, since their size is bounded by the supertagger's
// candidate count, not the beam.
func expectedCapacity(span, beamSize int) int {
	if span <= 1 {
		return 8
	}
	cap := (span - 1) * beamSize * beamSize * 2
	if cap < 1 {
		cap = 1
	}
	return cap
}

// newCell allocates a Cell for (position, span) with its capacity
// pre-reserved.
func newCell(position, span, beamSize int) *Cell {
	c := expectedCapacity(span, beamSize)
	return &Cell{
		Position:        position,
		Span:            span,
		superCategories: make([]*supercat.SuperCategory, 0, c),
	}
}

// reset empties both lists while retaining their backing arrays, so the
// cell can be reused for the next sentence without reallocating.
func (c *Cell) reset() {
	c.superCategories = c.superCategories[:0]
	c.preSuperCategories = c.preSuperCategories[:0]
}

// SuperCategories returns the cell's committed, ordered contents. Callers
// must not retain the returned slice across a Chart.Reset.
func (c *Cell) SuperCategories() []*supercat.SuperCategory {
	return c.superCategories
}

// Len returns the number of committed supercategories.
func (c *Cell) Len() int {
	return len(c.superCategories)
}

// IsEmpty reports whether the cell has no committed supercategories.
func (c *Cell) IsEmpty() bool {
	return len(c.superCategories) == 0
}

// Best returns the highest-scoring committed supercategory, or nil if the
// cell is empty. Valid only after the cell has been sorted by ApplyBeam;
// CombinePreSuperCategories sorts only the staged entries it appends, and a
// cell that has never been pruned is not guaranteed to be sorted.
func (c *Cell) Best() *supercat.SuperCategory {
	if len(c.superCategories) == 0 {
		return nil
	}
	return c.superCategories[0]
}

// AddNoDP appends results to the cell's committed list without any
// duplicate-detection: this chart performs no equivalence-based
// deduplication, so every distinct node survives until the beam cap or
// β-cutoff removes it on score alone.
func (c *Cell) AddNoDP(results ...*supercat.SuperCategory) {
	c.superCategories = append(c.superCategories, results...)
}

// StagePre appends results to the cell's staging list, used by the
// cube-pruning Combiner to collect each split's k-best before they are
// merged across splits by CombinePreSuperCategories.
func (c *Cell) StagePre(results ...*supercat.SuperCategory) {
	c.preSuperCategories = append(c.preSuperCategories, results...)
}

// CombinePreSuperCategories merges the cell's staged per-split k-best lists
// into one, capped at k by score, and moves the survivors into the
// committed list.
func (c *Cell) CombinePreSuperCategories(k int) {
	if len(c.preSuperCategories) == 0 {
		return
	}
	sortByScoreDesc(c.preSuperCategories)
	if k > 0 && len(c.preSuperCategories) > k {
		c.preSuperCategories = c.preSuperCategories[:k]
	}
	c.superCategories = append(c.superCategories, c.preSuperCategories...)
	c.preSuperCategories = c.preSuperCategories[:0]
}
