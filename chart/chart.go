package chart

import (
	"fmt"
	"math"

	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// Chart is the fixed-capacity triangular array addressed by (position,
// span). Cells are laid out by width: cells[j-1]
// holds the n-j+1 cells of span j, indexed by position. The chart
// exclusively owns every supercategory allocated during a parse, via its
// Arena; Reset drops them all together.
type Chart struct {
	n        int
	beamSize int
	cells    [][]*Cell
	arena    *supercat.Arena
}

// NewChart creates an empty chart. Call Reset before first use to size it
// for a sentence.
func NewChart() *Chart {
	return &Chart{arena: supercat.NewArena()}
}

// Reset lays the chart out fresh for a sentence of n words with the given
// beam size, dropping every previously allocated supercategory.
func (c *Chart) Reset(n, beamSize int) {
	c.n = n
	c.beamSize = beamSize
	c.arena.Reset()

	if cap(c.cells) < n {
		c.cells = make([][]*Cell, n)
	} else {
		c.cells = c.cells[:n]
	}
	for j := 1; j <= n; j++ {
		row := c.cells[j-1]
		width := n - j + 1
		if cap(row) < width {
			row = make([]*Cell, width)
		} else {
			row = row[:width]
		}
		for i := 0; i < width; i++ {
			if row[i] == nil {
				row[i] = newCell(i, j, beamSize)
			} else {
				row[i].Position = i
				row[i].Span = j
				row[i].reset()
			}
		}
		c.cells[j-1] = row
	}
}

// N returns the sentence length this chart is currently sized for.
func (c *Chart) N() int {
	return c.n
}

// Arena exposes the chart's node allocator, used by Combiner and
// UnaryExpander to materialize rule-engine results as chart-owned nodes.
func (c *Chart) Arena() *supercat.Arena {
	return c.arena
}

// Count returns the number of supercategories allocated across the whole
// chart since the last Reset, used to enforce MAX_SUPERCATS.
func (c *Chart) Count() int {
	return c.arena.Len()
}

// Cell returns the slot for (position, span). Both 0 <= position and
// position+span <= n, span >= 1 must hold; an out-of-bounds request
// indicates a structural bug in the caller, so Cell panics rather than
// silently returning nil, mirroring how vartan's flat parsing-table
// indexing simply trusts its own computed indices.
func (c *Chart) Cell(position, span int) *Cell {
	if span < 1 || span > c.n || position < 0 || position+span > c.n {
		panic(fmt.Sprintf("chart: out-of-bounds cell request (position=%d, span=%d, n=%d)", position, span, c.n))
	}
	return c.cells[span-1][position]
}

// Root returns cell(0, n), the full-sentence span.
func (c *Chart) Root() *Cell {
	return c.Cell(0, c.n)
}

// LoadLeaves populates every width-1 cell from the sentence's supertag
// candidates, filtered by the supertagger's per-word β:
// a separate, tighter cutoff than the cell β used later in the fill. Only
// LogPScore is compared here; the feature-weighted Score is assigned
// afterwards by the scorer in the leaves pass.
func (c *Chart) LoadLeaves(sentence model.Sentence, lexicalLogBeta float64) {
	for i := 0; i < c.n; i++ {
		cands := sentence.Supertags(i)
		cell := c.Cell(i, 1)

		maxLogP := math.Inf(-1)
		for _, cand := range cands {
			if cand.LogProb > maxLogP {
				maxLogP = cand.LogProb
			}
		}
		threshold := maxLogP + lexicalLogBeta

		for _, cand := range cands {
			if cand.LogProb < threshold {
				continue
			}
			node := c.arena.New()
			node.Category = cand.Category
			node.LogPScore = cand.LogProb
			node.LeafWordIndex = i
			cell.AddNoDP(node)
		}
	}
}

