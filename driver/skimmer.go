package driver

import (
	"github.com/nlplab-oss/ccgchart/chart"
	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// FilledDepRef is one filled dependency emitted by the skimmer, in
// left-to-right derivation order.
type FilledDepRef = dependency.FilledDependency

// Skim implements the fallback decoder invoked when the root
// cell is empty: greedily cover [0, n) with the widest-span non-empty cells
// available, breaking ties by score, recursing into whatever prefix and
// suffix the chosen cover leaves uncovered. It is total whenever every word
// position has at least one leaf supercategory.
func Skim(c *chart.Chart) []FilledDepRef {
	n := c.N()
	if n == 0 {
		return nil
	}
	return skimRange(c, 0, n)
}

func skimRange(c *chart.Chart, start, end int) []FilledDepRef {
	if start >= end {
		return nil
	}

	var (
		bestI, bestJ int
		best         *supercat.SuperCategory
	)
	for width := end - start; width >= 1; width-- {
		for i := start; i+width <= end; i++ {
			cell := c.Cell(i, width)
			cand := cell.Best()
			if cand == nil {
				continue
			}
			if best == nil || cand.Score > best.Score || (cand.Score == best.Score && cand.Seq() < best.Seq()) {
				best, bestI, bestJ = cand, i, width
			}
		}
		if best != nil {
			break
		}
	}
	if best == nil {
		return nil
	}

	var out []FilledDepRef
	out = append(out, skimRange(c, start, bestI)...)
	out = append(out, best.FilledDeps...)
	out = append(out, skimRange(c, bestI+bestJ, end)...)
	return out
}
