// Package combine implements the binary Combiner: plain full
// Cartesian-product enumeration, and an approximate but sorted k-best
// cube-pruning mode that never materializes the full product.
package combine

import (
	"container/heap"
	"fmt"

	"github.com/nlplab-oss/ccgchart/chart"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// Combiner applies every binary combinatory rule to a pair of cells,
// producing scored supercategories for a target cell. Combiner holds
// reusable scratch buffers; a single instance is not safe for concurrent
// use, matching the driver's own scratch-buffer ownership.
type Combiner struct {
	Rules       model.Rules
	Scorer      *scorer.Scorer
	CubePruning bool
	BeamSize    int // k: the cube-pruning target count; plain mode does not read it

	ruleResults []model.RuleResult
}

// New builds a Combiner. In cube-pruning mode, beamSize <= 0 makes every
// combine enumerate the full product (the frontier search is never used);
// otherwise beamSize is the k-best target count, and a product of at most
// beamSize pairs is still enumerated in full.
func New(rules model.Rules, sc *scorer.Scorer, cubePruning bool, beamSize int) *Combiner {
	return &Combiner{Rules: rules, Scorer: sc, CubePruning: cubePruning, BeamSize: beamSize}
}

// Combine applies left x right to target. In plain mode every result is
// scored and appended directly to target's committed list. In cube-pruning
// mode, results are scored and appended to target's staging list; the
// caller is responsible for calling target.CombinePreSuperCategories once
// all splits for target have been combined.
//
// Preconditions (cube-pruning mode only): left and right must already be
// sorted descending by score, which ApplyBeam guarantees for any cell that
// has been through a fill step.
func (c *Combiner) Combine(arena *supercat.Arena, left, right *chart.Cell, target *chart.Cell, sentence model.Sentence, atRoot bool) error {
	L := left.SuperCategories()
	R := right.SuperCategories()
	if len(L) == 0 || len(R) == 0 {
		return nil
	}

	if !c.CubePruning {
		return c.plain(arena, L, R, target, sentence, atRoot)
	}
	if c.BeamSize <= 0 || len(L)*len(R) <= c.BeamSize {
		return c.fullIntoStaging(arena, L, R, target, sentence, atRoot)
	}
	return c.cube(arena, L, R, target, sentence, atRoot)
}

// materialize wraps one rule-engine result into a chart-owned node, links
// its children, and scores it.
func (c *Combiner) materialize(arena *supercat.Arena, rr model.RuleResult, left, right *supercat.SuperCategory, sentence model.Sentence, atRoot bool) (*supercat.SuperCategory, error) {
	node := arena.New()
	node.Category = rr.Category
	node.FilledDeps = rr.Deps
	node.VarFrame = rr.Frame
	node.Left = left
	node.Right = right
	if err := c.Scorer.CalcScoreBinary(node, sentence, atRoot); err != nil {
		return nil, fmt.Errorf("combine: %w", err)
	}
	return node, nil
}

// plain enumerates the full Cartesian product and appends every scored
// result directly to target's committed list.
func (c *Combiner) plain(arena *supercat.Arena, L, R []*supercat.SuperCategory, target *chart.Cell, sentence model.Sentence, atRoot bool) error {
	for _, l := range L {
		for _, r := range R {
			c.ruleResults = c.ruleResults[:0]
			c.Rules.Combine(l, r, sentence, &c.ruleResults)
			for _, rr := range c.ruleResults {
				node, err := c.materialize(arena, rr, l, r, sentence, atRoot)
				if err != nil {
					return err
				}
				target.AddNoDP(node)
			}
		}
	}
	return nil
}

// fullIntoStaging is the cube-pruning mode's fallback when |L|*|R| <= k: it
// enumerates the whole product but stages results instead of committing
// them directly, since the caller still owns the merge-and-cap step across
// all of a cell's splits.
func (c *Combiner) fullIntoStaging(arena *supercat.Arena, L, R []*supercat.SuperCategory, target *chart.Cell, sentence model.Sentence, atRoot bool) error {
	for _, l := range L {
		for _, r := range R {
			c.ruleResults = c.ruleResults[:0]
			c.Rules.Combine(l, r, sentence, &c.ruleResults)
			for _, rr := range c.ruleResults {
				node, err := c.materialize(arena, rr, l, r, sentence, atRoot)
				if err != nil {
					return err
				}
				target.StagePre(node)
			}
		}
	}
	return nil
}

// pairCoord is a frontier coordinate into the (L, R) product.
type pairCoord struct {
	li, ri int
}

// cube implements the k-best frontier search: a FIFO of
// frontier pairs to expand, a priority queue of candidate results ordered
// by score descending (with a sentinel for rule-less pairs so their
// neighbours are still explored), and a visited matrix preventing
// re-enqueuing a pair.
//
// This yields an approximate but sorted k-best of the product. The
// approximation follows from monotonicity: moving down either axis cannot
// increase the rule-combined score, provided the rule contribution is
// non-positive relative to the child sum — an empirical assumption, not a
// guarantee this package can check.
func (c *Combiner) cube(arena *supercat.Arena, L, R []*supercat.SuperCategory, target *chart.Cell, sentence model.Sentence, atRoot bool) error {
	k := c.BeamSize
	nl, nr := len(L), len(R)

	visited := make(map[pairCoord]bool, k*4)
	pairs := []pairCoord{{0, 0}}
	visited[pairCoord{0, 0}] = true

	q := &resultQueue{}
	heap.Init(q)
	var seq int

	var kbest []*supercat.SuperCategory
	for len(kbest) < k {
		for _, p := range pairs {
			c.ruleResults = c.ruleResults[:0]
			c.Rules.Combine(L[p.li], R[p.ri], sentence, &c.ruleResults)
			if len(c.ruleResults) == 0 {
				heap.Push(q, &resultItem{li: p.li, ri: p.ri, seq: seq})
				seq++
				continue
			}
			for _, rr := range c.ruleResults {
				node, err := c.materialize(arena, rr, L[p.li], R[p.ri], sentence, atRoot)
				if err != nil {
					return err
				}
				heap.Push(q, &resultItem{node: node, li: p.li, ri: p.ri, seq: seq})
				seq++
			}
		}
		pairs = pairs[:0]

		if q.Len() == 0 {
			break
		}
		top := heap.Pop(q).(*resultItem)
		if top.node != nil {
			kbest = append(kbest, top.node)
		}

		neighbours := [2]pairCoord{{top.li + 1, top.ri}, {top.li, top.ri + 1}}
		for _, nb := range neighbours {
			if nb.li < nl && nb.ri < nr && !visited[nb] {
				visited[nb] = true
				pairs = append(pairs, nb)
			}
		}
	}

	// kbest is already produced in descending order (each pop is the
	// current frontier maximum); sort again explicitly rather than rely
	// on that invariant holding exactly under tie-breaking.
	sortNodesByScoreDesc(kbest)
	target.StagePre(kbest...)
	return nil
}
