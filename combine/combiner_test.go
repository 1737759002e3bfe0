package combine

import (
	"sort"
	"testing"

	"github.com/nlplab-oss/ccgchart/chart"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// pairCat is the synthetic category this test's stub rule engine produces:
// it remembers which (left, right) leaf indices combined to produce it, so
// the stub Features collaborator can derive a deterministic, monotonic
// contribution from it.
type pairCat struct {
	li, ri int
}

// oneRulePerPair is a stub Rules engine that always yields exactly one
// combination per (left, right) pair.
type oneRulePerPair struct{}

func (oneRulePerPair) Combine(left, right *supercat.SuperCategory, _ model.Sentence, out *[]model.RuleResult) {
	*out = append(*out, model.RuleResult{Category: pairCat{li: left.LeafWordIndex, ri: right.LeafWordIndex}})
}
func (oneRulePerPair) TypeChange([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {}
func (oneRulePerPair) TypeRaise([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult)  {}

// monotonicFeatures emits one feature ID per pairCat, encoding (li, ri) so
// monotonicWeights below can return a contribution that strictly decreases
// as either index grows — the monotonicity assumption the cube-pruning
// approximation rests on.
type monotonicFeatures struct{}

func (monotonicFeatures) CollectLeafFeatures(*supercat.SuperCategory, model.Sentence, *[]int) {}
func (monotonicFeatures) CollectUnaryFeatures(*supercat.SuperCategory, model.Sentence, *[]int) {}
func (monotonicFeatures) CollectBinaryFeatures(node *supercat.SuperCategory, _ model.Sentence, out *[]int) {
	pc := node.Category.(pairCat)
	*out = append(*out, pc.li*1000+pc.ri)
}
func (monotonicFeatures) CollectRootFeatures(*supercat.SuperCategory, model.Sentence, *[]int) {}

type monotonicWeights struct{}

func (monotonicWeights) GetWeight(featureID int) float64 {
	li, ri := featureID/1000, featureID%1000
	return -float64(3 * (li + ri))
}
func (monotonicWeights) GetDepNNWeight() float64 { return 0 }

type emptySentence struct{}

func (emptySentence) Len() int                                { return 0 }
func (emptySentence) Word(int) string                         { return "" }
func (emptySentence) POS(int) string                          { return "" }
func (emptySentence) Supertags(int) []model.SupertagCandidate { return nil }
func (emptySentence) LexiconID(string) int                    { return 0 }

// bruteForceTopK enumerates every (li, ri) combination the same way the
// Combiner would score it, and returns the top k scores descending.
func bruteForceTopK(nl, nr int, leftScore, rightScore func(int) float64, k int) []float64 {
	var scores []float64
	for li := 0; li < nl; li++ {
		for ri := 0; ri < nr; ri++ {
			contribution := -float64(3 * (li + ri))
			scores = append(scores, leftScore(li)+rightScore(ri)+contribution)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if len(scores) > k {
		scores = scores[:k]
	}
	return scores
}

func newTestCombiner(cube bool, beamSize int) *Combiner {
	sc := scorer.New(monotonicFeatures{}, monotonicWeights{}, nil, nil)
	return New(oneRulePerPair{}, sc, cube, beamSize)
}

func buildCell(arena *supercat.Arena, n int, weight float64) *chart.Cell {
	c := chart.NewChart()
	c.Reset(n, 0)
	cell := c.Cell(0, 1)
	for i := 0; i < n; i++ {
		node := arena.New()
		node.LeafWordIndex = i
		node.Score = -weight * float64(i)
		cell.AddNoDP(node)
	}
	cell.ApplyBeam(0, -1e18) // keep everything, just sort
	return cell
}

func TestPlainCombineTopKAfterBeam(t *testing.T) {
	arena := supercat.NewArena()
	left := buildCell(arena, 3, 1)
	right := buildCell(arena, 3, 7)

	outChart := chart.NewChart()
	outChart.Reset(2, 0)
	target := outChart.Cell(0, 2)

	c := newTestCombiner(false, 0)
	if err := c.Combine(arena, left, right, target, emptySentence{}, false); err != nil {
		t.Fatal(err)
	}
	target.ApplyBeam(2, -1e18)

	if target.Len() != 2 {
		t.Fatalf("expected beamSize=2 after ApplyBeam, got %d", target.Len())
	}
	want := bruteForceTopK(3, 3, func(i int) float64 { return -float64(i) }, func(i int) float64 { return -7 * float64(i) }, 2)
	for i, n := range target.SuperCategories() {
		if n.Score != want[i] {
			t.Fatalf("rank %d: want score %v, got %v", i, want[i], n.Score)
		}
	}
}

func TestCubePruningMatchesBruteForceTopKUnderMonotonicity(t *testing.T) {
	arena := supercat.NewArena()
	left := buildCell(arena, 4, 1)
	right := buildCell(arena, 4, 10)

	outChart := chart.NewChart()
	outChart.Reset(2, 0)
	target := outChart.Cell(0, 2)

	const k = 5
	c := newTestCombiner(true, k)
	if err := c.Combine(arena, left, right, target, emptySentence{}, false); err != nil {
		t.Fatal(err)
	}
	target.CombinePreSuperCategories(k)

	if target.Len() != k {
		t.Fatalf("expected %d results, got %d", k, target.Len())
	}
	want := bruteForceTopK(4, 4, func(i int) float64 { return -float64(i) }, func(i int) float64 { return -10 * float64(i) }, k)
	for i, n := range target.SuperCategories() {
		if n.Score != want[i] {
			t.Fatalf("rank %d: want score %v, got %v", i, want[i], n.Score)
		}
	}
}

func TestCubePruningFallsBackToFullEnumerationWhenProductFitsK(t *testing.T) {
	arena := supercat.NewArena()
	left := buildCell(arena, 2, 1)
	right := buildCell(arena, 2, 5)

	outChart := chart.NewChart()
	outChart.Reset(2, 0)
	target := outChart.Cell(0, 2)

	c := newTestCombiner(true, 10) // k=10 >= |L|*|R|=4
	if err := c.Combine(arena, left, right, target, emptySentence{}, false); err != nil {
		t.Fatal(err)
	}
	target.CombinePreSuperCategories(10)

	if target.Len() != 4 {
		t.Fatalf("expected all 4 combinations, got %d", target.Len())
	}
}
