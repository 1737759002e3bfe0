package chart

import (
	"testing"

	"github.com/nlplab-oss/ccgchart/model"
)

type stubSentence struct {
	cands [][]model.SupertagCandidate
}

func (s *stubSentence) Len() int                                  { return len(s.cands) }
func (s *stubSentence) Word(i int) string                         { return "" }
func (s *stubSentence) POS(i int) string                          { return "" }
func (s *stubSentence) Supertags(i int) []model.SupertagCandidate { return s.cands[i] }
func (s *stubSentence) LexiconID(word string) int                 { return 0 }

func TestResetLaysOutTriangularChart(t *testing.T) {
	c := NewChart()
	c.Reset(3, 16)

	if c.N() != 3 {
		t.Fatalf("want N()==3, got %d", c.N())
	}
	// span j has n-j+1 cells: widths 3,2,1 for spans 1,2,3.
	for span, wantWidth := range map[int]int{1: 3, 2: 2, 3: 1} {
		for pos := 0; pos < wantWidth; pos++ {
			cell := c.Cell(pos, span)
			if cell.Position != pos || cell.Span != span {
				t.Fatalf("cell(%d,%d) has wrong coordinates: %+v", pos, span, cell)
			}
		}
	}
}

func TestRootReturnsFullSpanCell(t *testing.T) {
	c := NewChart()
	c.Reset(4, 8)
	root := c.Root()
	if root.Position != 0 || root.Span != 4 {
		t.Fatalf("want root at (0,4), got (%d,%d)", root.Position, root.Span)
	}
}

func TestCellPanicsOnOutOfBounds(t *testing.T) {
	c := NewChart()
	c.Reset(3, 8)

	cases := []struct{ pos, span int }{
		{-1, 1},
		{0, 0},
		{0, 4},
		{3, 1},
	}
	for _, tc := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for position=%d span=%d", tc.pos, tc.span)
				}
			}()
			c.Cell(tc.pos, tc.span)
		}()
	}
}

func TestResetDropsPreviousAllocations(t *testing.T) {
	c := NewChart()
	c.Reset(2, 8)
	c.Arena().New()
	c.Arena().New()
	if c.Count() != 2 {
		t.Fatalf("want Count()==2 before reset, got %d", c.Count())
	}
	c.Reset(2, 8)
	if c.Count() != 0 {
		t.Fatalf("want Count()==0 immediately after Reset, got %d", c.Count())
	}
}

func TestLoadLeavesFiltersByLexicalBeta(t *testing.T) {
	sent := &stubSentence{
		cands: [][]model.SupertagCandidate{
			{
				{Category: "N", LogProb: -0.1},
				{Category: "V", LogProb: -5.0}, // well below threshold, dropped
				{Category: "Adj", LogProb: -0.5},
			},
		},
	}
	c := NewChart()
	c.Reset(1, 8)
	c.LoadLeaves(sent, -1.0)

	cell := c.Cell(0, 1)
	if cell.Len() != 2 {
		t.Fatalf("want 2 surviving candidates within logBeta=-1.0 of max, got %d", cell.Len())
	}
	for _, n := range cell.SuperCategories() {
		if n.LeafWordIndex != 0 {
			t.Fatalf("want LeafWordIndex==0, got %d", n.LeafWordIndex)
		}
		if n.LogPScore < -1.1 {
			t.Fatalf("surviving candidate %v scored below the beta cutoff", n.LogPScore)
		}
	}
}

func TestLoadLeavesZeroBetaKeepsOnlyTiedMax(t *testing.T) {
	sent := &stubSentence{
		cands: [][]model.SupertagCandidate{
			{
				{Category: "N", LogProb: -0.1},
				{Category: "V", LogProb: -0.1},
				{Category: "Adj", LogProb: -9.0},
			},
		},
	}
	c := NewChart()
	c.Reset(1, 8)
	c.LoadLeaves(sent, 0)

	cell := c.Cell(0, 1)
	if cell.Len() != 2 {
		t.Fatalf("want only the two tied-max candidates to survive, got %d", cell.Len())
	}
}
