// Package unary implements the UnaryExpander: type-change then
// type-raise, applied once each to a cell's current committed contents,
// never recursively on their own outputs, and never at the full-sentence
// root span.
package unary

import (
	"fmt"

	"github.com/nlplab-oss/ccgchart/chart"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// Expander applies unary rules to a cell. Like Combiner, it owns a reusable
// scratch buffer and is not safe for concurrent use.
type Expander struct {
	Rules  model.Rules
	Scorer *scorer.Scorer

	ruleResults []model.RuleResult
}

// New builds an Expander.
func New(rules model.Rules, sc *scorer.Scorer) *Expander {
	return &Expander{Rules: rules, Scorer: sc}
}

// Expand runs typeChange then typeRaise over cell's committed contents at
// the time each is called, appending results into the same cell. atRoot
// must be true only for the cell spanning the whole sentence, in which case
// Expand is a no-op.
func (e *Expander) Expand(arena *supercat.Arena, cell *chart.Cell, sentence model.Sentence, atRoot bool) error {
	if atRoot {
		return nil
	}
	if err := e.typeChange(arena, cell, sentence); err != nil {
		return err
	}
	if err := e.typeRaise(arena, cell, sentence); err != nil {
		return err
	}
	return nil
}

// typeChange and typeRaise each call the rule engine once per source node
// rather than once for the whole cell: Rules.TypeChange/TypeRaise accept a
// list so an implementation can batch internally, but this package needs to
// know which source node produced which result in order to set it as the
// unary child, so it calls with a single-element source list each time.

func (e *Expander) typeChange(arena *supercat.Arena, cell *chart.Cell, sentence model.Sentence) error {
	for _, child := range cell.SuperCategories() {
		e.ruleResults = e.ruleResults[:0]
		e.Rules.TypeChange([]*supercat.SuperCategory{child}, sentence, &e.ruleResults)
		if err := e.materializeAndScore(arena, cell, child, sentence); err != nil {
			return err
		}
	}
	return nil
}

func (e *Expander) typeRaise(arena *supercat.Arena, cell *chart.Cell, sentence model.Sentence) error {
	for _, child := range cell.SuperCategories() {
		e.ruleResults = e.ruleResults[:0]
		e.Rules.TypeRaise([]*supercat.SuperCategory{child}, sentence, &e.ruleResults)
		if err := e.materializeAndScore(arena, cell, child, sentence); err != nil {
			return err
		}
	}
	return nil
}

// materializeAndScore wraps each pending rule result into an arena node
// whose Left child is child (unary nodes have Right == nil),
// scores it, and appends it to cell.
func (e *Expander) materializeAndScore(arena *supercat.Arena, cell *chart.Cell, child *supercat.SuperCategory, sentence model.Sentence) error {
	for _, rr := range e.ruleResults {
		node := arena.New()
		node.Category = rr.Category
		node.FilledDeps = rr.Deps
		node.VarFrame = rr.Frame
		node.Left = child
		if err := e.Scorer.CalcScoreUnary(node, sentence); err != nil {
			return fmt.Errorf("unary: %w", err)
		}
		cell.AddNoDP(node)
	}
	return nil
}
