// Package supercat defines SuperCategory, the node type of the parse
// forest, and the arena that owns its storage for the lifetime of a chart.
package supercat

import "github.com/nlplab-oss/ccgchart/dependency"

// Category is the grammatical category carried by a SuperCategory node. Its
// internal shape is opaque to this package and to the chart: it is produced
// and interpreted entirely by the external rule engine.
type Category = any

// VarFrame tracks, for the variables free in a node's category, which word
// index (if any) has been bound as their head. It is opaque scaffolding for
// head/filler tracking consumed by the rule engine and the scorer's
// dependency-filling step; this package only carries it along.
type VarFrame map[int]int

// Clone returns a shallow copy of the frame, used when a unary or binary
// rule derives a child frame from a parent's without mutating the parent.
func (f VarFrame) Clone() VarFrame {
	if f == nil {
		return nil
	}
	c := make(VarFrame, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// SuperCategory is a node in the parse forest: a grammatical category
// carrying variable bindings, filled dependencies, and a score.
//
// Structural fields (Category, FilledDeps, Left, Right, VarFrame,
// LogPScore, LeafWordIndex) are fixed at construction and never mutated
// once the node is inserted into a cell. Score and LogDepNNScore are the
// only fields the Scorer is permitted to assign, and each exactly once.
type SuperCategory struct {
	Category   Category
	FilledDeps []dependency.FilledDependency

	// Left and Right are borrowed references into the owning chart's
	// arena, valid only until that chart is cleared. Right == nil means
	// this node is either a leaf (Left == nil too) or a unary expansion
	// of Left. No cycles exist by construction: a node's children are
	// always built, and inserted into an earlier (narrower) cell, before
	// the node itself.
	Left  *SuperCategory
	Right *SuperCategory

	VarFrame VarFrame

	// LogPScore is the lexical probability assigned to a leaf by the
	// supertagger. It is meaningless (left at zero) for non-leaf nodes.
	LogPScore float64

	// LeafWordIndex is the sentence position this node's single word
	// occupies when it is a leaf (Left == nil). Unary and binary nodes
	// leave it at its zero value, so it carries meaning only on leaves.
	LeafWordIndex int

	// Score is the cumulative linear-model score assigned by the Scorer.
	Score float64

	// HasDepNNScore and LogDepNNScore record whether a dependency-neural
	// scorer was attached when this node was scored, and its
	// contribution if so.
	HasDepNNScore bool
	LogDepNNScore float64

	// scored guards the "calcScoreLeaf must not be invoked twice for the
	// same leaf" precondition.
	scored bool

	// seq is the insertion sequence number assigned by the owning
	// arena, used as the frozen tiebreaker among equal scores.
	seq uint64
}

// IsLeaf reports whether this node has no children.
func (s *SuperCategory) IsLeaf() bool {
	return s.Left == nil && s.Right == nil
}

// IsUnary reports whether this node has exactly one child.
func (s *SuperCategory) IsUnary() bool {
	return s.Left != nil && s.Right == nil
}

// IsBinary reports whether this node has two children.
func (s *SuperCategory) IsBinary() bool {
	return s.Left != nil && s.Right != nil
}

// Scored reports whether the Scorer has already assigned Score to this
// node. Used to enforce the no-double-scoring invariant.
func (s *SuperCategory) Scored() bool {
	return s.scored
}

// MarkScored records that the Scorer has assigned Score to this node. It is
// exported for use by the scorer package, which lives outside this package
// to avoid a dependency cycle with the weight/feature collaborators.
func (s *SuperCategory) MarkScored() {
	s.scored = true
}

// Seq returns the insertion sequence number assigned by the arena that
// allocated this node, frozen as the tiebreaker for equal-score ordering.
func (s *SuperCategory) Seq() uint64 {
	return s.seq
}
