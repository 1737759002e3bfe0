// Package model declares the collaborator contracts this parser treats as
// external — the grammar rule engine, the feature extractor, the
// weight table, the optional neural dependency scorer, and the sentence
// representation — plus concrete, swappable implementations of the weight
// table and neural scorer facade.
package model

import (
	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// SupertagCandidate is one candidate lexical category for a word position,
// as produced by an upstream supertagger, paired with its initial lexical
// log-probability.
type SupertagCandidate struct {
	Category supercat.Category
	LogProb  float64
}

// Sentence is the ordered input to a parse: words, part-of-speech tags, and
// per-position supertag candidates, plus lexicon ID resolution. Sentence
// ingestion itself (building one of these from raw text) is out of scope
// here; this interface is only the read side the chart consumes.
type Sentence interface {
	Len() int
	Word(i int) string
	POS(i int) string
	Supertags(i int) []SupertagCandidate
	// LexiconID resolves a word to a stable integer ID through the
	// sentence's lexicon, used as an attribute by the neural dependency
	// scorer and by diagnostic feature enumeration.
	LexiconID(word string) int
}

// SentenceLoader is the out-of-scope collaborator that turns raw input
// (e.g. a supertagger's JSON output) into a Sentence. Declared here only by
// its signature.
type SentenceLoader interface {
	Load(path string) (Sentence, error)
}

// RuleResult is one outcome of applying a combinatory or unary rule: the
// resulting category, the filled dependencies produced at this node, and
// the variable frame carried forward. The rule engine never allocates a
// supercat.SuperCategory itself; the caller (Combiner/UnaryExpander) wraps
// each RuleResult into a chart-owned node and scores it.
type RuleResult struct {
	Category supercat.Category
	Deps     []dependency.FilledDependency
	Frame    supercat.VarFrame
}

// Rules is the grammar rule engine. Implementations never fail on the
// absence of an applicable rule; they simply append nothing to out. All
// three methods append to a caller-supplied collector rather than
// returning a slice, so the caller can reuse one scratch buffer across
// many calls within a cell fill.
type Rules interface {
	// Combine appends every result of applying a binary combinatory rule
	// to (left, right) to out.
	Combine(left, right *supercat.SuperCategory, sentence Sentence, out *[]RuleResult)
	// TypeChange appends every type-changing unary result derivable from
	// any member of source to out.
	TypeChange(source []*supercat.SuperCategory, sentence Sentence, out *[]RuleResult)
	// TypeRaise appends every type-raising unary result derivable from
	// any member of source to out.
	TypeRaise(source []*supercat.SuperCategory, sentence Sentence, out *[]RuleResult)
}

// Features is the feature extractor. Each method fills featureIDs found at
// node into out; out is a caller-owned scratch buffer, cleared by the
// caller before each call.
type Features interface {
	CollectLeafFeatures(node *supercat.SuperCategory, sentence Sentence, out *[]int)
	CollectUnaryFeatures(node *supercat.SuperCategory, sentence Sentence, out *[]int)
	CollectBinaryFeatures(node *supercat.SuperCategory, sentence Sentence, out *[]int)
	CollectRootFeatures(node *supercat.SuperCategory, sentence Sentence, out *[]int)
}

// DiagnosticFeatures is an optional extension a Features implementation may
// support: an expensive, debug-only feature enumeration (a Cartesian
// product of seven word-set × seven POS-set families, up to 14 nested
// loops). A Features value that does not implement this interface
// simply has no diagnostic path; the scorer checks via a type assertion and
// only calls it when explicitly enabled.
type DiagnosticFeatures interface {
	CollectDiagnosticFeatures(node *supercat.SuperCategory, sentence Sentence, out *[]int)
}

// Weights is the linear feature-weight table plus the neural mixing
// coefficient.
type Weights interface {
	GetWeight(featureID int) float64
	GetDepNNWeight() float64
}

// DepAttrs is the attribute tuple a neural dependency scorer conditions on.
type DepAttrs struct {
	Head    int
	Dep     int
	Slot    int
	HeadPOS int
	DepPOS  int
}

// DepNN is the optional learned neural dependency scorer. PredictSoft
// returns a probability in (0,1]; the scorer takes its log. A nil DepNN
// attached to a Weights user means the parser gracefully skips the neural
// term entirely.
type DepNN interface {
	PredictSoft(attrs DepAttrs) (float64, error)
}

// DependencyIgnorePolicy decides whether a filled dependency should be
// excluded from both feature extraction and neural scoring.
type DependencyIgnorePolicy interface {
	Ignore(dep dependency.FilledDependency, sentence Sentence) bool
}

// NoIgnorePolicy never ignores a dependency. It is the default when no
// policy is configured.
type NoIgnorePolicy struct{}

// Ignore always returns false.
func (NoIgnorePolicy) Ignore(dependency.FilledDependency, Sentence) bool { return false }
