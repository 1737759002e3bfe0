// Package scorer implements the recursive score accumulation over a
// derivation subtree: leaf, unary, binary and root feature contributions,
// plus the optional per-dependency neural score.
package scorer

import (
	"fmt"
	"math"

	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// Scorer accumulates scores over derivation nodes using the injected
// collaborators. It holds one reusable feature-ID scratch buffer, owned
// exclusively by this Scorer and not safe to share across concurrently
// running parses.
type Scorer struct {
	Features model.Features
	Weights  model.Weights
	DepNN    model.DepNN // nil disables the neural term entirely
	Ignore   model.DependencyIgnorePolicy

	// EnableFeatureCrossProduct gates CollectDiagnosticFeatures, a
	// debug-only extraction path that can enumerate up to 14 nested
	// loops over word/POS set families; off by default.
	EnableFeatureCrossProduct bool

	featureIDs []int
}

// New builds a Scorer. ignore may be nil, in which case no dependency is
// ever ignored (model.NoIgnorePolicy semantics).
func New(features model.Features, weights model.Weights, depNN model.DepNN, ignore model.DependencyIgnorePolicy) *Scorer {
	if ignore == nil {
		ignore = model.NoIgnorePolicy{}
	}
	return &Scorer{Features: features, Weights: weights, DepNN: depNN, Ignore: ignore}
}

// AttachDepNN installs dn as the scorer's neural dependency predictor,
// unconditionally replacing whatever was previously attached (including
// nil). An earlier re-instantiation method only replaced a model that was
// already attached, which left a fresh-start attach silently ignored; this
// method always treats the call as "attach a model from this path."
func (s *Scorer) AttachDepNN(dn model.DepNN) {
	s.DepNN = dn
}

// CollectDiagnosticFeatures runs the optional, expensive diagnostic
// feature-enumeration path when both EnableFeatureCrossProduct is
// set and Features implements model.DiagnosticFeatures. It is never called
// from CalcScore*; callers invoke it explicitly for debugging.
func (s *Scorer) CollectDiagnosticFeatures(node *supercat.SuperCategory, sentence model.Sentence) []int {
	if !s.EnableFeatureCrossProduct {
		return nil
	}
	df, ok := s.Features.(model.DiagnosticFeatures)
	if !ok {
		return nil
	}
	var out []int
	df.CollectDiagnosticFeatures(node, sentence, &out)
	return out
}

// sumWeights collects featureIDs into the scorer's scratch buffer via
// collect, then sums their weights. The scratch buffer is reset before
// every call, so results never leak between calls.
func (s *Scorer) sumWeights(collect func(out *[]int)) float64 {
	s.featureIDs = s.featureIDs[:0]
	collect(&s.featureIDs)
	var total float64
	for _, f := range s.featureIDs {
		total += s.Weights.GetWeight(f)
	}
	return total
}

// CalcScoreLeaf assigns node.Score for a leaf node: its lexical probability
// plus the weighted sum of its leaf features, then mixes in the neural
// dependency term if a DepNN is attached. It is a precondition violation to
// call this twice on the same node (no-double-scoring
// invariant); that is a structural bug in the caller, so it is reported as
// an error rather than silently re-scoring.
func (s *Scorer) CalcScoreLeaf(node *supercat.SuperCategory, sentence model.Sentence) error {
	if node.Scored() {
		return fmt.Errorf("scorer: calcScoreLeaf invoked twice for leaf at word %d", node.LeafWordIndex)
	}
	node.Score = node.LogPScore + s.sumWeights(func(out *[]int) {
		s.Features.CollectLeafFeatures(node, sentence, out)
	})
	s.mixDepNN(node, sentence)
	node.MarkScored()
	return nil
}

// CalcScoreUnary assigns node.Score for a unary-rule result: its single
// child's score plus the weighted sum of unary features.
func (s *Scorer) CalcScoreUnary(node *supercat.SuperCategory, sentence model.Sentence) error {
	if node.Left == nil || node.Right != nil {
		return fmt.Errorf("scorer: calcScoreUnary requires exactly one child")
	}
	node.Score = node.Left.Score + s.sumWeights(func(out *[]int) {
		s.Features.CollectUnaryFeatures(node, sentence, out)
	})
	s.mixDepNN(node, sentence)
	node.MarkScored()
	return nil
}

// CalcScoreBinary assigns node.Score for a binary combination result: the
// sum of both children's scores plus the weighted sum of binary features,
// and, when atRoot is true, additionally the weighted sum of root features
//.
func (s *Scorer) CalcScoreBinary(node *supercat.SuperCategory, sentence model.Sentence, atRoot bool) error {
	if node.Left == nil || node.Right == nil {
		return fmt.Errorf("scorer: calcScoreBinary requires two children")
	}
	total := node.Left.Score + node.Right.Score
	total += s.sumWeights(func(out *[]int) {
		s.Features.CollectBinaryFeatures(node, sentence, out)
	})
	if atRoot {
		total += s.sumWeights(func(out *[]int) {
			s.Features.CollectRootFeatures(node, sentence, out)
		})
	}
	node.Score = total
	s.mixDepNN(node, sentence)
	node.MarkScored()
	return nil
}

// mixDepNN adds the neural dependency term to node.Score when a DepNN
// collaborator is attached: logDepNNScore is the sum of log-probabilities
// over the node's filled dependencies that the ignore policy does not
// exclude, and the score gains w_depNN * logDepNNScore.
func (s *Scorer) mixDepNN(node *supercat.SuperCategory, sentence model.Sentence) {
	if s.DepNN == nil {
		return
	}
	var total float64
	for _, dep := range node.FilledDeps {
		if s.Ignore.Ignore(dep, sentence) {
			continue
		}
		attrs := attrsFromFilled(dep, sentence)
		p, err := s.DepNN.PredictSoft(attrs)
		if err != nil || p <= 0 {
			continue
		}
		total += math.Log(p)
	}
	node.LogDepNNScore = total
	node.HasDepNNScore = true
	node.Score += s.Weights.GetDepNNWeight() * total
}

// attrsFromFilled resolves the attribute tuple a neural dependency scorer
// conditions on — (head, dep, slot, headPOS, depPOS) — from a filled
// dependency and its sentence context, using the sentence's lexicon to
// resolve POS tag strings to stable IDs.
func attrsFromFilled(dep dependency.FilledDependency, sentence model.Sentence) model.DepAttrs {
	headPOS := 0
	if dep.HeadIndex >= 0 && dep.HeadIndex < sentence.Len() {
		headPOS = sentence.LexiconID(sentence.POS(dep.HeadIndex))
	}
	depPOS := 0
	if dep.FillerIndex >= 0 && dep.FillerIndex < sentence.Len() {
		depPOS = sentence.LexiconID(sentence.POS(dep.FillerIndex))
	}
	return model.DepAttrs{
		Head:    dep.HeadIndex,
		Dep:     dep.FillerIndex,
		Slot:    dep.RelID,
		HeadPOS: headPOS,
		DepPOS:  depPOS,
	}
}
