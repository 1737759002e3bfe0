package tester

import (
	"testing"

	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/driver"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
	"github.com/nlplab-oss/ccgchart/supercat"
)

type twoWordSentence struct{}

func (twoWordSentence) Len() int             { return 2 }
func (twoWordSentence) Word(int) string      { return "" }
func (twoWordSentence) POS(int) string       { return "X" }
func (twoWordSentence) LexiconID(string) int { return 0 }
func (twoWordSentence) Supertags(i int) []model.SupertagCandidate {
	return []model.SupertagCandidate{{Category: "cat", LogProb: 0}}
}

type combineToRoot struct{}

func (combineToRoot) Combine(left, right *supercat.SuperCategory, _ model.Sentence, out *[]model.RuleResult) {
	d, _ := dependency.New(1, 1, 1, 0, 0, 0)
	*out = append(*out, model.RuleResult{Category: "S", Deps: []dependency.FilledDependency{d.Fill(left.LeafWordIndex)}})
}
func (combineToRoot) TypeChange([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {}
func (combineToRoot) TypeRaise([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult)  {}

type neverCombine struct{}

func (neverCombine) Combine(*supercat.SuperCategory, *supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {
}
func (neverCombine) TypeChange([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {}
func (neverCombine) TypeRaise([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult)  {}

type noFeatures struct{}

func (noFeatures) CollectLeafFeatures(*supercat.SuperCategory, model.Sentence, *[]int)   {}
func (noFeatures) CollectUnaryFeatures(*supercat.SuperCategory, model.Sentence, *[]int)  {}
func (noFeatures) CollectBinaryFeatures(*supercat.SuperCategory, model.Sentence, *[]int) {}
func (noFeatures) CollectRootFeatures(*supercat.SuperCategory, model.Sentence, *[]int)   {}

func newDriver(rules model.Rules) *driver.Driver {
	cfg := &model.Config{BeamSize: 4, Beta: -100, LexicalBeta: -100, MaxWords: 10, MaxSuperCats: 1000}
	sc := scorer.New(noFeatures{}, model.NewMapWeights(nil, 0), nil, nil)
	return driver.New(cfg, rules, sc, driver.Hooks{})
}

func TestRunnerPassesWhenDependencySetMatches(t *testing.T) {
	r := &Runner{Driver: newDriver(combineToRoot{})}
	results := r.Run([]Case{
		{
			Name:         "two words combine",
			Sentence:     twoWordSentence{},
			WantDeps:     []string{"dep(rel=1 head=1 var=1 unary=0 lrange=0 conj=0)->filler=0"},
			WantOutcome:  driver.Parsed,
			CheckOutcome: true,
		},
	})
	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}
	if !results[0].Passed() {
		t.Fatalf("expected pass, got %v", results[0])
	}
}

func TestRunnerReportsMissingDependency(t *testing.T) {
	r := &Runner{Driver: newDriver(neverCombine{})}
	results := r.Run([]Case{
		{
			Name:     "never combines",
			Sentence: twoWordSentence{},
			WantDeps: []string{"dep(rel=1 head=1 var=1 unary=0 lrange=0 conj=0)->filler=0"},
		},
	})
	if results[0].Passed() {
		t.Fatal("expected failure due to missing dependency")
	}
	if len(results[0].Missing) != 1 {
		t.Fatalf("want 1 missing dependency, got %d", len(results[0].Missing))
	}
}
