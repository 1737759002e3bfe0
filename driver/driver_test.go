package driver

import (
	"testing"

	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
	"github.com/nlplab-oss/ccgchart/supercat"
)

type word struct {
	cat   string
	logP  float64
}

type stubSentence struct {
	words []word
}

func (s *stubSentence) Len() int     { return len(s.words) }
func (s *stubSentence) Word(i int) string { return s.words[i].cat }
func (s *stubSentence) POS(i int) string  { return "X" }
func (s *stubSentence) Supertags(i int) []model.SupertagCandidate {
	return []model.SupertagCandidate{{Category: s.words[i].cat, LogProb: s.words[i].logP}}
}
func (s *stubSentence) LexiconID(string) int { return 0 }

// alwaysCombines combines any two leaf/derived categories into a single "S",
// and never applies a unary rule, so a 2+ word sentence always reaches a
// non-empty root cell.
type alwaysCombines struct{}

func (alwaysCombines) Combine(left, right *supercat.SuperCategory, _ model.Sentence, out *[]model.RuleResult) {
	d, _ := dependency.New(1, 1, 1, 0, 0, 0)
	*out = append(*out, model.RuleResult{Category: "S", Deps: []dependency.FilledDependency{d.Fill(left.LeafWordIndex)}})
}
func (alwaysCombines) TypeChange([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {}
func (alwaysCombines) TypeRaise([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult)  {}

// neverCombines never produces a binary result, forcing the root cell to
// stay empty regardless of sentence length.
type neverCombines struct{}

func (neverCombines) Combine(*supercat.SuperCategory, *supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {
}
func (neverCombines) TypeChange([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult) {}
func (neverCombines) TypeRaise([]*supercat.SuperCategory, model.Sentence, *[]model.RuleResult)  {}

type noFeatures struct{}

func (noFeatures) CollectLeafFeatures(*supercat.SuperCategory, model.Sentence, *[]int)   {}
func (noFeatures) CollectUnaryFeatures(*supercat.SuperCategory, model.Sentence, *[]int)  {}
func (noFeatures) CollectBinaryFeatures(*supercat.SuperCategory, model.Sentence, *[]int) {}
func (noFeatures) CollectRootFeatures(*supercat.SuperCategory, model.Sentence, *[]int)   {}

func baseConfig() *model.Config {
	return &model.Config{
		CubePruning:  false,
		BeamSize:     4,
		Beta:         -100,
		LexicalBeta:  -100,
		MaxWords:     10,
		MaxSuperCats: 1000,
	}
}

func TestParseSentenceReachesRootWhenRulesAlwaysCombine(t *testing.T) {
	cfg := baseConfig()
	sc := scorer.New(noFeatures{}, model.NewMapWeights(nil, 0), nil, nil)
	d := New(cfg, alwaysCombines{}, sc, Hooks{})

	sent := &stubSentence{words: []word{{"N", 0}, {"V", 0}, {"N", 0}}}
	res, err := d.ParseSentence(sent)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Parsed {
		t.Fatalf("want Parsed, got %v", res.Outcome)
	}
	if d.Chart().Root().IsEmpty() {
		t.Fatal("expected non-empty root cell")
	}
}

func TestParseSentenceExhaustedFallsBackToSkimmer(t *testing.T) {
	cfg := baseConfig()
	sc := scorer.New(noFeatures{}, model.NewMapWeights(nil, 0), nil, nil)
	d := New(cfg, neverCombines{}, sc, Hooks{})

	sent := &stubSentence{words: []word{{"N", 0}, {"V", 0}}}
	res, err := d.ParseSentence(sent)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Exhausted {
		t.Fatalf("want Exhausted, got %v", res.Outcome)
	}
	if len(res.SkimmedDeps) != 0 {
		t.Fatalf("want no deps from bare leaves, got %d", len(res.SkimmedDeps))
	}
}

func TestParseSentenceSkipsOverMaxWords(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxWords = 1
	sc := scorer.New(noFeatures{}, model.NewMapWeights(nil, 0), nil, nil)
	d := New(cfg, alwaysCombines{}, sc, Hooks{})

	sent := &stubSentence{words: []word{{"N", 0}, {"V", 0}}}
	res, err := d.ParseSentence(sent)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != SkippedMaxWords {
		t.Fatalf("want SkippedMaxWords, got %v", res.Outcome)
	}
}

func TestParseSentenceSkipsOverMaxSuperCats(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxSuperCats = 1
	sc := scorer.New(noFeatures{}, model.NewMapWeights(nil, 0), nil, nil)
	d := New(cfg, alwaysCombines{}, sc, Hooks{})

	sent := &stubSentence{words: []word{{"N", 0}, {"V", 0}, {"N", 0}}}
	res, err := d.ParseSentence(sent)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != SkippedMaxSuperCats {
		t.Fatalf("want SkippedMaxSuperCats, got %v", res.Outcome)
	}
}

func TestPreParseHookCanAbort(t *testing.T) {
	cfg := baseConfig()
	sc := scorer.New(noFeatures{}, model.NewMapWeights(nil, 0), nil, nil)
	called := false
	d := New(cfg, alwaysCombines{}, sc, Hooks{
		PreParse: func(model.Sentence) bool { called = true; return false },
	})

	sent := &stubSentence{words: []word{{"N", 0}, {"V", 0}}}
	res, err := d.ParseSentence(sent)
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("expected PreParse hook to be invoked")
	}
	if res.Outcome != Exhausted {
		t.Fatalf("want Exhausted after aborted pre-parse, got %v", res.Outcome)
	}
}
