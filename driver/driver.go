// Package driver implements the ParserDriver CKY outer loop:
// clear chart, load leaves, score and unary-expand the leaves pass, fill
// widths 2..n via the Combiner, detect the root, and fall back to the
// skimmer when it is empty.
package driver

import (
	"time"

	"github.com/nlplab-oss/ccgchart/ccgerr"
	"github.com/nlplab-oss/ccgchart/chart"
	"github.com/nlplab-oss/ccgchart/combine"
	"github.com/nlplab-oss/ccgchart/diag"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/scorer"
	"github.com/nlplab-oss/ccgchart/unary"
)

// Hooks are the preParse/postParse extension points re-expressed
// as an injected pair of optional closures rather than subclassing. Either
// field may be left nil.
type Hooks struct {
	// PreParse runs immediately after leaves are loaded. Returning false
	// aborts the parse before any scoring happens, leaving the driver's
	// chart in its just-loaded state.
	PreParse func(sentence model.Sentence) bool
	// PostParse runs once at the end of every ParseSentence call that
	// returns a Result, regardless of Outcome, and cannot change it.
	PostParse func(sentence model.Sentence, result *Result)
}

// Result is what one parseSentence call reports back.
type Result struct {
	Outcome Outcome
	Chart   *chart.Chart
	// SkimmedDeps is populated only when Outcome == Exhausted: the
	// concatenation, left to right, of the filled dependencies of the
	// skimmer's chosen cover.
	SkimmedDeps []FilledDepRef
}

// Driver is a single-threaded ParserDriver: not safe for
// concurrent parseSentence calls, since it owns its chart and every scratch
// buffer the Combiner and Expander reuse across cells.
type Driver struct {
	Rules  model.Rules
	Scorer *scorer.Scorer

	CubePruning bool
	BeamSize    int
	Beta        float64 // log-space cell cutoff
	LexicalBeta float64 // separate, tighter leaf cutoff

	MaxWords     int
	MaxSuperCats int

	Hooks Hooks

	// Diag, when set, receives one Record per ParseSentence call. A nil
	// Diag is never invoked.
	Diag diag.Sink

	chart    *chart.Chart
	combiner *combine.Combiner
	expander *unary.Expander
}

// New builds a Driver from a resolved Config and its collaborators.
func New(cfg *model.Config, rules model.Rules, sc *scorer.Scorer, hooks Hooks) *Driver {
	d := &Driver{
		Rules:        rules,
		Scorer:       sc,
		CubePruning:  cfg.CubePruning,
		BeamSize:     cfg.BeamSize,
		Beta:         cfg.Beta,
		LexicalBeta:  cfg.LexicalBeta,
		MaxWords:     cfg.MaxWords,
		MaxSuperCats: cfg.MaxSuperCats,
		Hooks:        hooks,
	}
	d.chart = chart.NewChart()
	d.combiner = combine.New(rules, sc, cfg.CubePruning, cfg.BeamSize)
	d.expander = unary.New(rules, sc)
	return d
}

// Chart exposes the driver's reused chart, valid until the next
// ParseSentence call.
func (d *Driver) Chart() *chart.Chart {
	return d.chart
}

// ParseSentence runs the full CKY algorithm over sentence.
func (d *Driver) ParseSentence(sentence model.Sentence) (*Result, error) {
	start := time.Now()
	n := sentence.Len()
	if n > d.MaxWords {
		res := &Result{Outcome: SkippedMaxWords}
		if d.Hooks.PostParse != nil {
			d.Hooks.PostParse(sentence, res)
		}
		d.recordDiag(sentence, res, start)
		return res, nil
	}

	d.chart.Reset(n, d.BeamSize)
	d.chart.LoadLeaves(sentence, d.LexicalBeta)

	if d.Hooks.PreParse != nil && !d.Hooks.PreParse(sentence) {
		return d.finish(sentence, Exhausted, start)
	}

	if n == 0 {
		return d.finish(sentence, Exhausted, start)
	}

	// Leaves pass: score every leaf, unary-expand (type-change then
	// type-raise), then β-prune with no cap — a width-1 span is never the
	// full-sentence root unless n == 1, in which case unary expansion is
	// skipped "never at the full-sentence root span".
	for i := 0; i < n; i++ {
		cell := d.chart.Cell(i, 1)
		for _, leaf := range cell.SuperCategories() {
			if err := d.Scorer.CalcScoreLeaf(leaf, sentence); err != nil {
				return nil, ccgerr.Wrap(ccgerr.Structural, err)
			}
		}
		if err := d.expander.Expand(d.chart.Arena(), cell, sentence, n == 1); err != nil {
			return nil, ccgerr.Wrap(ccgerr.Structural, err)
		}
		cell.ApplyBeam(0, d.Beta)
		if exceeded, res := d.checkSuperCats(sentence, start); exceeded {
			return res, nil
		}
	}

	// Fill pass: widths 2..n.
	for width := 2; width <= n; width++ {
		atRoot := width == n
		for i := 0; i+width <= n; i++ {
			target := d.chart.Cell(i, width)
			for split := 1; split < width; split++ {
				left := d.chart.Cell(i, split)
				right := d.chart.Cell(i+split, width-split)
				if err := d.combiner.Combine(d.chart.Arena(), left, right, target, sentence, atRoot); err != nil {
					return nil, ccgerr.Wrap(ccgerr.Structural, err)
				}
			}
			if d.CubePruning {
				target.CombinePreSuperCategories(d.BeamSize)
			}
			if !atRoot {
				if err := d.expander.Expand(d.chart.Arena(), target, sentence, false); err != nil {
					return nil, ccgerr.Wrap(ccgerr.Structural, err)
				}
			}
			target.ApplyBeam(d.BeamSize, d.Beta)
			if exceeded, res := d.checkSuperCats(sentence, start); exceeded {
				return res, nil
			}
		}
	}

	outcome := Parsed
	if d.chart.Root().IsEmpty() {
		outcome = Exhausted
	}
	return d.finish(sentence, outcome, start)
}

func (d *Driver) checkSuperCats(sentence model.Sentence, start time.Time) (bool, *Result) {
	if d.MaxSuperCats <= 0 || d.chart.Count() <= d.MaxSuperCats {
		return false, nil
	}
	res := &Result{Outcome: SkippedMaxSuperCats, Chart: d.chart}
	if d.Hooks.PostParse != nil {
		d.Hooks.PostParse(sentence, res)
	}
	d.recordDiag(sentence, res, start)
	return true, res
}

func (d *Driver) finish(sentence model.Sentence, outcome Outcome, start time.Time) (*Result, error) {
	res := &Result{Outcome: outcome, Chart: d.chart}
	if outcome == Exhausted {
		res.SkimmedDeps = Skim(d.chart)
	}
	if d.Hooks.PostParse != nil {
		d.Hooks.PostParse(sentence, res)
	}
	d.recordDiag(sentence, res, start)
	return res, nil
}

// recordDiag builds and records a diag.Record from a finished Result, if a
// Diag sink is attached. Failures to record are swallowed: diagnostics are
// a side channel, never a reason to fail a parse.
func (d *Driver) recordDiag(sentence model.Sentence, res *Result, start time.Time) {
	if d.Diag == nil {
		return
	}
	rec := diag.Record{
		SentenceLen:    sentence.Len(),
		Outcome:        res.Outcome.String(),
		ElapsedMillis:  float64(time.Since(start)) / float64(time.Millisecond),
		SkimCoverStart: -1,
		SkimCoverEnd:   -1,
	}
	if d.chart != nil {
		rec.SuperCatCount = d.chart.Count()
	}
	if res.Outcome == Exhausted {
		rec.SkimCoverStart = 0
		rec.SkimCoverEnd = sentence.Len()
	}
	_ = d.Diag.Record(rec)
}
