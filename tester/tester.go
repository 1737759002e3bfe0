// Package tester runs golden scenario fixtures through a driver.Driver and
// diffs the resulting filled-dependency set against what the fixture
// expects, the way vartan's own tester package diffs parse trees — adapted
// here from CST/AST tree diffing to dependency-set diffing, since this
// parser's output is a set of FilledDependency values, not a syntax tree.
package tester

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nlplab-oss/ccgchart/dependency"
	"github.com/nlplab-oss/ccgchart/driver"
	"github.com/nlplab-oss/ccgchart/model"
	"github.com/nlplab-oss/ccgchart/supercat"
)

// Case is one golden scenario: a pre-built sentence (sentence ingestion
// itself is out of scope here) and the dependency set its parse is
// expected to produce, rendered via FilledDependency.String().
type Case struct {
	Name     string
	Sentence model.Sentence
	WantDeps []string
	// WantOutcome is additionally asserted against the driver's reported
	// Outcome only when CheckOutcome is true.
	WantOutcome  driver.Outcome
	CheckOutcome bool
}

// Result is the outcome of running one Case.
type Result struct {
	Name    string
	Outcome driver.Outcome
	Error   error
	// Missing lists expected dependency strings absent from the actual
	// output; Extra lists actual dependency strings not expected.
	Missing []string
	Extra   []string
}

func (r *Result) Passed() bool {
	return r.Error == nil && len(r.Missing) == 0 && len(r.Extra) == 0
}

func (r *Result) String() string {
	if r.Error != nil {
		return fmt.Sprintf("FAIL %v: %v", r.Name, r.Error)
	}
	if r.Passed() {
		return fmt.Sprintf("PASS %v (%v)", r.Name, r.Outcome)
	}
	var lines []string
	for _, m := range r.Missing {
		lines = append(lines, fmt.Sprintf("    missing: %v", m))
	}
	for _, e := range r.Extra {
		lines = append(lines, fmt.Sprintf("    extra:   %v", e))
	}
	return fmt.Sprintf("FAIL %v (%v):\n%v", r.Name, r.Outcome, strings.Join(lines, "\n"))
}

// Runner drives a set of Cases through one driver.Driver. The driver is
// reused across cases: one Driver is safe for sequential (never
// concurrent) parseSentence calls.
type Runner struct {
	Driver *driver.Driver
}

// Run executes every case in order and returns one Result each.
func (r *Runner) Run(cases []Case) []*Result {
	results := make([]*Result, 0, len(cases))
	for _, c := range cases {
		results = append(results, r.runOne(c))
	}
	return results
}

func (r *Runner) runOne(c Case) *Result {
	res, err := r.Driver.ParseSentence(c.Sentence)
	if err != nil {
		return &Result{Name: c.Name, Error: err}
	}

	got := actualDeps(res)
	missing, extra := diffDepSets(c.WantDeps, got)

	result := &Result{
		Name:    c.Name,
		Outcome: res.Outcome,
		Missing: missing,
		Extra:   extra,
	}
	if c.CheckOutcome && res.Outcome != c.WantOutcome {
		result.Error = fmt.Errorf("outcome mismatch: want %v, got %v", c.WantOutcome, res.Outcome)
	}
	return result
}

// actualDeps extracts the dependency set a Result represents: the full
// derivation under the root cell's best supercategory when Parsed, or the
// skimmer's concatenation when Exhausted; empty for a skipped sentence.
func actualDeps(res *driver.Result) []dependency.FilledDependency {
	switch res.Outcome {
	case driver.Parsed:
		return collectDeps(res.Chart.Root().Best())
	case driver.Exhausted:
		return res.SkimmedDeps
	default:
		return nil
	}
}

// collectDeps walks a derivation subtree collecting every FilledDeps list,
// the same recursive traversal shape as scorer.SumLeafInitialScore.
func collectDeps(node *supercat.SuperCategory) []dependency.FilledDependency {
	if node == nil {
		return nil
	}
	deps := append([]dependency.FilledDependency{}, node.FilledDeps...)
	deps = append(deps, collectDeps(node.Left)...)
	deps = append(deps, collectDeps(node.Right)...)
	return deps
}

func diffDepSets(want []string, got []dependency.FilledDependency) (missing, extra []string) {
	gotStrs := make([]string, len(got))
	for i, d := range got {
		gotStrs[i] = d.String()
	}
	sort.Strings(gotStrs)
	wantSorted := append([]string{}, want...)
	sort.Strings(wantSorted)

	gotSet := make(map[string]int, len(gotStrs))
	for _, s := range gotStrs {
		gotSet[s]++
	}
	wantSet := make(map[string]int, len(wantSorted))
	for _, s := range wantSorted {
		wantSet[s]++
	}
	for s, n := range wantSet {
		if gotSet[s] < n {
			for i := 0; i < n-gotSet[s]; i++ {
				missing = append(missing, s)
			}
		}
	}
	for s, n := range gotSet {
		if wantSet[s] < n {
			for i := 0; i < n-wantSet[s]; i++ {
				extra = append(extra, s)
			}
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}
