// Package dependency defines the unfilled and filled grammatical relation
// records produced by rule application. Both types are immutable value
// records: once constructed they are never mutated, only compared, hashed,
// or copied into a FilledDependency.
package dependency

import (
	"fmt"

	"github.com/nlplab-oss/ccgchart/ccgerr"
)

// Dependency is an unfilled grammatical relation awaiting a filler word. The
// zero value is not a valid dependency; use New.
type Dependency struct {
	RelID       int
	HeadIndex   int // word index of the head; must be != 0
	Var         int
	UnaryRuleID int
	LRange      int
	ConjFactor  int
}

// New builds a Dependency, rejecting the one structural invariant this
// record must uphold: a head index of zero indicates a rule-engine bug, not
// a recoverable condition.
func New(relID, headIndex, v, unaryRuleID, lrange, conjFactor int) (Dependency, error) {
	if headIndex == 0 {
		return Dependency{}, ccgerr.New(ccgerr.Structural, "dependency: headIndex must be non-zero (relID=%v, var=%v)", relID, v)
	}
	return Dependency{
		RelID:       relID,
		HeadIndex:   headIndex,
		Var:         v,
		UnaryRuleID: unaryRuleID,
		LRange:      lrange,
		ConjFactor:  conjFactor,
	}, nil
}

// orderedFields returns the 5-tuple that total order and hash are defined
// over, in priority order: (relID, headIndex, var, lrange, unaryRuleID).
// conjFactor participates in neither comparison (Compare returns 0 for
// otherwise-identical dependencies with differing conjFactor, matching
// "Equality = comparison zero") nor the hash.
func (d Dependency) orderedFields() [5]int {
	return [5]int{d.RelID, d.HeadIndex, d.Var, d.LRange, d.UnaryRuleID}
}

// Compare returns -1, 0, or 1 following lexicographic order over
// (relID, headIndex, var, lrange, unaryRuleID).
func (d Dependency) Compare(o Dependency) int {
	a, b := d.orderedFields(), o.orderedFields()
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether d and o compare as identical, i.e. Compare(o) == 0.
func (d Dependency) Equal(o Dependency) bool {
	return d.Compare(o) == 0
}

// Hash combines the same keys used by Compare (conjFactor excluded) into a
// single value consistent with Equal: d.Equal(o) implies d.Hash() == o.Hash().
func (d Dependency) Hash() uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	for _, f := range d.orderedFields() {
		h ^= uint64(uint32(f))
		h *= prime
	}
	return h
}

func (d Dependency) String() string {
	return fmt.Sprintf("dep(rel=%d head=%d var=%d unary=%d lrange=%d conj=%d)",
		d.RelID, d.HeadIndex, d.Var, d.UnaryRuleID, d.LRange, d.ConjFactor)
}

// FilledDependency is a Dependency whose variable slot has been unified with
// a concrete word index.
type FilledDependency struct {
	Dependency
	FillerIndex int
}

// Fill produces the FilledDependency obtained by binding d's variable to
// fillerIndex.
func (d Dependency) Fill(fillerIndex int) FilledDependency {
	return FilledDependency{Dependency: d, FillerIndex: fillerIndex}
}

func (f FilledDependency) String() string {
	return fmt.Sprintf("%v->filler=%d", f.Dependency, f.FillerIndex)
}
