// Package hypothesis extracts candidate statistical hypotheses from parsed
// source, per spec.md §4.3: every two-sided formula subexpression, anywhere
// it occurs, contributes its pretty-printed text as a hypothesis. One-sided
// formulae (`~ x + y`) are not hypotheses — they describe a relationship
// without naming what they test — and are ignored.
//
// Grounded on the same walk-and-collect shape used by
// depgraph.collectReads, mirroring how the teacher repeats small structural
// walks across its graph and serialization packages rather than factoring
// out one generic visitor for every shape of traversal.
package hypothesis

import (
	"sort"

	"github.com/ritamzico/hypotree/internal/lang"
)

// Set is a deduplicated collection of hypothesis texts, insertion-ordered so
// that downstream consumers (e.g. the hypothesis map) produce stable output
// for identical input.
type Set struct {
	order []string
	seen  map[string]bool
}

// NewSet returns an empty hypothesis set.
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add inserts text if not already present.
func (s *Set) Add(text string) {
	if s.seen[text] {
		return
	}
	s.seen[text] = true
	s.order = append(s.order, text)
}

// Union adds every member of other into s.
func (s *Set) Union(other *Set) {
	for _, text := range other.order {
		s.Add(text)
	}
}

// Texts returns the members in insertion order.
func (s *Set) Texts() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len reports the number of distinct hypotheses.
func (s *Set) Len() int { return len(s.order) }

// Has reports whether text is a member.
func (s *Set) Has(text string) bool { return s.seen[text] }

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	clone := NewSet()
	clone.Union(s)
	return clone
}

// Equal reports whether s and other contain exactly the same hypotheses,
// independent of insertion order — this is the value-equality the
// hypothesis map uses to collapse identical sets onto a single id (spec.md
// §4.4).
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, text := range s.order {
		if !other.seen[text] {
			return false
		}
	}
	return true
}

// SortedTexts returns the members sorted lexicographically, the order used
// when a hypothesis set is serialized (spec.md §6).
func (s *Set) SortedTexts() []string {
	out := s.Texts()
	sort.Strings(out)
	return out
}

// Collect walks expr and returns the set of two-sided formula texts found
// anywhere within it, including inside nested calls, function bodies, and
// other formulae.
func Collect(expr lang.Expression) *Set {
	set := NewSet()
	walk(expr, set)
	return set
}

func walk(e lang.Expression, set *Set) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case lang.Formula:
		if v.IsTwoSided() {
			set.Add(v.String())
		}
		if v.Lhs != nil {
			walk(v.Lhs, set)
		}
		walk(v.Rhs, set)
	case lang.Call:
		walk(v.Callee, set)
		for _, a := range v.Args {
			walk(a.Value, set)
		}
	case lang.Column:
		walk(v.Left, set)
		walk(v.Right, set)
	case lang.Index:
		walk(v.Left, set)
		for _, s := range v.Indices {
			walk(s, set)
		}
	case lang.ListIndex:
		walk(v.Left, set)
		for _, s := range v.Indices {
			walk(s, set)
		}
	case lang.Function:
		for _, p := range v.Params {
			if p.Default != nil {
				walk(p.Default, set)
			}
		}
		walkLines(v.Body, set)
	case lang.Prefix:
		walk(v.Operand, set)
	case lang.Infix:
		walk(v.Left, set)
		walk(v.Right, set)
	}
}

// walkLines descends into a function literal's body. Only the expression a
// statement binds is walked, same as the top-level pass in tree.Build: an
// if/while/for nested inside a function body contributes no hypothesis
// unless its condition or body also surfaces as a bound expression elsewhere.
func walkLines(lines lang.Lines, set *Set) {
	for _, stmt := range lines {
		if expr := stmt.Expression(); expr != nil {
			walk(expr, set)
		}
	}
}
