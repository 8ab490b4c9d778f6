// Package hypotree wires the parser, dependency graph, and hypothesis tree
// into the four public entry points spec.md §6 names: Parse, BuildGraph,
// BuildTree, and the convenience Analyze that chains all three.
//
// Grounded on the teacher's own root package (pgraph.go): a thin façade type
// over internal packages, with no logic of its own beyond construction and
// delegation.
package hypotree

import (
	"github.com/ritamzico/hypotree/internal/depgraph"
	"github.com/ritamzico/hypotree/internal/hypothesis"
	"github.com/ritamzico/hypotree/internal/lang"
	"github.com/ritamzico/hypotree/internal/tree"
)

type (
	// Statement re-exports lang.Statement so callers never need to import
	// internal/lang directly.
	Statement = lang.Statement
	// Expression re-exports lang.Expression.
	Expression = lang.Expression
	// Lines re-exports lang.Lines, the parser's top-level result type.
	Lines = lang.Lines
	// ParseError re-exports lang.ParseError, the single externally visible
	// error kind a failed parse produces (spec.md §7).
	ParseError = lang.ParseError
	// Graph re-exports depgraph.Graph.
	Graph = depgraph.Graph
	// Tree re-exports tree.Tree, the finished hypothesis tree.
	Tree = tree.Tree
	// HypothesesID re-exports tree.HypothesesID.
	HypothesesID = tree.HypothesesID
	// HypothesesSet re-exports hypothesis.Set.
	HypothesesSet = hypothesis.Set
)

// Parse tokenizes and parses text into an ordered statement list. Parsing is
// all-or-nothing (spec.md §4.1, §7): a non-nil error means no statements.
func Parse(text string) (Lines, error) {
	return lang.Parse(text)
}

// BuildGraph constructs the dependency graph over a parsed statement list
// (spec.md §4.2).
func BuildGraph(stmts Lines) *Graph {
	return depgraph.Build(stmts)
}

// BuildTree folds the dependency graph into a hypothesis tree (spec.md §4.4).
func BuildTree(stmts Lines, graph *Graph) *Tree {
	return tree.Build(stmts, graph)
}

// Analysis is the result of a full Analyze run: the parsed statements, the
// dependency graph built from them, and the hypothesis tree folded from
// both. Downstream collaborators (CLI, server, renderer) only ever need
// Tree, but the intermediate stages are exposed for debugging and testing.
type Analysis struct {
	Statements Lines
	Graph      *Graph
	Tree       *Tree
}

// Analyze runs the full parse -> graph -> tree pipeline over source text, the
// convenience entry point spec.md §6 requires. It returns a ParseError,
// unwrapped, if and only if parsing fails.
func Analyze(text string) (*Analysis, error) {
	stmts, err := Parse(text)
	if err != nil {
		return nil, err
	}
	graph := BuildGraph(stmts)
	hypTree := BuildTree(stmts, graph)
	return &Analysis{Statements: stmts, Graph: graph, Tree: hypTree}, nil
}
