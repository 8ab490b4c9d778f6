// Package depgraph builds the dependency graph of spec.md §4.2: a directed,
// acyclic graph over the expressions a program's statements bind, where an
// edge u -> v means v observes a value most recently defined by u.
//
// The adjacency-list shape (parallel out/in maps keyed by a dense NodeID,
// plus a reverse index for structural lookup) is grounded directly on the
// teacher's own ProbabilisticAdjacencyListGraph
// (internal/graph/probabilistic_adjacency_list_graph.go in the retrieval
// pack): same map-of-slices adjacency style, same insertion-order NodeID
// scheme, rewritten here without probabilities, edge IDs, or node removal,
// since the dependency graph is append-only and never mutated after Build.
package depgraph

import "github.com/ritamzico/hypotree/internal/lang"

// NodeID is a dense, non-negative node handle assigned in source order at
// insertion — spec.md §9 makes this assignment order an explicit invariant
// ("node-ids are assigned in source order at insertion"), which is what lets
// Parent below use "largest incoming id" to mean "most recent prior writer".
type NodeID int

// Graph is the dependency graph over expressions of interest. Nodes are never
// removed once inserted and edges only ever point from a lower to a higher
// NodeID, which keeps the graph acyclic by construction (spec.md §4.2).
type Graph struct {
	nodes []lang.Expression
	out   map[NodeID][]NodeID
	in    map[NodeID][]NodeID
	index map[string]NodeID // canonical pretty-printed form -> node id
}

// New returns an empty dependency graph.
func New() *Graph {
	return &Graph{
		out:   make(map[NodeID][]NodeID),
		in:    make(map[NodeID][]NodeID),
		index: make(map[string]NodeID),
	}
}

// identityKey is the structural identity used throughout this system: two
// expressions are "the same value" iff their pretty-printed text matches
// (see SPEC_FULL.md §3). Reusing Expression.String() here means a single
// canonicalization satisfies both equality and hashing without a separate
// structural-hash pass.
func identityKey(e lang.Expression) string { return e.String() }

// intern inserts e if it has not been seen before, or returns the existing
// node id otherwise — spec.md §3's "exactly one node per relevant expression
// observed".
func (g *Graph) intern(e lang.Expression) NodeID {
	key := identityKey(e)
	if id, ok := g.index[key]; ok {
		return id
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, e)
	g.index[key] = id
	return id
}

// ID returns the node id of an expression already inserted into the graph.
func (g *Graph) ID(e lang.Expression) (NodeID, bool) {
	id, ok := g.index[identityKey(e)]
	return id, ok
}

// Expression returns the expression stored at id.
func (g *Graph) Expression(id NodeID) lang.Expression { return g.nodes[id] }

// Len returns the number of distinct expression nodes in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Incoming returns the direct predecessors of id: every node that defined a
// value id's expression observes.
func (g *Graph) Incoming(id NodeID) []NodeID { return g.in[id] }

// Outgoing returns the direct successors of id.
func (g *Graph) Outgoing(id NodeID) []NodeID { return g.out[id] }

func (g *Graph) addEdge(from, to NodeID) {
	for _, existing := range g.in[to] {
		if existing == from {
			return
		}
	}
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
}

// Parent returns the parent expression selected per spec.md §4.4: the
// incoming neighbor with the largest node id, i.e. the most recent prior
// writer. Returns ok=false if id has no incoming edges (it is a root).
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	ins := g.in[id]
	if len(ins) == 0 {
		return 0, false
	}
	max := ins[0]
	for _, p := range ins[1:] {
		if p > max {
			max = p
		}
	}
	return max, true
}

// Build constructs the dependency graph over an ordered statement list,
// following spec.md §4.2 exactly:
//  1. For each statement with a non-nil Expression(), compute its reads
//     (every Variable encountered while walking that expression, excluding
//     Column field names) and, if the statement is an Assignment, its single
//     write (ExtractVariableName(lhs)).
//  2. Insert a node for the expression.
//  3. For every read identifier, if a prior statement wrote it, add an edge
//     from the most recent such writer to the new node — shadowing earlier
//     writers of the same name.
//
// An expression whose text was already seen keeps its earlier node; a writer
// whose node id is not lower than that node's is not linked to it, so every
// edge still points from a lower to a higher NodeID.
//
// Reads are computed from the bound expression only (never from an
// assignment's lhs), matching the literal text of spec.md §4.2 step 1; this
// means an index expression appearing only in an lhs (`x[i] <- 5`) is not
// modeled as a read of `i`. That is an accepted limitation, not a bug: §1
// explicitly disclaims being "a general dependency analyzer".
func Build(stmts lang.Lines) *Graph {
	g := New()
	writers := make(map[string]NodeID)

	for _, stmt := range stmts {
		expr := stmt.Expression()
		if expr == nil {
			continue
		}

		id := g.intern(expr)

		seenParents := make(map[NodeID]bool)
		for _, name := range collectReads(expr) {
			writerID, ok := writers[name]
			if !ok || seenParents[writerID] || writerID >= id {
				continue
			}
			seenParents[writerID] = true
			g.addEdge(writerID, id)
		}

		if name, ok := writeTarget(stmt); ok {
			writers[name] = id
		}
	}

	return g
}

// writeTarget unwraps TailComment to find the lhs identifier an Assignment
// writes, per spec.md §4.2 step 2 (only the primary lhs counts, never the
// chained AdditionalLhs targets).
func writeTarget(stmt lang.Statement) (string, bool) {
	switch s := stmt.(type) {
	case lang.Assignment:
		return lang.ExtractVariableName(s.Lhs)
	case lang.TailComment:
		return writeTarget(s.Stmt)
	default:
		return "", false
	}
}

// collectReads walks expr and returns every Variable name it references,
// excluding the right-hand side of Column access (a field name, not a
// variable reference).
func collectReads(expr lang.Expression) []string {
	var names []string
	var walk func(lang.Expression)
	walk = func(e lang.Expression) {
		if e == nil {
			return
		}
		switch v := e.(type) {
		case lang.Variable:
			names = append(names, v.Name)
		case lang.Constant:
		case lang.Call:
			walk(v.Callee)
			for _, a := range v.Args {
				walk(a.Value)
			}
		case lang.Column:
			walk(v.Left)
		case lang.Index:
			walk(v.Left)
			for _, s := range v.Indices {
				walk(s)
			}
		case lang.ListIndex:
			walk(v.Left)
			for _, s := range v.Indices {
				walk(s)
			}
		case lang.Formula:
			if v.Lhs != nil {
				walk(v.Lhs)
			}
			walk(v.Rhs)
		case lang.Function:
			for _, p := range v.Params {
				if p.Default != nil {
					walk(p.Default)
				}
			}
			for _, s := range v.Body {
				if inner := s.Expression(); inner != nil {
					walk(inner)
				}
			}
		case lang.Prefix:
			walk(v.Operand)
		case lang.Infix:
			walk(v.Left)
			walk(v.Right)
		}
	}
	walk(expr)
	return names
}
