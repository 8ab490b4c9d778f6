// Package tree assembles the hypothesis tree of spec.md §4.4: the dependency
// graph's nodes regrouped into a forest, where each node's children are
// bucketed by which hypotheses are in scope at that point, and a hypothesis
// set only ever grows as it propagates down from a writer to its readers.
//
// This is a direct Go translation of parse_hypothesis_tree/collect_hypotheses
// in the retrieved original_source/src/hypotheses_tree.rs: same RefNode
// build-then-freeze shape (mutable construction nodes keyed by dependency
// graph id, converted to an immutable Node tree once complete), same
// HypothesesMap value-deduplication, same "parent = largest incoming node
// id" selection. The teacher has no direct analogue for this component —
// its graph is a flat probabilistic adjacency list with no notion of
// regrouping by bucket — so the shape here follows the original rather than
// the teacher, while the surrounding package layout, naming, and doc-comment
// density still follow the teacher's conventions.
package tree

import (
	"sort"

	"github.com/ritamzico/hypotree/internal/depgraph"
	"github.com/ritamzico/hypotree/internal/hypothesis"
	"github.com/ritamzico/hypotree/internal/lang"
)

// HypothesesID indexes into a Tree's Hypotheses slice.
type HypothesesID int

// Node is one frozen position in the tree: the expression observed there,
// and its children bucketed by the hypothesis set in scope for each bucket.
type Node struct {
	Expression lang.Expression
	Children   Branches
}

// Branches maps a hypothesis set id to every node reachable under it at a
// given level of the tree.
type Branches map[HypothesesID][]*Node

// SortedIDs returns b's keys in ascending order, the order spec.md §6
// requires when a tree is serialized ("Branches ordered by ascending
// HypothesesId").
func (b Branches) SortedIDs() []HypothesesID {
	ids := make([]HypothesesID, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Tree is the full result: a forest of root branches plus the table of
// distinct hypothesis sets referenced anywhere within it, indexed by id.
type Tree struct {
	Root       Branches
	Hypotheses []*hypothesis.Set
}

// Hypothesis returns the set for id, or nil if id is out of range.
func (t *Tree) Hypothesis(id HypothesesID) *hypothesis.Set {
	if int(id) < 0 || int(id) >= len(t.Hypotheses) {
		return nil
	}
	return t.Hypotheses[id]
}

// hypothesesMap is the construction-time analogue of HypothesesMap in
// hypotheses_tree.rs: an insertion-ordered, value-deduplicating table of
// hypothesis sets, mutable during construction so a set already assigned an
// id can keep absorbing newly inherited hypotheses.
type hypothesesMap struct {
	entries []*hypothesis.Set
}

func newHypothesesMap() *hypothesesMap { return &hypothesesMap{} }

// insert returns item's id, reusing an existing slot if some previously
// inserted set is equal by value (spec.md §4.4's value-deduplication rule).
func (m *hypothesesMap) insert(item *hypothesis.Set) HypothesesID {
	for i, existing := range m.entries {
		if existing.Equal(item) {
			return HypothesesID(i)
		}
	}
	m.entries = append(m.entries, item)
	return HypothesesID(len(m.entries) - 1)
}

func (m *hypothesesMap) get(id HypothesesID) *hypothesis.Set { return m.entries[id] }

// refNode is a construction-time tree node keyed by dependency graph id,
// converted into an immutable Node once the whole tree has been built.
type refNode struct {
	id       depgraph.NodeID
	children map[HypothesesID][]*refNode
}

func newRefNode(id depgraph.NodeID) *refNode {
	return &refNode{id: id, children: make(map[HypothesesID][]*refNode)}
}

// Build assembles the hypothesis tree from a statement list and its
// already-constructed dependency graph (see depgraph.Build).
//
// For every statement with a bound expression, in source order:
//  1. Determine the hypothesis set in scope at that node: its own two-sided
//     formulae, unioned with every incoming neighbor's hypothesis set
//     (computing that neighbor's set fresh if this is the first time it is
//     observed). If this expression's dependency-graph node has already been
//     visited earlier in the statement list, the newly inherited hypotheses
//     are unioned into the existing set in place rather than starting over —
//     this is the "hypothesis sets only grow" monotonicity spec.md §9
//     requires.
//  2. Attach a node under the parent selected by depgraph.Graph.Parent (the
//     most recent writer), or under the root if there is none, bucketed by
//     the hypothesis id from step 1.
//  3. Record this occurrence as the node id's latest occurrence, so a later
//     statement that depends on this node attaches under THIS occurrence,
//     not an earlier one with the same expression text.
func Build(stmts lang.Lines, graph *depgraph.Graph) *Tree {
	hyps := newHypothesesMap()
	nodeHypID := make(map[depgraph.NodeID]HypothesesID)
	occurrences := make(map[depgraph.NodeID]*refNode)
	root := make(map[HypothesesID][]*refNode)

	for _, stmt := range stmts {
		expr := stmt.Expression()
		if expr == nil {
			continue
		}
		nodeID, ok := graph.ID(expr)
		if !ok {
			panic("tree: bound expression " + expr.String() + " has no dependency graph node")
		}

		hypID := resolveHypotheses(nodeID, expr, graph, hyps, nodeHypID)

		node := newRefNode(nodeID)
		if parentID, hasParent := graph.Parent(nodeID); hasParent {
			parent, ok := occurrences[parentID]
			if !ok {
				panic("tree: parent " + graph.Expression(parentID).String() + " of " + expr.String() + " was not built before it")
			}
			parent.children[hypID] = append(parent.children[hypID], node)
		} else {
			root[hypID] = append(root[hypID], node)
		}
		occurrences[nodeID] = node
	}

	return &Tree{
		Root:       freezeBranches(root, graph),
		Hypotheses: hyps.entries,
	}
}

// resolveHypotheses computes (or extends) the hypothesis set active at
// nodeID and returns its id in hyps.
func resolveHypotheses(
	nodeID depgraph.NodeID,
	expr lang.Expression,
	graph *depgraph.Graph,
	hyps *hypothesesMap,
	nodeHypID map[depgraph.NodeID]HypothesesID,
) HypothesesID {
	inherited := hypothesis.NewSet()
	for _, parentID := range graph.Incoming(nodeID) {
		if parentHypID, ok := nodeHypID[parentID]; ok {
			inherited.Union(hyps.get(parentHypID))
		} else {
			inherited.Union(hypothesis.Collect(graph.Expression(parentID)))
		}
	}

	if existingID, ok := nodeHypID[nodeID]; ok {
		hyps.get(existingID).Union(inherited)
		return existingID
	}

	own := hypothesis.Collect(expr)
	own.Union(inherited)
	id := hyps.insert(own)
	nodeHypID[nodeID] = id
	return id
}

func freezeBranches(src map[HypothesesID][]*refNode, graph *depgraph.Graph) Branches {
	out := make(Branches, len(src))
	for hypID, nodes := range src {
		frozen := make([]*Node, len(nodes))
		for i, n := range nodes {
			frozen[i] = freezeNode(n, graph)
		}
		out[hypID] = frozen
	}
	return out
}

func freezeNode(n *refNode, graph *depgraph.Graph) *Node {
	return &Node{
		Expression: graph.Expression(n.id),
		Children:   freezeBranches(n.children, graph),
	}
}

// LineNode is the rendering surface of spec.md §4.5: the same tree shape as
// Node, but with Expression replaced by its pretty-printed single-line form.
type LineNode struct {
	Line     string
	Children LineBranches
}

// LineBranches is the LineNode analogue of Branches.
type LineBranches map[HypothesesID][]*LineNode

// SortedIDs returns b's keys in ascending order, same contract as
// Branches.SortedIDs.
func (b LineBranches) SortedIDs() []HypothesesID {
	ids := make([]HypothesesID, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LineTree is a Tree with every node's Expression replaced by its
// pretty-printed text — the stable serialization format for external
// renderers (spec.md §4.5). The Hypotheses table is carried over unchanged.
type LineTree struct {
	Root       LineBranches
	Hypotheses []*hypothesis.Set
}

// ToLineTree converts t into its line-tree view.
func ToLineTree(t *Tree) *LineTree {
	return &LineTree{
		Root:       toLineBranches(t.Root),
		Hypotheses: t.Hypotheses,
	}
}

func toLineBranches(b Branches) LineBranches {
	out := make(LineBranches, len(b))
	for id, nodes := range b {
		lines := make([]*LineNode, len(nodes))
		for i, n := range nodes {
			lines[i] = toLineNode(n)
		}
		out[id] = lines
	}
	return out
}

func toLineNode(n *Node) *LineNode {
	return &LineNode{
		Line:     n.Expression.String(),
		Children: toLineBranches(n.Children),
	}
}
