// Package serialization converts a hypothesis tree to and from the
// structured JSON document described in spec.md §6:
//
//	{ "root": {"<id>": [node...]}, "hypotheses": {"<id>": ["text"...]} }
//	node = { "expression": "...", "children": {"<id>": [node...]} }
//
// Grounded on the teacher's internal/serialization/serialization.go: the
// same shape (private serializedX structs, toSerialized.../fromSerialized...
// conversion functions, Write/Read/Save/Load wired through encoding/json
// with a two-space indent) carried over unchanged, with the graph/edge
// shape replaced by the tree/node shape this domain needs.
package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ritamzico/hypotree/internal/tree"
)

type serializedNode struct {
	Expression string                      `json:"expression"`
	Children   map[string][]serializedNode `json:"children,omitempty"`
}

type serializedDocument struct {
	Root       map[string][]serializedNode `json:"root"`
	Hypotheses map[string][]string         `json:"hypotheses"`
}

// TreeDocument is the exported, JSON-tagged shape of a serialized hypothesis
// tree document (spec.md §6's {root, hypotheses} layout) — the same type
// WriteJSON encodes, but returned as a value so a caller like
// cmd/hypotreesrv can embed it in a larger response envelope (e.g. alongside
// a request id) instead of writing straight to an io.Writer.
type TreeDocument = serializedDocument

// ToTreeDocument converts a hypothesis tree into its serializable document
// form without writing it anywhere.
func ToTreeDocument(t *tree.Tree) TreeDocument {
	return toSerializedDocument(t)
}

func idKey(id tree.HypothesesID) string { return fmt.Sprintf("%d", id) }

func toSerializedBranches(b tree.Branches) map[string][]serializedNode {
	out := make(map[string][]serializedNode, len(b))
	for _, id := range b.SortedIDs() {
		nodes := b[id]
		sNodes := make([]serializedNode, len(nodes))
		for i, n := range nodes {
			sNodes[i] = toSerializedNode(n)
		}
		out[idKey(id)] = sNodes
	}
	return out
}

func toSerializedNode(n *tree.Node) serializedNode {
	return serializedNode{
		Expression: n.Expression.String(),
		Children:   toSerializedBranches(n.Children),
	}
}

func toSerializedDocument(t *tree.Tree) serializedDocument {
	hyps := make(map[string][]string, len(t.Hypotheses))
	for i, set := range t.Hypotheses {
		hyps[idKey(tree.HypothesesID(i))] = set.SortedTexts()
	}
	return serializedDocument{
		Root:       toSerializedBranches(t.Root),
		Hypotheses: hyps,
	}
}

// WriteJSON encodes a hypothesis tree's line form to JSON and writes it to w.
func WriteJSON(t *tree.Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toSerializedDocument(t))
}

// SaveJSON writes a hypothesis tree's line form to a JSON file at path.
func SaveJSON(t *tree.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}

// Document is the generic, decoded shape of the JSON document — useful for
// tests and external tools that want the tree's structure without linking
// against internal/lang to reconstruct real Expression values.
type Document struct {
	Root       map[string][]DocumentNode
	Hypotheses map[string][]string
}

// DocumentNode is one node of a decoded Document.
type DocumentNode struct {
	Expression string
	Children   map[string][]DocumentNode
}

// ReadJSON decodes a hypothesis tree document from r.
func ReadJSON(r io.Reader) (*Document, error) {
	var sd serializedDocument
	if err := json.NewDecoder(r).Decode(&sd); err != nil {
		return nil, fmt.Errorf("decoding hypothesis tree JSON: %w", err)
	}
	return fromSerializedDocument(sd), nil
}

// LoadJSON reads a hypothesis tree document from a JSON file at path.
func LoadJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func fromSerializedDocument(sd serializedDocument) *Document {
	return &Document{
		Root:       fromSerializedBranches(sd.Root),
		Hypotheses: sd.Hypotheses,
	}
}

func fromSerializedBranches(src map[string][]serializedNode) map[string][]DocumentNode {
	out := make(map[string][]DocumentNode, len(src))
	for id, nodes := range src {
		converted := make([]DocumentNode, len(nodes))
		for i, n := range nodes {
			converted[i] = fromSerializedNode(n)
		}
		out[id] = converted
	}
	return out
}

func fromSerializedNode(n serializedNode) DocumentNode {
	return DocumentNode{
		Expression: n.Expression,
		Children:   fromSerializedBranches(n.Children),
	}
}
