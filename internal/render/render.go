// Package render converts a hypothesis line tree into the HTML document the
// CLI collaborator writes out (spec.md §6: "renders the line tree as HTML").
//
// The line tree is first flattened into a nested Markdown list — one bullet
// per node, one level of indentation per tree depth, with the hypotheses
// table rendered as a trailing section — and goldmark then converts that
// Markdown into HTML. This is grounded on goldmark's documented two-step
// usage (build a Markdown byte slice, call Convert into a buffer); the
// nested-list walk itself mirrors how internal/tree.freezeBranches and
// internal/serialization walk the same Branches/LineBranches shape, just
// emitting text instead of structs.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ritamzico/hypotree/internal/tree"
)

// ToMarkdown flattens a line tree into a Markdown document: a nested bullet
// list for the tree shape, followed by a numbered list of the distinct
// hypothesis sets referenced anywhere within it.
func ToMarkdown(lt *tree.LineTree) string {
	var b strings.Builder
	b.WriteString("# Hypothesis tree\n\n")
	writeBranches(&b, lt.Root, 0)
	b.WriteString("\n## Hypothesis sets\n\n")
	for id, set := range lt.Hypotheses {
		texts := set.SortedTexts()
		if len(texts) == 0 {
			fmt.Fprintf(&b, "%d. (none)\n", id)
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", id, strings.Join(texts, "; "))
	}
	return b.String()
}

// writeBranches walks branches in ascending HypothesesId order (spec.md §6's
// branch-ordering contract), indenting two spaces per bullet level per
// Markdown's nested-list convention.
func writeBranches(b *strings.Builder, branches tree.LineBranches, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, id := range branches.SortedIDs() {
		for _, node := range branches[id] {
			fmt.Fprintf(b, "%s- [H%d] %s\n", indent, id, node.Line)
			writeBranches(b, node.Children, depth+1)
		}
	}
}

// ToHTML renders a line tree straight to an HTML document via goldmark.
func ToHTML(lt *tree.LineTree) (string, error) {
	md := ToMarkdown(lt)
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("converting hypothesis tree markdown to HTML: %w", err)
	}
	return buf.String(), nil
}
