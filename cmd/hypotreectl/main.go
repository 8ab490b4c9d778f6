// Command hypotreectl is the CLI collaborator named in spec.md §6: it reads
// an input-language source file (or stdin), calls hypotree.Analyze, renders
// the resulting line tree, and writes it to a file or stdout. Flags follow
// the teacher's cmd/server flag style (stdlib flag, no config framework).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	hypotree "github.com/ritamzico/hypotree"
	"github.com/ritamzico/hypotree/internal/render"
	"github.com/ritamzico/hypotree/internal/tree"
)

func main() {
	in := flag.String("i", "", "input source file (default: stdin)")
	out := flag.String("o", "", "output file (default: stdout)")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		fmt.Fprintf(os.Stderr, "hypotreectl: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out string) error {
	source, err := readSource(in)
	if err != nil {
		return err
	}

	analysis, err := hypotree.Analyze(source)
	if err != nil {
		return err
	}
	lineTree := tree.ToLineTree(analysis.Tree)

	if out != "" {
		html, err := render.ToHTML(lineTree)
		if err != nil {
			return err
		}
		return os.WriteFile(out, []byte(html), 0o644)
	}

	// No -o: write to stdout. A real terminal gets an ANSI-colored line
	// tree for readability; a pipe gets the plain HTML document a
	// downstream tool would consume, matching spec.md §6's CLI contract.
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(colorizeTree(lineTree))
		return nil
	}
	html, err := render.ToHTML(lineTree)
	if err != nil {
		return err
	}
	fmt.Print(html)
	return nil
}

func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

const (
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
)

// colorizeTree renders a line tree as indented, ANSI-colored text for an
// interactive terminal: the node's own line in bold, its hypothesis-id tag
// dimmed.
func colorizeTree(lt *tree.LineTree) string {
	var b bytes.Buffer
	writeColoredBranches(&b, lt.Root, 0)
	return b.String()
}

func writeColoredBranches(b *bytes.Buffer, branches tree.LineBranches, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, id := range branches.SortedIDs() {
		for _, node := range branches[id] {
			fmt.Fprintf(b, "%s%s[H%d]%s %s%s%s\n", indent, ansiDim, id, ansiReset, ansiBold, node.Line, ansiReset)
			writeColoredBranches(b, node.Children, depth+1)
		}
	}
}
