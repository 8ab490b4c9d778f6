package lang

import "testing"

func mustParse(t *testing.T, src string) Lines {
	t.Helper()
	lines, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return lines
}

func TestParse_SimpleAssignment(t *testing.T) {
	lines := mustParse(t, "a <- 1")
	if len(lines) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(lines))
	}
	got, ok := lines[0].(Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", lines[0])
	}
	want := Assignment{Lhs: Variable{Name: "a"}, Rhs: Constant{Text: "1"}}
	if got.String() != want.String() {
		t.Errorf("got %q, want %q", got.String(), want.String())
	}
	if len(got.AdditionalLhs) != 0 {
		t.Errorf("expected no additional lhs, got %v", got.AdditionalLhs)
	}
}

func TestParse_ChainedMultiAssignment(t *testing.T) {
	lines := mustParse(t, "a=b=c=1")
	got, ok := lines[0].(Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", lines[0])
	}
	if got.Lhs.String() != "a" {
		t.Errorf("lhs = %q, want a", got.Lhs.String())
	}
	if len(got.AdditionalLhs) != 2 || got.AdditionalLhs[0].String() != "b" || got.AdditionalLhs[1].String() != "c" {
		t.Errorf("additional lhs = %v, want [b c]", got.AdditionalLhs)
	}
	if got.Rhs.String() != "1" {
		t.Errorf("rhs = %q, want 1", got.Rhs.String())
	}
}

func TestParse_ColnamesAssignment(t *testing.T) {
	lines := mustParse(t, `colnames(x) <- c("R","is","crazy")`)
	got, ok := lines[0].(Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", lines[0])
	}
	call, ok := got.Lhs.(Call)
	if !ok {
		t.Fatalf("expected lhs Call, got %T", got.Lhs)
	}
	if call.Callee.String() != "colnames" || len(call.Args) != 1 || call.Args[0].Value.String() != "x" {
		t.Errorf("unexpected lhs call: %s", call.String())
	}
	rhs, ok := got.Rhs.(Call)
	if !ok {
		t.Fatalf("expected rhs Call, got %T", got.Rhs)
	}
	if rhs.Callee.String() != "c" || len(rhs.Args) != 3 {
		t.Errorf("unexpected rhs call: %s", rhs.String())
	}
}

func TestParse_ChainedColumnIndexCall(t *testing.T) {
	lines := mustParse(t, "get_matrix()$column[1]")
	stmt, ok := lines[0].(ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", lines[0])
	}
	idx, ok := stmt.Expr.(Index)
	if !ok {
		t.Fatalf("expected outer Index, got %T", stmt.Expr)
	}
	if len(idx.Indices) != 1 || idx.Indices[0] == nil || idx.Indices[0].String() != "1" {
		t.Fatalf("unexpected index slots: %v", idx.Indices)
	}
	col, ok := idx.Left.(Column)
	if !ok {
		t.Fatalf("expected Column, got %T", idx.Left)
	}
	if col.Right.String() != "column" {
		t.Errorf("column field = %q, want column", col.Right.String())
	}
	call, ok := col.Left.(Call)
	if !ok {
		t.Fatalf("expected Call, got %T", col.Left)
	}
	if call.Callee.String() != "get_matrix" || len(call.Args) != 0 {
		t.Errorf("unexpected call: %s", call.String())
	}
}

func TestParse_OneSidedFormulaRightAssociative(t *testing.T) {
	lines := mustParse(t, "~ one + sided + multiple")
	stmt, ok := lines[0].(ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", lines[0])
	}
	f, ok := stmt.Expr.(Formula)
	if !ok {
		t.Fatalf("expected Formula, got %T", stmt.Expr)
	}
	if f.IsTwoSided() {
		t.Fatalf("expected one-sided formula")
	}
	outer, ok := f.Rhs.(Infix)
	if !ok || outer.Op != "+" {
		t.Fatalf("expected outer Infix +, got %#v", f.Rhs)
	}
	if outer.Left.String() != "one" {
		t.Errorf("outer left = %q, want one", outer.Left.String())
	}
	inner, ok := outer.Right.(Infix)
	if !ok || inner.Op != "+" || inner.Left.String() != "sided" || inner.Right.String() != "multiple" {
		t.Fatalf("expected right-associative inner Infix, got %#v", outer.Right)
	}
}

func TestParse_TwoSidedFormula(t *testing.T) {
	lines := mustParse(t, "Speed ~ Layout")
	stmt := lines[0].(ExpressionStmt)
	f, ok := stmt.Expr.(Formula)
	if !ok || !f.IsTwoSided() {
		t.Fatalf("expected two-sided Formula, got %#v", stmt.Expr)
	}
	if f.String() != "Speed ~ Layout" {
		t.Errorf("got %q, want %q", f.String(), "Speed ~ Layout")
	}
}

func TestParse_ForLoop(t *testing.T) {
	lines := mustParse(t, "for (i in something) { do_something_with(i); do_something_else() }")
	forStmt, ok := lines[0].(For)
	if !ok {
		t.Fatalf("expected For, got %T", lines[0])
	}
	if forStmt.Pattern.String() != "i" || forStmt.Range.String() != "something" {
		t.Errorf("unexpected pattern/range: %s in %s", forStmt.Pattern, forStmt.Range)
	}
	if len(forStmt.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(forStmt.Body))
	}
	first := forStmt.Body[0].(ExpressionStmt).Expr.(Call)
	if first.Callee.String() != "do_something_with" || len(first.Args) != 1 || first.Args[0].Value.String() != "i" {
		t.Errorf("unexpected first call: %s", first.String())
	}
	second := forStmt.Body[1].(ExpressionStmt).Expr.(Call)
	if second.Callee.String() != "do_something_else" || len(second.Args) != 0 {
		t.Errorf("unexpected second call: %s", second.String())
	}
	// For contributes no expression to the dependency graph (spec.md §9).
	if forStmt.Expression() != nil {
		t.Errorf("For.Expression() should be nil, got %v", forStmt.Expression())
	}
}

func TestParse_FunctionDefaultParams(t *testing.T) {
	lines := mustParse(t, "f <- function(a, b = 2) { a + b }")
	assign := lines[0].(Assignment)
	fn, ok := assign.Rhs.(Function)
	if !ok {
		t.Fatalf("expected Function, got %T", assign.Rhs)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[0].Default != nil {
		t.Errorf("unexpected param 0: %#v", fn.Params[0])
	}
	if fn.Params[1].Name != "b" || fn.Params[1].Default == nil || fn.Params[1].Default.String() != "2" {
		t.Errorf("unexpected param 1: %#v", fn.Params[1])
	}
}

func TestParse_HigherOrderCall(t *testing.T) {
	lines := mustParse(t, "f()(x)")
	stmt := lines[0].(ExpressionStmt)
	outer, ok := stmt.Expr.(Call)
	if !ok {
		t.Fatalf("expected outer Call, got %T", stmt.Expr)
	}
	inner, ok := outer.Callee.(Call)
	if !ok {
		t.Fatalf("expected callee to be a Call, got %T", outer.Callee)
	}
	if inner.Callee.String() != "f" || len(inner.Args) != 0 {
		t.Errorf("unexpected inner call: %s", inner.String())
	}
	if len(outer.Args) != 1 || outer.Args[0].Value.String() != "x" {
		t.Errorf("unexpected outer args: %v", outer.Args)
	}
}

func TestParse_PrefixSignOnConstant(t *testing.T) {
	lines := mustParse(t, "-1")
	stmt := lines[0].(ExpressionStmt)
	prefix, ok := stmt.Expr.(Prefix)
	if !ok {
		t.Fatalf("expected Prefix, got %T", stmt.Expr)
	}
	if prefix.Op != "-" {
		t.Errorf("op = %q, want -", prefix.Op)
	}
	if _, ok := prefix.Operand.(Constant); !ok {
		t.Errorf("expected Constant operand, got %T", prefix.Operand)
	}
}

func TestParse_EmptyIndexSlot(t *testing.T) {
	lines := mustParse(t, "item[x,]")
	stmt := lines[0].(ExpressionStmt)
	idx, ok := stmt.Expr.(Index)
	if !ok {
		t.Fatalf("expected Index, got %T", stmt.Expr)
	}
	if len(idx.Indices) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(idx.Indices))
	}
	if idx.Indices[0] == nil || idx.Indices[0].String() != "x" {
		t.Errorf("slot 0 = %v, want x", idx.Indices[0])
	}
	if idx.Indices[1] != nil {
		t.Errorf("slot 1 should be absent, got %v", idx.Indices[1])
	}
}

func TestParse_DoubleBracketIndex(t *testing.T) {
	lines := mustParse(t, "lst[[1]]")
	stmt := lines[0].(ExpressionStmt)
	idx, ok := stmt.Expr.(ListIndex)
	if !ok {
		t.Fatalf("expected ListIndex, got %T", stmt.Expr)
	}
	if len(idx.Indices) != 1 || idx.Indices[0].String() != "1" {
		t.Errorf("unexpected indices: %v", idx.Indices)
	}
}

func TestParse_IfElse(t *testing.T) {
	lines := mustParse(t, "if (x > 0) { y <- 1 } else { y <- 2 }")
	ifStmt, ok := lines[0].(If)
	if !ok {
		t.Fatalf("expected If, got %T", lines[0])
	}
	if ifStmt.Cond.String() != "x > 0" {
		t.Errorf("cond = %q, want x > 0", ifStmt.Cond.String())
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("expected 1 statement in each branch, got then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
	if ifStmt.Expression() != nil {
		t.Errorf("If.Expression() should be nil, got %v", ifStmt.Expression())
	}
}

func TestParse_LibraryStatement(t *testing.T) {
	lines := mustParse(t, "library(ggplot2)")
	lib, ok := lines[0].(Library)
	if !ok {
		t.Fatalf("expected Library, got %T", lines[0])
	}
	if lib.Name != "ggplot2" {
		t.Errorf("name = %q, want ggplot2", lib.Name)
	}
	if lib.Expression() != nil {
		t.Errorf("Library.Expression() should be nil")
	}
}

func TestParse_TailComment(t *testing.T) {
	lines := mustParse(t, "x <- 1 # set x")
	tc, ok := lines[0].(TailComment)
	if !ok {
		t.Fatalf("expected TailComment, got %T", lines[0])
	}
	if tc.Text != "# set x" {
		t.Errorf("text = %q", tc.Text)
	}
	if tc.Expression().String() != "1" {
		t.Errorf("Expression() = %q, want 1", tc.Expression().String())
	}
}

func TestParse_EmptyLinesPreserved(t *testing.T) {
	lines := mustParse(t, "a <- 1\n\nb <- 2\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 statements (incl. blank), got %d", len(lines))
	}
	if _, ok := lines[1].(Empty); !ok {
		t.Errorf("expected middle statement to be Empty, got %T", lines[1])
	}
}

func TestParse_NamedArguments(t *testing.T) {
	lines := mustParse(t, `plot(Speed ~ Layout, data = kbd)`)
	stmt := lines[0].(ExpressionStmt)
	call, ok := stmt.Expr.(Call)
	if !ok {
		t.Fatalf("expected Call, got %T", stmt.Expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if call.Args[0].Name != "" || call.Args[0].Value.String() != "Speed ~ Layout" {
		t.Errorf("arg 0 = %#v", call.Args[0])
	}
	if call.Args[1].Name != "data" || call.Args[1].Value.String() != "kbd" {
		t.Errorf("arg 1 = %#v", call.Args[1])
	}
}

func TestParse_MultilineCallArgs(t *testing.T) {
	lines := mustParse(t, "f(\n  1,\n  2\n)")
	stmt := lines[0].(ExpressionStmt)
	call := stmt.Expr.(Call)
	if len(call.Args) != 2 || call.Args[0].Value.String() != "1" || call.Args[1].Value.String() != "2" {
		t.Errorf("unexpected args: %v", call.Args)
	}
}

func TestParse_InvalidSyntaxReturnsParseError(t *testing.T) {
	_, err := Parse("a <- ")
	if err == nil {
		t.Fatal("expected an error for incomplete assignment")
	}
	if _, ok := err.(ParseError); !ok {
		t.Errorf("expected ParseError, got %T", err)
	}
}

// TestRoundTrip checks spec.md §8 property 1: parse(pretty(e)) reproduces a
// structurally equal AST, using String() equality as the structural
// comparison (see SPEC_FULL.md §3 on canonicalization via pretty-print).
func TestRoundTrip(t *testing.T) {
	exprs := []string{
		`a`,
		`1`,
		`"hello"`,
		`f(1, x = 2)`,
		`x$y`,
		`x[1, ]`,
		`x[[1]]`,
		`~ a + b`,
		`lhs ~ rhs`,
		`!x`,
		`-1`,
		`a && b || c`,
		`1:10`,
		`a %in% b`,
	}
	for _, src := range exprs {
		lines := mustParse(t, src)
		stmt, ok := lines[0].(ExpressionStmt)
		if !ok {
			t.Fatalf("%q: expected a single ExpressionStmt, got %T", src, lines[0])
		}
		pretty := stmt.Expr.String()
		reparsed := mustParse(t, pretty)
		restmt, ok := reparsed[0].(ExpressionStmt)
		if !ok {
			t.Fatalf("%q: reparse expected ExpressionStmt, got %T", pretty, reparsed[0])
		}
		if restmt.Expr.String() != pretty {
			t.Errorf("round-trip mismatch: %q -> %q -> %q", src, pretty, restmt.Expr.String())
		}
	}
}
