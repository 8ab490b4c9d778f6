package lang

import "strings"

// Expression is the tagged-variant tree of spec.md §3. Every concrete type is
// an immutable value once constructed; String() is the canonical pretty-print
// form used both as a Hypothesis's text and as the structural identity key
// shared by the dependency graph and the hypothesis map (see SPEC_FULL.md §3).
type Expression interface {
	expressionNode()
	String() string
}

// Constant is a numeric or string literal, preserved verbatim including quotes.
type Constant struct {
	Text string
}

func (Constant) expressionNode() {}
func (c Constant) String() string { return c.Text }

// Variable is a bare identifier reference.
type Variable struct {
	Name string
}

func (Variable) expressionNode() {}
func (v Variable) String() string { return v.Name }

// Arg is one call argument: an optional name plus its value expression.
type Arg struct {
	Name  string // empty if positional
	Value Expression
}

// Call is callee(args...). callee is itself an Expression so that
// higher-order calls f()(x) and namespaced calls ns::fn(x) are uniform.
type Call struct {
	Callee Expression
	Args   []Arg
}

func (Call) expressionNode() {}
func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Callee.String())
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a.Name != "" {
			b.WriteString(a.Name)
			b.WriteString(" = ")
		}
		b.WriteString(a.Value.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Column is `$` access: left$right.
type Column struct {
	Left  Expression
	Right Expression
}

func (Column) expressionNode() {}
func (c Column) String() string {
	return c.Left.String() + "$" + c.Right.String()
}

// Index is `[...]` access. A slot is nil when absent (item[x,]).
type Index struct {
	Left    Expression
	Indices []Expression // nil element means an absent slot
}

func (Index) expressionNode() {}
func (x Index) String() string {
	return x.Left.String() + "[" + joinSlots(x.Indices) + "]"
}

// ListIndex is `[[...]]` access.
type ListIndex struct {
	Left    Expression
	Indices []Expression
}

func (ListIndex) expressionNode() {}
func (x ListIndex) String() string {
	return x.Left.String() + "[[" + joinSlots(x.Indices) + "]]"
}

func joinSlots(slots []Expression) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		if s != nil {
			parts[i] = s.String()
		}
	}
	return strings.Join(parts, ", ")
}

// Formula is `~ rhs` (one-sided) or `lhs ~ rhs` (two-sided). Lhs == nil
// means one-sided.
type Formula struct {
	Lhs Expression // nil for a one-sided formula
	Rhs Expression
}

func (Formula) expressionNode() {}
func (f Formula) String() string {
	if f.Lhs == nil {
		return "~ " + f.Rhs.String()
	}
	return f.Lhs.String() + " ~ " + f.Rhs.String()
}

func (f Formula) IsTwoSided() bool { return f.Lhs != nil }

// Param is one function parameter: a name with an optional default value.
type Param struct {
	Name    string
	Default Expression // nil if no default
}

// Function is a function literal: function(params) body.
type Function struct {
	Params []Param
	Body   Lines
}

func (Function) expressionNode() {}
func (fn Function) String() string {
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if p.Default != nil {
			parts[i] = p.Name + " = " + p.Default.String()
		} else {
			parts[i] = p.Name
		}
	}
	return "function (" + strings.Join(parts, ", ") + ") {\n" + fn.Body.String() + "\n}"
}

// Prefix is a unary operator applied with no space: op immediately followed
// by its operand (!x, -1, +1).
type Prefix struct {
	Op      string
	Operand Expression
}

func (Prefix) expressionNode() {}
func (p Prefix) String() string { return p.Op + p.Operand.String() }

// Infix is a binary operator with single spaces on both sides.
type Infix struct {
	Op    string
	Left  Expression
	Right Expression
}

func (Infix) expressionNode() {}
func (i Infix) String() string {
	return i.Left.String() + " " + i.Op + " " + i.Right.String()
}

// ExtractVariableName descends through Column/Index and the distinguished
// name-introducing calls colnames/rownames/names (arity 1 only) to find the
// variable an assignment lhs actually writes to, per spec.md §4.2.
func ExtractVariableName(e Expression) (string, bool) {
	switch v := e.(type) {
	case Variable:
		return v.Name, true
	case Column:
		return ExtractVariableName(v.Left)
	case Index:
		return ExtractVariableName(v.Left)
	case ListIndex:
		return ExtractVariableName(v.Left)
	case Call:
		name, ok := ExtractVariableName(v.Callee)
		if !ok {
			return "", false
		}
		switch name {
		case "colnames", "rownames", "names":
			if len(v.Args) == 1 {
				return ExtractVariableName(v.Args[0].Value)
			}
		}
		return "", false
	default:
		return "", false
	}
}
