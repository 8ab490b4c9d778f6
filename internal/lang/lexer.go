package lang

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// tokenLexer tokenizes input-language source. Grammar recognition itself is a
// hand-written recursive-descent parser over the resulting token stream (see
// parser.go) — the grammar has too many interacting postfix/precedence rules
// (call chains, bracket indexing, formula associativity, multi-assignment
// flattening) to fit comfortably into participle's declarative struct-tag
// grammar, but its lexer is a perfectly ordinary tokenizer and reusing it here
// keeps a single, well-tested lexing engine across the codebase.
var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Float", Pattern: `\d+\.\d+([eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
	{Name: "Backtick", Pattern: "`[^`]*`"},
	{Name: "SpecialInfix", Pattern: `%[^%\n]*%`},
	{Name: "Op3", Pattern: `<<-`},
	{Name: "Op2", Pattern: `<-|->|==|!=|<=|>=|&&|\|\|`},
	{Name: "Ident", Pattern: `[A-Za-z.][A-Za-z0-9._]*(::[A-Za-z.][A-Za-z0-9._]*)?`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Punct", Pattern: `[(){}\[\],$~:!+\-*/^=<>&|]`},
})

// token is a lexeme plus its source position, decoupled from participle's own
// lexer.Token so the recursive-descent parser can freely look ahead, rewind,
// and splice without touching the underlying lexer.Lexer state machine.
type token struct {
	Type  string
	Value string
	Pos   Position
}

func (t token) is(kind string) bool { return t.Type == kind }

func (t token) isEOF() bool { return t.Type == "EOF" }

// tokenize runs the lexer to completion, dropping whitespace only. Comments
// and Newlines are kept as tokens: the parser turns a comment into a Comment
// statement or attaches it to the preceding statement as a tail comment.
func tokenize(text string) ([]token, error) {
	lex, err := tokenLexer.Lex("", strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	symbols := tokenLexer.Symbols()
	names := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		names[tt] = name
	}

	var out []token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		name := names[tok.Type]
		if tok.EOF() {
			out = append(out, token{Type: "EOF", Pos: toPosition(tok.Pos)})
			break
		}
		if name == "Whitespace" {
			continue
		}
		out = append(out, token{Type: name, Value: tok.Value, Pos: toPosition(tok.Pos)})
	}
	return out, nil
}

func toPosition(p lexer.Position) Position {
	return Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}
