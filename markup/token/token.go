// Package token defines the token stream consumed by the markup parser.
//
// A stream is a sequence of token trees: identifiers, single-character
// punctuation, literals and delimited groups. A group owns the tokens
// between its delimiters, so a whole `{...}` expression is one token.
package token

import (
	"fmt"
	"strings"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries line information.
func (p Position) IsValid() bool {
	return p.Line > 0
}

type Span struct {
	Start Position
	End   Position
}

type Kind int

const (
	Ident Kind = iota
	Punct
	Literal
	Group
)

var kindNames = map[Kind]string{
	Ident:   "Ident",
	Punct:   "Punct",
	Literal: "Literal",
	Group:   "Group",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type LitKind int

const (
	LitNone LitKind = iota
	LitString
	LitChar
	LitInt
	LitFloat
	LitBool
)

var litKindNames = map[LitKind]string{
	LitNone:   "None",
	LitString: "String",
	LitChar:   "Char",
	LitInt:    "Int",
	LitFloat:  "Float",
	LitBool:   "Bool",
}

func (k LitKind) String() string {
	if name, ok := litKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Delim int

const (
	NoDelim Delim = iota
	Brace
	Paren
	Bracket
)

// Open returns the opening delimiter character.
func (d Delim) Open() string {
	switch d {
	case Brace:
		return "{"
	case Paren:
		return "("
	case Bracket:
		return "["
	}
	return ""
}

// Close returns the closing delimiter character.
func (d Delim) Close() string {
	switch d {
	case Brace:
		return "}"
	case Paren:
		return ")"
	case Bracket:
		return "]"
	}
	return ""
}

func (d Delim) String() string {
	if d == NoDelim {
		return "None"
	}
	return d.Open() + d.Close()
}

// Token is one token tree. For groups, Children holds the tokens between the
// delimiters and Literal holds the raw source text of the whole group when
// the tokenizer had it.
type Token struct {
	Kind     Kind
	LitKind  LitKind
	Delim    Delim
	Literal  string
	Span     Span
	Children []Token
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Span.Start, t.Kind, t.Text())
}

// IsPunct reports whether t is the punctuation character ch.
func (t Token) IsPunct(ch string) bool {
	return t.Kind == Punct && t.Literal == ch
}

// IsGroup reports whether t is a group delimited by d.
func (t Token) IsGroup(d Delim) bool {
	return t.Kind == Group && t.Delim == d
}

// Text renders the token back to source. Groups without raw source text are
// rebuilt from their children separated by single spaces.
func (t Token) Text() string {
	if t.Kind != Group || t.Literal != "" {
		return t.Literal
	}
	inner := Join(t.Children)
	if inner == "" {
		return t.Delim.Open() + t.Delim.Close()
	}
	return t.Delim.Open() + " " + inner + " " + t.Delim.Close()
}

// Join renders a token sequence back to source.
func Join(tokens []Token) string {
	var sb strings.Builder
	var prev *Token
	for i := range tokens {
		tok := &tokens[i]
		if prev != nil && needsSpace(prev, tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text())
		prev = tok
	}
	return sb.String()
}

// needsSpace keeps adjacent tokens apart when the source offsets say they
// were apart, and always separates words when offsets are unknown.
func needsSpace(prev, next *Token) bool {
	if prev.Span.End.IsValid() && next.Span.Start.IsValid() {
		return next.Span.Start.Offset > prev.Span.End.Offset
	}
	return prev.Kind != Punct && next.Kind != Punct
}

// NewIdent, NewPunct, NewLiteral and NewGroup build tokens without source
// positions, for callers that assemble streams programmatically.
func NewIdent(name string) Token {
	return Token{Kind: Ident, Literal: name}
}

func NewPunct(ch string) Token {
	return Token{Kind: Punct, Literal: ch}
}

func NewLiteral(kind LitKind, lit string) Token {
	return Token{Kind: Literal, LitKind: kind, Literal: lit}
}

func NewGroup(d Delim, children ...Token) Token {
	return Token{Kind: Group, Delim: d, Children: children}
}
