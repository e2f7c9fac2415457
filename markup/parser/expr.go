package parser

import (
	goparser "go/parser"
	"strings"

	"github.com/dhamidi/rsx/markup/token"
)

type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprPath
	ExprBlock
)

var exprKindNames = map[ExprKind]string{
	ExprLiteral: "Literal",
	ExprPath:    "Path",
	ExprBlock:   "Block",
}

func (k ExprKind) String() string {
	if name, ok := exprKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Expr is an embedded host-language expression. The parser only delimits
// it; Tokens are carried through untouched.
type Expr struct {
	Kind   ExprKind
	Tokens []token.Token
	Span   token.Span
}

func newExpr(kind ExprKind, tokens ...token.Token) *Expr {
	return &Expr{
		Kind:   kind,
		Tokens: tokens,
		Span:   token.Span{Start: tokens[0].Span.Start, End: tokens[len(tokens)-1].Span.End},
	}
}

// Source renders the expression as it appeared in the input.
func (e *Expr) Source() string {
	return token.Join(e.Tokens)
}

// Inner returns the tokens between the braces of a block expression, or the
// expression's own tokens for literals and paths.
func (e *Expr) Inner() []token.Token {
	if e.Kind == ExprBlock && len(e.Tokens) == 1 {
		return e.Tokens[0].Children
	}
	return e.Tokens
}

func (e *Expr) String() string {
	return e.Source()
}

// ExprParser validates the payload of a brace group. It is the only place
// the host language's expression grammar enters the parser.
type ExprParser interface {
	ParseBlock(group token.Token) (*Expr, error)
}

// OpaqueExprs accepts every brace group as is.
type OpaqueExprs struct{}

func (OpaqueExprs) ParseBlock(group token.Token) (*Expr, error) {
	return newExpr(ExprBlock, group), nil
}

// GoExprs requires the interior of a brace group to be empty or a single Go
// expression.
type GoExprs struct{}

func (GoExprs) ParseBlock(group token.Token) (*Expr, error) {
	src := innerSource(group)
	if strings.TrimSpace(src) != "" {
		if _, err := goparser.ParseExpr(src); err != nil {
			return nil, err
		}
	}
	return newExpr(ExprBlock, group), nil
}

func innerSource(group token.Token) string {
	open, closing := group.Delim.Open(), group.Delim.Close()
	if strings.HasPrefix(group.Literal, open) && strings.HasSuffix(group.Literal, closing) && len(group.Literal) >= 2 {
		return group.Literal[len(open) : len(group.Literal)-len(closing)]
	}
	return token.Join(group.Children)
}
