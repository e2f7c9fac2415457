package parser

import (
	"errors"

	"github.com/dhamidi/rsx/markup/token"
)

// Config holds the parser settings that can be loaded from a file.
type Config struct {
	// Flatten returns every node followed by its descendants as siblings
	// instead of nesting them.
	Flatten bool
}

type Option func(*Parser)

func WithFlatten(flatten bool) Option {
	return func(p *Parser) {
		p.flatten = flatten
	}
}

func WithConfig(cfg Config) Option {
	return func(p *Parser) {
		p.flatten = cfg.Flatten
	}
}

func WithExprParser(exprs ExprParser) Option {
	return func(p *Parser) {
		if exprs != nil {
			p.exprs = exprs
		}
	}
}

type Parser struct {
	flatten bool
	exprs   ExprParser
}

func New(opts ...Option) *Parser {
	p := &Parser{
		exprs: OpaqueExprs{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseTokens parses tokens with a parser configured by opts.
func ParseTokens(tokens []token.Token, opts ...Option) ([]*Node, error) {
	return New(opts...).Parse(tokens)
}

// Parse parses the whole token stream into a sequence of root nodes. The
// first syntax error aborts the parse and is returned as a *SyntaxError.
func (p *Parser) Parse(tokens []token.Token) ([]*Node, error) {
	c := NewCursor(tokens, endOf(tokens))
	var nodes []*Node
	for !c.EOF() {
		n, err := p.node(&c)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n...)
	}
	return nodes, nil
}

type tag struct {
	name        token.Token
	attributes  []*Node
	selfClosing bool
	span        token.Span
}

// node parses one text, block or element, trying them in that order.
func (p *Parser) node(c *Cursor) ([]*Node, error) {
	n, err := attempt(c, p.text)
	if err != nil {
		n, err = attempt(c, p.block)
		if errors.Is(err, MalformedEmbeddedExpression) {
			return nil, err
		}
	}
	if err != nil {
		n, err = attempt(c, p.element)
	}
	if err != nil {
		return nil, err
	}

	if !p.flatten {
		return []*Node{n}, nil
	}
	nodes := make([]*Node, 0, len(n.Children)+1)
	nodes = append(nodes, n)
	nodes = append(nodes, n.Children...)
	n.Children = nil
	return nodes, nil
}

func (p *Parser) element(c *Cursor) (*Node, error) {
	probe := c.Fork()
	if name, err := p.tagClose(&probe); err == nil {
		return nil, errorf(OrphanCloseTag, name.Span.Start, "close tag has no corresponding open tag")
	}
	if tok, ok := c.Peek(); !ok || !tok.IsPunct("<") {
		return nil, errorf(GrammarMismatch, c.Pos(), "expected text, block or element")
	}

	open, err := p.tagOpen(c)
	if err != nil {
		return nil, err
	}

	end := open.span.End
	var children []*Node
	if !open.selfClosing {
		for {
			more, err := p.childrenFollow(open, c)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
			nodes, err := p.node(c)
			if err != nil {
				return nil, err
			}
			children = append(children, nodes...)
		}

		closeStart := c.Pos()
		if _, err := p.tagClose(c); err != nil {
			return nil, err
		}
		end = closeEnd(c, closeStart)
	}

	return &Node{
		Type:        Element,
		Name:        open.name.Literal,
		Attributes:  open.attributes,
		Children:    children,
		SelfClosing: open.selfClosing,
		Span:        token.Span{Start: open.span.Start, End: end},
	}, nil
}

// closeEnd is the end of the token just consumed by c.
func closeEnd(c *Cursor, fallback token.Position) token.Position {
	if c.pos == 0 {
		return fallback
	}
	return c.tokens[c.pos-1].Span.End
}

// childrenFollow reports whether another child node precedes the close tag
// of open.
func (p *Parser) childrenFollow(open *tag, c *Cursor) (bool, error) {
	if c.EOF() {
		return false, errorf(UnterminatedOpenTag, open.name.Span.Start, "open tag has no corresponding close tag")
	}

	probe := c.Fork()
	if name, err := p.tagClose(&probe); err == nil {
		if name.Literal == open.name.Literal {
			return false, nil
		}
		return false, errorf(TagNameMismatch, name.Span.Start,
			"close tag has no corresponding open tag (expected </%s>)", open.name.Literal)
	}
	return true, nil
}

func (p *Parser) tagOpen(c *Cursor) (*tag, error) {
	lt, err := expectPunct(c, "<")
	if err != nil {
		return nil, err
	}
	name, err := expectIdent(c, "tag name")
	if err != nil {
		return nil, err
	}

	var attrTokens []token.Token
	var selfClosing bool
	for {
		terminator := c.Pos()
		if sc, err := attempt(c, p.tagOpenEnd); err == nil {
			selfClosing = sc
			attributes, err := p.attributes(NewCursor(attrTokens, terminator))
			if err != nil {
				return nil, err
			}
			return &tag{
				name:        name,
				attributes:  attributes,
				selfClosing: selfClosing,
				span:        token.Span{Start: lt.Span.Start, End: closeEnd(c, terminator)},
			}, nil
		}

		tok, ok := c.Next()
		if !ok {
			return nil, errorf(GrammarMismatch, c.Pos(), "expected '>' or '/>' to end <%s>", name.Literal)
		}
		attrTokens = append(attrTokens, tok)
	}
}

// tagOpenEnd parses '>' or '/' '>' and reports whether the tag is
// self-closing.
func (p *Parser) tagOpenEnd(c *Cursor) (bool, error) {
	selfClosing := false
	if tok, ok := c.Peek(); ok && tok.IsPunct("/") {
		c.Next()
		selfClosing = true
	}
	if _, err := expectPunct(c, ">"); err != nil {
		return false, err
	}
	return selfClosing, nil
}

// tagClose parses '<' '/' NAME '>' and returns the name token.
func (p *Parser) tagClose(c *Cursor) (token.Token, error) {
	if _, err := expectPunct(c, "<"); err != nil {
		return token.Token{}, err
	}
	if _, err := expectPunct(c, "/"); err != nil {
		return token.Token{}, err
	}
	name, err := expectIdent(c, "tag name")
	if err != nil {
		return token.Token{}, err
	}
	if _, err := expectPunct(c, ">"); err != nil {
		return token.Token{}, err
	}
	return name, nil
}

// attributes parses the tokens collected between a tag name and its
// terminator. Every token must belong to an attribute. A failure reports the
// position and message of the token the last attribute stopped at.
func (p *Parser) attributes(c Cursor) ([]*Node, error) {
	var nodes []*Node
	var cause error
	for !c.EOF() {
		attr, err := attempt(&c, p.attribute)
		if errors.Is(err, MalformedEmbeddedExpression) {
			return nil, err
		}
		if err != nil {
			cause = err
			break
		}
		nodes = append(nodes, attr)
	}

	if tok, ok := c.Peek(); ok {
		e := errorf(MalformedAttribute, tok.Span.Start, "unexpected %s in attribute list", describe(tok))
		var causeErr *SyntaxError
		if errors.As(cause, &causeErr) {
			e.Pos = causeErr.Pos
			e.Message = causeErr.Message
		}
		e.Err = cause
		return nil, e
	}
	return nodes, nil
}

func (p *Parser) attribute(c *Cursor) (*Node, error) {
	key, span, err := attributeKey(c)
	if err != nil {
		return nil, err
	}

	var value *Expr
	if tok, ok := c.Peek(); ok && tok.IsPunct("=") {
		c.Next()
		if next, ok := c.Peek(); ok && next.IsGroup(token.Brace) {
			value, err = p.blockExpr(c)
		} else {
			value, err = valueExpr(c)
		}
		if err != nil {
			return nil, err
		}
		span.End = value.Span.End
	}

	return &Node{
		Type:  Attribute,
		Name:  key,
		Value: value,
		Span:  span,
	}, nil
}

// attributeKey parses an identifier or keyword, allowing '-' and ':' between adjacent
// identifier parts as in data-id or xlink:href.
func attributeKey(c *Cursor) (string, token.Span, error) {
	pos := c.Pos()
	first, ok := c.Next()
	if !ok {
		return "", token.Span{}, errorf(GrammarMismatch, pos, "expected attribute name, found end of input")
	}
	if first.Kind != token.Ident && first.LitKind != token.LitBool {
		return "", token.Span{}, errorf(GrammarMismatch, pos, "expected attribute name, found %s", describe(first))
	}
	key := first.Literal
	span := first.Span

	for {
		sep, ok := c.Peek()
		if !ok || !(sep.IsPunct("-") || sep.IsPunct(":")) || !adjacent(span.End, sep.Span.Start) {
			return key, span, nil
		}
		probe := c.Fork()
		probe.Next()
		part, ok := probe.Next()
		if !ok || part.Kind != token.Ident || !adjacent(sep.Span.End, part.Span.Start) {
			return key, span, nil
		}
		c.Commit(probe)
		key += sep.Literal + part.Literal
		span.End = part.Span.End
	}
}

// adjacent reports whether two positions touch. Positions without offsets
// are treated as adjacent.
func adjacent(end, start token.Position) bool {
	if !end.IsValid() || !start.IsValid() {
		return true
	}
	return end.Offset == start.Offset
}

// valueExpr parses a literal or a dotted path.
func valueExpr(c *Cursor) (*Expr, error) {
	tok, ok := c.Next()
	if !ok {
		return nil, errorf(GrammarMismatch, c.Pos(), "expected attribute value")
	}
	switch tok.Kind {
	case token.Literal:
		return newExpr(ExprLiteral, tok), nil
	case token.Ident:
		tokens := []token.Token{tok}
		for {
			probe := c.Fork()
			dot, ok := probe.Next()
			if !ok || !dot.IsPunct(".") {
				break
			}
			part, ok := probe.Next()
			if !ok || part.Kind != token.Ident {
				break
			}
			c.Commit(probe)
			tokens = append(tokens, dot, part)
		}
		return newExpr(ExprPath, tokens...), nil
	}
	return nil, errorf(GrammarMismatch, tok.Span.Start, "expected attribute value, found %s", describe(tok))
}

func (p *Parser) text(c *Cursor) (*Node, error) {
	pos := c.Pos()
	tok, ok := c.Next()
	if !ok || tok.Kind != token.Literal {
		return nil, errorf(GrammarMismatch, pos, "expected literal")
	}
	return &Node{
		Type:  Text,
		Name:  textName,
		Value: newExpr(ExprLiteral, tok),
		Span:  tok.Span,
	}, nil
}

func (p *Parser) block(c *Cursor) (*Node, error) {
	expr, err := p.blockExpr(c)
	if err != nil {
		return nil, err
	}
	return &Node{
		Type:  Block,
		Name:  blockName,
		Value: expr,
		Span:  expr.Span,
	}, nil
}

// blockExpr parses one brace group and hands it to the expression parser.
func (p *Parser) blockExpr(c *Cursor) (*Expr, error) {
	pos := c.Pos()
	tok, ok := c.Next()
	if !ok || !tok.IsGroup(token.Brace) {
		return nil, errorf(GrammarMismatch, pos, "expected '{'")
	}
	expr, err := p.exprs.ParseBlock(tok)
	if err != nil {
		e := errorf(MalformedEmbeddedExpression, tok.Span.Start, "invalid embedded expression: %v", err)
		e.Err = err
		return nil, e
	}
	return expr, nil
}

func expectPunct(c *Cursor, ch string) (token.Token, error) {
	pos := c.Pos()
	tok, ok := c.Next()
	if !ok {
		return token.Token{}, errorf(GrammarMismatch, pos, "expected '%s', found end of input", ch)
	}
	if !tok.IsPunct(ch) {
		return token.Token{}, errorf(GrammarMismatch, pos, "expected '%s', found %s", ch, describe(tok))
	}
	return tok, nil
}

func expectIdent(c *Cursor, what string) (token.Token, error) {
	pos := c.Pos()
	tok, ok := c.Next()
	if !ok {
		return token.Token{}, errorf(GrammarMismatch, pos, "expected %s, found end of input", what)
	}
	if tok.Kind != token.Ident {
		return token.Token{}, errorf(GrammarMismatch, pos, "expected %s, found %s", what, describe(tok))
	}
	return tok, nil
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Group:
		return "'" + tok.Delim.Open() + "...'"
	case token.Literal:
		return "literal " + tok.Literal
	case token.Ident:
		return "identifier " + tok.Literal
	}
	return "'" + tok.Literal + "'"
}
