package parser

import "github.com/dhamidi/rsx/markup/token"

// Cursor is a read position over a token slice. It is a plain value: copying
// it forks the position, and a fork only affects the original through
// Commit.
type Cursor struct {
	tokens []token.Token
	pos    int
	end    token.Position
}

// NewCursor returns a cursor at the first token. end is the position
// reported once all tokens are consumed.
func NewCursor(tokens []token.Token, end token.Position) Cursor {
	return Cursor{tokens: tokens, end: end}
}

// Fork returns an independent copy of the cursor.
func (c Cursor) Fork() Cursor {
	return c
}

// Commit advances c to where fork stopped. fork must have been created from
// c (or from a fork of c).
func (c *Cursor) Commit(fork Cursor) {
	c.pos = fork.pos
}

func (c Cursor) EOF() bool {
	return c.pos >= len(c.tokens)
}

func (c Cursor) Remaining() int {
	return len(c.tokens) - c.pos
}

func (c Cursor) Peek() (token.Token, bool) {
	if c.EOF() {
		return token.Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *Cursor) Next() (token.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Pos is the start of the next token, or the end position at EOF.
func (c Cursor) Pos() token.Position {
	if tok, ok := c.Peek(); ok {
		return tok.Span.Start
	}
	return c.end
}

// attempt runs rule on a fork of c and commits the fork only when the rule
// succeeds.
func attempt[T any](c *Cursor, rule func(*Cursor) (T, error)) (T, error) {
	fork := c.Fork()
	v, err := rule(&fork)
	if err == nil {
		c.Commit(fork)
	}
	return v, err
}

// endOf is the position just past the last token.
func endOf(tokens []token.Token) token.Position {
	if len(tokens) == 0 {
		return token.Position{}
	}
	return tokens[len(tokens)-1].Span.End
}
