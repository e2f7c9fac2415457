// Package lexer turns markup source text into the token trees consumed by
// the markup parser.
package lexer

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/rsx/markup/token"
)

// Error is a positioned tokenizer failure.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() token.Position {
	return token.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) errorf(pos token.Position, format string, args ...any) error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// skipTrivia skips whitespace and comments.
func (l *Lexer) skipTrivia() error {
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			start := l.Position()
			l.advanceN(2)
			for {
				if l.pos >= len(l.input) {
					return l.errorf(start, "comment not terminated")
				}
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.advanceN(2)
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
}

// NextToken returns the next flat token. Delimiters are returned as Punct
// tokens; Tokenize assembles them into groups. At the end of input it
// returns io.EOF.
func (l *Lexer) NextToken() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}

	startPos := l.Position()
	if l.pos >= len(l.input) {
		return token.Token{}, io.EOF
	}

	ch := l.peek()
	switch {
	case isLetter(ch):
		return l.scanIdent(startPos), nil
	case isDigit(ch):
		return l.scanNumber(startPos), nil
	case ch == '"':
		return l.scanString(startPos)
	case ch == '`':
		return l.scanRawString(startPos)
	case ch == '\'':
		return l.scanChar(startPos)
	}

	if r, size := l.peekRune(); r >= utf8.RuneSelf {
		if unicode.IsLetter(r) {
			return l.scanIdent(startPos), nil
		}
		l.advanceN(size)
		return l.token(token.Punct, token.LitNone, startPos), nil
	}

	l.advance()
	return l.token(token.Punct, token.LitNone, startPos), nil
}

func (l *Lexer) token(kind token.Kind, lit token.LitKind, start token.Position) token.Token {
	end := l.Position()
	return token.Token{
		Kind:    kind,
		LitKind: lit,
		Span:    token.Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanIdent(start token.Position) token.Token {
	for {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) {
			l.advance()
			continue
		}
		if r, size := l.peekRune(); r >= utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			l.advanceN(size)
			continue
		}
		break
	}
	tok := l.token(token.Ident, token.LitNone, start)
	if tok.Literal == "true" || tok.Literal == "false" {
		tok.Kind = token.Literal
		tok.LitKind = token.LitBool
	}
	return tok
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.token(token.Literal, token.LitInt, start)
	}

	kind := token.LitInt
	l.scanDigits()
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		kind = token.LitFloat
		l.advance()
		l.scanDigits()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			kind = token.LitFloat
			l.advanceN(2)
			l.scanDigits()
		}
	}
	return l.token(token.Literal, kind, start)
}

func (l *Lexer) scanDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	l.advance()
	for {
		ch := l.peek()
		if l.pos >= len(l.input) || ch == '\n' {
			return token.Token{}, l.errorf(start, "string literal not terminated")
		}
		if ch == '\\' {
			l.advanceN(2)
			continue
		}
		l.advance()
		if ch == '"' {
			return l.token(token.Literal, token.LitString, start), nil
		}
	}
}

func (l *Lexer) scanRawString(start token.Position) (token.Token, error) {
	l.advance()
	for {
		if l.pos >= len(l.input) {
			return token.Token{}, l.errorf(start, "raw string literal not terminated")
		}
		if l.advance() == '`' {
			return l.token(token.Literal, token.LitString, start), nil
		}
	}
}

func (l *Lexer) scanChar(start token.Position) (token.Token, error) {
	l.advance()
	for {
		ch := l.peek()
		if l.pos >= len(l.input) || ch == '\n' {
			return token.Token{}, l.errorf(start, "rune literal not terminated")
		}
		if ch == '\\' {
			l.advanceN(2)
			continue
		}
		l.advance()
		if ch == '\'' {
			return l.token(token.Literal, token.LitChar, start), nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}
