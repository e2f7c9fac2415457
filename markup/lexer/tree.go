package lexer

import (
	"errors"
	"io"

	"github.com/dhamidi/rsx/markup/token"
)

var openers = map[string]token.Delim{
	"{": token.Brace,
	"(": token.Paren,
	"[": token.Bracket,
}

var closers = map[string]token.Delim{
	"}": token.Brace,
	")": token.Paren,
	"]": token.Bracket,
}

type frame struct {
	delim  token.Delim
	open   token.Token
	tokens []token.Token
}

// Tokenize scans input and assembles matching delimiters into group tokens.
func Tokenize(input []byte, file string) ([]token.Token, error) {
	l := NewLexer(input, file)
	stack := []*frame{{}}

	for {
		tok, err := l.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]
		if tok.Kind == token.Punct {
			if d, ok := openers[tok.Literal]; ok {
				stack = append(stack, &frame{delim: d, open: tok})
				continue
			}
			if d, ok := closers[tok.Literal]; ok {
				if len(stack) == 1 {
					return nil, l.errorf(tok.Span.Start, "unexpected %q", tok.Literal)
				}
				if top.delim != d {
					return nil, l.errorf(tok.Span.Start, "%q does not close %q opened at %s",
						tok.Literal, top.open.Literal, top.open.Span.Start)
				}
				stack = stack[:len(stack)-1]
				group := token.Token{
					Kind:     token.Group,
					Delim:    d,
					Span:     token.Span{Start: top.open.Span.Start, End: tok.Span.End},
					Literal:  string(input[top.open.Span.Start.Offset:tok.Span.End.Offset]),
					Children: top.tokens,
				}
				parent := stack[len(stack)-1]
				parent.tokens = append(parent.tokens, group)
				continue
			}
		}
		top.tokens = append(top.tokens, tok)
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, l.errorf(top.open.Span.Start, "%q is never closed", top.open.Literal)
	}
	return stack[0].tokens, nil
}
