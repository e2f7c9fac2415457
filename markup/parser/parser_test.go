package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/rsx/markup/lexer"
	"github.com/dhamidi/rsx/markup/token"
)

type shape struct {
	Type        NodeType
	Name        string
	Value       string
	SelfClosing bool
	Attrs       []shape
	Children    []shape
}

func shapeOf(n *Node) shape {
	s := shape{Type: n.Type, Name: n.Name, SelfClosing: n.SelfClosing}
	if n.Value != nil {
		s.Value = n.Value.Source()
	}
	for _, attr := range n.Attributes {
		s.Attrs = append(s.Attrs, shapeOf(attr))
	}
	for _, child := range n.Children {
		s.Children = append(s.Children, shapeOf(child))
	}
	return s
}

func shapesOf(nodes []*Node) []shape {
	var out []shape
	for _, n := range nodes {
		out = append(out, shapeOf(n))
	}
	return out
}

func parse(t *testing.T, src string, opts ...Option) ([]*Node, error) {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src), "test.rsx")
	require.NoError(t, err)
	return ParseTokens(toks, opts...)
}

func mustParse(t *testing.T, src string, opts ...Option) []*Node {
	t.Helper()
	nodes, err := parse(t, src, opts...)
	require.NoError(t, err)
	return nodes
}

func el(name string, attrs []shape, children ...shape) shape {
	return shape{Type: Element, Name: name, Attrs: attrs, Children: children}
}

func leaf(name string, attrs []shape) shape {
	return shape{Type: Element, Name: name, Attrs: attrs, SelfClosing: true}
}

func text(v string) shape {
	return shape{Type: Text, Name: "#text", Value: v}
}

func block(v string) shape {
	return shape{Type: Block, Name: "#block", Value: v}
}

func attr(name, v string) shape {
	return shape{Type: Attribute, Name: name, Value: v}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []shape
	}{
		{"empty", "", nil},
		{"text", `"hello"`, []shape{text(`"hello"`)}},
		{"number text", `42`, []shape{text("42")}},
		{"bool text", `true`, []shape{text("true")}},
		{"block", `{name}`, []shape{block("{name}")}},
		{"self closing", `<a/>`, []shape{leaf("a", nil)}},
		{"empty element", `<a></a>`, []shape{el("a", nil)}},
		{"nested", `<a><b/></a>`, []shape{el("a", nil, leaf("b", nil))}},
		{
			"siblings",
			`"x" {y} <z/>`,
			[]shape{text(`"x"`), block("{y}"), leaf("z", nil)},
		},
		{
			"mixed children",
			`<ul><li>"one"</li><li>{two}</li></ul>`,
			[]shape{el("ul", nil, el("li", nil, text(`"one"`)), el("li", nil, block("{two}")))},
		},
		{
			"literal and block attributes",
			`<a x=1 y={expr}/>`,
			[]shape{leaf("a", []shape{attr("x", "1"), attr("y", "{expr}")})},
		},
		{
			"bare attribute",
			`<input disabled/>`,
			[]shape{leaf("input", []shape{attr("disabled", "")})},
		},
		{
			"path attribute",
			`<a href=page.url/>`,
			[]shape{leaf("a", []shape{attr("href", "page.url")})},
		},
		{
			"hyphenated keys",
			`<div data-id="3" aria-hidden xlink:href="#a"/>`,
			[]shape{leaf("div", []shape{attr("data-id", `"3"`), attr("aria-hidden", ""), attr("xlink:href", `"#a"`)})},
		},
		{
			"keyword keys",
			`<label for="name" type="text" class="x" true=false/>`,
			[]shape{leaf("label", []shape{attr("for", `"name"`), attr("type", `"text"`), attr("class", `"x"`), attr("true", "false")})},
		},
		{
			"terminator inside group",
			`<a x={a > b} y={"/>"}>"t"</a>`,
			[]shape{el("a", []shape{attr("x", "{a > b}"), attr("y", `{"/>"}`)}, text(`"t"`))},
		},
		{
			"same name nesting",
			`<div><div>"in"</div></div>`,
			[]shape{el("div", nil, el("div", nil, text(`"in"`)))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shapesOf(mustParse(t, tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
		kind  ErrorKind
		line  int
		col   int
	}{
		{"mismatched close", `<a></b>`, nil, TagNameMismatch, 1, 6},
		{"mismatched nested close", `<a><b></a>`, nil, TagNameMismatch, 1, 9},
		{"unterminated", `<a>"text"`, nil, UnterminatedOpenTag, 1, 2},
		{"unterminated nested", "<a>\n  <b>", nil, UnterminatedOpenTag, 2, 4},
		{"orphan", `</a>`, nil, OrphanCloseTag, 1, 3},
		{"orphan after element", `<a>"x"</a></a>`, nil, OrphanCloseTag, 1, 13},
		{"bare identifier", `hello`, nil, GrammarMismatch, 1, 1},
		{"missing tag name", `<>`, nil, GrammarMismatch, 1, 2},
		{"missing terminator", `<a x=1`, nil, GrammarMismatch, 1, 7},
		{"leftover attribute token", `<a x=1 2/>`, nil, MalformedAttribute, 1, 8},
		{"missing attribute value", `<a x=/>`, nil, MalformedAttribute, 1, 6},
		{"bad attribute value", `<a x=-1/>`, nil, MalformedAttribute, 1, 6},
		{"punct in attributes", `<a , x/>`, nil, MalformedAttribute, 1, 4},
		{"bad block", `{1 +}`, []Option{WithExprParser(GoExprs{})}, MalformedEmbeddedExpression, 1, 1},
		{"bad attribute block", `<a x={1 +}/>`, []Option{WithExprParser(GoExprs{})}, MalformedEmbeddedExpression, 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input, tt.opts...)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			if syntaxErr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", syntaxErr.Kind, tt.kind, err)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(err, %v) = false", tt.kind)
			}
			if syntaxErr.Pos.Line != tt.line || syntaxErr.Pos.Column != tt.col {
				t.Errorf("Pos = %d:%d, want %d:%d", syntaxErr.Pos.Line, syntaxErr.Pos.Column, tt.line, tt.col)
			}
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`</a>`, "test.rsx:1:3: close tag has no corresponding open tag"},
		{`<a>"x"`, "test.rsx:1:2: open tag has no corresponding close tag"},
		{`<a></b>`, "test.rsx:1:6: close tag has no corresponding open tag (expected </a>)"},
		{`x`, "test.rsx:1:1: expected text, block or element"},
		{`<a x=-1/>`, "test.rsx:1:6: expected attribute value, found '-'"},
		{`<a x=1 ,/>`, "test.rsx:1:8: expected attribute name, found ','"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.Error(t, err)
			if diff := cmp.Diff(tt.want, err.Error()); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmbeddedExpressionCause(t *testing.T) {
	_, err := parse(t, `{a b}`, WithExprParser(GoExprs{}))
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	if syntaxErr.Unwrap() == nil {
		t.Fatal("expected the Go parser error to be wrapped")
	}
}

func TestParseGoExprsAcceptsValidBlocks(t *testing.T) {
	nodes := mustParse(t, `<a x={f(1, "s")} y={}>{items[0].Name}</a>`, WithExprParser(GoExprs{}))
	want := []shape{el("a", []shape{attr("x", `{f(1, "s")}`), attr("y", "{}")}, block("{items[0].Name}"))}
	if diff := cmp.Diff(want, shapesOf(nodes)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelfClosingMarker(t *testing.T) {
	selfClosing := mustParse(t, `<a/>`)
	paired := mustParse(t, `<a></a>`)

	require.Len(t, selfClosing, 1)
	require.Len(t, paired, 1)
	if !selfClosing[0].SelfClosing || paired[0].SelfClosing {
		t.Errorf("SelfClosing = %v, %v; want true, false", selfClosing[0].SelfClosing, paired[0].SelfClosing)
	}
	if len(selfClosing[0].Children) != 0 || len(paired[0].Children) != 0 {
		t.Error("expected no children")
	}
}

func TestParseSpans(t *testing.T) {
	nodes := mustParse(t, "<p class=\"a\">\n  \"hi\"\n</p>")
	require.Len(t, nodes, 1)
	p := nodes[0]

	if p.Span.Start.Line != 1 || p.Span.Start.Column != 1 {
		t.Errorf("element start = %s, want 1:1", p.Span.Start)
	}
	if p.Span.End.Line != 3 || p.Span.End.Column != 5 {
		t.Errorf("element end = %s, want 3:5", p.Span.End)
	}
	class := p.Attr("class")
	require.NotNil(t, class)
	if class.Span.Start.Column != 4 || class.Span.End.Column != 13 {
		t.Errorf("attribute span = %s-%s, want 1:4-1:13", class.Span.Start, class.Span.End)
	}
	require.Len(t, p.Children, 1)
	if p.Children[0].Span.Start.Line != 2 {
		t.Errorf("text line = %d, want 2", p.Children[0].Span.Start.Line)
	}
}

func TestParseProgrammaticTokens(t *testing.T) {
	toks := []token.Token{
		token.NewPunct("<"), token.NewIdent("a"),
		token.NewIdent("x"), token.NewPunct("="), token.NewGroup(token.Brace, token.NewIdent("v")),
		token.NewPunct(">"),
		token.NewLiteral(token.LitString, `"t"`),
		token.NewPunct("<"), token.NewPunct("/"), token.NewIdent("a"), token.NewPunct(">"),
	}
	nodes, err := ParseTokens(toks)
	require.NoError(t, err)

	want := []shape{el("a", []shape{attr("x", "{ v }")}, text(`"t"`))}
	if diff := cmp.Diff(want, shapesOf(nodes)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeWalkAndString(t *testing.T) {
	nodes := mustParse(t, `<a x=1><b>"t"</b>{c}</a>`)
	require.Len(t, nodes, 1)

	var visited []string
	nodes[0].Walk(func(n *Node) bool {
		visited = append(visited, n.Name)
		return true
	})
	if diff := cmp.Diff([]string{"a", "b", "#text", "#block"}, visited); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	want := "Element <a>\n" +
		"  Attribute x = 1\n" +
		"  Element <b>\n" +
		"    Text \"t\"\n" +
		"  Block {c}\n"
	if diff := cmp.Diff(want, nodes[0].String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}
