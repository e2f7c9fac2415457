package format

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/rsx/markup/lexer"
	"github.com/dhamidi/rsx/markup/parser"
)

func parseMarkup(t *testing.T, src string) []*parser.Node {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src), "test.rsx")
	require.NoError(t, err)
	nodes, err := parser.ParseTokens(toks)
	require.NoError(t, err)
	return nodes
}

func printMarkup(t *testing.T, nodes []*parser.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewMarkupPrettyPrinter(&buf).Encode(nodes))
	return buf.String()
}

var treeOptions = cmp.Options{
	cmpopts.IgnoreFields(parser.Node{}, "Span"),
	cmp.Comparer(func(a, b *parser.Expr) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Kind == b.Kind && a.Source() == b.Source()
	}),
}

func TestMarkupPrettyPrint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"self closing", `<br/>`, "<br/>\n"},
		{"empty pair", `<p></p>`, "<p></p>\n"},
		{"text", `"a"   "b"`, "\"a\"\n\"b\"\n"},
		{
			"nested",
			`<ul class="menu"><li>"Home"</li><li selected>{label} "x"</li></ul>`,
			"<ul class=\"menu\">\n  <li>\"Home\"</li>\n  <li selected>{label} \"x\"</li>\n</ul>\n",
		},
		{
			"attributes",
			`<a   x = 1  y={ f(a > b) }  z=p.q />`,
			"<a x=1 y={ f(a > b) } z=p.q/>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printMarkup(t, parseMarkup(t, tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarkupRoundTrip(t *testing.T) {
	inputs := []string{
		`<a/>`,
		`<a><b/></a>`,
		`<a x=1 y={expr}/>`,
		`<div data-id="7"><p>"one" {two}</p><hr/><section><h1>{title}</h1></section></div>`,
		`"lead" {mid} <tail k=v.w></tail>`,
		`<x a={ {"nested": [1, 2]} }>{ "}" }</x>`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := parseMarkup(t, input)
			printed := printMarkup(t, first)
			second := parseMarkup(t, printed)

			if diff := cmp.Diff(first, second, treeOptions); diff != "" {
				t.Errorf("reparsed tree differs (-first +second):\n%s\nprinted:\n%s", diff, printed)
			}
			if again := printMarkup(t, second); again != printed {
				t.Errorf("printing is not idempotent:\n%s\nvs\n%s", printed, again)
			}
		})
	}
}

func TestPrettyPrintMarkupReportsErrors(t *testing.T) {
	_, err := PrettyPrintMarkup([]byte(`<a></b>`), "bad.rsx")
	require.ErrorIs(t, err, parser.TagNameMismatch)

	out, err := PrettyPrintMarkup([]byte(`<a>"x"</a>`), "ok.rsx")
	require.NoError(t, err)
	if string(out) != "<a>\"x\"</a>\n" {
		t.Errorf("output = %q", out)
	}
}

func TestPrettyPrintMarkupOptions(t *testing.T) {
	out, err := PrettyPrintMarkup([]byte(`<ul><li>"a"</li></ul>`), "list.rsx",
		WithIndent("\t"),
		WithParserOptions(parser.WithFlatten(true)))
	require.NoError(t, err)
	want := "<ul>\n\t<li>\"a\"</li>\n</ul>\n"
	if string(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	_, err = PrettyPrintMarkup([]byte(`<a x={1 +}></a>`), "bad.rsx",
		WithParserOptions(parser.WithExprParser(parser.GoExprs{})))
	require.ErrorIs(t, err, parser.MalformedEmbeddedExpression)
}
