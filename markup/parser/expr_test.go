package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/rsx/markup/token"
)

func literals(tokens []token.Token) []string {
	out := []string{}
	for _, tok := range tokens {
		out = append(out, tok.Text())
	}
	return out
}

func TestExprInner(t *testing.T) {
	nodes := mustParse(t, `<a x=1 y=item.name z={f(a) + 1}>{}</a>`)
	require.Len(t, nodes, 1)
	a := nodes[0]

	tests := []struct {
		name string
		expr *Expr
		kind ExprKind
		want []string
	}{
		{"literal", a.Attr("x").Value, ExprLiteral, []string{"1"}},
		{"path", a.Attr("y").Value, ExprPath, []string{"item", ".", "name"}},
		{"block", a.Attr("z").Value, ExprBlock, []string{"f", "(a)", "+", "1"}},
		{"empty block", a.Children[0].Value, ExprBlock, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.expr)
			if tt.expr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.expr.Kind, tt.kind)
			}
			if diff := cmp.Diff(tt.want, literals(tt.expr.Inner())); diff != "" {
				t.Errorf("Inner mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
