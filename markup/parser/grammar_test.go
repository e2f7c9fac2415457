package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrammarVerifies(t *testing.T) {
	g, err := Grammar()
	require.NoError(t, err)

	for _, name := range []string{"Document", "Element", "CloseTag", "Attribute", "Text", "Block"} {
		if _, ok := g[name]; !ok {
			t.Errorf("grammar has no production %q", name)
		}
	}
}

func TestGrammarSource(t *testing.T) {
	if !strings.HasPrefix(GrammarSource(), GrammarStart+" ") {
		t.Errorf("grammar does not start with %s production", GrammarStart)
	}
}
