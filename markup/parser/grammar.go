package parser

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of the markup grammar.
const GrammarStart = "Document"

//go:embed grammar.ebnf
var grammarSource string

// GrammarSource returns the EBNF text of the markup grammar.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses and verifies the embedded markup grammar.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}
