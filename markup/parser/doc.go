// Package parser turns a stream of markup tokens into a tree of nodes.
//
// # Overview
//
// The input is a token stream as produced by package lexer (or any other
// tokenizer that emits token trees): identifiers, punctuation, literals and
// brace groups. The output is a sequence of root nodes:
//
//	<ul class="menu">
//	    <li>"Home"</li>
//	    <li selected>{label}</li>
//	</ul>
//
// parses to
//
//	Element <ul>
//	  Attribute class = "menu"
//	  Element <li>
//	    Text "Home"
//	  Element <li>
//	    Attribute selected
//	    Block {label}
//
// # Grammar
//
//	node     := text | block | element
//	element  := '<' NAME attr* tagEnd (node* closeTag)?
//	tagEnd   := '/' '>' | '>'
//	closeTag := '<' '/' NAME '>'
//	attr     := KEY ('=' (BLOCK | EXPR))?
//	text     := LITERAL
//	block    := BLOCK
//
// The full grammar is available as EBNF through GrammarSource.
//
// # Backtracking
//
// Alternatives are tried on forked Cursors. A Cursor is a value, so a failed
// trial leaves the caller's position untouched; a successful one is adopted
// with Commit. Text is tried before block, and block before element.
//
// # Errors
//
// Parse stops at the first error and returns a *SyntaxError positioned at
// the offending token. Its Kind is one of GrammarMismatch, OrphanCloseTag,
// UnterminatedOpenTag, TagNameMismatch, MalformedAttribute or
// MalformedEmbeddedExpression:
//
//	_, err := parser.ParseTokens(tokens)
//	if errors.Is(err, parser.TagNameMismatch) {
//	    // ...
//	}
//
// # Flattening
//
// WithFlatten(true) returns each node followed by its descendants as
// siblings, in pre-order, with every Children slice empty.
//
// # Embedded expressions
//
// Brace groups are handed to an ExprParser. OpaqueExprs, the default,
// accepts anything; GoExprs requires a Go expression.
package parser
