package format

import (
	"bytes"
	"io"
	"strings"

	"github.com/dhamidi/rsx/markup/lexer"
	"github.com/dhamidi/rsx/markup/parser"
)

// MarkupPrettyPrinter writes nodes back as markup source. Elements whose
// children are all text or blocks stay on one line; everything else gets
// one child per line.
type MarkupPrettyPrinter struct {
	w           io.Writer
	buf         bytes.Buffer
	indent      int
	indentStr   string
	atLineStart bool
}

func NewMarkupPrettyPrinter(w io.Writer) *MarkupPrettyPrinter {
	return &MarkupPrettyPrinter{
		w:           w,
		indentStr:   "  ",
		atLineStart: true,
	}
}

// SetIndent sets the string written once per nesting level.
func (p *MarkupPrettyPrinter) SetIndent(indent string) {
	p.indentStr = indent
}

func (p *MarkupPrettyPrinter) Encode(nodes []*parser.Node) error {
	p.buf.Reset()
	p.indent = 0
	p.atLineStart = true
	for _, n := range nodes {
		p.printNode(n)
		p.newline()
	}
	_, err := p.w.Write(p.buf.Bytes())
	return err
}

func (p *MarkupPrettyPrinter) printNode(n *parser.Node) {
	p.writeIndent()
	switch n.Type {
	case parser.Element:
		p.printElement(n)
	case parser.Attribute:
		p.printAttribute(n)
	default:
		if n.Value != nil {
			p.write(n.Value.Source())
		}
	}
}

func (p *MarkupPrettyPrinter) printElement(n *parser.Node) {
	p.write("<" + n.Name)
	for _, attr := range n.Attributes {
		p.write(" ")
		p.printAttribute(attr)
	}

	if len(n.Children) == 0 {
		if n.SelfClosing {
			p.write("/>")
		} else {
			p.write("></" + n.Name + ">")
		}
		return
	}
	p.write(">")

	if inline(n.Children) {
		for i, child := range n.Children {
			if i > 0 {
				p.write(" ")
			}
			p.printNode(child)
		}
		p.write("</" + n.Name + ">")
		return
	}

	p.indent++
	for _, child := range n.Children {
		p.newline()
		p.printNode(child)
	}
	p.indent--
	p.newline()
	p.writeIndent()
	p.write("</" + n.Name + ">")
}

func (p *MarkupPrettyPrinter) printAttribute(n *parser.Node) {
	p.write(n.Name)
	if n.Value != nil {
		p.write("=" + n.Value.Source())
	}
}

func inline(children []*parser.Node) bool {
	for _, child := range children {
		if child.Type == parser.Element {
			return false
		}
	}
	return true
}

func (p *MarkupPrettyPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	p.buf.WriteString(strings.Repeat(p.indentStr, p.indent))
	p.atLineStart = false
}

func (p *MarkupPrettyPrinter) write(s string) {
	p.buf.WriteString(s)
	if s != "" {
		p.atLineStart = false
	}
}

func (p *MarkupPrettyPrinter) newline() {
	if p.atLineStart {
		return
	}
	p.buf.WriteByte('\n')
	p.atLineStart = true
}

// PrettyOption configures PrettyPrintMarkup.
type PrettyOption func(*prettyOptions)

type prettyOptions struct {
	indent     string
	parserOpts []parser.Option
}

// WithIndent sets the per-level indentation. The default is two spaces.
func WithIndent(indent string) PrettyOption {
	return func(o *prettyOptions) {
		o.indent = indent
	}
}

func WithParserOptions(opts ...parser.Option) PrettyOption {
	return func(o *prettyOptions) {
		o.parserOpts = append(o.parserOpts, opts...)
	}
}

// PrettyPrintMarkup parses source and prints it back in canonical form.
// Flattening is always disabled since the printer needs the tree.
func PrettyPrintMarkup(source []byte, filename string, opts ...PrettyOption) ([]byte, error) {
	o := prettyOptions{indent: "  "}
	for _, opt := range opts {
		opt(&o)
	}

	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		return nil, err
	}
	nodes, err := parser.ParseTokens(tokens, append(o.parserOpts, parser.WithFlatten(false))...)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	printer := NewMarkupPrettyPrinter(&out)
	printer.SetIndent(o.indent)
	if err := printer.Encode(nodes); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
