package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/rsx/markup/parser"
)

// LineEncoder writes one tab-separated line per node:
//
//	position	type	path	value
//
// path is the slash-joined chain of enclosing element names, so the output
// can be filtered with grep and cut.
type LineEncoder struct {
	w     io.Writer
	nodes []*parser.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(nodes []*parser.Node) error {
	e.nodes = nodes
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, n := range e.nodes {
		e.writeNode(&sb, "", n)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, parent string, n *parser.Node) {
	path := parent
	if n.Type == parser.Element {
		path = parent + "/" + n.Name
	}
	if path == "" {
		path = "/"
	}

	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\n", n.Span.Start, e.nodeKind(n), path, e.valueStr(n))

	for _, attr := range n.Attributes {
		fmt.Fprintf(sb, "%s\tattribute\t%s\t%s\n", attr.Span.Start, path+"@"+attr.Name, e.valueStr(attr))
	}
	for _, child := range n.Children {
		e.writeNode(sb, path, child)
	}
}

func (e *LineEncoder) nodeKind(n *parser.Node) string {
	switch n.Type {
	case parser.Element:
		if n.SelfClosing {
			return "element/"
		}
		return "element"
	case parser.Text:
		return "text"
	case parser.Block:
		return "block"
	default:
		return "attribute"
	}
}

func (e *LineEncoder) valueStr(n *parser.Node) string {
	if n.Value == nil {
		return ""
	}
	return strings.NewReplacer("\t", `\t`, "\n", `\n`).Replace(n.Value.Source())
}
