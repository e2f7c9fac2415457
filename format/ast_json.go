package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/rsx/markup/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(nodes []*parser.Node) error {
	text, err := e.MarshalText(nodes)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(nodes []*parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodesToAST(nodes), "", "  ")
}

// astNode is the document shape shared by the JSON and YAML encoders.
type astNode struct {
	Type        string     `json:"type" yaml:"type"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Value       *astValue  `json:"value,omitempty" yaml:"value,omitempty"`
	SelfClosing bool       `json:"selfClosing,omitempty" yaml:"selfClosing,omitempty"`
	Span        *astSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Attributes  []*astNode `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children    []*astNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type astValue struct {
	Kind   string `json:"kind" yaml:"kind"`
	Source string `json:"source" yaml:"source"`
}

type astSpan struct {
	Start astPosition `json:"start" yaml:"start"`
	End   astPosition `json:"end" yaml:"end"`
}

type astPosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func nodesToAST(nodes []*parser.Node) []*astNode {
	out := make([]*astNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeToAST(n))
	}
	return out
}

func nodeToAST(n *parser.Node) *astNode {
	an := &astNode{
		Type:        n.Type.String(),
		Name:        n.Name,
		SelfClosing: n.SelfClosing,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		an.Span = &astSpan{
			Start: astPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   astPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Value != nil {
		an.Value = &astValue{
			Kind:   n.Value.Kind.String(),
			Source: n.Value.Source(),
		}
	}

	if len(n.Attributes) > 0 {
		an.Attributes = nodesToAST(n.Attributes)
	}
	if len(n.Children) > 0 {
		an.Children = nodesToAST(n.Children)
	}

	return an
}
