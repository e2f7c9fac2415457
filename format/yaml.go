package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/rsx/markup/parser"
)

type YAMLEncoder struct {
	w      io.Writer
	indent int
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w, indent: 2}
}

func (e *YAMLEncoder) Encode(nodes []*parser.Node) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(e.indent)
	if err := enc.Encode(nodesToAST(nodes)); err != nil {
		return err
	}
	return enc.Close()
}
