// Package format renders markup trees as markup source, JSON, YAML,
// tab-separated lines or an indented tree dump.
package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dhamidi/rsx/markup/parser"
)

type Encoder interface {
	Encode(nodes []*parser.Node) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"tree":   func(w io.Writer) Encoder { return NewTreeEncoder(w) },
	"json":   func(w io.Writer) Encoder { return NewASTJSONEncoder(w) },
	"yaml":   func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
	"markup": func(w io.Writer) Encoder { return NewMarkupPrettyPrinter(w) },
	"lines":  func(w io.Writer) Encoder { return NewLineEncoder(w) },
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		if ranks := fuzzy.RankFindFold(name, Names()); len(ranks) > 0 {
			sort.Sort(ranks)
			return nil, fmt.Errorf("unknown format: %s (did you mean %s?)", name, ranks[0].Target)
		}
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return newEncoder(w), nil
}

// Names lists the registered encoder names.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(nodes []*parser.Node) error {
	for _, n := range nodes {
		if _, err := io.WriteString(e.w, n.String()); err != nil {
			return err
		}
	}
	return nil
}
