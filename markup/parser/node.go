package parser

import (
	"strings"

	"github.com/dhamidi/rsx/markup/token"
)

type NodeType int

const (
	Element NodeType = iota
	Text
	Block
	Attribute
)

var nodeTypeNames = map[NodeType]string{
	Element:   "Element",
	Text:      "Text",
	Block:     "Block",
	Attribute: "Attribute",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Node is one element, text, block or attribute of the markup tree.
//
// Elements have a Name, Attributes and Children. Text and Block nodes carry
// their payload in Value and are named "#text" and "#block". Attributes have
// a Name and an optional Value.
type Node struct {
	Type        NodeType
	Name        string
	Value       *Expr
	Attributes  []*Node
	Children    []*Node
	SelfClosing bool
	Span        token.Span
}

const (
	textName  = "#text"
	blockName = "#block"
)

// Attr returns the first attribute named name, or nil.
func (n *Node) Attr(name string) *Node {
	for _, attr := range n.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// Walk visits n and its content descendants in pre-order. Attributes are not
// visited. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)

	sb.WriteString(prefix)
	sb.WriteString(n.Type.String())
	switch n.Type {
	case Element:
		sb.WriteString(" <" + n.Name + ">")
		if n.SelfClosing {
			sb.WriteString(" self-closing")
		}
	case Attribute:
		sb.WriteString(" " + n.Name)
		if n.Value != nil {
			sb.WriteString(" = " + n.Value.Source())
		}
	default:
		if n.Value != nil {
			sb.WriteString(" " + n.Value.Source())
		}
	}
	sb.WriteString("\n")

	for _, attr := range n.Attributes {
		attr.writeIndent(sb, indent+1)
	}
	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}
