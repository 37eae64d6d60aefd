package grammar

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/hunt/parse"
)

// Span represents a range in source code.
type Span struct {
	Start parse.Cursor
	End   parse.Cursor
}

// Text returns the source text covered by the span.
func (s Span) Text() string {
	text := s.Start.Text()
	if s.End.Offset() < s.Start.Offset() {
		return ""
	}
	return text[s.Start.Offset():s.End.Offset()]
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start.Position(), s.End.Position())
}

// Node represents a node in the concrete syntax tree.
// Leaf nodes come from lexical productions and literals; interior nodes
// come from syntactic productions and have Children.
type Node struct {
	Kind     string  // Production name, or the quoted literal for literals
	Children []*Node // Child nodes (nil for leaves)
	Span     Span    // Source span covering this node
	leaf     bool
}

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return n.leaf
}

// Text returns the source text of this node.
func (n *Node) Text() string {
	return n.Span.Text()
}

// WithChild returns a copy of n with child appended and the span widened
// to cover it. n is not modified.
func (n *Node) WithChild(child *Node) *Node {
	if child == nil {
		return n
	}
	out := *n
	out.Children = append(slices.Clone(n.Children), child)
	if len(n.Children) == 0 {
		out.Span.Start = child.Span.Start
	}
	out.Span.End = child.Span.End
	return &out
}

// Walk calls fn for n and its descendants in depth-first order.
// Children of a node are skipped when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns every node of the given kind below and including n.
func (n *Node) Find(kind string) []*Node {
	var found []*Node
	n.Walk(func(m *Node) bool {
		if m.Kind == kind {
			found = append(found, m)
		}
		return true
	})
	return found
}

// String renders the tree with one node per line.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind)
	if n.leaf {
		fmt.Fprintf(sb, " %q", n.Text())
	}
	fmt.Fprintf(sb, " %s\n", n.Span)
	for _, child := range n.Children {
		child.write(sb, depth+1)
	}
}

func newLeaf(kind string, start, end parse.Cursor) *Node {
	return &Node{Kind: kind, Span: Span{Start: start, End: end}, leaf: true}
}

func newInterior(kind string, at parse.Cursor) *Node {
	return &Node{Kind: kind, Children: make([]*Node, 0), Span: Span{Start: at, End: at}}
}
