package grammar

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes syntax trees as indented JSON.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node *Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(node *Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     jsonSpan    `json:"span"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *Node) *jsonNode {
	start, end := n.Span.Start.Position(), n.Span.End.Position()
	jn := &jsonNode{
		Kind: n.Kind,
		Span: jsonSpan{
			Start: jsonPosition{Offset: start.Offset, Line: start.Line, Column: start.Column},
			End:   jsonPosition{Offset: end.Offset, Line: end.Line, Column: end.Column},
		},
	}

	if n.IsTerminal() {
		jn.Text = n.Text()
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
