// Package markup parses a small tag language in which every element is
// closed by a tag repeating its name:
//
//	fugafuga<a>hogehoge<i>hoge</i>hoge</a>
//
// Closing tags are matched against the opening tag through a capture
// history, and elements nest through a recursive rule. The same grammar is
// offered in three shapes: a flat list of names and texts, a nested
// token.Sequence, and an Element tree.
package markup

import (
	"strings"
	"sync"

	"github.com/dhamidi/hunt/parse"
	"github.com/dhamidi/hunt/token"
)

const (
	namePattern = `(?i)[a-z][a-z0-9]*`
	textPattern = `[^<]+`
)

// Kind distinguishes the nodes of an Element tree.
type Kind int

const (
	Document Kind = iota
	Tag
	Text
)

func (k Kind) String() string {
	switch k {
	case Document:
		return "document"
	case Tag:
		return "tag"
	case Text:
		return "text"
	}
	return "unknown"
}

// Element is a node of a parsed document.
type Element struct {
	Kind     Kind
	Name     string // tag name, Tag only
	Text     string // content, Text only
	Offset   int    // byte offset of the node in the input
	Children []*Element
}

func (e *Element) withChild(child *Element) *Element {
	out := *e
	out.Children = append(out.Children[:len(out.Children):len(out.Children)], child)
	return &out
}

// String renders the element back as markup.
func (e *Element) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Element) write(sb *strings.Builder) {
	switch e.Kind {
	case Text:
		sb.WriteString(e.Text)
		return
	case Tag:
		sb.WriteString("<" + e.Name + ">")
	case Document:
	}
	for _, child := range e.Children {
		child.write(sb)
	}
	if e.Kind == Tag {
		sb.WriteString("</" + e.Name + ">")
	}
}

// closing matches "</name>" against the most recent opening tag.
func closing(name *parse.Hunter[string]) parse.Parser[string] {
	return parse.Then(parse.Literal("</"), name.PopAsLiteral()).Skip(parse.Literal(">"))
}

func opening(name *parse.Hunter[string]) parse.Parser[string] {
	return parse.Then(parse.Literal("<"), name.Parser).Skip(parse.Literal(">")).Named("opening tag")
}

var flat = sync.OnceValue(func() parse.Parser[[]string] {
	name := parse.Capture(parse.Pattern(namePattern))
	text := parse.ToList(parse.Pattern(textPattern))

	element := parse.NewHunter[[]string]()
	content := parse.ManyFlat(text.Or(element.Parser))
	element.Arm(parse.SequenceFlat(parse.ToList(opening(name)), content, parse.Ignore(parse.ToList(closing(name)))))

	return parse.ManyFlat(text.Or(element.Parser))
})

var nested = sync.OnceValue(func() parse.Parser[token.Token] {
	name := parse.Capture(parse.Pattern(namePattern))
	text := token.Text(parse.Pattern(textPattern))

	element := parse.NewHunter[token.Token]()
	content := parse.Many(parse.AsChild(text.Or(element.Parser), func(into, tok token.Token) token.Token {
		return tok.Push(into)
	}))
	element.Arm(parse.WithChildren(token.List(parse.ToList(opening(name))), content).Skip(closing(name)))

	root := parse.New(func(ctx *parse.Context, c parse.Cursor) parse.Outcome[token.Token] {
		return parse.Success[token.Token](c, token.Sequence{})
	})
	return parse.WithChildren(root, content)
})

var tree = sync.OnceValue(func() parse.Parser[*Element] {
	name := parse.Capture(parse.Pattern(namePattern))
	chars := parse.Pattern(textPattern)
	text := parse.New(func(ctx *parse.Context, c parse.Cursor) parse.Outcome[*Element] {
		out := chars.Run(ctx, c)
		if !out.Matched() {
			return parse.Failure[*Element](c, out.Message())
		}
		return parse.Success(out.Cursor(), &Element{Kind: Text, Text: out.Value(), Offset: c.Offset()})
	})

	element := parse.NewHunter[*Element]()
	content := parse.Many(parse.AsChild(text.Or(element.Parser), (*Element).withChild))
	tag := opening(name)
	open := parse.New(func(ctx *parse.Context, c parse.Cursor) parse.Outcome[*Element] {
		out := tag.Run(ctx, c)
		if !out.Matched() {
			return parse.Failure[*Element](c, out.Message())
		}
		return parse.Success(out.Cursor(), &Element{Kind: Tag, Name: out.Value(), Offset: c.Offset()})
	})
	element.Arm(parse.WithChildren(open, content).Skip(closing(name)))

	root := parse.New(func(ctx *parse.Context, c parse.Cursor) parse.Outcome[*Element] {
		return parse.Success(c, &Element{Kind: Document, Offset: c.Offset()})
	})
	return parse.WithChildren(root, content)
})

// Tokens returns the tag names and texts of input in document order.
func Tokens(input string) ([]string, error) {
	return parse.Complete(flat(), "", input)
}

// Nested returns input as a token.Sequence in which every element is a
// nested sequence headed by its tag name.
func Nested(input string) (token.Token, error) {
	return parse.Complete(nested(), "", input)
}

// Parse returns the Element tree of input. The root has Kind Document.
func Parse(input string) (*Element, error) {
	return ParseFile("", input)
}

// ParseFile is Parse with a file name for error positions.
func ParseFile(filename, input string) (*Element, error) {
	return parse.Complete(tree(), filename, input)
}
