// Package grammar compiles EBNF grammars into parsers that build concrete
// syntax trees.
//
// Grammars use the notation of golang.org/x/exp/ebnf. Productions whose name
// starts with an upper-case letter are syntactic: they produce an interior
// Node and allow trivia (white space by default) before each token. All
// other productions are lexical: they match text without skipping trivia
// and produce a leaf Node.
package grammar

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/hunt/parse"
	"golang.org/x/exp/ebnf"
)

// DefaultSkip is the trivia pattern skipped before tokens of syntactic
// productions.
const DefaultSkip = `[ \t\r\n]+`

// Option configures Compile.
type Option func(*compiler)

// WithSkip sets the pattern skipped before tokens of syntactic productions.
// An empty pattern disables skipping.
func WithSkip(expr string) Option {
	return func(c *compiler) {
		c.skipExpr = expr
	}
}

// WithTrace logs every production attempt through parse.Trace.
func WithTrace() Option {
	return func(c *compiler) {
		c.trace = true
	}
}

// Load loads an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// IsLexical reports whether the production name denotes a lexical
// production.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

type compiler struct {
	grammar  ebnf.Grammar
	skipExpr string
	trace    bool

	skip  parse.Matcher
	nodes map[string]parse.Parser[*Node]
	texts map[string]parse.Parser[string]
	errs  []error
}

// Compile builds a parser for the start production of g. The parser
// produces the root of the syntax tree and consumes trailing trivia.
//
// Productions refer to each other through a registry resolved when the
// parser runs, so recursive grammars compile without special treatment.
// Left-recursive productions never terminate.
func Compile(g ebnf.Grammar, start string, opts ...Option) (parse.Parser[*Node], error) {
	c := &compiler{
		grammar:  g,
		skipExpr: DefaultSkip,
		nodes:    make(map[string]parse.Parser[*Node]),
		texts:    make(map[string]parse.Parser[string]),
	}
	for _, opt := range opts {
		opt(c)
	}

	if prod, ok := g[start]; !ok || prod == nil {
		return parse.Parser[*Node]{}, fmt.Errorf("production %q not found in grammar", start)
	}

	c.skip = parse.Literal("")
	if c.skipExpr != "" {
		c.skip = parse.Quiet(parse.Optional(parse.Pattern(c.skipExpr)))
	}

	for _, name := range slices.Sorted(maps.Keys(g)) {
		expr := g[name].Expr
		c.texts[name] = c.text(expr)
		if IsLexical(name) {
			c.nodes[name] = c.traced(name, leaf(name, c.texts[name]))
		} else {
			c.nodes[name] = c.traced(name, c.interior(name, c.children(expr)))
		}
	}

	if len(c.errs) > 0 {
		return parse.Parser[*Node]{}, errors.Join(c.errs...)
	}
	return c.nodes[start].Skip(c.skip), nil
}

func (c *compiler) traced(name string, p parse.Parser[*Node]) parse.Parser[*Node] {
	if !c.trace {
		return p
	}
	return parse.Trace(name, p)
}

func (c *compiler) errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

// nodeRef resolves a production's node parser when it runs.
func (c *compiler) nodeRef(name string) parse.Parser[*Node] {
	if _, ok := c.grammar[name]; !ok {
		c.errorf("undefined production %q", name)
	}
	return parse.Lazy(func() parse.Parser[*Node] { return c.nodes[name] })
}

// textRef resolves a production's text parser when it runs.
func (c *compiler) textRef(name string) parse.Parser[string] {
	if _, ok := c.grammar[name]; !ok {
		c.errorf("undefined production %q", name)
	}
	return parse.Lazy(func() parse.Parser[string] { return c.texts[name] })
}

// children compiles expr as the body of a syntactic production.
func (c *compiler) children(expr ebnf.Expression) parse.Parser[[]*Node] {
	switch e := expr.(type) {
	case nil:
		return parse.New(func(ctx *parse.Context, cur parse.Cursor) parse.Outcome[[]*Node] {
			return parse.Success(cur, []*Node{})
		})

	case *ebnf.Token:
		return parse.ToList(c.terminal(strconv.Quote(e.String), parse.Literal(e.String)))

	case *ebnf.Range:
		kind := strconv.Quote(e.Begin.String) + "…" + strconv.Quote(e.End.String)
		return parse.ToList(c.terminal(kind, c.runeRange(e)))

	case ebnf.Sequence:
		items := make([]parse.Parser[[]*Node], len(e))
		for i, item := range e {
			items[i] = c.children(item)
		}
		return parse.SequenceFlat(items...)

	case ebnf.Alternative:
		alts := make([]parse.Parser[[]*Node], len(e))
		for i, alt := range e {
			alts[i] = c.children(alt)
		}
		return alternatives(alts)

	case *ebnf.Group:
		return c.children(e.Body)

	case *ebnf.Option:
		return parse.Optional(c.children(e.Body))

	case *ebnf.Repetition:
		return parse.ManyFlat(c.children(e.Body))

	case *ebnf.Name:
		if IsLexical(e.String) {
			return parse.ToList(parse.Then(c.skip, c.nodeRef(e.String)))
		}
		return parse.ToList(c.nodeRef(e.String))

	default:
		c.errorf("unsupported expression %T", expr)
		return parse.Fail[[]*Node]("unsupported expression")
	}
}

// text compiles expr as the body of a lexical production.
func (c *compiler) text(expr ebnf.Expression) parse.Parser[string] {
	switch e := expr.(type) {
	case nil:
		return parse.Literal("")

	case *ebnf.Token:
		return parse.Literal(e.String)

	case *ebnf.Range:
		return c.runeRange(e)

	case ebnf.Sequence:
		items := make([]parse.Parser[string], len(e))
		for i, item := range e {
			items[i] = c.text(item)
		}
		return concat(parse.Sequence(items...))

	case ebnf.Alternative:
		alts := make([]parse.Parser[string], len(e))
		for i, alt := range e {
			alts[i] = c.text(alt)
		}
		return alternatives(alts)

	case *ebnf.Group:
		return c.text(e.Body)

	case *ebnf.Option:
		return parse.Optional(c.text(e.Body))

	case *ebnf.Repetition:
		return concat(parse.Many(c.text(e.Body)))

	case *ebnf.Name:
		return c.textRef(e.String)

	default:
		c.errorf("unsupported expression %T", expr)
		return parse.Fail[string]("unsupported expression")
	}
}

// runeRange matches a single character between the range bounds.
func (c *compiler) runeRange(e *ebnf.Range) parse.Parser[string] {
	lo, hi := e.Begin.String, e.End.String
	if utf8.RuneCountInString(lo) != 1 || utf8.RuneCountInString(hi) != 1 {
		c.errorf("range %q … %q: bounds must be single characters", lo, hi)
		return parse.Fail[string]("invalid range")
	}
	first, _ := utf8.DecodeRuneInString(lo)
	last, _ := utf8.DecodeRuneInString(hi)
	msg := fmt.Sprintf("expected %q … %q", lo, hi)
	fail := parse.Fail[string](msg)

	return parse.New(func(ctx *parse.Context, cur parse.Cursor) parse.Outcome[string] {
		r, size := utf8.DecodeRuneInString(cur.Rest())
		if size == 0 || r < first || r > last {
			return fail.Run(ctx, cur)
		}
		return parse.Success(cur.Advance(size), cur.Peek(size))
	})
}

// terminal matches p after trivia and turns the text into a leaf.
func (c *compiler) terminal(kind string, p parse.Parser[string]) parse.Parser[*Node] {
	return parse.Then(c.skip, leaf(kind, p))
}

func (c *compiler) interior(kind string, body parse.Parser[[]*Node]) parse.Parser[*Node] {
	open := parse.New(func(ctx *parse.Context, cur parse.Cursor) parse.Outcome[*Node] {
		return parse.Success(cur, newInterior(kind, cur))
	})
	attach := parse.Map(body, func(nodes []*Node) []parse.Child[*Node] {
		children := make([]parse.Child[*Node], len(nodes))
		for i, n := range nodes {
			children[i] = parse.NewChild(func(parent *Node) *Node { return parent.WithChild(n) })
		}
		return children
	})
	return parse.WithChildren(open, attach)
}

// alternatives is parse.Choice, except that when no alternative matches it
// falls back to the first one that was ignored. An optional alternative
// such as [ "a" ] in [ "a" ] | "b" thereby still accepts empty input.
func alternatives[T any](alts []parse.Parser[T]) parse.Parser[T] {
	choice := parse.Choice(alts...)
	return parse.New(func(ctx *parse.Context, cur parse.Cursor) parse.Outcome[T] {
		out := choice.Run(ctx, cur)
		if !out.Failed() {
			return out
		}
		for _, alt := range alts {
			if fallback := alt.Run(ctx, cur); fallback.Ignored() {
				return fallback
			}
		}
		return out
	})
}

func leaf(kind string, p parse.Parser[string]) parse.Parser[*Node] {
	return parse.New(func(ctx *parse.Context, cur parse.Cursor) parse.Outcome[*Node] {
		out := p.Run(ctx, cur)
		switch out.Status() {
		case parse.Matched, parse.Ignored:
			return parse.Success(out.Cursor(), newLeaf(kind, cur, out.Cursor()))
		case parse.NotMatched:
		}
		return parse.Failure[*Node](cur, out.Message())
	})
}

func concat(p parse.Parser[[]string]) parse.Parser[string] {
	return parse.Map(p, func(parts []string) string {
		n := 0
		for _, s := range parts {
			n += len(s)
		}
		b := make([]byte, 0, n)
		for _, s := range parts {
			b = append(b, s...)
		}
		return string(b)
	})
}
