package parse

import "fmt"

// Hunter is a Parser whose behaviour is assigned after construction and
// whose successful matches are recorded in a capture history.
//
// Arming a Hunter late lets a rule refer to itself:
//
//	element := parse.NewHunter[[]string]()
//	content := parse.ManyFlat(parse.Choice(text, element.Parser))
//	element.Arm(parse.SequenceFlat(open, content, close))
//
// The history is kept in the Context of the running parse, keyed by the
// Hunter, so one Hunter may serve concurrent parses. PopAsLiteral turns the
// most recent capture back into a literal parser, which is how closing
// delimiters are matched against opening ones.
type Hunter[T any] struct {
	Parser[T]
	prey *Parser[T]
}

// NewHunter returns an unarmed Hunter. Until Arm is called it never
// matches.
func NewHunter[T any]() *Hunter[T] {
	h := &Hunter[T]{}
	h.Parser = New(h.hunt)
	return h
}

// Capture returns a Hunter armed with p.
func Capture[T any](p Parser[T]) *Hunter[T] {
	return NewHunter[T]().Arm(p)
}

// Arm assigns the parser the Hunter runs. The parser may refer to the
// Hunter itself.
func (h *Hunter[T]) Arm(p Parser[T]) *Hunter[T] {
	h.prey = &p
	return h
}

// Armed reports whether Arm has been called.
func (h *Hunter[T]) Armed() bool {
	return h.prey != nil
}

func (h *Hunter[T]) hunt(ctx *Context, c Cursor) Outcome[T] {
	if h.prey == nil {
		return Failure[T](c, "hunter used before armed")
	}
	out := h.prey.Run(ctx, c)
	if out.Matched() {
		ctx.push(h, out.value)
	}
	return out
}

// History returns the values captured so far in ctx, oldest first.
func (h *Hunter[T]) History(ctx *Context) []T {
	raw := ctx.history(h)
	values := make([]T, len(raw))
	for i, v := range raw {
		values[i] = v.(T)
	}
	return values
}

// Last returns the most recent capture in ctx without removing it.
func (h *Hunter[T]) Last(ctx *Context) (T, bool) {
	v, ok := ctx.peek(h)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// PopAsLiteral returns a parser that removes the most recent capture from
// the history and matches its text literally. It fails when the history
// is empty.
func (h *Hunter[T]) PopAsLiteral() Parser[string] {
	return New(func(ctx *Context, c Cursor) Outcome[string] {
		v, ok := ctx.pop(h)
		return matchCaptured(ctx, c, v, ok)
	})
}

// LastAsLiteral is like PopAsLiteral but leaves the history unchanged.
func (h *Hunter[T]) LastAsLiteral() Parser[string] {
	return New(func(ctx *Context, c Cursor) Outcome[string] {
		v, ok := ctx.peek(h)
		return matchCaptured(ctx, c, v, ok)
	})
}

func matchCaptured(ctx *Context, c Cursor, v any, ok bool) Outcome[string] {
	if !ok {
		return Fail[string]("capture history is empty").Run(ctx, c)
	}
	text := captureText(v)
	if text == "" {
		return Fail[string]("captured value is empty").Run(ctx, c)
	}
	return Literal(text).Run(ctx, c)
}

// captureText coerces a captured value to the text it must match.
func captureText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
