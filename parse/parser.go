package parse

// Func is the function a Parser wraps.
type Func[T any] func(ctx *Context, c Cursor) Outcome[T]

// Parser is an immutable parsing function producing values of type T.
// The zero Parser never matches.
type Parser[T any] struct {
	fn Func[T]
}

// Matcher is implemented by every Parser regardless of its value type.
// It lets combinators such as Then and Skip consume parsers whose values
// they discard.
type Matcher interface {
	match(ctx *Context, c Cursor) (Cursor, Status, string)
}

// New wraps fn as a Parser.
//
// fn may return any outcome; Run enforces that a NotMatched outcome
// reports the cursor fn was given and undoes any capture history changes
// made while fn ran.
func New[T any](fn Func[T]) Parser[T] {
	return Parser[T]{fn: fn}
}

// Parse runs p on input with a fresh Context.
func (p Parser[T]) Parse(input string) Outcome[T] {
	return p.Run(NewContext(), NewCursor(input))
}

// ParseAt runs p at c with a fresh Context.
func (p Parser[T]) ParseAt(c Cursor) Outcome[T] {
	return p.Run(NewContext(), c)
}

// Run runs p at c within ctx. Custom parsers built with New call Run to
// invoke the parsers they are composed of.
func (p Parser[T]) Run(ctx *Context, c Cursor) Outcome[T] {
	if p.fn == nil {
		return Failure[T](c, "uninitialized parser")
	}
	m := ctx.mark()
	out := p.fn(ctx, c)
	if out.status == NotMatched {
		ctx.rollback(m)
		out.cursor = c
	}
	return out
}

func (p Parser[T]) match(ctx *Context, c Cursor) (Cursor, Status, string) {
	out := p.Run(ctx, c)
	return out.cursor, out.status, out.message
}

// Or is Choice(p, alternatives...).
func (p Parser[T]) Or(alternatives ...Parser[T]) Parser[T] {
	return Choice(append([]Parser[T]{p}, alternatives...)...)
}

// Optional is Optional(p).
func (p Parser[T]) Optional() Parser[T] {
	return Optional(p)
}

// Ignore is Ignore(p).
func (p Parser[T]) Ignore() Parser[T] {
	return Ignore(p)
}

// Skip matches p followed by skip and keeps p's outcome.
// If skip does not match, neither does the combination.
func (p Parser[T]) Skip(skip Matcher) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		out := p.Run(ctx, c)
		if out.Failed() {
			return out
		}
		next, status, msg := skip.match(ctx, out.cursor)
		if status == NotMatched {
			return Failure[T](c, msg)
		}
		out.cursor = next
		return out
	})
}

// Named replaces the diagnostic of a failed match with "expected label".
func (p Parser[T]) Named(label string) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		out := p.Run(ctx, c)
		if out.Failed() {
			out.message = "expected " + label
		}
		return out
	})
}

// Tap calls f with every outcome of p.
func (p Parser[T]) Tap(f func(Outcome[T])) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		out := p.Run(ctx, c)
		f(out)
		return out
	})
}
