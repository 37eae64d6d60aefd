package parse

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
)

// Literal matches s exactly.
func Literal(s string) Parser[string] {
	msg := fmt.Sprintf("expected %q", s)
	return New(func(ctx *Context, c Cursor) Outcome[string] {
		if strings.HasPrefix(c.Rest(), s) {
			return Success(c.Advance(len(s)), s)
		}
		ctx.noteFailure(c, msg)
		return Failure[string](c, msg)
	})
}

// Pattern matches the regular expression expr anchored at the cursor.
// It panics if expr does not compile, like regexp.MustCompile.
func Pattern(expr string) Parser[string] {
	return PatternRegexp(regexp.MustCompile(expr))
}

// PatternRegexp matches re anchored at the cursor. The match is never
// searched for further along the input. Empty matches do not count.
func PatternRegexp(re *regexp.Regexp) Parser[string] {
	anchored := regexp.MustCompile(`^(?:` + re.String() + `)`)
	msg := fmt.Sprintf("expected /%s/", re)
	return New(func(ctx *Context, c Cursor) Outcome[string] {
		loc := anchored.FindStringIndex(c.Rest())
		if loc == nil || loc[1] == 0 {
			ctx.noteFailure(c, msg)
			return Failure[string](c, msg)
		}
		return Success(c.Advance(loc[1]), c.Rest()[:loc[1]])
	})
}

// Fail never matches and reports message.
func Fail[T any](message string) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		ctx.noteFailure(c, message)
		return Failure[T](c, message)
	})
}

// Sequence matches every parser in order. If one of them does not match,
// the whole sequence fails at the cursor it started from. The value lists
// the values of the Matched parsers; Ignored parsers only move the cursor.
func Sequence[T any](parsers ...Parser[T]) Parser[[]T] {
	return New(func(ctx *Context, c Cursor) Outcome[[]T] {
		values := make([]T, 0, len(parsers))
		cur := c
		for _, p := range parsers {
			out := p.Run(ctx, cur)
			switch out.status {
			case Matched:
				values = append(values, out.value)
			case Ignored:
			case NotMatched:
				return Failure[[]T](c, out.message)
			}
			cur = out.cursor
		}
		return Success(cur, values)
	})
}

// SequenceFlat is Sequence for parsers producing lists; their values are
// concatenated instead of nested.
func SequenceFlat[T any](parsers ...Parser[[]T]) Parser[[]T] {
	return New(func(ctx *Context, c Cursor) Outcome[[]T] {
		var values []T
		cur := c
		for _, p := range parsers {
			out := p.Run(ctx, cur)
			switch out.status {
			case Matched:
				values = append(values, out.value...)
			case Ignored:
			case NotMatched:
				return Failure[[]T](c, out.message)
			}
			cur = out.cursor
		}
		if values == nil {
			values = []T{}
		}
		return Success(cur, values)
	})
}

// Choice tries each parser at the same cursor and returns the first Matched
// outcome. Ignored outcomes do not count as a choice: the next parser is
// tried and capture history changes of the ignored attempt are undone.
// There is no longest-match rule.
func Choice[T any](parsers ...Parser[T]) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		var msgs []string
		for _, p := range parsers {
			m := ctx.mark()
			out := p.Run(ctx, c)
			switch out.status {
			case Matched:
				return out
			case Ignored:
				ctx.rollback(m)
				msgs = append(msgs, out.message)
			case NotMatched:
				msgs = append(msgs, out.message)
			}
		}
		if len(msgs) == 1 {
			return Failure[T](c, msgs[0])
		}
		return Failure[T](c, "none of: "+strings.Join(msgs, "; "))
	})
}

// Many matches p zero or more times and never fails. It stops when p does
// not match or matches without consuming input.
func Many[T any](p Parser[T]) Parser[[]T] {
	return New(func(ctx *Context, c Cursor) Outcome[[]T] {
		values := []T{}
		cur := c
		for {
			m := ctx.mark()
			out := p.Run(ctx, cur)
			if out.Failed() {
				break
			}
			if out.cursor.Offset() == cur.Offset() {
				ctx.rollback(m)
				break
			}
			if out.Matched() {
				values = append(values, out.value)
			}
			cur = out.cursor
		}
		return Success(cur, values)
	})
}

// ManyFlat is Many for a parser producing lists; the lists are concatenated.
func ManyFlat[T any](p Parser[[]T]) Parser[[]T] {
	return Map(Many(p), func(lists [][]T) []T {
		values := []T{}
		for _, l := range lists {
			values = append(values, l...)
		}
		return values
	})
}

// Optional converts a NotMatched outcome of p into Ignored at the cursor it
// was given. It never fails.
func Optional[T any](p Parser[T]) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		out := p.Run(ctx, c)
		switch out.status {
		case NotMatched:
			return Skipped[T](c, out.message)
		case Matched, Ignored:
		}
		return out
	})
}

// Ignore converts a Matched outcome of p into Ignored, keeping the cursor.
func Ignore[T any](p Parser[T]) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		out := p.Run(ctx, c)
		switch out.status {
		case Matched:
			return Skipped[T](out.cursor, "")
		case Ignored, NotMatched:
		}
		return out
	})
}

// Map transforms the value of a Matched outcome with f. f is never called
// for other outcomes.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return New(func(ctx *Context, c Cursor) Outcome[U] {
		out := p.Run(ctx, c)
		switch out.status {
		case Matched:
			return Success(out.cursor, f(out.value))
		case Ignored, NotMatched:
		}
		return retype[U](out)
	})
}

// ToList wraps the value of p in a one-element list.
func ToList[T any](p Parser[T]) Parser[[]T] {
	return Map(p, func(v T) []T { return []T{v} })
}

// Any widens the value type of p to any.
func Any[T any](p Parser[T]) Parser[any] {
	return Map(p, func(v T) any { return v })
}

// Combine matches p then q and merges both values with f. Both parsers
// must produce a value.
func Combine[T, U, R any](p Parser[T], q Parser[U], f func(T, U) R) Parser[R] {
	return New(func(ctx *Context, c Cursor) Outcome[R] {
		first := p.Run(ctx, c)
		if !first.Matched() {
			return Failure[R](c, first.message)
		}
		second := q.Run(ctx, first.cursor)
		if !second.Matched() {
			return Failure[R](c, second.message)
		}
		return Success(second.cursor, f(first.value, second.value))
	})
}

// Then matches skip followed by p and keeps p's outcome.
func Then[T any](skip Matcher, p Parser[T]) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		next, status, msg := skip.match(ctx, c)
		if status == NotMatched {
			return Failure[T](c, msg)
		}
		return p.Run(ctx, next)
	})
}

// Flatten splices one level of nested slices into the list produced by p.
// Elements that are not slices are kept as they are.
func Flatten(p Parser[[]any]) Parser[[]any] {
	return Map(p, func(values []any) []any {
		flat := make([]any, 0, len(values))
		for _, v := range values {
			switch inner := v.(type) {
			case []any:
				flat = append(flat, inner...)
			default:
				rv := reflect.ValueOf(v)
				if rv.Kind() != reflect.Slice {
					flat = append(flat, v)
					continue
				}
				for i := 0; i < rv.Len(); i++ {
					flat = append(flat, rv.Index(i).Interface())
				}
			}
		}
		return flat
	})
}

// Quiet runs p without recording its failures as the furthest failure of
// the run. Use it for trivia such as white space, whose absence is never
// what a diagnostic should report.
func Quiet[T any](p Parser[T]) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		ctx.quiet++
		defer func() { ctx.quiet-- }()
		return p.Run(ctx, c)
	})
}

// Lazy defers building a parser until it is first run. It allows grammars
// whose rules refer to each other to be declared in any order.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	get := sync.OnceValue(build)
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		return get().Run(ctx, c)
	})
}
