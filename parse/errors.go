package parse

import "fmt"

// SyntaxError describes input that a parser did not accept in full.
type SyntaxError struct {
	Position Position
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Complete runs p on input and requires it to match the whole input.
// On failure the error is a *SyntaxError located at the furthest point any
// primitive parser reached.
func Complete[T any](p Parser[T], filename, input string) (T, error) {
	var zero T
	ctx := NewContext()
	out := p.Run(ctx, NewFileCursor(filename, input))
	switch out.status {
	case Matched, Ignored:
		if out.cursor.AtEOF() {
			return out.value, nil
		}
	case NotMatched:
	}
	return zero, syntaxError(ctx, out)
}

func syntaxError[T any](ctx *Context, out Outcome[T]) *SyntaxError {
	at, msg, ok := ctx.Furthest()
	if out.Failed() {
		if !ok {
			at, msg = out.cursor, out.message
		}
	} else if !ok || at.Offset() <= out.cursor.Offset() {
		at = out.cursor
		msg = fmt.Sprintf("unexpected %q", out.cursor.Peek(12))
	}
	return &SyntaxError{Position: at.Position(), Message: msg}
}
