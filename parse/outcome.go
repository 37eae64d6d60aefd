package parse

import "fmt"

// Status classifies an Outcome.
type Status int

const (
	// NotMatched means the parser did not match. The outcome carries the
	// cursor the parser was given and a diagnostic message.
	NotMatched Status = iota
	// Matched means the parser matched and produced a value.
	Matched
	// Ignored means the parser matched but its value must not contribute
	// to surrounding aggregations.
	Ignored
)

func (s Status) String() string {
	switch s {
	case NotMatched:
		return "not matched"
	case Matched:
		return "matched"
	case Ignored:
		return "ignored"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of one parse attempt.
type Outcome[T any] struct {
	status  Status
	cursor  Cursor
	value   T
	message string
}

// Success returns a Matched outcome carrying v.
func Success[T any](c Cursor, v T) Outcome[T] {
	return Outcome[T]{status: Matched, cursor: c, value: v}
}

// Skipped returns an Ignored outcome.
func Skipped[T any](c Cursor, message string) Outcome[T] {
	if message == "" {
		message = "ignored"
	}
	return Outcome[T]{status: Ignored, cursor: c, message: message}
}

// Failure returns a NotMatched outcome.
func Failure[T any](c Cursor, message string) Outcome[T] {
	if message == "" {
		message = "not matched"
	}
	return Outcome[T]{status: NotMatched, cursor: c, message: message}
}

// Status reports which kind of outcome this is.
func (o Outcome[T]) Status() Status { return o.status }

// Cursor returns the cursor after the attempt.
func (o Outcome[T]) Cursor() Cursor { return o.cursor }

// Message returns the diagnostic of an Ignored or NotMatched outcome.
func (o Outcome[T]) Message() string { return o.message }

func (o Outcome[T]) Matched() bool { return o.status == Matched }
func (o Outcome[T]) Ignored() bool { return o.status == Ignored }
func (o Outcome[T]) Failed() bool  { return o.status == NotMatched }

// Value returns the matched value, or the zero value if the outcome is not
// Matched.
func (o Outcome[T]) Value() T { return o.value }

// TryValue returns the value and whether the outcome is Matched.
func (o Outcome[T]) TryValue() (T, bool) {
	return o.value, o.status == Matched
}

func (o Outcome[T]) String() string {
	switch o.status {
	case Matched:
		return fmt.Sprintf("matched %v at %s", o.value, o.cursor.Position())
	case Ignored:
		return fmt.Sprintf("ignored at %s: %s", o.cursor.Position(), o.message)
	case NotMatched:
		return fmt.Sprintf("not matched at %s: %s", o.cursor.Position(), o.message)
	}
	return o.status.String()
}

// retype converts a non-Matched outcome to another value type.
func retype[U, T any](o Outcome[T]) Outcome[U] {
	return Outcome[U]{status: o.status, cursor: o.cursor, message: o.message}
}
