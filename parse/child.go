package parse

// Child describes how a parsed child value updates a parent value.
// It is produced by AsChild and consumed by WithChild or WithChildren,
// which lets grammars build trees out of plain values.
type Child[P any] struct {
	apply func(P) P
}

// NewChild returns a Child applying f.
func NewChild[P any](f func(parent P) P) Child[P] {
	return Child[P]{apply: f}
}

// ApplyTo returns parent updated with the child's contribution.
// The zero Child leaves the parent unchanged.
func (ch Child[P]) ApplyTo(parent P) P {
	if ch.apply == nil {
		return parent
	}
	return ch.apply(parent)
}

// AsChild turns the values of p into attachments for parents of type P.
func AsChild[T, P any](p Parser[T], attach func(parent P, value T) P) Parser[Child[P]] {
	return Map(p, func(v T) Child[P] {
		return NewChild(func(parent P) P { return attach(parent, v) })
	})
}

// WithChild matches parent followed by child and applies the child to the
// parent value.
//
// A child that does not match fails the whole combination; wrap it in
// Optional when it may be absent. An Ignored child leaves the parent
// value as it is.
func WithChild[P any](parent Parser[P], child Parser[Child[P]]) Parser[P] {
	return New(func(ctx *Context, c Cursor) Outcome[P] {
		pout := parent.Run(ctx, c)
		switch pout.status {
		case Matched:
		case Ignored:
			return Failure[P](c, "parent did not produce a value")
		case NotMatched:
			return Failure[P](c, pout.message)
		}
		cout := child.Run(ctx, pout.cursor)
		switch cout.status {
		case Matched:
			return Success(cout.cursor, cout.value.ApplyTo(pout.value))
		case Ignored:
			return Success(cout.cursor, pout.value)
		case NotMatched:
			return Failure[P](c, cout.message)
		}
		return Failure[P](c, cout.message)
	})
}

// WithChildren is WithChild for a list of attachments, applied left to
// right. It is usually paired with Many so the list is always present.
func WithChildren[P any](parent Parser[P], children Parser[[]Child[P]]) Parser[P] {
	fold := Map(children, func(list []Child[P]) Child[P] {
		return NewChild(func(p P) P {
			for _, ch := range list {
				p = ch.ApplyTo(p)
			}
			return p
		})
	})
	return WithChild(parent, fold)
}
