// Package token implements a small value algebra for merging and nesting
// partial parse results.
//
// A Token is one of three variants:
//
//   - Scalar, a piece of text
//   - Sequence, an ordered list whose elements are strings or nested lists
//   - Neutral, the identity element
//
// Plus concatenates two values of the same shape; Push nests one value as
// a single element of another. Neutral leaves the other operand unchanged
// under both operations. Tokens are immutable: every operation returns a new
// value.
package token

import (
	"fmt"
	"reflect"
	"slices"
)

// Token is implemented by Scalar, Sequence and Neutral only.
type Token interface {
	// Plus concatenates other onto the token.
	Plus(other Token) Token
	// Push appends the token as one element of into's sequence.
	Push(into Token) Token
	// Map returns f applied to the token.
	Map(f func(Token) Token) Token
	// Value returns the underlying string, []any or nil.
	Value() any

	token()
}

// Scalar is a text token.
type Scalar string

// Sequence is a list token. Elements are strings or []any; Equal compares
// any other element with reflect.DeepEqual.
type Sequence []any

// Neutral is the identity token.
type Neutral struct{}

// Ignore is the Neutral token.
var Ignore Token = Neutral{}

func (Scalar) token()   {}
func (Sequence) token() {}
func (Neutral) token()  {}

func (s Scalar) Value() any   { return string(s) }
func (s Sequence) Value() any { return []any(slices.Clone(s)) }
func (Neutral) Value() any    { return nil }

func (s Scalar) Map(f func(Token) Token) Token   { return f(s) }
func (s Sequence) Map(f func(Token) Token) Token { return f(s) }
func (n Neutral) Map(f func(Token) Token) Token  { return f(n) }

func (s Scalar) Plus(other Token) Token {
	switch o := other.(type) {
	case nil, Neutral:
		return s
	case Scalar:
		return s + o
	case Sequence:
		return append(Sequence{string(s)}, o...)
	}
	panic(unknown(other))
}

func (s Sequence) Plus(other Token) Token {
	switch o := other.(type) {
	case nil, Neutral:
		return s
	case Scalar:
		return append(slices.Clone(s), string(o))
	case Sequence:
		return append(slices.Clone(s), o...)
	}
	panic(unknown(other))
}

func (n Neutral) Plus(other Token) Token {
	if other == nil {
		return n
	}
	return other
}

func (s Scalar) Push(into Token) Token {
	return pushElement(string(s), s, into)
}

func (s Sequence) Push(into Token) Token {
	return pushElement([]any(slices.Clone(s)), s, into)
}

// Push leaves into unchanged.
func (n Neutral) Push(into Token) Token {
	if into == nil {
		return n
	}
	return into
}

// pushElement appends elem to into. A nil or Neutral target yields self and a
// Scalar target is promoted to a one-element Sequence first.
func pushElement(elem any, self Token, into Token) Token {
	switch t := into.(type) {
	case nil, Neutral:
		return self
	case Scalar:
		return Sequence{string(t), elem}
	case Sequence:
		return append(slices.Clone(t), elem)
	}
	panic(unknown(into))
}

func unknown(t Token) string {
	return fmt.Sprintf("token: unknown variant %T", t)
}

// Concat folds tokens with Plus, starting from Neutral.
func Concat(tokens ...Token) Token {
	acc := Ignore
	for _, t := range tokens {
		acc = acc.Plus(t)
	}
	return acc
}

// Equal reports whether two tokens have the same variant and value.
func Equal(a, b Token) bool {
	switch x := a.(type) {
	case Neutral:
		_, ok := b.(Neutral)
		return ok
	case Scalar:
		y, ok := b.(Scalar)
		return ok && x == y
	case Sequence:
		y, ok := b.(Sequence)
		return ok && equalElems(x, y)
	}
	return false
}

func equalElems(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case string:
			y, ok := b[i].(string)
			if !ok || x != y {
				return false
			}
		case []any:
			y, ok := b[i].([]any)
			if !ok || !equalElems(x, y) {
				return false
			}
		default:
			if !reflect.DeepEqual(a[i], b[i]) {
				return false
			}
		}
	}
	return true
}
