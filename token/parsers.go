package token

import "github.com/dhamidi/hunt/parse"

// Text lifts a text parser into a Scalar parser.
func Text(p parse.Parser[string]) parse.Parser[Token] {
	return parse.Map(p, func(s string) Token { return Scalar(s) })
}

// List lifts a list parser into a Sequence parser.
func List(p parse.Parser[[]string]) parse.Parser[Token] {
	return parse.Map(p, func(values []string) Token {
		seq := make(Sequence, len(values))
		for i, v := range values {
			seq[i] = v
		}
		return seq
	})
}

// Join folds the tokens produced by p with Plus.
func Join(p parse.Parser[[]Token]) parse.Parser[Token] {
	return parse.Map(p, func(tokens []Token) Token { return Concat(tokens...) })
}

// Merge matches parsers in sequence and concatenates their tokens.
// Ignored parsers contribute Neutral.
func Merge(parsers ...parse.Parser[Token]) parse.Parser[Token] {
	return Join(parse.Sequence(parsers...))
}

// Many matches p zero or more times and concatenates the tokens.
func Many(p parse.Parser[Token]) parse.Parser[Token] {
	return Join(parse.Many(p))
}

// Nest matches parent followed by child and pushes the child token into
// the parent token. An ignored child leaves the parent unchanged; a child
// that does not match fails the combination.
func Nest(parent, child parse.Parser[Token]) parse.Parser[Token] {
	return parse.WithChild(parent, parse.AsChild(child, func(into, t Token) Token {
		return t.Push(into)
	}))
}
