package token

import (
	"testing"

	"github.com/dhamidi/hunt/parse"
)

func TestPlus(t *testing.T) {
	tests := []struct {
		name string
		a, b Token
		want Token
	}{
		{"scalar+scalar", Scalar("ab"), Scalar("cd"), Scalar("abcd")},
		{"sequence+sequence", Sequence{"a"}, Sequence{"b", "c"}, Sequence{"a", "b", "c"}},
		{"scalar+sequence", Scalar("a"), Sequence{"b"}, Sequence{"a", "b"}},
		{"sequence+scalar", Sequence{"a"}, Scalar("b"), Sequence{"a", "b"}},
		{"neutral+neutral", Neutral{}, Neutral{}, Neutral{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Plus(tt.b); !Equal(got, tt.want) {
				t.Errorf("%v.Plus(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPush(t *testing.T) {
	tests := []struct {
		name       string
		elem, into Token
		want       Token
	}{
		{"scalar into sequence", Scalar("c"), Sequence{"a", "b"}, Sequence{"a", "b", "c"}},
		{"sequence into sequence", Sequence{"x", "y"}, Sequence{"a"}, Sequence{"a", []any{"x", "y"}}},
		{"scalar into scalar", Scalar("b"), Scalar("a"), Sequence{"a", "b"}},
		{"sequence into empty", Sequence{"x"}, Sequence{}, Sequence{[]any{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.elem.Push(tt.into); !Equal(got, tt.want) {
				t.Errorf("%v.Push(%v) = %v, want %v", tt.elem, tt.into, got, tt.want)
			}
		})
	}
}

func TestNeutralIsIdentity(t *testing.T) {
	values := []Token{Scalar("abc"), Scalar(""), Sequence{"a", []any{"b"}}, Sequence{}}

	for _, v := range values {
		if got := v.Plus(Ignore); !Equal(got, v) {
			t.Errorf("%v.Plus(Neutral) = %v", v, got)
		}
		if got := Ignore.Plus(v); !Equal(got, v) {
			t.Errorf("Neutral.Plus(%v) = %v", v, got)
		}
		if got := v.Push(Ignore); !Equal(got, v) {
			t.Errorf("%v.Push(Neutral) = %v", v, got)
		}
		if got := Ignore.Push(v); !Equal(got, v) {
			t.Errorf("Neutral.Push(%v) = %v", v, got)
		}
	}
}

func TestOperationsDoNotMutate(t *testing.T) {
	base := make(Sequence, 1, 4)
	base[0] = "a"

	left := base.Plus(Scalar("b"))
	right := base.Plus(Scalar("c"))
	pushed := Scalar("d").Push(base)

	if len(base) != 1 {
		t.Errorf("base changed: %v", base)
	}
	if !Equal(left, Sequence{"a", "b"}) || !Equal(right, Sequence{"a", "c"}) || !Equal(pushed, Sequence{"a", "d"}) {
		t.Errorf("results share storage: %v %v %v", left, right, pushed)
	}
}

func TestMap(t *testing.T) {
	upper := func(tok Token) Token {
		if s, ok := tok.(Scalar); ok {
			return s + "!"
		}
		return tok
	}
	if got := Scalar("hi").Map(upper); !Equal(got, Scalar("hi!")) {
		t.Errorf("got %v", got)
	}
	if got := Ignore.Map(upper); !Equal(got, Ignore) {
		t.Errorf("got %v", got)
	}
}

func TestValue(t *testing.T) {
	if v := Scalar("a").Value(); v != "a" {
		t.Errorf("Scalar value = %v", v)
	}
	if v := Ignore.Value(); v != nil {
		t.Errorf("Neutral value = %v", v)
	}
	if v, ok := (Sequence{"a"}).Value().([]any); !ok || len(v) != 1 {
		t.Errorf("Sequence value = %v", v)
	}
}

func TestEqualWithOtherElements(t *testing.T) {
	tests := []struct {
		name string
		a, b Token
		want bool
	}{
		{"same maps", Sequence{map[string]int{"x": 1}}, Sequence{map[string]int{"x": 1}}, true},
		{"different maps", Sequence{map[string]int{"x": 1}}, Sequence{map[string]int{"x": 2}}, false},
		{"map against string", Sequence{map[string]int{}}, Sequence{"a"}, false},
		{"nested slices of ints", Sequence{[]int{1, 2}}, Sequence{[]int{1, 2}}, true},
		{"numbers", Sequence{1, "a"}, Sequence{1, "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	word := Text(parse.Pattern(`[a-z]+`))
	space := Text(parse.Literal(" ")).Ignore()
	p := Merge(word, space, word)

	got, ok := p.Parse("foo bar").TryValue()
	if !ok || !Equal(got, Scalar("foobar")) {
		t.Errorf("got %v", got)
	}
}

func TestNest(t *testing.T) {
	name := singleton(parse.Pattern(`[a-z]+`))
	items := List(parse.Many(parse.Then(parse.Literal(","), parse.Pattern(`\d+`))))
	p := Nest(name, items)

	got, ok := p.Parse("list,1,2").TryValue()
	want := Sequence{"list", []any{"1", "2"}}
	if !ok || !Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	empty := Nest(name, parse.Optional(Text(parse.Literal("!"))))
	got, ok = empty.Parse("solo").TryValue()
	if !ok || !Equal(got, Sequence{"solo"}) {
		t.Errorf("got %v", got)
	}
}

// singleton builds a one-element Sequence from a text parser.
func singleton(p parse.Parser[string]) parse.Parser[Token] {
	return parse.Map(p, func(s string) Token { return Sequence{s} })
}

func TestManyJoinsText(t *testing.T) {
	p := Many(Text(parse.Pattern(`[a-z]`)))
	got, _ := p.Parse("abc1").TryValue()
	if !Equal(got, Scalar("abc")) {
		t.Errorf("got %v", got)
	}

	got, ok := p.Parse("123").TryValue()
	if !ok || !Equal(got, Ignore) {
		t.Errorf("got %v, %v", got, ok)
	}
}
