package parse

import (
	"reflect"
	"slices"
	"testing"
)

type variant struct {
	Name   string
	Values []string
}

func (v variant) with(value string) variant {
	v.Values = append(slices.Clone(v.Values), value)
	return v
}

var (
	variantHead = Map(Pattern(`(?i)[a-z]+`).Skip(Literal("=")), func(name string) variant {
		return variant{Name: name}
	})
	hogeChild = AsChild(Literal("hoge"), variant.with)
)

func TestWithChildren(t *testing.T) {
	p := WithChildren(variantHead, Many(hogeChild))

	got, ok := p.Parse("test=hogehogehogehoge").TryValue()
	if !ok {
		t.Fatalf("expected match")
	}
	want := variant{Name: "test", Values: []string{"hoge", "hoge", "hoge", "hoge"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestWithChildrenEmpty(t *testing.T) {
	p := WithChildren(variantHead, Many(hogeChild))

	out := p.Parse("test=")
	got, ok := out.TryValue()
	if !ok {
		t.Fatalf("expected match, got %v", out)
	}
	if got.Name != "test" || len(got.Values) != 0 {
		t.Errorf("got %+v", got)
	}
	if out.Cursor().Offset() != 5 {
		t.Errorf("offset = %d, want 5", out.Cursor().Offset())
	}
}

func TestWithChildIsMandatory(t *testing.T) {
	p := WithChild(variantHead, hogeChild)

	out := p.Parse("test=fuga")
	if !out.Failed() {
		t.Fatalf("expected failure, got %v", out)
	}
	if out.Cursor().Offset() != 0 {
		t.Errorf("failure offset = %d, want 0", out.Cursor().Offset())
	}

	got, ok := p.Parse("test=hoge").TryValue()
	if !ok || !reflect.DeepEqual(got.Values, []string{"hoge"}) {
		t.Errorf("got %+v, %v", got, ok)
	}
}

func TestWithOptionalChild(t *testing.T) {
	p := WithChild(variantHead, Optional(hogeChild))

	out := p.Parse("test=fuga")
	got, ok := out.TryValue()
	if !ok {
		t.Fatalf("expected match, got %v", out)
	}
	if got.Name != "test" || len(got.Values) != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestWithChildrenDoesNotMutateEarlierValues(t *testing.T) {
	base := variant{Name: "x", Values: []string{"a"}}
	ch := NewChild(func(v variant) variant { return v.with("b") })

	updated := ch.ApplyTo(base)
	if len(base.Values) != 1 {
		t.Errorf("base modified: %+v", base)
	}
	if !reflect.DeepEqual(updated.Values, []string{"a", "b"}) {
		t.Errorf("updated = %+v", updated)
	}

	var zero Child[variant]
	if got := zero.ApplyTo(base); !reflect.DeepEqual(got, base) {
		t.Errorf("zero child changed value: %+v", got)
	}
}
