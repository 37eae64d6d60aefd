package grammar

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/hunt/parse"
	"golang.org/x/exp/ebnf"
)

const arithmetic = `
	Expr   = Term { ( "+" | "-" ) Term } .
	Term   = Factor { ( "*" | "/" ) Factor } .
	Factor = number | "(" Expr ")" .
	number = digit { digit } .
	digit  = "0" … "9" .
`

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func mustCompile(t *testing.T, src, start string, opts ...Option) parse.Parser[*Node] {
	t.Helper()
	p, err := Compile(mustGrammar(t, src), start, opts...)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func texts(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Text()
	}
	return out
}

func TestCompileArithmetic(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")

	tests := []struct {
		input   string
		numbers []string
	}{
		{"1", []string{"1"}},
		{"12+3", []string{"12", "3"}},
		{"1 + 2*(3 - 4)", []string{"1", "2", "3", "4"}},
		{" ((42)) ", []string{"42"}},
		{"1\n+\n2", []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := parse.Complete(p, "", tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if root.Kind != "Expr" {
				t.Errorf("root kind = %q, want Expr", root.Kind)
			}
			got := texts(root.Find("number"))
			if strings.Join(got, ",") != strings.Join(tt.numbers, ",") {
				t.Errorf("numbers = %v, want %v", got, tt.numbers)
			}
		})
	}
}

func TestCompileBuildsTree(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")

	root, err := parse.Complete(p, "", "1 + 2*(3 - 4)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := root.Text(); got != "1 + 2*(3 - 4)" {
		t.Errorf("root text = %q", got)
	}

	kinds := make([]string, len(root.Children))
	for i, child := range root.Children {
		kinds[i] = child.Kind
	}
	if got, want := strings.Join(kinds, " "), `Term "+" Term`; got != want {
		t.Errorf("root children = %s, want %s", got, want)
	}

	plus := root.Children[1]
	if !plus.IsTerminal() || plus.Text() != "+" {
		t.Errorf("operator = %v", plus)
	}
	if plus.Span.Start.Offset() != 2 || plus.Span.End.Offset() != 3 {
		t.Errorf("operator span = %d-%d, want 2-3", plus.Span.Start.Offset(), plus.Span.End.Offset())
	}

	inner := root.Find("Expr")
	if len(inner) != 2 || inner[1].Text() != "3 - 4" {
		t.Errorf("nested Expr = %v", texts(inner))
	}

	digits := root.Find("digit")
	if len(digits) != 0 {
		t.Errorf("lexical productions should be leaves, found %d digit nodes", len(digits))
	}
}

func TestCompileRejects(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")

	tests := []struct {
		input  string
		line   int
		column int
	}{
		{"1 + * 2", 1, 5},
		{"(1", 1, 3},
		{"1 2", 1, 3},
		{"1 +\n)", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parse.Complete(p, "calc", tt.input)
			var syntaxErr *parse.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *parse.SyntaxError, got %v", err)
			}
			if syntaxErr.Position.Line != tt.line || syntaxErr.Position.Column != tt.column {
				t.Errorf("position = %s, want %d:%d", syntaxErr.Position, tt.line, tt.column)
			}
		})
	}
}

func TestCompileWithoutSkip(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr", WithSkip(""))

	if _, err := parse.Complete(p, "", "1+2"); err != nil {
		t.Errorf("1+2: %v", err)
	}
	if _, err := parse.Complete(p, "", "1 + 2"); err == nil {
		t.Error("1 + 2: expected an error without trivia skipping")
	}
}

func TestCompileLexicalStart(t *testing.T) {
	p := mustCompile(t, arithmetic, "number")

	root, err := parse.Complete(p, "", "2024")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !root.IsTerminal() || root.Kind != "number" || root.Text() != "2024" {
		t.Errorf("got %v", root)
	}
}

func TestCompileOptionalAndEmpty(t *testing.T) {
	p := mustCompile(t, `
		Call = name "(" [ Args ] ")" .
		Args = name { "," name } .
		name = letter { letter } .
		letter = "a" … "z" .
	`, "Call")

	tests := []struct {
		input string
		args  int
	}{
		{"f()", 0},
		{"f(x)", 1},
		{"print( a , b,c )", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := parse.Complete(p, "", tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := len(root.Find("name")) - 1; got != tt.args {
				t.Errorf("args = %d, want %d", got, tt.args)
			}
		})
	}
}

func TestCompileOptionalAlternative(t *testing.T) {
	tests := []struct {
		grammar string
		start   string
	}{
		{`S = [ "a" ] | "b" .`, "S"},
		{`s = [ "a" ] | "b" .`, "s"},
	}
	inputs := []struct {
		input string
		ok    bool
	}{
		{"a", true},
		{"b", true},
		{"", true},
		{"c", false},
		{"ab", false},
	}

	for _, tt := range tests {
		p := mustCompile(t, tt.grammar, tt.start)
		for _, in := range inputs {
			t.Run(tt.start+"/"+in.input, func(t *testing.T) {
				root, err := parse.Complete(p, "", in.input)
				if (err == nil) != in.ok {
					t.Fatalf("err = %v, want ok=%v", err, in.ok)
				}
				if in.ok && root.Text() != in.input {
					t.Errorf("text = %q, want %q", root.Text(), in.input)
				}
			})
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		start   string
		want    string
	}{
		{
			name:    "missing start",
			grammar: `A = "a" .`,
			start:   "B",
			want:    `production "B" not found`,
		},
		{
			name:    "undefined production",
			grammar: `A = "a" b .`,
			start:   "A",
			want:    `undefined production "b"`,
		},
		{
			name:    "wide range",
			grammar: `a = "aa" … "z" .`,
			start:   "a",
			want:    "bounds must be single characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(mustGrammar(t, tt.grammar), tt.start)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	p := mustCompile(t, arithmetic, "Expr")
	root, err := parse.Complete(p, "", "1+\n2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(root); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded jsonNode
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Kind != "Expr" || len(decoded.Children) != 3 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Text != "" {
		t.Errorf("interior node carries text %q", decoded.Text)
	}

	last := decoded.Children[2].Children[0].Children[0]
	if last.Kind != "number" || last.Text != "2" {
		t.Errorf("last leaf = %+v", last)
	}
	if last.Span.Start.Line != 2 || last.Span.Start.Column != 1 {
		t.Errorf("last leaf position = %+v", last.Span.Start)
	}
}

func TestNodeString(t *testing.T) {
	p := mustCompile(t, arithmetic, "Factor")
	root, err := parse.Complete(p, "", "(7)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := root.String()
	for _, want := range []string{"Factor ", `  "(" "("`, `number "7"`} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
}
