package lsp

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/hunt/grammar"
	"github.com/dhamidi/hunt/parse"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnose parses text with p and reports the syntax error, if any, as an
// LSP diagnostic covering the offending character.
func Diagnose(p parse.Parser[*grammar.Node], filename, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	_, err := parse.Complete(p, filename, text)
	if err == nil {
		return diagnostics
	}

	var syntaxErr *parse.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return diagnostics
	}

	start := syntaxErr.Position.Offset
	end := start
	if start < len(text) {
		_, size := utf8.DecodeRuneInString(text[start:])
		end += size
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: positionAt(text, start),
			End:   positionAt(text, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  syntaxErr.Message,
	})
}

// Describe returns the production names enclosing pos, outermost first,
// or "" when text does not parse.
func Describe(p parse.Parser[*grammar.Node], text string, pos protocol.Position) string {
	root, err := parse.Complete(p, "", text)
	if err != nil {
		return ""
	}

	offset := offsetAt(text, pos)
	var kinds []string
	root.Walk(func(n *grammar.Node) bool {
		if offset < n.Span.Start.Offset() || offset >= n.Span.End.Offset() {
			return false
		}
		kinds = append(kinds, n.Kind)
		return true
	})
	return strings.Join(kinds, " > ")
}

// positionAt converts a byte offset into a zero-based LSP position whose
// character counts UTF-16 code units.
func positionAt(text string, offset int) protocol.Position {
	offset = min(offset, len(text))
	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1

	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(text[lineStart:offset])),
	}
}

// offsetAt is the inverse of positionAt. Positions past the end of a line
// clamp to the line end.
func offsetAt(text string, pos protocol.Position) int {
	offset := 0
	for range pos.Line {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return len(text)
		}
		offset += i + 1
	}

	units := 0
	for i, r := range text[offset:] {
		if r == '\n' || units >= int(pos.Character) {
			return offset + i
		}
		units += utf16.RuneLen(r)
	}
	return len(text)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
