// Package parse provides composable parser combinators over an immutable
// text cursor.
//
// A grammar is built by combining small parsers (Literal, Pattern) with
// combinators (Sequence, Choice, Many, Optional, ...). Running a parser
// yields an Outcome that is either Matched, Ignored or NotMatched. Parsers
// are immutable values and may be shared between goroutines; per-run state
// such as hunter capture histories lives in a Context created for each run.
package parse

import (
	"fmt"
	"strings"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type source struct {
	filename string
	text     string
}

// Cursor is an immutable position within an input text.
// Offsets are byte offsets. Advancing returns a new Cursor; the text is
// shared by every cursor derived from the same input.
type Cursor struct {
	src    *source
	offset int
}

// NewCursor returns a cursor at the start of text.
func NewCursor(text string) Cursor {
	return Cursor{src: &source{text: text}}
}

// NewFileCursor is like NewCursor but records filename for positions.
func NewFileCursor(filename, text string) Cursor {
	return Cursor{src: &source{filename: filename, text: text}}
}

// Text returns the whole input text.
func (c Cursor) Text() string {
	if c.src == nil {
		return ""
	}
	return c.src.text
}

// Offset returns the byte offset of the cursor.
func (c Cursor) Offset() int {
	return c.offset
}

// Rest returns the unconsumed input.
func (c Cursor) Rest() string {
	return c.Text()[c.offset:]
}

// AtEOF reports whether the whole input has been consumed.
func (c Cursor) AtEOF() bool {
	return c.offset >= len(c.Text())
}

// Peek returns up to n bytes starting at the cursor without consuming them.
// Fewer than n bytes are returned at the end of the input.
func (c Cursor) Peek(n int) string {
	rest := c.Rest()
	if n < 0 {
		n = 0
	}
	if n > len(rest) {
		n = len(rest)
	}
	return rest[:n]
}

// Advance returns a cursor n bytes further along. The result never moves
// past the end of the input.
func (c Cursor) Advance(n int) Cursor {
	if n < 0 {
		n = 0
	}
	off := c.offset + n
	if end := len(c.Text()); off > end {
		off = end
	}
	return Cursor{src: c.src, offset: off}
}

// Position computes the line and column of the cursor.
// Lines and columns are 1-based; columns count bytes.
func (c Cursor) Position() Position {
	consumed := c.Text()[:c.offset]
	line := strings.Count(consumed, "\n") + 1
	col := c.offset + 1
	if i := strings.LastIndexByte(consumed, '\n'); i >= 0 {
		col = c.offset - i
	}
	pos := Position{Offset: c.offset, Line: line, Column: col}
	if c.src != nil {
		pos.Filename = c.src.filename
	}
	return pos
}

func (c Cursor) String() string {
	const width = 16
	snippet := c.Peek(width)
	if len(c.Rest()) > width {
		snippet += "…"
	}
	return fmt.Sprintf("%s %q", c.Position(), snippet)
}
