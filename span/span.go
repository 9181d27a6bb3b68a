// Package span defines the byte-offset source range used by every AST node
// in annosql, and the small set of helpers needed to turn a span back into
// text or into a human-facing line/column position.
package span

import (
	"strings"
)

// Span is an inclusive-start, exclusive-end byte range into a source buffer.
//
// Invariant: Start <= End, and both lie within [0, len(input)] of whatever
// buffer the span was cut from. Nodes store spans rather than substrings so
// that the AST is cheap to build and reorder; resolving text is a slice.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Resolve returns the substring of input that the span covers.
//
// It panics if the span does not fit within input; callers are expected to
// only ever resolve spans that were cut from that same buffer.
func (s Span) Resolve(input string) string {
	return input[s.Start:s.End]
}

// Join returns the smallest span that covers both s and other.
func Join(s, other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}

	end := s.End
	if other.End > end {
		end = other.End
	}

	return Span{Start: start, End: end}
}

// TrimStart returns a copy of s with n bytes removed from the front.
//
// Used to strip the leading ':' off a parameter span when the identifier
// it names is needed on its own.
func (s Span) TrimStart(n int) Span {
	return Span{Start: s.Start + n, End: s.End}
}

// Position is a 1-based line/column/offset triple, used only for rendering
// diagnostics; nothing in the AST stores one of these, everything stores a
// Span and positions are computed on demand.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Resolve walks input once from the start to compute the line and
// column (in display cells, see Width below) of the given byte offset.
//
// offset may be equal to len(input), in which case the position one cell
// past the last character on the final line is returned — this is how a
// zero-length span at end-of-file is rendered (spec §4.1/§8).
func Resolve(input string, offset int) Position {
	line := 1
	lineStart := 0

	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	col := Width(input[lineStart:min(offset, len(input))]) + 1

	return Position{Line: line, Column: col, Offset: offset}
}

// LineAt returns the full line of input containing offset, without its
// trailing newline, plus the byte offset where that line starts.
func LineAt(input string, offset int) (line string, lineStart int) {
	if offset > len(input) {
		offset = len(input)
	}

	lineStart = strings.LastIndexByte(input[:offset], '\n') + 1

	lineEnd := strings.IndexByte(input[lineStart:], '\n')
	if lineEnd == -1 {
		return input[lineStart:], lineStart
	}

	return input[lineStart : lineStart+lineEnd], lineStart
}

// Width returns the display width, in terminal cells, of s. It is used
// instead of len(s) (bytes) or utf8.RuneCountInString(s) (code points) so
// that the caret underline in rendered diagnostics lines up under
// multi-byte and wide characters alike; see runewidth.go for how a single
// rune's width is decided.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}

	return w
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
