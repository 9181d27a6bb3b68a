package span

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestResolve(t *testing.T) {
	input := "select 1;\nselect 2;"

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, Resolve(input, 0))
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 10}, Resolve(input, 10))
	assert.Equal(t, Position{Line: 2, Column: 7, Offset: 16}, Resolve(input, 16))
}

func TestResolveEndOfFile(t *testing.T) {
	input := "select 1"
	pos := Resolve(input, len(input))
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, len(input)+1, pos.Column)
}

func TestLineAt(t *testing.T) {
	input := "one\ntwo\nthree"
	line, start := LineAt(input, 5)
	assert.Equal(t, "two", line)
	assert.Equal(t, 4, start)
}

func TestWidthWideRune(t *testing.T) {
	assert.Equal(t, 1, Width("a"))
	assert.Equal(t, 2, Width("Ａ")) // fullwidth 'A'
	assert.Equal(t, 3, Width("aＡ"))
}

func TestJoin(t *testing.T) {
	a := Span{Start: 5, End: 10}
	b := Span{Start: 2, End: 7}
	assert.Equal(t, Span{Start: 2, End: 10}, Join(a, b))
}

func TestTrimStart(t *testing.T) {
	s := Span{Start: 4, End: 9}
	assert.Equal(t, Span{Start: 5, End: 9}, s.TrimStart(1))
}
