package diag

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/annosql/annosql/span"
)

func TestRenderBasic(t *testing.T) {
	input := "select ( from t;"
	d := NewParseWithNote(
		span.Span{Start: 8, End: 12},
		"Expected ')'.",
		span.Span{Start: 7, End: 8},
		"Unmatched opening bracket.",
	)

	out := Render("query.sql", input, d)
	assert.Contains(t, out, "query.sql:1:")
	assert.Contains(t, out, "parse error: Expected ')'.")
	assert.Contains(t, out, "note: Unmatched opening bracket.")
	assert.Contains(t, out, "select ( from t;")
}

func TestRenderHint(t *testing.T) {
	input := "select * from t where id = :email;"
	d := NewTypeWithHint(
		span.Span{Start: 28, End: 34},
		"Undefined query parameter.",
		"Define the parameter in the query signature, or add a type annotation here.",
	)

	out := Render("q.sql", input, d)
	assert.Contains(t, out, "hint: Define the parameter")
}

func TestRenderZeroLengthEOF(t *testing.T) {
	input := "select 1"
	d := NewParse(span.Span{Start: len(input), End: len(input)}, "annotated query does not end with ';'")

	out := Render("q.sql", input, d)
	lines := strings.Split(out, "\n")
	// the caret line should contain exactly one caret
	found := false

	for _, l := range lines {
		if strings.Contains(l, "^") {
			assert.Equal(t, 1, strings.Count(l, "^"))
			found = true
		}
	}

	assert.True(t, found)
}
