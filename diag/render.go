package diag

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/annosql/annosql/span"
)

// Colour formatters for rendered diagnostics. ANSI sequences are always
// emitted (spec.md §4.1 — colour is not conditional on terminal detection),
// matching how the teacher's fixtureexecutor/failure.go builds its palette
// once at package scope with color.New(...).SprintFunc().
var (
	headerFmt = alwaysColour(color.FgRed, color.Bold).SprintfFunc()
	gutterFmt = alwaysColour(color.FgBlue).SprintFunc()
	caretFmt  = alwaysColour(color.FgRed, color.Bold).SprintFunc()
	noteFmt   = alwaysColour(color.FgCyan).SprintfFunc()
	hintFmt   = alwaysColour(color.FgYellow).SprintfFunc()
)

// alwaysColour builds a color.Color that emits its ANSI sequences
// regardless of color.NoColor and the NO_COLOR environment variable.
func alwaysColour(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()

	return c
}

// Render produces the full human-facing rendering of d against filename and
// its contents input: a "file:line:col: kind: message" header, the source
// line with a caret underline beneath the primary span, and an optional
// note and hint block, each with their own snippet where applicable.
func Render(filename, input string, d *Diagnostic) string {
	var b strings.Builder

	writeLocated(&b, filename, input, d.Span, headerFmt("%s: %s", d.Kind, d.Message))
	writeSnippet(&b, input, d.Span, caretFmt)

	if d.Note != nil {
		b.WriteString("\n")
		writeLocated(&b, filename, input, d.Note.Span, noteFmt("note: %s", d.Note.Text))
		writeSnippet(&b, input, d.Note.Span, func(a ...interface{}) string { return noteFmt("%s", a...) })
	}

	if d.Hint != "" {
		b.WriteString("\n")
		b.WriteString(hintFmt("hint: %s", d.Hint))
		b.WriteString("\n")
	}

	return b.String()
}

func writeLocated(b *strings.Builder, filename, input string, sp span.Span, header string) {
	pos := span.Resolve(input, sp.Start)
	b.WriteString(filename)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(pos.Line))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(pos.Column))
	b.WriteString(": ")
	b.WriteString(header)
	b.WriteByte('\n')
}

// writeSnippet prints the source line containing sp.Start and a caret
// underline beneath it, spanning Width(sp) display cells (or one cell, for
// a zero-length span at end of file). If sp reaches past the end of the
// line, the underline stops at the newline (spec.md §4.1).
func writeSnippet(b *strings.Builder, input string, sp span.Span, underline func(a ...interface{}) string) {
	line, lineStart := span.LineAt(input, sp.Start)
	pos := span.Resolve(input, sp.Start)

	gutter := gutterFmt(strconv.Itoa(pos.Line) + " | ")
	b.WriteString(gutter)
	b.WriteString(line)
	b.WriteByte('\n')

	lineEnd := lineStart + len(line)
	underlineEnd := sp.End
	if underlineEnd > lineEnd {
		underlineEnd = lineEnd
	}

	lead := span.Width(input[lineStart:sp.Start])
	width := span.Width(input[sp.Start:underlineEnd])

	if width == 0 {
		width = 1
	}

	b.WriteString(strings.Repeat(" ", plainGutterWidth(pos.Line)))
	b.WriteString(strings.Repeat(" ", lead))
	b.WriteString(underline(strings.Repeat("^", width)))
	b.WriteByte('\n')
}

func plainGutterWidth(line int) int {
	return len(strconv.Itoa(line)) + 3 // "N | "
}
