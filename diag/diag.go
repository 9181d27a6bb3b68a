// Package diag implements the structured diagnostics every component of the
// annosql frontend reports through: parse errors from the lexers and
// parsers, and type errors from the typechecker. A Diagnostic carries a
// primary span, an optional secondary note, and an optional hint, and knows
// how to render itself against the source it came from (spec.md §4.1, §7).
package diag

import "github.com/annosql/annosql/span"

// Kind distinguishes the two diagnostic taxonomies spec.md §7 describes.
type Kind int

const (
	// Parse covers lexing and parsing failures: invalid UTF-8, unterminated
	// strings/comments, unbalanced brackets, malformed annotations, and so
	// on.
	Parse Kind = iota
	// Type covers post-parse consistency failures the typechecker finds:
	// duplicate names, undefined parameters, type disagreements.
	Type
)

func (k Kind) String() string {
	if k == Type {
		return "type error"
	}

	return "parse error"
}

// Note is a secondary span and short text attached to a Diagnostic, usually
// pointing at an earlier declaration the primary span conflicts with (e.g.
// "first defined here").
type Note struct {
	Span span.Span
	Text string
}

// Diagnostic is the single error type every frontend component returns.
// There is deliberately no aggregation: a component stops at its first
// Diagnostic and callers propagate it unchanged (spec.md §7).
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    span.Span
	Note    *Note
	Hint    string
}

// Error implements the error interface with a plain, unrendered summary;
// Render below produces the source-annotated form used at the CLI.
func (d *Diagnostic) Error() string {
	return d.Message
}

// NewParse builds a parse-kind Diagnostic with no note or hint.
func NewParse(sp span.Span, message string) *Diagnostic {
	return &Diagnostic{Kind: Parse, Message: message, Span: sp}
}

// NewParseWithNote builds a parse-kind Diagnostic with a secondary span and
// note text, e.g. pointing back at an unmatched opening bracket.
func NewParseWithNote(sp span.Span, message string, noteSpan span.Span, noteText string) *Diagnostic {
	return &Diagnostic{Kind: Parse, Message: message, Span: sp, Note: &Note{Span: noteSpan, Text: noteText}}
}

// NewType builds a type-kind Diagnostic with no note or hint.
func NewType(sp span.Span, message string) *Diagnostic {
	return &Diagnostic{Kind: Type, Message: message, Span: sp}
}

// NewTypeWithNote builds a type-kind Diagnostic with a secondary span, e.g.
// pointing at an earlier, conflicting declaration.
func NewTypeWithNote(sp span.Span, message string, noteSpan span.Span, noteText string) *Diagnostic {
	return &Diagnostic{Kind: Type, Message: message, Span: sp, Note: &Note{Span: noteSpan, Text: noteText}}
}

// NewTypeWithHint builds a type-kind Diagnostic carrying a hint instead of a
// note, e.g. "Define the parameter in the query signature, or add a type
// annotation here."
func NewTypeWithHint(sp span.Span, message, hint string) *Diagnostic {
	return &Diagnostic{Kind: Type, Message: message, Span: sp, Hint: hint}
}

// WithHint attaches a hint to an existing Diagnostic and returns it, for
// chaining at the construction site.
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}
