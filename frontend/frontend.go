// Package frontend composes the lexers, parsers, and typechecker into the
// single entry point the rest of the tool calls: ProcessFile validates UTF-8,
// lexes, parses, typechecks, and wraps the result as an ast.NamedDocument
// (spec.md §4.7). It is the only place the pipeline is wired together.
package frontend

import (
	"errors"
	"unicode/utf8"

	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/docparse"
	"github.com/annosql/annosql/span"
	"github.com/annosql/annosql/sqllex"
	"github.com/annosql/annosql/typecheck"
)

// ErrMultipleStdin reports that "-" was given for more than one input path.
// The façade itself only ever sees decoded bytes and never returns it;
// cmd/annosql declares and returns its own ErrMultipleStdin rather than
// this one.
var ErrMultipleStdin = errors.New("cannot read standard input more than once")

// ProcessFile runs the whole frontend pipeline over one file's bytes,
// per spec.md §4.7:
//  1. validate UTF-8
//  2. lex
//  3. parse
//  4. typecheck every query section
//  5. wrap as a NamedDocument
//
// On any diagnostic, processing stops and the diagnostic is returned
// unchanged; no partial document is ever exposed.
func ProcessFile(filename string, input string) (ast.NamedDocument, *diag.Diagnostic) {
	if d := validateUTF8(input); d != nil {
		return ast.NamedDocument{}, d
	}

	tokens, d := sqllex.Lex(input)
	if d != nil {
		return ast.NamedDocument{}, d
	}

	doc, d := docparse.New(input, tokens).Parse()
	if d != nil {
		return ast.NamedDocument{}, d
	}

	doc, d = typecheck.CheckDocument(input, doc)
	if d != nil {
		return ast.NamedDocument{}, d
	}

	return ast.NamedDocument{Filename: filename, Input: input, Document: doc}, nil
}

// ProcessFiles runs ProcessFile over each (filename, input) pair in order,
// collecting results into a single ordered list for one emitter invocation
// (SPEC_FULL.md supplemented feature: multiple input files in one
// invocation). Processing stops at the first diagnostic.
func ProcessFiles(inputs []NamedInput) ([]ast.NamedDocument, *diag.Diagnostic) {
	docs := make([]ast.NamedDocument, 0, len(inputs))

	for _, in := range inputs {
		doc, d := ProcessFile(in.Filename, in.Input)
		if d != nil {
			return nil, d
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// NamedInput pairs a display filename with its already-read bytes, so the
// CLI can read stdin/files itself and hand the façade plain strings.
type NamedInput struct {
	Filename string
	Input    string
}

// validateUTF8 returns a ParseError whose span marks the first invalid byte,
// or nil if input is valid UTF-8.
func validateUTF8(input string) *diag.Diagnostic {
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size <= 1 {
			return diag.NewParse(span.Span{Start: i, End: i + 1}, "Invalid UTF-8 byte in input.")
		}

		i += size
	}

	return nil
}
