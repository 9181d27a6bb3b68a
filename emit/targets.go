// Package emit defines the narrow backend interface the CLI drives: each
// registered target consumes an ordered list of parsed documents and
// produces text (spec.md §1, §6). Only "debug" is actually implemented here;
// the others are registered so `--target help` can list the full backend
// surface the real tool would have, and so choosing one by name produces a
// clear "not implemented" diagnostic rather than an "unknown target" one.
package emit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/emit/debugdump"
)

// ErrNotImplemented is returned by a registered-but-unimplemented target.
var ErrNotImplemented = errors.New("target is not yet implemented")

// Target is one backend: a name and a function from documents to output
// text.
type Target struct {
	Name        string
	Description string
	Run         func(docs []ast.NamedDocument) (string, error)
}

func notImplemented(name string) func([]ast.NamedDocument) (string, error) {
	return func([]ast.NamedDocument) (string, error) {
		return "", fmt.Errorf("target %q: %w", name, ErrNotImplemented)
	}
}

// registry lists every known target, implemented or not.
var registry = []Target{
	{
		Name:        "debug",
		Description: "pretty-print the parsed and typechecked AST",
		Run: func(docs []ast.NamedDocument) (string, error) {
			return debugdump.Dump(docs), nil
		},
	},
	{
		Name:        "rust-sqlite",
		Description: "Rust + rusqlite bindings (not implemented)",
		Run:         notImplemented("rust-sqlite"),
	},
	{
		Name:        "python-sqlite",
		Description: "Python + sqlite3 bindings (not implemented)",
		Run:         notImplemented("python-sqlite"),
	},
	{
		Name:        "python-psycopg2",
		Description: "Python + psycopg2 bindings (not implemented)",
		Run:         notImplemented("python-psycopg2"),
	},
}

// Lookup returns the target registered under name, if any.
func Lookup(name string) (Target, bool) {
	for _, t := range registry {
		if t.Name == name {
			return t, true
		}
	}

	return Target{}, false
}

// Names returns every registered target name, sorted, for "--target help"
// (SPEC_FULL.md supplemented feature 4).
func Names() []string {
	names := make([]string, len(registry))
	for i, t := range registry {
		names[i] = t.Name
	}

	sort.Strings(names)

	return names
}

// HelpText renders the "--target help" listing: every registered target
// name and its description.
func HelpText() string {
	text := "Registered targets:\n"

	for _, name := range Names() {
		t, _ := Lookup(name)
		text += fmt.Sprintf("  %-16s %s\n", t.Name, t.Description)
	}

	return text
}
