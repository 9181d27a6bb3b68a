// Package debugdump implements the "debug" backend target: it resolves an
// ast.NamedDocument's spans against its source and pretty-prints the result
// with github.com/alecthomas/repr, for inspecting what the frontend actually
// parsed and typechecked without needing a real code-generation backend.
package debugdump

import (
	"strings"

	"github.com/alecthomas/repr"

	"github.com/annosql/annosql/ast"
)

// simpleType mirrors ast.SimpleType with the primitive name already resolved
// to a string, for a readable repr.
type simpleType struct {
	Primitive string
	Optional  bool
}

func resolveSimpleType(t ast.SimpleType) simpleType {
	return simpleType{Primitive: t.Primitive.String(), Optional: t.Optional}
}

// typedIdent mirrors ast.TypedIdent with both the name and type resolved.
type typedIdent struct {
	Name string
	Type simpleType
}

func resolveTypedIdent(input string, ti ast.TypedIdent) typedIdent {
	return typedIdent{Name: ti.Ident.Resolve(input), Type: resolveSimpleType(ti.Type)}
}

// complexType mirrors ast.ComplexType with every span resolved.
type complexType struct {
	Kind   string
	Simple *simpleType   `repr:",omitempty"`
	Tuple  []simpleType  `repr:",omitempty"`
	Name   string        `repr:",omitempty"`
	Fields []typedIdent  `repr:",omitempty"`
}

func resolveComplexType(input string, t ast.ComplexType) complexType {
	switch t.Kind {
	case ast.KindTuple:
		tuple := make([]simpleType, len(t.Tuple))
		for i, s := range t.Tuple {
			tuple[i] = resolveSimpleType(s)
		}

		return complexType{Kind: "tuple", Tuple: tuple}

	case ast.KindStruct:
		fields := make([]typedIdent, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = resolveTypedIdent(input, f)
		}

		return complexType{Kind: "struct", Name: t.Name.Resolve(input), Fields: fields}

	default:
		simple := resolveSimpleType(t.Simple)
		return complexType{Kind: "simple", Simple: &simple}
	}
}

// argType mirrors ast.ArgType with every span resolved.
type argType struct {
	Kind     string
	Args     []typedIdent `repr:",omitempty"`
	VarName  string       `repr:",omitempty"`
	TypeName string       `repr:",omitempty"`
	Fields   []typedIdent `repr:",omitempty"`
}

func resolveArgType(input string, a ast.ArgType) argType {
	if a.Kind == ast.ArgTypeStruct {
		fields := make([]typedIdent, len(a.Fields))
		for i, f := range a.Fields {
			fields[i] = resolveTypedIdent(input, f)
		}

		return argType{
			Kind:     "struct",
			VarName:  a.VarName.Resolve(input),
			TypeName: a.TypeName.Resolve(input),
			Fields:   fields,
		}
	}

	args := make([]typedIdent, len(a.Args))
	for i, arg := range a.Args {
		args[i] = resolveTypedIdent(input, arg)
	}

	return argType{Kind: "args", Args: args}
}

// resultType mirrors ast.ResultType with every span resolved.
type resultType struct {
	Cardinality string
	Type        *complexType `repr:",omitempty"`
}

func resolveResultType(input string, r ast.ResultType) resultType {
	names := map[ast.ResultTypeKind]string{
		ast.ResultUnit:     "unit",
		ast.ResultOption:   "option",
		ast.ResultSingle:   "single",
		ast.ResultIterator: "iterator",
	}

	rt := resultType{Cardinality: names[r.Kind]}

	if r.Kind != ast.ResultUnit {
		t := resolveComplexType(input, r.Type)
		rt.Type = &t
	}

	return rt
}

// fragment mirrors ast.Fragment with its text resolved rather than spans.
type fragment struct {
	Kind string
	Text string
	As   *typedIdent `repr:",omitempty"`
}

func resolveFragment(input string, f ast.Fragment) fragment {
	names := map[ast.FragmentKind]string{
		ast.FragmentVerbatim:    "verbatim",
		ast.FragmentTypedIdent:  "typed-ident",
		ast.FragmentParam:       "param",
		ast.FragmentTypedParam:  "typed-param",
	}

	out := fragment{Kind: names[f.Kind], Text: f.ReconstructSpan().Resolve(input)}

	if f.Kind == ast.FragmentTypedIdent || f.Kind == ast.FragmentTypedParam {
		ti := resolveTypedIdent(input, f.TypedIdent)
		out.As = &ti
	}

	return out
}

// query mirrors ast.Query with every span resolved.
type query struct {
	DocComments []string
	Name        string
	Args        argType
	Result      resultType
	Multi       bool
	Statements  [][]fragment
}

func resolveQuery(input string, q ast.Query) query {
	docs := make([]string, len(q.DocComments))
	for i, sp := range q.DocComments {
		docs[i] = strings.TrimSpace(sp.Resolve(input))
	}

	statements := make([][]fragment, len(q.Statements))
	for i, stmt := range q.Statements {
		fragments := make([]fragment, len(stmt.Fragments))
		for j, f := range stmt.Fragments {
			fragments[j] = resolveFragment(input, f)
		}

		statements[i] = fragments
	}

	return query{
		DocComments: docs,
		Name:        q.Annotation.Name.Resolve(input),
		Args:        resolveArgType(input, q.Annotation.Args),
		Result:      resolveResultType(input, q.Annotation.ResultType),
		Multi:       q.Statement == ast.Multi,
		Statements:  statements,
	}
}

// section mirrors ast.Section, either a verbatim snippet or a resolved
// query.
type section struct {
	Verbatim string `repr:",omitempty"`
	Query    *query `repr:",omitempty"`
}

func resolveSection(input string, s ast.Section) section {
	if s.Kind == ast.SectionVerbatim {
		return section{Verbatim: s.Span.Resolve(input)}
	}

	q := resolveQuery(input, s.Query)

	return section{Query: &q}
}

// document is the fully-resolved, repr-friendly form of one NamedDocument.
type document struct {
	Filename string
	Sections []section
}

func resolveDocument(doc ast.NamedDocument) document {
	sections := make([]section, len(doc.Document.Sections))
	for i, s := range doc.Document.Sections {
		sections[i] = resolveSection(doc.Input, s)
	}

	return document{Filename: doc.Filename, Sections: sections}
}

// Dump renders docs as a repr-formatted, human-readable AST dump: the
// "debug" backend target (spec.md §1).
func Dump(docs []ast.NamedDocument) string {
	resolved := make([]document, len(docs))
	for i, doc := range docs {
		resolved[i] = resolveDocument(doc)
	}

	return repr.String(resolved, repr.Indent("  "))
}
