// Package ast defines the data model every other annosql component builds
// and consumes: the closed type lattice (PrimitiveType, SimpleType,
// ComplexType), the query signature shapes (ArgType, ResultType,
// StatementType), and the tree that the document parser produces
// (Fragment, Statement, Query, Section, Document, NamedDocument).
//
// Every node refers to source by span.Span rather than by substring, so the
// tree is cheap to build and reorder, and stays valid for any input the
// caller keeps alive alongside it.
package ast

import "github.com/annosql/annosql/span"

// PrimitiveType is the closed set of scalar types the annotation language
// recognises. Unlike identifiers or struct names, this enumeration is never
// extended by user input: annoparse (and docparse, for inline annotations)
// rejects anything outside it,
// falling back to a did-you-mean diagnostic for known misspellings.
type PrimitiveType int

const (
	Str PrimitiveType = iota
	I32
	I64
	F32
	F64
	Bytes
)

func (p PrimitiveType) String() string {
	switch p {
	case Str:
		return "str"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// SimpleType is anything that fits a single column or scalar parameter: a
// bare primitive, or its optional form (spelled "T?" in the annotation
// language).
type SimpleType struct {
	Primitive PrimitiveType
	Optional  bool
}

// Equivalent compares two SimpleTypes structurally, ignoring spans: the
// typechecker uses this to decide whether two occurrences of the same
// parameter name agree (spec.md §4.6, §9 "Struct equality and fields").
func (s SimpleType) Equivalent(other SimpleType) bool {
	return s.Primitive == other.Primitive && s.Optional == other.Optional
}

// ComplexTypeKind tags which shape a ComplexType holds.
type ComplexTypeKind int

const (
	KindSimple ComplexTypeKind = iota
	KindTuple
	KindStruct
)

// ComplexType is anything that can appear as an argument or result type: a
// SimpleType, a tuple of SimpleTypes (result position only), or a named
// struct whose fields are inferred from the query body rather than spelled
// out in the annotation.
type ComplexType struct {
	Kind   ComplexTypeKind
	Simple SimpleType    // valid when Kind == KindSimple
	Tuple  []SimpleType  // valid when Kind == KindTuple
	Name   span.Span     // valid when Kind == KindStruct; the struct's name span
	Fields []TypedIdent  // valid when Kind == KindStruct; empty until the typechecker fills it
}

// TypedIdent pairs an identifier span with the SimpleType it was declared or
// inferred to carry, e.g. the "name: str" of an argument list, or the
// ": i64" trailing an inline-annotated output column.
type TypedIdent struct {
	Ident span.Span
	Type  SimpleType
}

// ArgTypeKind tags which shape an ArgType holds.
type ArgTypeKind int

const (
	ArgTypeArgs ArgTypeKind = iota
	ArgTypeStruct
)

// ArgType is a query's argument shape: either a flat list of named,
// individually-typed arguments, or a single struct-typed argument whose
// fields are discovered from the query body.
type ArgType struct {
	Kind ArgTypeKind

	// Args holds the argument list when Kind == ArgTypeArgs.
	Args []TypedIdent

	// The following are valid only when Kind == ArgTypeStruct.
	VarName  span.Span
	TypeName span.Span
	Fields   []TypedIdent
}

// ResultTypeKind tags which cardinality a ResultType carries.
type ResultTypeKind int

const (
	ResultUnit ResultTypeKind = iota
	ResultOption
	ResultSingle
	ResultIterator
)

// ResultType is a query's result cardinality and payload shape. ResultUnit
// carries no ComplexType and has no associated span; the other three are
// selected by the arrows "->?", "->1", "->*" respectively.
type ResultType struct {
	Kind ResultTypeKind
	Type ComplexType // unused when Kind == ResultUnit
}

// StatementType distinguishes a single-statement query ("@query") from a
// multi-statement block ("@begin" ... "@end").
type StatementType int

const (
	Single StatementType = iota
	Multi
)

// Annotation is the parsed header of a query: its name, argument shape, and
// result shape. The StatementType that goes with it is returned alongside
// by the annotation parser rather than stored here, since it is determined
// by which marker opened the annotation, not by anything inside it.
type Annotation struct {
	Name       span.Span
	Args       ArgType
	ResultType ResultType
}

// FragmentKind tags which shape a Fragment holds.
type FragmentKind int

const (
	FragmentVerbatim FragmentKind = iota
	FragmentTypedIdent
	FragmentParam
	FragmentTypedParam
)

// Fragment is one classified piece of a Statement. Concatenating the spans
// of a statement's fragments (using FullSpan in place of Span for the two
// typed variants) must reproduce the statement's source verbatim.
type Fragment struct {
	Kind FragmentKind

	// Span is the fragment's own span: for FragmentVerbatim and
	// FragmentParam, the entire extent; for the typed variants, just the
	// identifier or parameter being annotated (FullSpan covers the
	// trailing comment too).
	Span span.Span

	// FullSpan is set only for FragmentTypedIdent and FragmentTypedParam:
	// it covers the identifier/parameter plus the annotating comment.
	FullSpan span.Span

	// TypedIdent is set only for FragmentTypedIdent and FragmentTypedParam.
	TypedIdent TypedIdent
}

// ReconstructSpan returns the span to use when tiling a statement's source
// back together: FullSpan for the two typed fragment kinds, Span otherwise.
func (f Fragment) ReconstructSpan() span.Span {
	if f.Kind == FragmentTypedIdent || f.Kind == FragmentTypedParam {
		return f.FullSpan
	}

	return f.Span
}

// Statement is an ordered, non-overlapping sequence of fragments making up
// one SQL statement.
type Statement struct {
	Fragments []Fragment
}

// Query is one annotated query: its leading doc-comment lines (without
// their comment delimiters), its parsed Annotation, whether it is a single
// statement or a multi-statement block, and the statement(s) themselves.
type Query struct {
	DocComments []span.Span
	Annotation  Annotation
	Statement   StatementType
	Statements  []Statement
}

// SectionKind tags which shape a Section holds.
type SectionKind int

const (
	SectionVerbatim SectionKind = iota
	SectionQuery
)

// Section is one top-level piece of a Document: either raw SQL/comment text
// with no annotation, or one parsed Query.
type Section struct {
	Kind     SectionKind
	Span     span.Span // valid when Kind == SectionVerbatim
	Query    Query      // valid when Kind == SectionQuery
	QuerySpan span.Span // the full extent of the query section, for tiling
}

// Document is the ordered list of sections a file parses into. The spans of
// its sections tile the input exactly: contiguous and non-overlapping.
type Document struct {
	Sections []Section
}

// NamedDocument pairs a parsed Document with the filename and input bytes
// it came from; this is what the façade returns and what emitters consume.
type NamedDocument struct {
	Filename string
	Input    string
	Document Document
}
