// Package typecheck resolves and checks one query's signature against its
// body: it ensures every bare query parameter (one without an inline type
// annotation) is listed in the annotation's argument list, that repeated
// parameters and outputs agree with their first definition, and it fills in
// the field lists of struct-shaped arguments and results from the typed
// identifiers that occur in the body (spec.md §4.6). A bare parameter is not
// resolved against typed parameters in the body, so with a struct argument
// every occurrence of a parameter needs its own type annotation.
//
// Grounded on original_source/src/typecheck.rs's QueryChecker: the same
// three-pass shape (populate argument map, walk fragments, fill struct
// fields) carried over to Go's explicit-error style.
package typecheck

import (
	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/span"
)

// checker holds the by-name maps accumulated while checking a single query.
type checker struct {
	input string

	queryArgs     map[string]ast.TypedIdent
	queryArgOrder []string

	inputFields    map[string]ast.TypedIdent
	inputFieldsVec []ast.TypedIdent

	outputFields    map[string]ast.TypedIdent
	outputFieldsVec []ast.TypedIdent
}

func newChecker(input string) *checker {
	return &checker{
		input:        input,
		queryArgs:    make(map[string]ast.TypedIdent),
		inputFields:  make(map[string]ast.TypedIdent),
		outputFields: make(map[string]ast.TypedIdent),
	}
}

// CheckAndResolve checks query for consistency and returns a copy of it with
// the Annotation's struct field lists filled in, per spec.md §4.6.
func CheckAndResolve(input string, query ast.Query) (ast.Query, *diag.Diagnostic) {
	c := newChecker(input)

	if d := c.populateQueryArgs(&query.Annotation); d != nil {
		return ast.Query{}, d
	}

	if d := c.populateInputsOutputs(query.Statements); d != nil {
		return ast.Query{}, d
	}

	if d := c.fillInputStruct(&query.Annotation); d != nil {
		return ast.Query{}, d
	}

	if d := c.fillOutputStruct(&query.Annotation); d != nil {
		return ast.Query{}, d
	}

	return query, nil
}

// CheckDocument applies CheckAndResolve to every query section in doc.
func CheckDocument(input string, doc ast.Document) (ast.Document, *diag.Diagnostic) {
	sections := make([]ast.Section, len(doc.Sections))

	for i, section := range doc.Sections {
		if section.Kind != ast.SectionQuery {
			sections[i] = section
			continue
		}

		query, d := CheckAndResolve(input, section.Query)
		if d != nil {
			return ast.Document{}, d
		}

		section.Query = query
		sections[i] = section
	}

	return ast.Document{Sections: sections}, nil
}

func (c *checker) text(sp span.Span) string {
	return sp.Resolve(c.input)
}

// populateQueryArgs records the arguments declared in the annotation,
// rejecting duplicate names. A struct-typed argument list has nothing to
// populate here: its fields come from the query body instead.
func (c *checker) populateQueryArgs(annotation *ast.Annotation) *diag.Diagnostic {
	if annotation.Args.Kind == ast.ArgTypeStruct {
		return nil
	}

	for _, arg := range annotation.Args.Args {
		name := c.text(arg.Ident)

		if previous, ok := c.queryArgs[name]; ok {
			return diag.NewTypeWithNote(
				arg.Ident, "Redefinition of argument.",
				previous.Ident, "First defined here.",
			)
		}

		c.queryArgs[name] = arg
		c.queryArgOrder = append(c.queryArgOrder, name)
	}

	return nil
}

// populateInputsOutputs walks every fragment of every statement and records
// typed outputs, bare parameter usages, and typed parameters.
func (c *checker) populateInputsOutputs(statements []ast.Statement) *diag.Diagnostic {
	for _, statement := range statements {
		for _, fragment := range statement.Fragments {
			if d := c.populateInputOutput(fragment); d != nil {
				return d
			}
		}
	}

	return nil
}

func (c *checker) populateInputOutput(fragment ast.Fragment) *diag.Diagnostic {
	switch fragment.Kind {
	case ast.FragmentVerbatim:
		return nil

	case ast.FragmentTypedIdent:
		name := c.text(fragment.TypedIdent.Ident)

		if previous, ok := c.outputFields[name]; ok {
			return diag.NewTypeWithNote(
				fragment.TypedIdent.Ident, "Redefinition of query output.",
				previous.Ident, "First defined here.",
			)
		}

		c.outputFields[name] = fragment.TypedIdent
		c.outputFieldsVec = append(c.outputFieldsVec, fragment.TypedIdent)

		return nil

	case ast.FragmentParam:
		// A bare parameter without a type annotation must already be
		// declared in the query signature.
		name := c.text(span.Span{Start: fragment.Span.Start + 1, End: fragment.Span.End})

		if _, ok := c.queryArgs[name]; !ok {
			return diag.NewTypeWithHint(
				fragment.Span, "Undefined query parameter.",
				"Define the parameter in the query signature, or add a type annotation here.",
			)
		}

		return nil

	case ast.FragmentTypedParam:
		name := c.text(fragment.TypedIdent.Ident)

		if previous, ok := c.inputFields[name]; ok {
			if !previous.Type.Equivalent(fragment.TypedIdent.Type) {
				return diag.NewTypeWithNote(
					fragment.Span, "Parameter type differs from an earlier definition.",
					previous.Ident, "First defined here.",
				)
			}
		} else {
			c.inputFields[name] = fragment.TypedIdent
			c.inputFieldsVec = append(c.inputFieldsVec, fragment.TypedIdent)
		}

		if previous, ok := c.queryArgs[name]; ok {
			if !previous.Type.Equivalent(fragment.TypedIdent.Type) {
				return diag.NewTypeWithNote(
					fragment.Span, "Parameter type differs from an earlier definition.",
					previous.Ident, "First defined here.",
				)
			}
		}

		return nil

	default:
		return nil
	}
}

// fillInputStruct moves the typed parameters collected from the query body
// into the struct argument's field list, if the annotation declared one.
func (c *checker) fillInputStruct(annotation *ast.Annotation) *diag.Diagnostic {
	if len(c.inputFieldsVec) == 0 {
		if annotation.Args.Kind == ast.ArgTypeStruct {
			return diag.NewTypeWithHint(
				annotation.Args.TypeName,
				"Annotation contains a struct argument, but the query body contains no typed query parameters.",
				"Add query parameters with type annotations to the query, to turn them into fields of the struct.",
			)
		}

		return nil
	}

	if annotation.Args.Kind != ast.ArgTypeStruct {
		ti := c.inputFieldsVec[0]

		return diag.NewTypeWithHint(
			ti.Ident, "Cannot create a field, query has no struct parameter.",
			"Annotated query parameters in the query body become fields of a struct, "+
				"but this query has no struct parameter in its signature.",
		)
	}

	annotation.Args.Fields = append(annotation.Args.Fields, c.inputFieldsVec...)

	return nil
}

// fillOutputStruct moves the typed outputs collected from the query body
// into the struct result's field list, if the annotation declared one.
func (c *checker) fillOutputStruct(annotation *ast.Annotation) *diag.Diagnostic {
	isStruct := annotation.ResultType.Kind != ast.ResultUnit && annotation.ResultType.Type.Kind == ast.KindStruct

	if len(c.outputFieldsVec) == 0 {
		if isStruct {
			return diag.NewTypeWithHint(
				annotation.ResultType.Type.Name,
				"The annotation specifies a struct as result type, but the query body contains no annotated outputs.",
				"Add a SELECT or RETURNING clause with type annotations to the query, to turn them into fields of the struct.",
			)
		}

		return nil
	}

	if !isStruct {
		ti := c.outputFieldsVec[0]

		return diag.NewTypeWithHint(
			ti.Ident, "Cannot create a field, query does not return a struct.",
			"Annotated outputs in the query body become fields of a struct, "+
				"so this query would need to return a struct.",
		)
	}

	annotation.ResultType.Type.Fields = append(annotation.ResultType.Type.Fields, c.outputFieldsVec...)

	return nil
}
