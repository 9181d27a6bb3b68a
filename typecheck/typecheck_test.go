package typecheck

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/docparse"
	"github.com/annosql/annosql/sqllex"
)

func checkQuery(t *testing.T, input string) ast.Query {
	t.Helper()

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := docparse.New(input, tokens).Parse()
	assert.Zero(t, d)
	assert.Equal(t, 1, len(doc.Sections))
	assert.Equal(t, ast.SectionQuery, doc.Sections[0].Kind)

	query, d := CheckAndResolve(input, doc.Sections[0].Query)
	assert.Zero(t, d)

	return query
}

func TestFillInputStructPopulatesTopLevel(t *testing.T) {
	input := "-- @query f(user: User) ->1 i64\n" +
		"select max(karma) from users\n" +
		"where id = :id /* :i64 */ and name = :name /* :str */;\n"

	query := checkQuery(t, input)

	assert.Equal(t, ast.ArgTypeStruct, query.Annotation.Args.Kind)
	assert.Equal(t, 2, len(query.Annotation.Args.Fields))
	assert.Equal(t, "id", query.Annotation.Args.Fields[0].Ident.Resolve(input))
	assert.Equal(t, ast.I64, query.Annotation.Args.Fields[0].Type.Primitive)
	assert.Equal(t, "name", query.Annotation.Args.Fields[1].Ident.Resolve(input))
	assert.Equal(t, ast.Str, query.Annotation.Args.Fields[1].Type.Primitive)
}

func TestFillOutputStructPopulatesTopLevel(t *testing.T) {
	input := "-- @query get_admin() ->1 User\n" +
		"select id /* :i64 */, name /* :str */ from users where id = 13;\n"

	query := checkQuery(t, input)

	fields := query.Annotation.ResultType.Type.Fields
	assert.Equal(t, 2, len(fields))
	assert.Equal(t, "id", fields[0].Ident.Resolve(input))
	assert.Equal(t, "name", fields[1].Ident.Resolve(input))
}

func TestFillOutputStructPopulatesInnerTypes(t *testing.T) {
	input := "-- @query iterate_parents() ->* Node\n" +
		"select id /* :i64 */, parent_id /* :i64? */ from nodes;\n"

	query := checkQuery(t, input)

	fields := query.Annotation.ResultType.Type.Fields
	assert.Equal(t, 2, len(fields))
	assert.True(t, fields[1].Type.Optional)
}

func TestUndefinedQueryParameter(t *testing.T) {
	input := "-- @query q()\nselect * from t where id = :id;\n"

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := docparse.New(input, tokens).Parse()
	assert.Zero(t, d)

	_, d = CheckAndResolve(input, doc.Sections[0].Query)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "Undefined query parameter.")
	assert.Contains(t, d.Hint, "Define the parameter")
}

func TestRedefinitionOfArgument(t *testing.T) {
	input := "-- @query q(id: i64, id: str)\nselect * from t where id = :id;\n"

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := docparse.New(input, tokens).Parse()
	assert.Zero(t, d)

	_, d = CheckAndResolve(input, doc.Sections[0].Query)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "Redefinition of argument.")
}

func TestParameterTypeDisagreement(t *testing.T) {
	input := "-- @query q()\n" +
		"select * from t where id = :id /* :i64 */ and id2 = :id /* :str */;\n"

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := docparse.New(input, tokens).Parse()
	assert.Zero(t, d)

	_, d = CheckAndResolve(input, doc.Sections[0].Query)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "Parameter type differs from an earlier definition.")
}

func TestStructArgumentWithNoFieldsRejected(t *testing.T) {
	input := "-- @query q(user: User)\nselect 1;\n"

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := docparse.New(input, tokens).Parse()
	assert.Zero(t, d)

	_, d = CheckAndResolve(input, doc.Sections[0].Query)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "no typed query parameters")
}

func TestStructResultWithNoAnnotatedOutputsRejected(t *testing.T) {
	input := "-- @query q() ->1 User\nselect 1;\n"

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := docparse.New(input, tokens).Parse()
	assert.Zero(t, d)

	_, d = CheckAndResolve(input, doc.Sections[0].Query)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "no annotated outputs")
}
