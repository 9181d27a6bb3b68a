package docparse

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/sqllex"
)

func parseDoc(t *testing.T, input string) ast.Document {
	t.Helper()

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	doc, d := New(input, tokens).Parse()
	assert.Zero(t, d)

	return doc
}

func TestParseInsertUser(t *testing.T) {
	input := "-- @query insert_user(name: str, email: str) ->1 i64\n" +
		"insert into users (name, email) values (:name, :email) returning id;\n"

	doc := parseDoc(t, input)
	assert.Equal(t, 1, len(doc.Sections))

	section := doc.Sections[0]
	assert.Equal(t, ast.SectionQuery, section.Kind)
	assert.Equal(t, "insert_user", section.Query.Annotation.Name.Resolve(input))
	assert.Equal(t, 1, len(section.Query.Statements))

	kinds := make([]ast.FragmentKind, 0)
	for _, f := range section.Query.Statements[0].Fragments {
		kinds = append(kinds, f.Kind)
	}

	assert.Equal(t, []ast.FragmentKind{
		ast.FragmentVerbatim, ast.FragmentParam, ast.FragmentVerbatim, ast.FragmentParam, ast.FragmentVerbatim,
	}, kinds)
}

func TestParseStructResultColumns(t *testing.T) {
	input := "-- @query select_user_by_id(id: i64) ->1 User\n" +
		"select id /* :i64 */, name /* :str */, email /* :str */\n" +
		"  from users where id = :id;\n"

	doc := parseDoc(t, input)
	section := doc.Sections[0]
	assert.Equal(t, ast.ResultSingle, section.Query.Annotation.ResultType.Kind)
	assert.Equal(t, ast.KindStruct, section.Query.Annotation.ResultType.Type.Kind)

	var typedIdents int
	for _, f := range section.Query.Statements[0].Fragments {
		if f.Kind == ast.FragmentTypedIdent {
			typedIdents++
		}
	}

	assert.Equal(t, 3, typedIdents)
}

func TestParseUnbalancedBracket(t *testing.T) {
	input := "-- @query q()\nselect ( from t;\n"

	tokens, d := sqllex.Lex(input)
	assert.Zero(t, d)

	_, diagErr := New(input, tokens).Parse()
	assert.NotZero(t, diagErr)
	assert.Contains(t, diagErr.Message, "Expected ')'")
}

func TestParseLosslessTiling(t *testing.T) {
	input := "-- @query q(id: i64) ->1 User\n" +
		"select id /* :i64 */, name /* :str */\n" +
		"  from t where id = :id;\n\n" +
		"-- just a verbatim comment\nselect 2;\n"

	doc := parseDoc(t, input)

	var b strings.Builder

	for _, section := range doc.Sections {
		switch section.Kind {
		case ast.SectionVerbatim:
			b.WriteString(section.Span.Resolve(input))
		case ast.SectionQuery:
			b.WriteString(section.QuerySpan.Resolve(input))
		}
	}

	assert.Equal(t, input, b.String())
}

func TestParseMultiStatementBlock(t *testing.T) {
	input := "-- @begin bulk()\n" +
		"delete from t;\n" +
		"insert into t (a) values (1);\n" +
		"-- @end\n"

	doc := parseDoc(t, input)
	section := doc.Sections[0]
	assert.Equal(t, ast.Multi, section.Query.Statement)
	assert.Equal(t, 2, len(section.Query.Statements))
}

func TestParseMultiStatementBlockIgnoresLookalikeInnerComment(t *testing.T) {
	input := "-- @begin bulk()\n" +
		"delete from t;\n" +
		"-- @endpoint foo\n" +
		"insert into t (a) values (1);\n" +
		"-- @end\n"

	doc := parseDoc(t, input)
	section := doc.Sections[0]
	assert.Equal(t, ast.Multi, section.Query.Statement)
	assert.Equal(t, 2, len(section.Query.Statements))
}
