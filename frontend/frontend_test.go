package frontend

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/annosql/annosql/ast"
)

func TestProcessFileEndToEnd(t *testing.T) {
	input := "-- @query insert_user(name: str, email: str) ->1 i64\n" +
		"insert into users (name, email) values (:name, :email) returning id;\n"

	doc, d := ProcessFile("insert_user.sql", input)
	assert.Zero(t, d)
	assert.Equal(t, "insert_user.sql", doc.Filename)
	assert.Equal(t, 1, len(doc.Document.Sections))
	assert.Equal(t, ast.SectionQuery, doc.Document.Sections[0].Kind)
}

func TestProcessFileInvalidUTF8(t *testing.T) {
	input := "-- @query q()\nselect \xff;\n"

	_, d := ProcessFile("bad.sql", input)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "Invalid UTF-8")
}

func TestProcessFilePropagatesTypeError(t *testing.T) {
	input := "-- @query q()\nselect * from t where id = :id;\n"

	_, d := ProcessFile("undefined.sql", input)
	assert.NotZero(t, d)
	assert.Contains(t, d.Message, "Undefined query parameter.")
}

func TestProcessFilesCollectsInOrder(t *testing.T) {
	a := "-- @query a()\nselect 1;\n"
	b := "-- @query b()\nselect 2;\n"

	docs, d := ProcessFiles([]NamedInput{
		{Filename: "a.sql", Input: a},
		{Filename: "b.sql", Input: b},
	})
	assert.Zero(t, d)
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "a.sql", docs[0].Filename)
	assert.Equal(t, "b.sql", docs[1].Filename)
}
