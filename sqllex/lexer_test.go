package sqllex

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func typesOf(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}

	return types
}

func TestLexBasicStatement(t *testing.T) {
	sql := "select id, name from users where id = :id;"

	tokens, d := Lex(sql)
	assert.Zero(t, d)

	assert.Equal(t, []TokenType{
		Ident, Space, Ident, Punct, Space, Ident, Space, Ident, Space, Ident,
		Space, Ident, Space, Ident, Space, Punct, Space, Param, Semicolon,
	}, typesOf(tokens))
}

func TestLexLosslessTiling(t *testing.T) {
	sql := "-- @query q(id: i64) ->1 User\nselect id /* :i64 */ from t where id = :id;\n"

	tokens, d := Lex(sql)
	assert.Zero(t, d)

	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(sql[tok.Span.Start:tok.Span.End])
	}

	assert.Equal(t, sql, b.String())
}

func TestLexLineComment(t *testing.T) {
	input := "-- hello\nselect 1;"

	tokens, d := Lex(input)
	assert.Zero(t, d)
	assert.Equal(t, CommentStart, tokens[0].Type)
	assert.Equal(t, CommentInner, tokens[1].Type)
	assert.Equal(t, " hello", tokens[1].Span.Resolve(input))
}

func TestLexBlockComment(t *testing.T) {
	tokens, d := Lex("/* :i64 */")
	assert.Zero(t, d)
	assert.Equal(t, []TokenType{CommentStart, CommentInner, CommentEnd}, typesOf(tokens))
	assert.Equal(t, " :i64 ", tokens[1].Span.Resolve("/* :i64 */"))
}

func TestLexUnterminatedString(t *testing.T) {
	_, d := Lex("select 'abc")
	assert.NotZero(t, d)
	assert.Equal(t, "Unterminated string literal.", d.Message)
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, d := Lex("/* never closes")
	assert.NotZero(t, d)
	assert.Equal(t, "Unterminated block comment.", d.Message)
}

func TestLexEscapedQuoteDoesNotClose(t *testing.T) {
	tokens, d := Lex(`'it\'s fine'`)
	assert.Zero(t, d)
	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, SingleQuoted, tokens[0].Type)
}

func TestLexBareColonIsPunct(t *testing.T) {
	tokens, d := Lex("a :: b")
	assert.Zero(t, d)
	assert.Equal(t, []TokenType{Ident, Space, Punct, Space, Ident}, typesOf(tokens))
}

func TestLexParam(t *testing.T) {
	tokens, d := Lex(":email")
	assert.Zero(t, d)
	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, Param, tokens[0].Type)
}

func TestLexIdentStartingWithDigit(t *testing.T) {
	tokens, d := Lex("1abc")
	assert.Zero(t, d)
	assert.Equal(t, []TokenType{Ident}, typesOf(tokens))
}

func TestLexControlByteError(t *testing.T) {
	_, d := Lex("select \x01 1;")
	assert.NotZero(t, d)
}

func TestLexBrackets(t *testing.T) {
	tokens, d := Lex("([{}])")
	assert.Zero(t, d)
	assert.Equal(t, []TokenType{LParen, LBracket, LBrace, RBrace, RBracket, RParen}, typesOf(tokens))
}
