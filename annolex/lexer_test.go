package annolex

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/annosql/annosql/span"
)

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}

	return out
}

func TestLexerFeedAnnotationHeader(t *testing.T) {
	input := " @query insert_user(name: str, email: str) ->1 i64"
	l := New(input)
	d := l.Feed(span.Span{Start: 0, End: len(input)})
	assert.Zero(t, d)

	assert.Equal(t, []TokenType{
		Marker, Ident, LParen, Ident, Colon, Ident, Comma, Ident, Colon, Ident, RParen, ArrowOne, Ident,
	}, types(l.Tokens()))
}

func TestLexerBareArrow(t *testing.T) {
	input := " @query q() -> i64"
	l := New(input)
	d := l.Feed(span.Span{Start: 0, End: len(input)})
	assert.Zero(t, d)

	toks := l.Tokens()
	assert.Equal(t, Arrow, toks[len(toks)-2].Type)
}

func TestLexerOptionType(t *testing.T) {
	input := "str?"
	l := New(input)
	d := l.Feed(span.Span{Start: 0, End: len(input)})
	assert.Zero(t, d)
	assert.Equal(t, []TokenType{Ident, Question}, types(l.Tokens()))
}

func TestLexerContinuationLines(t *testing.T) {
	l := New("@query q(\nid: i64\n)")
	assert.Zero(t, l.Feed(span.Span{Start: 0, End: 9}))
	assert.Zero(t, l.Feed(span.Span{Start: 10, End: 17}))
	assert.Zero(t, l.Feed(span.Span{Start: 18, End: 19}))

	assert.Equal(t, []TokenType{Marker, Ident, LParen, Ident, Colon, Ident, RParen}, types(l.Tokens()))
}

func TestLexerMinusIsNotArrow(t *testing.T) {
	l := New("a-b")
	d := l.Feed(span.Span{Start: 0, End: 3})
	assert.Zero(t, d)
	assert.Equal(t, []TokenType{Ident, Minus, Ident}, types(l.Tokens()))
}
