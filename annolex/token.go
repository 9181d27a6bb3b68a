// Package annolex re-lexes the comment sub-spans the SQL lexer identifies
// as annotations, under the small, strict annotation grammar (spec.md
// §4.3).
package annolex

import "github.com/annosql/annosql/span"

// TokenType enumerates the annotation sub-language's tokens.
type TokenType int

const (
	Marker TokenType = iota
	Ident
	LParen
	RParen
	Colon
	Semicolon
	Comma
	Minus
	Question
	Arrow
	ArrowOpt
	ArrowOne
	ArrowStar
)

func (t TokenType) String() string {
	switch t {
	case Marker:
		return "Marker"
	case Ident:
		return "Ident"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Colon:
		return "Colon"
	case Semicolon:
		return "Semicolon"
	case Comma:
		return "Comma"
	case Minus:
		return "Minus"
	case Question:
		return "Question"
	case Arrow:
		return "Arrow"
	case ArrowOpt:
		return "ArrowOpt"
	case ArrowOne:
		return "ArrowOne"
	case ArrowStar:
		return "ArrowStar"
	default:
		return "Unknown"
	}
}

// Token is one annotation-language token and the span of input it covers.
type Token struct {
	Type TokenType
	Span span.Span
}
