// Package sqllex implements the permissive SQL document lexer: the first
// stage of the frontend pipeline, producing a token stream that losslessly
// tiles the input (spec.md §4.2).
package sqllex

import "github.com/annosql/annosql/span"

// TokenType enumerates the token kinds the SQL lexer produces.
type TokenType int

const (
	Space TokenType = iota
	Ident
	Param
	SingleQuoted
	DoubleQuoted
	CommentStart
	CommentInner
	CommentEnd
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Semicolon
	Punct
)

func (t TokenType) String() string {
	switch t {
	case Space:
		return "Space"
	case Ident:
		return "Ident"
	case Param:
		return "Param"
	case SingleQuoted:
		return "SingleQuoted"
	case DoubleQuoted:
		return "DoubleQuoted"
	case CommentStart:
		return "CommentStart"
	case CommentInner:
		return "CommentInner"
	case CommentEnd:
		return "CommentEnd"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case Semicolon:
		return "Semicolon"
	case Punct:
		return "Punct"
	default:
		return "Unknown"
	}
}

// Token is one lexed token and the span of input it covers.
type Token struct {
	Type TokenType
	Span span.Span
}
