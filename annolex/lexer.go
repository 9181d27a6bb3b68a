package annolex

import (
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/span"
)

// Lexer re-lexes one or more comment sub-spans belonging to the same
// logical annotation, accumulating into a single token vector. It is
// state-free aside from that accumulation buffer, so the document parser
// can call Feed repeatedly across continuation comment lines and have them
// concatenate cleanly (spec.md §9, "comments as a sub-grammar").
type Lexer struct {
	input  string
	tokens []Token
}

// New creates a Lexer over the full file content; Feed is then called with
// the sub-spans of individual comment bodies within it.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokens returns the accumulated token vector across every Feed call so far.
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

// Feed lexes the sub-span sp (a comment's content, delimiters already
// stripped by the caller) and appends its tokens to the accumulated vector.
func (l *Lexer) Feed(sp span.Span) *diag.Diagnostic {
	pos := sp.Start

	for pos < sp.End {
		b := l.input[pos]

		switch {
		case isSpaceByte(b):
			pos++
		case b == '@':
			start := pos
			pos++

			for pos < sp.End && isIdentCont(l.input[pos]) {
				pos++
			}

			l.tokens = append(l.tokens, Token{Type: Marker, Span: span.Span{Start: start, End: pos}})
		case isIdentStart(b):
			start := pos
			pos++

			for pos < sp.End && isIdentCont(l.input[pos]) {
				pos++
			}

			l.tokens = append(l.tokens, Token{Type: Ident, Span: span.Span{Start: start, End: pos}})
		case b == '(':
			l.tokens = append(l.tokens, l.one(LParen, pos))
			pos++
		case b == ')':
			l.tokens = append(l.tokens, l.one(RParen, pos))
			pos++
		case b == ':':
			l.tokens = append(l.tokens, l.one(Colon, pos))
			pos++
		case b == ';':
			l.tokens = append(l.tokens, l.one(Semicolon, pos))
			pos++
		case b == ',':
			l.tokens = append(l.tokens, l.one(Comma, pos))
			pos++
		case b == '?':
			l.tokens = append(l.tokens, l.one(Question, pos))
			pos++
		case b == '-':
			consumed, tok := l.readDash(pos, sp.End)
			l.tokens = append(l.tokens, tok)
			pos += consumed
		default:
			return diag.NewParse(span.Span{Start: pos, End: pos + 1}, "Unexpected character in annotation.")
		}
	}

	return nil
}

func (l *Lexer) one(t TokenType, pos int) Token {
	return Token{Type: t, Span: span.Span{Start: pos, End: pos + 1}}
}

// readDash classifies a "-" as Minus, or as the start of one of the four
// arrow tokens, by looking ahead without consuming past end.
func (l *Lexer) readDash(pos, end int) (consumed int, tok Token) {
	if pos+1 >= end || l.input[pos+1] != '>' {
		return 1, Token{Type: Minus, Span: span.Span{Start: pos, End: pos + 1}}
	}

	if pos+2 < end {
		switch l.input[pos+2] {
		case '?':
			return 3, Token{Type: ArrowOpt, Span: span.Span{Start: pos, End: pos + 3}}
		case '1':
			return 3, Token{Type: ArrowOne, Span: span.Span{Start: pos, End: pos + 3}}
		case '*':
			return 3, Token{Type: ArrowStar, Span: span.Span{Start: pos, End: pos + 3}}
		}
	}

	return 2, Token{Type: Arrow, Span: span.Span{Start: pos, End: pos + 2}}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
