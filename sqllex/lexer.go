package sqllex

import (
	"unicode/utf8"

	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/span"
)

// Lex tokenises input and returns the full token stream, or the first
// diagnostic encountered. The concatenation of the returned tokens' spans
// reproduces input exactly (spec.md §8, "lossless tiling"). Callers must
// have already validated input as UTF-8; the lexer only rejects bytes that
// are not valid at the SQL-token level.
func Lex(input string) ([]Token, *diag.Diagnostic) {
	l := &lexer{input: input}
	return l.run()
}

// lexer is a single byte cursor over input. Each call to step reads one
// token, or (for comments) one token group, and advances pos past it —
// tokens are only produced on a return to the Base dispatch below, matching
// the state-tag loop spec.md §4.2 describes.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) run() ([]Token, *diag.Diagnostic) {
	var tokens []Token

	for l.pos < len(l.input) {
		toks, d := l.step()
		if d != nil {
			return nil, d
		}

		tokens = append(tokens, toks...)
	}

	return tokens, nil
}

// step dispatches on the byte at the cursor (the Base state) and delegates
// to the sub-lexer for whichever construct it opens.
func (l *lexer) step() ([]Token, *diag.Diagnostic) {
	b := l.input[l.pos]

	switch {
	case isSpaceByte(b):
		return []Token{l.readSpace()}, nil
	case b == '\'':
		return l.readQuoted('\'', SingleQuoted)
	case b == '"':
		return l.readQuoted('"', DoubleQuoted)
	case b == ':' && isAlpha(l.peek(1)):
		return []Token{l.readParam()}, nil
	case b == '-' && l.peek(1) == '-':
		return l.readLineComment()
	case b == '/' && l.peek(1) == '*':
		return l.readBlockComment()
	case b == '(':
		return []Token{l.readOne(LParen)}, nil
	case b == ')':
		return []Token{l.readOne(RParen)}, nil
	case b == '[':
		return []Token{l.readOne(LBracket)}, nil
	case b == ']':
		return []Token{l.readOne(RBracket)}, nil
	case b == '{':
		return []Token{l.readOne(LBrace)}, nil
	case b == '}':
		return []Token{l.readOne(RBrace)}, nil
	case b == ';':
		return []Token{l.readOne(Semicolon)}, nil
	case isIdentByte(b):
		return []Token{l.readIdent()}, nil
	case isPrintableASCII(b):
		return []Token{l.readPunct()}, nil
	default:
		return nil, l.invalidByteDiagnostic()
	}
}

func (l *lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}

	return l.input[l.pos+n]
}

func (l *lexer) readOne(t TokenType) Token {
	start := l.pos
	l.pos++

	return Token{Type: t, Span: span.Span{Start: start, End: l.pos}}
}

func (l *lexer) readSpace() Token {
	start := l.pos

	for l.pos < len(l.input) && isSpaceByte(l.input[l.pos]) {
		l.pos++
	}

	return Token{Type: Space, Span: span.Span{Start: start, End: l.pos}}
}

func (l *lexer) readIdent() Token {
	start := l.pos

	for l.pos < len(l.input) && isIdentByte(l.input[l.pos]) {
		l.pos++
	}

	return Token{Type: Ident, Span: span.Span{Start: start, End: l.pos}}
}

// readParam consumes ":" followed by one or more identifier characters; the
// caller has already checked the byte after ":" is alphabetic.
func (l *lexer) readParam() Token {
	start := l.pos
	l.pos++ // ":"

	for l.pos < len(l.input) && isIdentByte(l.input[l.pos]) {
		l.pos++
	}

	return Token{Type: Param, Span: span.Span{Start: start, End: l.pos}}
}

// readQuoted consumes a single- or double-quoted string. A quote preceded
// by a backslash does not close the string (spec.md §4.2); an unterminated
// string produces a diagnostic spanning from the opening quote to the end
// of input.
func (l *lexer) readQuoted(quote byte, tokType TokenType) ([]Token, *diag.Diagnostic) {
	start := l.pos
	l.pos++ // opening quote

	for l.pos < len(l.input) {
		b := l.input[l.pos]

		if b == '\\' {
			l.pos += 2
			continue
		}

		if b == quote {
			l.pos++

			return []Token{{Type: tokType, Span: span.Span{Start: start, End: l.pos}}}, nil
		}

		l.pos++
	}

	l.pos = len(l.input)

	return nil, diag.NewParse(span.Span{Start: start, End: len(l.input)}, "Unterminated string literal.")
}

// readLineComment consumes a "--" comment through (but not including) the
// next newline, producing CommentStart and CommentInner — line comments
// never close with a CommentEnd token.
func (l *lexer) readLineComment() ([]Token, *diag.Diagnostic) {
	start := l.pos
	l.pos += 2 // "--"
	startTok := Token{Type: CommentStart, Span: span.Span{Start: start, End: l.pos}}

	innerStart := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}

	innerTok := Token{Type: CommentInner, Span: span.Span{Start: innerStart, End: l.pos}}

	return []Token{startTok, innerTok}, nil
}

// readBlockComment consumes a "/* ... */" comment, producing CommentStart,
// CommentInner, and CommentEnd. An unterminated block comment produces a
// diagnostic spanning from the opening "/*" to end of input.
func (l *lexer) readBlockComment() ([]Token, *diag.Diagnostic) {
	start := l.pos
	l.pos += 2 // "/*"
	startTok := Token{Type: CommentStart, Span: span.Span{Start: start, End: l.pos}}

	innerStart := l.pos

	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			innerTok := Token{Type: CommentInner, Span: span.Span{Start: innerStart, End: l.pos}}
			closeStart := l.pos
			l.pos += 2
			endTok := Token{Type: CommentEnd, Span: span.Span{Start: closeStart, End: l.pos}}

			return []Token{startTok, innerTok, endTok}, nil
		}

		l.pos++
	}

	l.pos = len(l.input)

	return nil, diag.NewParse(span.Span{Start: start, End: len(l.input)}, "Unterminated block comment.")
}

// readPunct consumes a run of ASCII punctuation, stopping before any quote,
// bracket, semicolon, the start of a comment, or a colon that begins a
// parameter.
func (l *lexer) readPunct() Token {
	start := l.pos

	for l.pos < len(l.input) {
		b := l.input[l.pos]

		if !isPrintableASCII(b) || isIdentByte(b) || isQuoteByte(b) || isBracketOrSemi(b) {
			break
		}

		if b == '-' && l.peek(1) == '-' {
			break
		}

		if b == '/' && l.peek(1) == '*' {
			break
		}

		if b == ':' && isAlpha(l.peek(1)) {
			break
		}

		l.pos++
	}

	return Token{Type: Punct, Span: span.Span{Start: start, End: l.pos}}
}

func (l *lexer) invalidByteDiagnostic() *diag.Diagnostic {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if size == 0 {
		size = 1
	}

	start := l.pos
	l.pos += size

	if r >= 0x80 {
		return diag.NewParse(span.Span{Start: start, End: l.pos}, "Unexpected non-ASCII character outside a string or comment.")
	}

	return diag.NewParse(span.Span{Start: start, End: l.pos}, "Unexpected control character.")
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9') || b == '_'
}

func isQuoteByte(b byte) bool {
	return b == '\'' || b == '"'
}

func isBracketOrSemi(b byte) bool {
	switch b {
	case '(', ')', '[', ']', '{', '}', ';':
		return true
	default:
		return false
	}
}

func isPrintableASCII(b byte) bool {
	return b >= 0x21 && b <= 0x7e
}
