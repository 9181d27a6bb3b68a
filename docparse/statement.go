package docparse

import (
	"strings"

	"github.com/annosql/annosql/annolex"
	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/span"
	"github.com/annosql/annosql/sqllex"
)

type bracketFrame struct {
	opener sqllex.TokenType
	span   span.Span
}

// parseStatement parses one SQL statement starting at the cursor, ending
// at the first top-level ";", per spec.md §4.5.2.
func (p *Parser) parseStatement() (ast.Statement, *diag.Diagnostic) {
	var fragments []ast.Fragment

	var stack []bracketFrame

	if p.cursor >= len(p.tokens) {
		return ast.Statement{}, p.endOfInputDiagnostic()
	}

	verbatimStart := p.tokens[p.cursor].Span.Start

	for {
		if p.cursor >= len(p.tokens) {
			return ast.Statement{}, p.endOfInputDiagnostic()
		}

		tok := p.tokens[p.cursor]

		switch tok.Type {
		case sqllex.Param:
			fragments = flushVerbatim(fragments, verbatimStart, tok.Span.Start)
			fragments = append(fragments, ast.Fragment{Kind: ast.FragmentParam, Span: tok.Span})
			p.cursor++
			verbatimStart = tok.Span.End

		case sqllex.CommentInner:
			content := p.text(tok.Span)
			trimmed := strings.TrimLeft(content, " \t\r\n\v\f")

			if len(trimmed) > 0 && trimmed[0] == ':' {
				newFragments, newVerbatimStart, d := p.applyTypeAnnotation(fragments, verbatimStart, tok)
				if d != nil {
					return ast.Statement{}, d
				}

				fragments = newFragments
				verbatimStart = newVerbatimStart

				continue
			}

			p.cursor++

		case sqllex.Semicolon:
			if len(stack) > 0 {
				outer := stack[0]
				return ast.Statement{}, diag.NewParseWithNote(
					tok.Span, closeMessage(outer.opener),
					outer.span, "Opening '"+openChar(outer.opener)+"' here.",
				)
			}

			p.cursor++
			fragments = flushVerbatim(fragments, verbatimStart, tok.Span.End)

			return ast.Statement{Fragments: fragments}, nil

		case sqllex.LParen, sqllex.LBracket, sqllex.LBrace:
			stack = append(stack, bracketFrame{opener: tok.Type, span: tok.Span})
			p.cursor++

		case sqllex.RParen, sqllex.RBracket, sqllex.RBrace:
			p.cursor++

			if d := p.matchCloser(&stack, tok); d != nil {
				return ast.Statement{}, d
			}

		default:
			p.cursor++
		}
	}
}

// matchCloser pops the bracket stack for a closing bracket token and
// verifies it matches the innermost opener.
func (p *Parser) matchCloser(stack *[]bracketFrame, tok sqllex.Token) *diag.Diagnostic {
	want := openerFor(tok.Type)

	if len(*stack) == 0 {
		return diag.NewParse(tok.Span, "Unexpected '"+closerChar(tok.Type)+"', there is no matching opener.")
	}

	top := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]

	if top.opener != want {
		return diag.NewParseWithNote(
			tok.Span, closeMessage(top.opener),
			top.span, "Opening '"+openChar(top.opener)+"' here.",
		)
	}

	return nil
}

// applyTypeAnnotation handles a CommentInner whose trimmed content begins
// with ':': a type annotation on the immediately preceding identifier or
// parameter (spec.md §4.5.2, §4.5.3).
func (p *Parser) applyTypeAnnotation(fragments []ast.Fragment, verbatimStart int, tok sqllex.Token) ([]ast.Fragment, int, *diag.Diagnostic) {
	content := p.text(tok.Span)
	leadWS := len(content) - len(strings.TrimLeft(content, " \t\r\n\v\f"))
	colonPos := tok.Span.Start + leadWS
	afterColon := span.Span{Start: colonPos + 1, End: tok.Span.End}

	if strings.TrimSpace(p.text(afterColon)) == "" {
		return nil, 0, diag.NewParse(tok.Span, "Empty type annotation.")
	}

	simple, d := parseSimpleTypeSpan(p.input, afterColon)
	if d != nil {
		return nil, 0, d
	}

	commentStartIdx := p.cursor - 1
	p.cursor++ // past CommentInner

	closeEnd := tok.Span.End
	if p.cursor < len(p.tokens) && p.tokens[p.cursor].Type == sqllex.CommentEnd {
		closeEnd = p.tokens[p.cursor].Span.End
		p.cursor++
	}

	targetIdx := p.findAnnotationTarget(commentStartIdx)
	if targetIdx < 0 {
		return nil, 0, diag.NewParse(tok.Span, "Invalid type annotation, expected an identifier or parameter before the annotation.")
	}

	target := p.tokens[targetIdx]

	switch target.Type {
	case sqllex.Ident:
		fragments = flushVerbatim(fragments, verbatimStart, target.Span.Start)
		fragments = append(fragments, ast.Fragment{
			Kind:     ast.FragmentTypedIdent,
			Span:     target.Span,
			FullSpan: span.Span{Start: target.Span.Start, End: closeEnd},
			TypedIdent: ast.TypedIdent{
				Ident: target.Span,
				Type:  simple,
			},
		})

		return fragments, closeEnd, nil

	case sqllex.Param:
		if len(fragments) == 0 || fragments[len(fragments)-1].Kind != ast.FragmentParam {
			return nil, 0, diag.NewParse(tok.Span, "Invalid type annotation, expected an identifier or parameter before the annotation.")
		}

		fragments = fragments[:len(fragments)-1]
		fragments = append(fragments, ast.Fragment{
			Kind:     ast.FragmentTypedParam,
			Span:     target.Span,
			FullSpan: span.Span{Start: target.Span.Start, End: closeEnd},
			TypedIdent: ast.TypedIdent{
				Ident: span.Span{Start: target.Span.Start + 1, End: target.Span.End},
				Type:  simple,
			},
		})

		return fragments, closeEnd, nil

	default:
		return nil, 0, diag.NewParse(tok.Span, "Invalid type annotation, expected an identifier or parameter before the annotation.")
	}
}

// findAnnotationTarget walks backwards from just before the comment that
// opened at commentStartIdx, skipping whitespace and other comments, and
// returns the index of the Ident or Param it is annotating, or -1.
func (p *Parser) findAnnotationTarget(commentStartIdx int) int {
	for i := commentStartIdx - 1; i >= 0; i-- {
		switch p.tokens[i].Type {
		case sqllex.Space, sqllex.CommentStart, sqllex.CommentInner, sqllex.CommentEnd:
			continue
		case sqllex.Ident, sqllex.Param:
			return i
		default:
			return -1
		}
	}

	return -1
}

// parseSimpleTypeSpan re-lexes and parses a single "T" or "T?" type from a
// sub-span of input, used for inline parameter/output annotations.
func parseSimpleTypeSpan(input string, sp span.Span) (ast.SimpleType, *diag.Diagnostic) {
	lexer := annolex.New(input)
	if d := lexer.Feed(sp); d != nil {
		return ast.SimpleType{}, d
	}

	tokens := lexer.Tokens()
	if len(tokens) == 0 {
		return ast.SimpleType{}, diag.NewParse(sp, "Empty type annotation.")
	}

	if tokens[0].Type != annolex.Ident {
		return ast.SimpleType{}, diag.NewParse(tokens[0].Span, "Expected a type name here.")
	}

	name := tokens[0].Span.Resolve(input)

	prim, ok := ast.LookupPrimitive(name)
	if !ok {
		if suggestion, sok := ast.Suggestion(name); sok && suggestion != "" {
			return ast.SimpleType{}, diag.NewParse(tokens[0].Span, "Unknown type '"+name+"'; did you mean '"+suggestion+"'?")
		}

		return ast.SimpleType{}, diag.NewParse(tokens[0].Span, "Unknown type '"+name+"'.")
	}

	optional := false
	next := 1

	if next < len(tokens) && tokens[next].Type == annolex.Question {
		optional = true
		next++
	}

	if next < len(tokens) {
		return ast.SimpleType{}, diag.NewParse(tokens[next].Span, "Unexpected token after a type in an annotation.")
	}

	return ast.SimpleType{Primitive: prim, Optional: optional}, nil
}

func flushVerbatim(fragments []ast.Fragment, start, end int) []ast.Fragment {
	if end <= start {
		return fragments
	}

	return append(fragments, ast.Fragment{Kind: ast.FragmentVerbatim, Span: span.Span{Start: start, End: end}})
}

func (p *Parser) endOfInputDiagnostic() *diag.Diagnostic {
	end := len(p.input)
	if len(p.tokens) > 0 {
		end = p.tokens[len(p.tokens)-1].Span.End
	}

	return diag.NewParse(span.Span{Start: end, End: end}, "Annotated query does not end with ';'.")
}

func openerFor(closer sqllex.TokenType) sqllex.TokenType {
	switch closer {
	case sqllex.RParen:
		return sqllex.LParen
	case sqllex.RBracket:
		return sqllex.LBracket
	case sqllex.RBrace:
		return sqllex.LBrace
	default:
		return closer
	}
}

func closerChar(closer sqllex.TokenType) string {
	switch closer {
	case sqllex.RParen:
		return ")"
	case sqllex.RBracket:
		return "]"
	case sqllex.RBrace:
		return "}"
	default:
		return "?"
	}
}

func openChar(opener sqllex.TokenType) string {
	switch opener {
	case sqllex.LParen:
		return "("
	case sqllex.LBracket:
		return "["
	case sqllex.LBrace:
		return "{"
	default:
		return "?"
	}
}

func closeMessage(opener sqllex.TokenType) string {
	switch opener {
	case sqllex.LParen:
		return "Expected ')'."
	case sqllex.LBracket:
		return "Expected ']'."
	case sqllex.LBrace:
		return "Expected '}'."
	default:
		return "Expected a closing bracket."
	}
}

func isBlankLine(spaceText string) bool {
	return strings.Count(spaceText, "\n") >= 2
}
