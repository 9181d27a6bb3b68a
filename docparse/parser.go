// Package docparse walks the SQL token stream sqllex produces and builds an
// ast.Document: a sequence of verbatim and query sections, driving annolex
// and annoparse over each query's header and inline type annotations
// (spec.md §4.5).
package docparse

import (
	"strings"

	"github.com/annosql/annosql/annolex"
	"github.com/annosql/annosql/annoparse"
	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/span"
	"github.com/annosql/annosql/sqllex"
)

// Parser walks a sqllex.Token vector with a single cursor and builds an
// ast.Document.
type Parser struct {
	input  string
	tokens []sqllex.Token
	cursor int
}

// New creates a Parser over tokens lexed from input.
func New(input string, tokens []sqllex.Token) *Parser {
	return &Parser{input: input, tokens: tokens}
}

// Parse consumes the full token vector and returns the parsed Document.
func (p *Parser) Parse() (ast.Document, *diag.Diagnostic) {
	var sections []ast.Section

	var docComments []span.Span

	for p.cursor < len(p.tokens) {
		secStart := p.tokens[p.cursor].Span.Start

		section, consumedDocComments, d := p.scanSection(secStart, docComments)
		if d != nil {
			return ast.Document{}, d
		}

		if section == nil {
			// scanSection found no tokens to put in a section; nothing to
			// push.
			docComments = nil
			continue
		}

		sections = append(sections, *section)

		if section.Kind == ast.SectionQuery {
			docComments = nil
		} else {
			docComments = consumedDocComments
		}
	}

	return ast.Document{Sections: sections}, nil
}

// scanSection accumulates tokens into a tentative section starting at
// secStart until a blank line or an annotation marker is found, per
// spec.md §4.5.1. docComments holds the non-annotation comment spans
// carried in from a prior verbatim section in case this section turns out
// to be a query. When this section is verbatim, the non-annotation comments
// found in it are returned, to be carried into the next section.
func (p *Parser) scanSection(secStart int, docComments []span.Span) (*ast.Section, []span.Span, *diag.Diagnostic) {
	var own []span.Span

	for p.cursor < len(p.tokens) {
		tok := p.tokens[p.cursor]

		if tok.Type == sqllex.Space && isBlankLine(p.text(tok.Span)) && tok.Span.Start > secStart {
			end := tok.Span.End
			p.cursor++

			return &ast.Section{Kind: ast.SectionVerbatim, Span: span.Span{Start: secStart, End: end}}, own, nil
		}

		if tok.Type == sqllex.CommentInner {
			content := p.text(tok.Span)
			if strings.IndexByte(content, '@') >= 0 {
				probe := annolex.New(p.input)
				if d := probe.Feed(tok.Span); d != nil {
					return nil, nil, d
				}

				if toks := probe.Tokens(); len(toks) > 0 && toks[0].Type == annolex.Marker {
					section, d := p.parseQuery(secStart, append(docComments, own...))
					if d != nil {
						return nil, nil, d
					}

					return section, nil, nil
				}
			}

			own = append(own, tok.Span)
			p.cursor++

			continue
		}

		p.cursor++
	}

	if len(p.tokens) == 0 {
		return nil, nil, nil
	}

	end := p.tokens[len(p.tokens)-1].Span.End
	if end == secStart {
		return nil, nil, nil
	}

	return &ast.Section{Kind: ast.SectionVerbatim, Span: span.Span{Start: secStart, End: end}}, own, nil
}

// parseQuery parses one annotated query: its header (spanning possibly
// several adjacent comment lines) and its statement(s). Whitespace directly
// after the query belongs to the query section.
func (p *Parser) parseQuery(secStart int, docComments []span.Span) (*ast.Section, *diag.Diagnostic) {
	lexer := annolex.New(p.input)

	for p.cursor < len(p.tokens) {
		tok := p.tokens[p.cursor]

		switch tok.Type {
		case sqllex.CommentInner:
			if d := lexer.Feed(tok.Span); d != nil {
				return nil, d
			}

			p.cursor++
		case sqllex.Space, sqllex.CommentStart, sqllex.CommentEnd:
			p.cursor++
		default:
			goto header_done
		}
	}

header_done:

	annotation, stmtType, d := annoparse.New(p.input, lexer.Tokens()).Parse()
	if d != nil {
		return nil, d
	}

	var statements []ast.Statement

	switch stmtType {
	case ast.Single:
		stmt, d := p.parseStatement()
		if d != nil {
			return nil, d
		}

		statements = append(statements, stmt)
	case ast.Multi:
		for {
			stmt, d := p.parseStatement()
			if d != nil {
				return nil, d
			}

			statements = append(statements, stmt)

			if p.consumeEndMarkerIfPresent() {
				break
			}
		}
	}

	if p.cursor < len(p.tokens) && p.tokens[p.cursor].Type == sqllex.Space {
		p.cursor++
	}

	end := secStart
	if len(p.tokens) > 0 && p.cursor > 0 {
		end = p.tokens[p.cursor-1].Span.End
	}

	query := ast.Query{
		DocComments: docComments,
		Annotation:  annotation,
		Statement:   stmtType,
		Statements:  statements,
	}

	return &ast.Section{Kind: ast.SectionQuery, Query: query, QuerySpan: span.Span{Start: secStart, End: end}}, nil
}

// consumeEndMarkerIfPresent skips whitespace after a statement's ';' and,
// if the next comment's content is the "@end" marker, consumes it and
// returns true. Otherwise the cursor is left where it was for the next
// parseStatement call.
func (p *Parser) consumeEndMarkerIfPresent() bool {
	save := p.cursor

	for p.cursor < len(p.tokens) && p.tokens[p.cursor].Type == sqllex.Space {
		p.cursor++
	}

	if p.cursor >= len(p.tokens) || p.tokens[p.cursor].Type != sqllex.CommentStart {
		p.cursor = save
		return false
	}

	p.cursor++

	if p.cursor >= len(p.tokens) || p.tokens[p.cursor].Type != sqllex.CommentInner {
		p.cursor = save
		return false
	}

	lexer := annolex.New(p.input)
	if d := lexer.Feed(p.tokens[p.cursor].Span); d != nil {
		p.cursor = save
		return false
	}

	toks := lexer.Tokens()
	if len(toks) != 1 || toks[0].Type != annolex.Marker || p.text(toks[0].Span) != "@end" {
		p.cursor = save
		return false
	}

	p.cursor++

	if p.cursor < len(p.tokens) && p.tokens[p.cursor].Type == sqllex.CommentEnd {
		p.cursor++
	}

	return true
}

func (p *Parser) text(sp span.Span) string {
	return sp.Resolve(p.input)
}
