// Package annoparse consumes the flat token vector annolex produces and
// builds an ast.Annotation plus the ast.StatementType it implies
// (spec.md §4.4). It is a small hand-written recursive-descent parser: the
// grammar is short enough, and its diagnostics specific enough, that a
// combinator library would not earn its keep here (see DESIGN.md).
package annoparse

import (
	"github.com/annosql/annosql/annolex"
	"github.com/annosql/annosql/ast"
	"github.com/annosql/annosql/diag"
	"github.com/annosql/annosql/span"
)

// Parser walks a flat annolex.Token vector with a single cursor.
type Parser struct {
	input  string
	tokens []annolex.Token
	cursor int
}

// New creates a Parser over tokens lexed from input.
func New(input string, tokens []annolex.Token) *Parser {
	return &Parser{input: input, tokens: tokens}
}

// Parse consumes the full token vector and returns the parsed Annotation
// together with the StatementType its opening marker selected.
func (p *Parser) Parse() (ast.Annotation, ast.StatementType, *diag.Diagnostic) {
	stmtType, d := p.parseMarker()
	if d != nil {
		return ast.Annotation{}, 0, d
	}

	name, d := p.expect(annolex.Ident, "Expected an identifier here, the name of the query.")
	if d != nil {
		return ast.Annotation{}, 0, d
	}

	argType, d := p.parseArgList()
	if d != nil {
		return ast.Annotation{}, 0, d
	}

	resultType, d := p.parseResult()
	if d != nil {
		return ast.Annotation{}, 0, d
	}

	return ast.Annotation{Name: name, Args: argType, ResultType: resultType}, stmtType, nil
}

func (p *Parser) text(sp span.Span) string {
	return sp.Resolve(p.input)
}

func (p *Parser) peek() (annolex.Token, bool) {
	if p.cursor >= len(p.tokens) {
		return annolex.Token{}, false
	}

	return p.tokens[p.cursor], true
}

func (p *Parser) consume() span.Span {
	sp := p.tokens[p.cursor].Span
	p.cursor++

	return sp
}

// errorHere builds a diagnostic pointing at the current token, or at the
// end of the last token if the cursor has run off the end.
func (p *Parser) errorHere(message string) *diag.Diagnostic {
	if tok, ok := p.peek(); ok {
		return diag.NewParse(tok.Span, message)
	}

	if len(p.tokens) > 0 {
		end := p.tokens[len(p.tokens)-1].Span.End

		return diag.NewParse(span.Span{Start: end, End: end}, message)
	}

	return diag.NewParse(span.Span{}, message)
}

func (p *Parser) expect(t annolex.TokenType, message string) (span.Span, *diag.Diagnostic) {
	tok, ok := p.peek()
	if !ok || tok.Type != t {
		return span.Span{}, p.errorHere(message)
	}

	return p.consume(), nil
}

func (p *Parser) parseMarker() (ast.StatementType, *diag.Diagnostic) {
	tok, ok := p.peek()
	if !ok || tok.Type != annolex.Marker {
		return 0, p.errorHere("Expected '@query' or '@begin' here.")
	}

	text := p.text(tok.Span)
	p.consume()

	switch text {
	case "@query":
		return ast.Single, nil
	case "@begin":
		return ast.Multi, nil
	default:
		return 0, diag.NewParse(tok.Span, "Invalid annotation marker, only '@query' and '@begin' are understood.")
	}
}

// parseArgList parses the parenthesised argument list and reconciles the
// single-struct-argument rule (spec.md §4.4).
func (p *Parser) parseArgList() (ast.ArgType, *diag.Diagnostic) {
	open, d := p.expect(annolex.LParen, "Expected '(' here to start the argument list.")
	if d != nil {
		return ast.ArgType{}, d
	}

	type parsedArg struct {
		ident      span.Span
		simple     ast.SimpleType
		isStruct   bool
		structName span.Span
	}

	var args []parsedArg

	for {
		if tok, ok := p.peek(); ok && tok.Type == annolex.RParen {
			p.consume()
			break
		}

		if _, ok := p.peek(); !ok {
			return ast.ArgType{}, diag.NewParseWithNote(
				span.Span{Start: p.input2len(), End: p.input2len()},
				"Unexpected end of input, the argument list is not closed.",
				open, "Opening '(' here.",
			)
		}

		ident, d := p.expect(annolex.Ident, "Expected an identifier here, an argument name.")
		if d != nil {
			return ast.ArgType{}, d
		}

		if _, d := p.expect(annolex.Colon, "Expected ':' here before the start of the type."); d != nil {
			return ast.ArgType{}, d
		}

		isStruct, simple, structName, d := p.parseArgComplexType()
		if d != nil {
			return ast.ArgType{}, d
		}

		args = append(args, parsedArg{ident: ident, simple: simple, isStruct: isStruct, structName: structName})

		tok, ok := p.peek()
		if !ok {
			return ast.ArgType{}, diag.NewParseWithNote(
				span.Span{Start: p.input2len(), End: p.input2len()},
				"Unexpected end of input, the argument list is not closed.",
				open, "Opening '(' here.",
			)
		}

		switch tok.Type {
		case annolex.RParen:
			continue
		case annolex.Comma:
			p.consume()
		default:
			return ast.ArgType{}, diag.NewParse(tok.Span, "Unexpected token inside the argument list, expected ',' or ')' here.")
		}
	}

	if len(args) == 1 && args[0].isStruct {
		return ast.ArgType{
			Kind:     ast.ArgTypeStruct,
			VarName:  args[0].ident,
			TypeName: args[0].structName,
			Fields:   nil,
		}, nil
	}

	for _, a := range args {
		if a.isStruct {
			return ast.ArgType{}, diag.NewParse(a.structName, "Struct-typed arguments must be the sole argument.")
		}
	}

	list := make([]ast.TypedIdent, len(args))
	for i, a := range args {
		list[i] = ast.TypedIdent{Ident: a.ident, Type: a.simple}
	}

	return ast.ArgType{Kind: ast.ArgTypeArgs, Args: list}, nil
}

// input2len is a tiny helper giving an end-of-input span location when no
// token remains to anchor a diagnostic to.
func (p *Parser) input2len() int {
	return len(p.input)
}

// parseArgComplexType parses the type of one argument: a tuple here is
// always rejected, since tuples are only legal in result position.
func (p *Parser) parseArgComplexType() (isStruct bool, simple ast.SimpleType, structName span.Span, d *diag.Diagnostic) {
	tok, ok := p.peek()
	if !ok {
		return false, ast.SimpleType{}, span.Span{}, p.errorHere("Unexpected end of input, expected a type here.")
	}

	if tok.Type == annolex.LParen {
		return false, ast.SimpleType{}, span.Span{}, diag.NewParse(tok.Span, "Tuple types are only legal in result position.")
	}

	if tok.Type != annolex.Ident {
		return false, ast.SimpleType{}, span.Span{}, diag.NewParse(tok.Span, "Unexpected token, expected a type here.")
	}

	name := p.text(tok.Span)
	nameSpan := p.consume()

	if isUpperFirst(name) {
		return true, ast.SimpleType{}, nameSpan, nil
	}

	prim, d := p.resolvePrimitive(name, nameSpan)
	if d != nil {
		return false, ast.SimpleType{}, span.Span{}, d
	}

	optional := p.consumeQuestion()

	return false, ast.SimpleType{Primitive: prim, Optional: optional}, span.Span{}, nil
}

// parseResultComplexType parses the type following a result arrow: tuples
// are legal here.
func (p *Parser) parseResultComplexType() (ast.ComplexType, *diag.Diagnostic) {
	tok, ok := p.peek()
	if !ok {
		return ast.ComplexType{}, p.errorHere("Unexpected end of input, expected a type here.")
	}

	if tok.Type == annolex.LParen {
		elems, d := p.parseTuple()
		if d != nil {
			return ast.ComplexType{}, d
		}

		return ast.ComplexType{Kind: ast.KindTuple, Tuple: elems}, nil
	}

	if tok.Type != annolex.Ident {
		return ast.ComplexType{}, diag.NewParse(tok.Span, "Unexpected token, expected a type here.")
	}

	name := p.text(tok.Span)
	nameSpan := p.consume()

	if isUpperFirst(name) {
		return ast.ComplexType{Kind: ast.KindStruct, Name: nameSpan, Fields: nil}, nil
	}

	prim, d := p.resolvePrimitive(name, nameSpan)
	if d != nil {
		return ast.ComplexType{}, d
	}

	optional := p.consumeQuestion()

	return ast.ComplexType{Kind: ast.KindSimple, Simple: ast.SimpleType{Primitive: prim, Optional: optional}}, nil
}

// parseTuple parses "(" (simple_type ("," simple_type)* ","?)? ")", with
// the cursor on the opening paren.
func (p *Parser) parseTuple() ([]ast.SimpleType, *diag.Diagnostic) {
	open, d := p.expect(annolex.LParen, "Expected '(' here to start a tuple.")
	if d != nil {
		return nil, d
	}

	var elems []ast.SimpleType

	for {
		if tok, ok := p.peek(); ok && tok.Type == annolex.RParen {
			p.consume()
			return elems, nil
		}

		tok, ok := p.peek()
		if !ok {
			return nil, diag.NewParseWithNote(
				span.Span{Start: p.input2len(), End: p.input2len()},
				"Unexpected end of input, a tuple is not closed.",
				open, "Opening '(' here.",
			)
		}

		if tok.Type != annolex.Ident {
			return nil, diag.NewParse(tok.Span, "Unexpected token inside a tuple, expected a type here.")
		}

		name := p.text(tok.Span)
		nameSpan := p.consume()

		if isUpperFirst(name) {
			return nil, diag.NewParse(nameSpan, "Struct types are not allowed inside a tuple.")
		}

		prim, d := p.resolvePrimitive(name, nameSpan)
		if d != nil {
			return nil, d
		}

		optional := p.consumeQuestion()
		elems = append(elems, ast.SimpleType{Primitive: prim, Optional: optional})

		tok, ok = p.peek()
		if !ok {
			return nil, diag.NewParseWithNote(
				span.Span{Start: p.input2len(), End: p.input2len()},
				"Unexpected end of input, a tuple is not closed.",
				open, "Opening '(' here.",
			)
		}

		switch tok.Type {
		case annolex.RParen:
			continue
		case annolex.Comma:
			p.consume()
		default:
			return nil, diag.NewParse(tok.Span, "Unexpected token inside a tuple, expected ',' or ')' here.")
		}
	}
}

func (p *Parser) consumeQuestion() bool {
	if tok, ok := p.peek(); ok && tok.Type == annolex.Question {
		p.consume()
		return true
	}

	return false
}

func (p *Parser) resolvePrimitive(name string, nameSpan span.Span) (ast.PrimitiveType, *diag.Diagnostic) {
	if prim, ok := ast.LookupPrimitive(name); ok {
		return prim, nil
	}

	if suggestion, ok := ast.Suggestion(name); ok {
		if suggestion == "" {
			return 0, diag.NewParse(nameSpan, "Unknown type '"+name+"'; did you mean to write 'T?' for an optional type?")
		}

		return 0, diag.NewParse(nameSpan, "Unknown type '"+name+"'; did you mean '"+suggestion+"'?")
	}

	return 0, diag.NewParse(nameSpan, "Unknown type '"+name+"'.")
}

// parseResult parses the optional "->" / "->?" / "->1" / "->*" result
// clause. The absence of any following token means ast.ResultUnit.
func (p *Parser) parseResult() (ast.ResultType, *diag.Diagnostic) {
	tok, ok := p.peek()
	if !ok {
		return ast.ResultType{Kind: ast.ResultUnit}, nil
	}

	switch tok.Type {
	case annolex.Arrow:
		p.consume()
		return ast.ResultType{}, diag.NewParse(tok.Span,
			"Bare '->' is not a valid result arrow; use '->?', '->1', or '->*'.")
	case annolex.ArrowOpt:
		p.consume()

		ct, d := p.parseResultComplexType()
		if d != nil {
			return ast.ResultType{}, d
		}

		return ast.ResultType{Kind: ast.ResultOption, Type: ct}, nil
	case annolex.ArrowOne:
		p.consume()

		ct, d := p.parseResultComplexType()
		if d != nil {
			return ast.ResultType{}, d
		}

		return ast.ResultType{Kind: ast.ResultSingle, Type: ct}, nil
	case annolex.ArrowStar:
		p.consume()

		ct, d := p.parseResultComplexType()
		if d != nil {
			return ast.ResultType{}, d
		}

		return ast.ResultType{Kind: ast.ResultIterator, Type: ct}, nil
	default:
		return ast.ResultType{}, diag.NewParse(tok.Span,
			"Unexpected token, expected either the end of the annotation, or '->' followed by a result cardinality.")
	}
}

func isUpperFirst(s string) bool {
	if len(s) == 0 {
		return false
	}

	return s[0] >= 'A' && s[0] <= 'Z'
}
