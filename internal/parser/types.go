package parser

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// parseType parses one type annotation: a primitive keyword or named
// type, Array<T>, a "T[]" suffix form, or a function type
// "(p: T, ...) => T". The identifier "any" is a hard parse error in
// any annotation position.
func (p *Parser) parseType() ast.TypeExpr {
	var typ ast.TypeExpr

	switch cur := p.curTok(); {
	case cur.Type == lexer.IDENT:
		if cur.Value == "any" {
			p.reportCode(diag.CodeAnyTypeRejected,
				"'any' is not a recognized type annotation", cur.Span)
			return nil
		}
		typ = ast.NewNamedType(ast.NewIdent(cur.Value, cur.Span), cur.Span)

	case lexer.IsTypeKeyword(cur.Type):
		typ = ast.NewNamedType(ast.NewIdent(cur.Raw, cur.Span), cur.Span)

	case cur.Type == lexer.TY_ARRAY:
		start := cur.Span

		if !p.expect(lexer.LT) {
			return nil
		}

		p.nextToken() // move to element type start

		elem := p.parseType()
		if elem == nil {
			return nil
		}

		if !p.expect(lexer.GT) {
			return nil
		}

		span := mergeSpan(start, p.curTok().Span)
		typ = ast.NewArrayType(elem, p.spanWithFilename(span))

	case cur.Type == lexer.LPAREN:
		typ = p.parseFuncType()
		if typ == nil {
			return nil
		}

	default:
		p.reportError("expected type annotation", cur.Span)
		return nil
	}

	// "T[]" suffixes
	for p.peekTok().Type == lexer.LBRACKET && p.at(p.pos+2).Type == lexer.RBRACKET {
		start := typ.Span()
		p.nextToken() // move to '['
		p.nextToken() // move to ']'
		span := mergeSpan(start, p.curTok().Span)
		typ = ast.NewArrayType(typ, p.spanWithFilename(span))
	}

	return typ
}

// parseFuncType parses "( param, ... ) => Type" in annotation
// position. Parameters are "ident [: type]", as in arrow functions.
func (p *Parser) parseFuncType() ast.TypeExpr {
	start := p.curTok().Span

	var params []*ast.Param

	if p.peekTok().Type == lexer.RPAREN {
		p.nextToken() // move to ')'
	} else {
		p.nextToken() // move to first parameter name

		for {
			if p.curTok().Type != lexer.IDENT {
				p.reportError("expected parameter name in function type", p.curTok().Span)
				return nil
			}

			nameTok := p.curTok()
			name := ast.NewIdent(nameTok.Value, nameTok.Span)
			span := nameTok.Span

			var typ ast.TypeExpr
			if p.peekTok().Type == lexer.COLON {
				p.nextToken() // move to ':'
				p.nextToken() // move to type start
				typ = p.parseType()
				if typ == nil {
					return nil
				}
				span = mergeSpan(span, typ.Span())
			}

			params = append(params, ast.NewParam(name, typ, p.spanWithFilename(span)))

			if p.peekTok().Type != lexer.COMMA {
				break
			}
			p.nextToken() // move to ','
			p.nextToken() // move to next parameter
		}

		if !p.expect(lexer.RPAREN) {
			return nil
		}
	}

	if !p.expect(lexer.FATARROW) {
		return nil
	}

	p.nextToken() // move to return type start

	ret := p.parseType()
	if ret == nil {
		return nil
	}

	span := mergeSpan(start, ret.Span())

	return ast.NewFuncType(params, ret, p.spanWithFilename(span))
}
