package parser

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// isArrowAhead decides whether a '(' at primary position begins an
// arrow-function parameter list rather than a parenthesized
// expression. It speculatively scans: skip '(', accept an optional
// identifier parameter list with optional ': Type' per parameter, then
// require ')', optionally accept ': ReturnType', then check for '=>'.
// The cursor is always rewound; the scan emits no diagnostics.
func (p *Parser) isArrowAhead() bool {
	m := p.mark()
	defer p.resetTo(m)

	p.nextToken() // skip '('

	if p.curTok().Type == lexer.IDENT {
		for {
			// curTok is a parameter name
			if p.peekTok().Type == lexer.COLON {
				p.nextToken() // move to ':'
				p.nextToken() // move to type start
				if !p.scanType() {
					return false
				}
			}

			if p.peekTok().Type != lexer.COMMA {
				p.nextToken() // move past the parameter
				break
			}
			p.nextToken() // move to ','
			p.nextToken() // move to next parameter
			if p.curTok().Type != lexer.IDENT {
				return false
			}
		}
	}

	if p.curTok().Type != lexer.RPAREN {
		return false
	}

	if p.peekTok().Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to return type start
		if !p.scanType() {
			return false
		}
	}

	return p.peekTok().Type == lexer.FATARROW
}

// scanType consumes one type annotation structurally, without
// reporting anything. Unlike parseType it accepts any identifier
// (including "any"): the speculative scan only decides shape; the real
// parse owns rejection.
func (p *Parser) scanType() bool {
	switch {
	case p.curTok().Type == lexer.IDENT || lexer.IsTypeKeyword(p.curTok().Type):
		// named type

	case p.curTok().Type == lexer.TY_ARRAY:
		if p.peekTok().Type != lexer.LT {
			return false
		}
		p.nextToken() // move to '<'
		p.nextToken() // move to element type start
		if !p.scanType() {
			return false
		}
		if p.peekTok().Type != lexer.GT {
			return false
		}
		p.nextToken() // move to '>'

	case p.curTok().Type == lexer.LPAREN:
		p.nextToken() // skip '('
		if p.curTok().Type == lexer.IDENT {
			for {
				if p.peekTok().Type == lexer.COLON {
					p.nextToken()
					p.nextToken()
					if !p.scanType() {
						return false
					}
				}
				if p.peekTok().Type != lexer.COMMA {
					p.nextToken()
					break
				}
				p.nextToken()
				p.nextToken()
				if p.curTok().Type != lexer.IDENT {
					return false
				}
			}
		}
		if p.curTok().Type != lexer.RPAREN {
			return false
		}
		if p.peekTok().Type != lexer.FATARROW {
			return false
		}
		p.nextToken() // move to '=>'
		p.nextToken() // move to return type start
		if !p.scanType() {
			return false
		}

	default:
		return false
	}

	// "T[]" suffixes
	for p.peekTok().Type == lexer.LBRACKET && p.at(p.pos+2).Type == lexer.RBRACKET {
		p.nextToken()
		p.nextToken()
	}

	return true
}

// parseArrowFn parses "( params ) [: Type] => { body }". The caller
// has already confirmed the arrow with isArrowAhead; curTok is '('.
func (p *Parser) parseArrowFn() ast.Expr {
	start := p.curTok().Span

	var params []*ast.Param

	if p.peekTok().Type == lexer.RPAREN {
		p.nextToken() // move to ')'
	} else {
		p.nextToken() // move to first parameter name

		for {
			if p.curTok().Type != lexer.IDENT {
				p.reportError("expected parameter name", p.curTok().Span)
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

	var returnType ast.TypeExpr
	if p.peekTok().Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to return type start
		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	if !p.expect(lexer.FATARROW) {
		return nil
	}

	p.nextToken() // move to body start

	if p.curTok().Type != lexer.LBRACE {
		// Expression bodies are rejected; parse the expression anyway
		// and recover with a synthetic { return expr; } so downstream
		// phases stay meaningful.
		p.reportCode(diag.CodeExpressionBodyRejected,
			"arrow function body must be a block with an explicit return",
			p.curTok().Span)

		value := p.parseExpr()
		if value == nil {
			return nil
		}

		ret := ast.NewReturnStmt(value, value.Span())
		body := ast.NewBlockStmt([]ast.Stmt{ret}, value.Span())
		span := mergeSpan(start, value.Span())

		return ast.NewArrowFn(params, returnType, body, p.spanWithFilename(span))
	}

	body := p.parseBlockStmt()
	if body == nil {
		return nil
	}

	span := mergeSpan(start, body.Span())

	return ast.NewArrowFn(params, returnType, body, p.spanWithFilename(span))
}
