package parser

import (
	"math"
	"strconv"

	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// Cursor convention: every parse function is entered with curTok on the
// first token of its construct and returns with curTok on the last.

func (p *Parser) parseExpr() ast.Expr {
	return p.parseTernary()
}

// parseTernary parses "binary [ '?' expression ':' expression ]". The
// conditional is right-associative because both branches recurse into
// the full expression grammar.
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseBinary()
	if cond == nil {
		return nil
	}

	if p.peekTok().Type != lexer.QUESTION {
		return cond
	}

	p.nextToken() // move to '?'
	p.nextToken() // move to consequent start

	then := p.parseExpr()
	if then == nil {
		return nil
	}

	if !p.expect(lexer.COLON) {
		return nil
	}

	p.nextToken()

	els := p.parseExpr()
	if els == nil {
		return nil
	}

	span := mergeSpan(cond.Span(), els.Span())
	span = p.spanWithFilename(span)

	return ast.NewCondExpr(cond, then, els, span)
}

// parseBinary parses "primary { '+' primary }", left-associative.
func (p *Parser) parseBinary() ast.Expr {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}

	for p.peekTok().Type == lexer.PLUS {
		p.nextToken() // move to '+'
		op := p.curTok().Type
		p.nextToken() // move to right operand start

		right := p.parsePrimary()
		if right == nil {
			return nil
		}

		span := mergeSpan(left.Span(), right.Span())
		span = p.spanWithFilename(span)

		left = ast.NewInfixExpr(op, left, right, span)
	}

	return left
}

// parsePrimary parses an atom and its postfix chain: calls f(args),
// indexing a[i], and their combinations, left to right.
func (p *Parser) parsePrimary() ast.Expr {
	var expr ast.Expr

	switch p.curTok().Type {
	case lexer.NUMBER:
		expr = p.parseNumberLiteral()
	case lexer.STRING:
		expr = ast.NewStringLit(p.curTok().Value, p.curTok().Span)
	case lexer.TRUE, lexer.FALSE:
		expr = ast.NewBoolLit(p.curTok().Type == lexer.TRUE, p.curTok().Span)
	case lexer.IDENT:
		expr = ast.NewIdent(p.curTok().Value, p.curTok().Span)
	case lexer.LBRACKET:
		expr = p.parseArrayLiteral()
	case lexer.LPAREN:
		if p.isArrowAhead() {
			expr = p.parseArrowFn()
		} else {
			expr = p.parseGroupedExpr()
		}
	default:
		p.reportError("unexpected token in expression '"+string(p.curTok().Type)+"'", p.curTok().Span)
		return nil
	}

	if expr == nil {
		return nil
	}

	for {
		switch p.peekTok().Type {
		case lexer.LPAREN:
			expr = p.parseCallExpr(expr)
		case lexer.LBRACKET:
			expr = p.parseIndexExpr(expr)
		default:
			return expr
		}
		if expr == nil {
			return nil
		}
	}
}

// parseNumberLiteral decides integer vs fractional from the parsed
// value, so "1.0" still counts as integer-valued.
func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.curTok()

	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		p.reportError("malformed number literal '"+tok.Raw+"'", tok.Span)
		return nil
	}

	isInt := value == math.Trunc(value)

	return ast.NewNumberLit(tok.Value, value, isInt, tok.Span)
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.curTok().Span

	var elems []ast.Expr

	if p.peekTok().Type == lexer.RBRACKET {
		p.nextToken() // move to ']'
		span := mergeSpan(start, p.curTok().Span)
		return ast.NewArrayLit(nil, p.spanWithFilename(span))
	}

	p.nextToken() // move to first element

	for {
		elem := p.parseExpr()
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)

		if p.peekTok().Type != lexer.COMMA {
			break
		}
		p.nextToken() // move to ','
		p.nextToken() // move to next element start
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	span := mergeSpan(start, p.curTok().Span)

	return ast.NewArrayLit(elems, p.spanWithFilename(span))
}

// spanSetter is satisfied by nodes that expose SetSpan. parseGroupedExpr
// uses it to widen spans without wrapping the underlying node in a
// synthetic AST type.
type spanSetter interface {
	SetSpan(lexer.Span)
}

// parseGroupedExpr parses "(expr)" without introducing an explicit
// paren node. Instead, it rewrites the span on the parsed
// sub-expression, keeping the AST lean.
func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.curTok().Span

	p.nextToken()

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	span := mergeSpan(start, expr.Span())
	span = mergeSpan(span, p.curTok().Span)
	span = p.spanWithFilename(span)

	if setter, ok := expr.(spanSetter); ok {
		setter.SetSpan(span)
	}

	return expr
}

// parseCallExpr parses "callee(args)". curTok sits on the callee's
// last token; peek is '('.
func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	p.nextToken() // move to '('

	var args []ast.Expr

	if p.peekTok().Type == lexer.RPAREN {
		p.nextToken() // move to ')'
	} else {
		p.nextToken() // move to first argument start

		for {
			arg := p.parseExpr()
			if arg == nil {
				return nil
			}
			args = append(args, arg)

			if p.peekTok().Type != lexer.COMMA {
				break
			}
			p.nextToken() // move to ','
			p.nextToken() // move to next argument start
		}

		if !p.expect(lexer.RPAREN) {
			return nil
		}
	}

	span := mergeSpan(callee.Span(), p.curTok().Span)
	span = p.spanWithFilename(span)

	return ast.NewCallExpr(callee, args, span)
}

// parseIndexExpr parses "target[index]". curTok sits on the target's
// last token; peek is '['.
func (p *Parser) parseIndexExpr(target ast.Expr) ast.Expr {
	p.nextToken() // move to '['
	p.nextToken() // move to index start

	index := p.parseExpr()
	if index == nil {
		return nil
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	span := mergeSpan(target.Span(), p.curTok().Span)
	span = p.spanWithFilename(span)

	return ast.NewIndexExpr(target, index, span)
}
