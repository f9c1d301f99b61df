package parser

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// parseStmt parses one statement. The statement set is the same at top
// level and inside arrow-function blocks: const declarations and
// return statements. Bare expression statements are not accepted.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok().Type {
	case lexer.CONST:
		return p.parseConstDecl()
	case lexer.RETURN:
		return p.parseReturnStmt()
	default:
		p.reportError("expected 'const' or 'return', got '"+string(p.curTok().Type)+"'", p.curTok().Span)
		return nil
	}
}

func (p *Parser) parseConstDecl() ast.Stmt {
	start := p.curTok().Span

	if !p.expect(lexer.IDENT) {
		return nil
	}

	nameTok := p.curTok()
	name := ast.NewIdent(nameTok.Value, nameTok.Span)

	var typ ast.TypeExpr

	if p.peekTok().Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to type start

		typ = p.parseType()
		if typ == nil {
			return nil
		}
	}

	if !p.expect(lexer.ASSIGN) {
		return nil
	}

	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	span := mergeSpan(start, value.Span())

	if p.peekTok().Type == lexer.SEMICOLON {
		p.nextToken()
		span = mergeSpan(span, p.curTok().Span)
	}

	p.nextToken()

	return ast.NewConstDecl(name, typ, value, span)
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok().Span
	span := start

	var value ast.Expr

	if isExprStart(p.peekTok().Type) {
		p.nextToken()

		value = p.parseExpr()
		if value == nil {
			return nil
		}
		span = mergeSpan(span, value.Span())
	}

	if p.peekTok().Type == lexer.SEMICOLON {
		p.nextToken()
		span = mergeSpan(span, p.curTok().Span)
	}

	p.nextToken()

	return ast.NewReturnStmt(value, span)
}

// parseBlockStmt parses "{ statement* }". The caller sits on '{'.
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.curTok().Span

	if p.curTok().Type != lexer.LBRACE {
		p.reportError("expected '{' to start block", p.curTok().Span)
		return nil
	}

	block := ast.NewBlockStmt(nil, start)

	p.nextToken()

	for p.curTok().Type != lexer.RBRACE && p.curTok().Type != lexer.EOF {
		prevPos := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
			continue
		}

		if p.curTok().Type == lexer.RBRACE || p.curTok().Type == lexer.EOF {
			break
		}

		p.recoverStatement(prevPos)
	}

	if p.curTok().Type != lexer.RBRACE {
		p.reportError("expected '}' to close block", p.curTok().Span)
		return block
	}

	block.SetSpan(mergeSpan(start, p.curTok().Span))

	return block
}

// isExprStart reports whether tt can begin an expression.
func isExprStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.LPAREN, lexer.LBRACKET:
		return true
	default:
		return false
	}
}
