package parser

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to
// the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Code     diag.Code
	Message  string
	Span     lexer.Span
	Severity diag.Severity
}

// ToDiagnostic converts a parse error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     e.Code,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Parser implements a recursive descent parser over a fully scanned
// token slice. Invariants:
//   - Lookahead: curTok()/peekTok() read the slice at pos and pos+1;
//     pos only moves forward through nextToken, except for the arrow
//     disambiguation scan, which saves pos with mark() and rewinds
//     with resetTo(). The speculative scan never reports diagnostics.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics. Callers consult Errors() after ParseProgram.
//   - Spans: AST node spans are composed via mergeSpan so that
//     tail.End is never less than head.End.
type Parser struct {
	toks []lexer.Token
	pos  int

	errors []ParseError

	filename string
}

// New returns a parser over the provided token stream. The stream is
// expected to end with an EOF sentinel, as produced by lexer.Scan.
func New(toks []lexer.Token, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Parser{
		toks:     toks,
		filename: cfg.filename,
	}
}

// Parse is the package-level convenience: parse the token stream and
// return the program together with diagnostics.
func Parse(toks []lexer.Token, opts ...Option) (*ast.Program, []diag.Diagnostic) {
	p := New(toks, opts...)
	prog := p.ParseProgram()

	var diags []diag.Diagnostic
	for _, err := range p.Errors() {
		diags = append(diags, err.ToDiagnostic())
	}
	return prog, diags
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseProgram parses a full compilation unit and returns its AST. A
// Program node is always returned, possibly with statements skipped
// around syntax errors.
func (p *Parser) ParseProgram() *ast.Program {
	prog := ast.NewProgram(p.curTok().Span)

	for p.curTok().Type != lexer.EOF {
		prevPos := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
			prog.SetSpan(mergeSpan(prog.Span(), stmt.Span()))
			continue
		}

		if p.curTok().Type == lexer.EOF {
			break
		}

		p.recoverStatement(prevPos)
	}

	prog.SetSpan(mergeSpan(prog.Span(), p.curTok().Span))

	return prog
}

// curTok returns the token under examination. Past the end of the
// stream it keeps returning the EOF sentinel.
func (p *Parser) curTok() lexer.Token {
	return p.at(p.pos)
}

// peekTok returns the next token without advancing.
func (p *Parser) peekTok() lexer.Token {
	return p.at(p.pos + 1)
}

func (p *Parser) at(i int) lexer.Token {
	if i < len(p.toks) {
		return p.toks[i]
	}
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1]
	}
	return lexer.Token{Type: lexer.EOF}
}

// nextToken advances the parser's token window.
func (p *Parser) nextToken() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

// mark saves the cursor for a later resetTo. The lexer has already
// produced the whole stream, so an integer index is the entire
// checkpoint state.
func (p *Parser) mark() int {
	return p.pos
}

// resetTo rewinds the cursor to a previously saved mark.
func (p *Parser) resetTo(mark int) {
	p.pos = mark
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking
// expect, because expect never rewinds; on success it promotes the
// peek token into current position.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok().Type == tt {
		p.nextToken()
		return true
	}

	lexeme := string(tt)
	p.reportError("expected '"+lexeme+"'", p.peekTok().Span)
	return false
}

// reportError records a recoverable diagnostic without aborting
// parsing. Call sites supply the best-effort span available at the
// failure site.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.reportCode(diag.CodeUnexpectedToken, msg, span)
}

func (p *Parser) reportCode(code diag.Code, msg string, span lexer.Span) {
	span = p.spanWithFilename(span)
	p.errors = append(p.errors, ParseError{
		Code:     code,
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityError,
	})
}

func (p *Parser) spanWithFilename(span lexer.Span) lexer.Span {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	return span
}

// recoverStatement skips tokens until just past the next ';', or up to
// a '}' or EOF, so the following statement parses from a clean spot.
func (p *Parser) recoverStatement(prevPos int) {
	if p.curTok().Type == lexer.EOF {
		return
	}

	if p.pos == prevPos {
		p.nextToken()
	}

	for p.curTok().Type != lexer.EOF {
		switch p.curTok().Type {
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.RBRACE:
			return
		}

		p.nextToken()
	}
}

// mergeSpan assumes start.End <= end.End and returns a span covering
// both. Spans are half-open; callers pass the earliest start span
// first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
