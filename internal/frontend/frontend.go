// Package frontend runs the full analysis pipeline over a source
// string: scan, parse, validate, resolve, infer. Diagnostics come back
// concatenated in phase order.
package frontend

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
	"github.com/tinyscript-lang/tinyscript/internal/parser"
	"github.com/tinyscript-lang/tinyscript/internal/resolve"
	"github.com/tinyscript-lang/tinyscript/internal/types"
	"github.com/tinyscript-lang/tinyscript/internal/validate"
)

// Option configures a pipeline run.
type Option func(*config)

type config struct {
	filename string
}

// WithFilename attaches a filename to every span the pipeline
// produces, for diagnostics and editor integration.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// Check analyzes src and returns the parsed program together with all
// diagnostics. Every phase is best-effort: parse errors drop only the
// broken statement, and the semantic phases still run over what
// survived. Only a scan failure halts the pipeline, because the token
// stream is truncated at the offending rune. The program is nil in
// that case.
func Check(src string, opts ...Option) (*ast.Program, []diag.Diagnostic) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	toks, diags := lexer.ScanFile(cfg.filename, src)
	if diag.HasErrors(diags) {
		return nil, diags
	}

	prog, parseDiags := parser.Parse(toks, parser.WithFilename(cfg.filename))
	diags = append(diags, parseDiags...)

	diags = append(diags, validate.Check(prog)...)

	_, resolveDiags := resolve.Resolve(prog)
	diags = append(diags, resolveDiags...)

	diags = append(diags, types.Infer(prog)...)

	return prog, diags
}
