// Package validate enforces structural rules that depend on neither
// names nor types.
package validate

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
)

// Check walks the program and reports every structural violation. The
// single rule: inside an arrow-function body, a return statement must
// be the last statement of its block.
func Check(prog *ast.Program) []diag.Diagnostic {
	var diags []diag.Diagnostic

	ast.Walk(prog, func(n ast.Node) bool {
		fn, ok := n.(*ast.ArrowFn)
		if !ok || fn.Body == nil {
			return true
		}

		for i, stmt := range fn.Body.Stmts {
			ret, ok := stmt.(*ast.ReturnStmt)
			if !ok || i == len(fn.Body.Stmts)-1 {
				continue
			}
			span := ret.Span()
			diags = append(diags, diag.Diagnostic{
				Stage:    diag.StageValidate,
				Severity: diag.SeverityError,
				Code:     diag.CodeReturnNotLast,
				Message:  "return statement must be the last statement in its block",
				Span: diag.Span{
					Filename: span.Filename,
					Line:     span.Line,
					Column:   span.Column,
					Start:    span.Start,
					End:      span.End,
				},
			})
		}

		return true
	})

	return diags
}
