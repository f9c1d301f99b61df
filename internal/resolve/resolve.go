// Package resolve computes the lexical scope tree, links every
// identifier reference to its declaration, and reports naming errors.
package resolve

import (
	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// Resolver walks the AST accumulating naming diagnostics.
type Resolver struct {
	Global *Scope
	Errors []diag.Diagnostic
}

// NewResolver creates a resolver with a fresh root scope.
func NewResolver() *Resolver {
	return &Resolver{
		Global: NewScope(nil),
	}
}

// Resolve links the program's identifiers and returns the root scope
// together with any naming diagnostics. The AST is annotated in place:
// each resolved *ast.Ident gets its Decl link.
func Resolve(prog *ast.Program) (*Scope, []diag.Diagnostic) {
	r := NewResolver()
	r.ResolveProgram(prog)
	return r.Global, r.Errors
}

// ResolveProgram resolves every top-level statement in order.
func (r *Resolver) ResolveProgram(prog *ast.Program) {
	for _, stmt := range prog.Stmts {
		r.resolveStmt(r.Global, stmt)
	}
}

func (r *Resolver) resolveStmt(scope *Scope, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		// The initializer is resolved before the declared name becomes
		// visible, so "const x = x;" is an undeclared reference.
		if s.Value != nil {
			r.resolveExpr(scope, s.Value)
		}
		r.declare(scope, s.Name, s)

	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(scope, s.Value)
		}

	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			r.resolveStmt(scope, inner)
		}
	}
}

func (r *Resolver) resolveExpr(scope *Scope, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Ident:
		decl := scope.Lookup(e.Name)
		if decl == nil {
			r.reportError(diag.CodeUndeclaredReference,
				"undeclared reference '"+e.Name+"'", e.Span())
			return
		}
		e.Decl = decl.Node
		decl.References = append(decl.References, e)

	case *ast.ArrayLit:
		for _, elem := range e.Elems {
			r.resolveExpr(scope, elem)
		}

	case *ast.IndexExpr:
		r.resolveExpr(scope, e.Target)
		r.resolveExpr(scope, e.Index)

	case *ast.InfixExpr:
		r.resolveExpr(scope, e.Left)
		r.resolveExpr(scope, e.Right)

	case *ast.CondExpr:
		r.resolveExpr(scope, e.Cond)
		r.resolveExpr(scope, e.Then)
		r.resolveExpr(scope, e.Else)

	case *ast.CallExpr:
		r.resolveExpr(scope, e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(scope, arg)
		}

	case *ast.ArrowFn:
		// Arrow functions open a scope; parameters are declared in it
		// before the body is visited. The body's block shares the
		// function scope.
		fnScope := NewScope(scope)

		for _, param := range e.Params {
			if param.Name == nil {
				continue
			}
			if fnScope.LookupLocal(param.Name.Name) != nil {
				r.reportError(diag.CodeDuplicateParameter,
					"duplicate parameter '"+param.Name.Name+"'", param.Name.Span())
				continue
			}
			fnScope.Insert(param.Name.Name, &Declaration{
				Name: param.Name.Name,
				Node: param,
			})
		}

		if e.Body != nil {
			for _, stmt := range e.Body.Stmts {
				r.resolveStmt(fnScope, stmt)
			}
		}
	}
}

// declare inserts name into scope, reporting a duplicate when the same
// scope already holds it. Shadowing an outer scope is fine.
func (r *Resolver) declare(scope *Scope, name *ast.Ident, node ast.Node) {
	if name == nil {
		return
	}
	if scope.LookupLocal(name.Name) != nil {
		r.reportError(diag.CodeDuplicateDeclaration,
			"'"+name.Name+"' is already declared in this scope", name.Span())
		return
	}
	scope.Insert(name.Name, &Declaration{
		Name: name.Name,
		Node: node,
	})
}

func (r *Resolver) reportError(code diag.Code, msg string, span lexer.Span) {
	r.Errors = append(r.Errors, diag.Diagnostic{
		Stage:    diag.StageResolve,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span: diag.Span{
			Filename: span.Filename,
			Line:     span.Line,
			Column:   span.Column,
			Start:    span.Start,
			End:      span.End,
		},
	})
}
