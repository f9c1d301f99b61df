// Package types implements Hindley-Milner type inference for the
// tinyscript AST: union-find unification with occurs check, and
// let-polymorphism through fresh instantiation guarded by the
// non-generic set.
package types

import (
	"strconv"

	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// TypeScope maps names to type terms, nesting with parent pointers.
// It parallels the resolver's scope tree: one scope per arrow
// function, blocks share the function scope.
type TypeScope struct {
	Parent   *TypeScope
	Bindings map[string]Type
}

// NewTypeScope creates a new scope with an optional parent.
func NewTypeScope(parent *TypeScope) *TypeScope {
	return &TypeScope{
		Parent:   parent,
		Bindings: make(map[string]Type),
	}
}

// Insert binds a name in the current scope.
func (s *TypeScope) Insert(name string, t Type) {
	s.Bindings[name] = t
}

// Lookup finds a binding in the current scope or any parent scope.
func (s *TypeScope) Lookup(name string) (Type, bool) {
	if t, ok := s.Bindings[name]; ok {
		return t, true
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil, false
}

// Inferencer assigns every expression a principal type term and
// annotates each const declaration with its inferred type.
type Inferencer struct {
	Errors []diag.Diagnostic

	env    *TypeScope
	nongen []Type // parameter types of enclosing functions
	nextID int
}

// NewInferencer creates an inferencer with a fresh root scope. The
// variable id counter is per-inferencer state; terms produced by one
// run must not be shared with another running concurrently.
func NewInferencer() *Inferencer {
	return &Inferencer{
		env: NewTypeScope(nil),
	}
}

// Infer type-checks the program and returns the diagnostics.
func Infer(prog *ast.Program) []diag.Diagnostic {
	inf := NewInferencer()
	inf.InferProgram(prog)
	return inf.Errors
}

// InferProgram infers each top-level statement in order.
func (inf *Inferencer) InferProgram(prog *ast.Program) {
	for _, stmt := range prog.Stmts {
		inf.inferStmt(stmt)
	}
}

func (inf *Inferencer) freshVar() *Var {
	v := &Var{ID: inf.nextID, Name: varName(inf.nextID)}
	inf.nextID++
	return v
}

func (inf *Inferencer) reportError(code diag.Code, msg string, span lexer.Span) {
	inf.Errors = append(inf.Errors, diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
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

// inferStmt infers a statement and returns its type: the bound type
// for a declaration, the argument type (or Void) for a return.
func (inf *Inferencer) inferStmt(stmt ast.Stmt) Type {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		return inf.inferConstDecl(s)

	case *ast.ReturnStmt:
		if s.Value == nil {
			return TypeVoid
		}
		return inf.inferExpr(s.Value)

	case *ast.BlockStmt:
		var last Type = TypeVoid
		for _, inner := range s.Stmts {
			last = inf.inferStmt(inner)
		}
		return last

	default:
		return TypeVoid
	}
}

// inferConstDecl infers the initializer and, when an annotation is
// present, unifies the two.
//
// Only arrow function values are generalized. Any other binding keeps
// a monomorphic type: its term joins the non-generic set, so later
// uses share its variables instead of freshening them. An empty array
// bound this way has one element variable that every use constrains.
func (inf *Inferencer) inferConstDecl(s *ast.ConstDecl) Type {
	t := inf.inferExpr(s.Value)

	if s.Type != nil {
		annot := inf.typeFromAnnotation(s.Type)
		inf.unify(t, annot, s.Value.Span())
		t = annot
	}

	if _, isFn := s.Value.(*ast.ArrowFn); !isFn {
		inf.nongen = append(inf.nongen, t)
	}

	if s.Name != nil {
		inf.env.Insert(s.Name.Name, t)
	}
	s.Inferred = t

	return t
}

func (inf *Inferencer) inferExpr(expr ast.Expr) Type {
	switch e := expr.(type) {
	case *ast.NumberLit:
		if e.IsInt {
			return TypeNumber
		}
		return TypeFloat

	case *ast.StringLit:
		return TypeString

	case *ast.BoolLit:
		return TypeBool

	case *ast.Ident:
		if t, ok := inf.env.Lookup(e.Name); ok {
			return inf.freshInstance(t)
		}
		// The resolver already flagged this reference; a fresh
		// variable keeps the surrounding inference meaningful.
		return inf.freshVar()

	case *ast.ArrayLit:
		return inf.inferArrayLit(e)

	case *ast.IndexExpr:
		elem := inf.freshVar()
		inf.unify(inf.inferExpr(e.Index), TypeNumber, e.Index.Span())
		inf.unify(inf.inferExpr(e.Target), &Array{Elem: elem}, e.Target.Span())
		return elem

	case *ast.InfixExpr:
		return inf.inferInfixExpr(e)

	case *ast.CondExpr:
		inf.unify(inf.inferExpr(e.Cond), TypeBool, e.Cond.Span())
		result := inf.freshVar()
		inf.unify(inf.inferExpr(e.Then), result, e.Then.Span())
		inf.unify(inf.inferExpr(e.Else), result, e.Else.Span())
		return result

	case *ast.ArrowFn:
		return inf.inferArrowFn(e)

	case *ast.CallExpr:
		return inf.inferCallExpr(e)

	default:
		return inf.freshVar()
	}
}

func (inf *Inferencer) inferArrayLit(e *ast.ArrayLit) Type {
	if len(e.Elems) == 0 {
		return &Array{Elem: inf.freshVar()}
	}

	elem := inf.inferExpr(e.Elems[0])
	for _, rest := range e.Elems[1:] {
		inf.unify(inf.inferExpr(rest), elem, rest.Span())
	}
	return &Array{Elem: elem}
}

// inferInfixExpr types '+': string concatenation when either side
// already resolves to String, numeric addition otherwise, with Number
// tried before Float as the deterministic tie-break.
func (inf *Inferencer) inferInfixExpr(e *ast.InfixExpr) Type {
	if e.Op != lexer.PLUS {
		inf.reportError(diag.CodeUnsupportedOperator,
			"unsupported operator '"+string(e.Op)+"'", e.Span())
		return inf.freshVar()
	}

	left := inf.inferExpr(e.Left)
	right := inf.inferExpr(e.Right)

	if isString(left) || isString(right) {
		inf.unify(left, TypeString, e.Left.Span())
		inf.unify(right, TypeString, e.Right.Span())
		return TypeString
	}

	operand := inf.freshVar()
	inf.unify(left, operand, e.Left.Span())
	inf.unify(right, operand, e.Right.Span())

	if !inf.tryUnify(operand, TypeNumber) && !inf.tryUnify(operand, TypeFloat) {
		inf.reportError(diag.CodeTypeMismatch,
			"operand of '+' must be numeric or string", e.Span())
	}
	return operand
}

func isString(t Type) bool {
	p, ok := Compress(t).(*Primitive)
	return ok && p.Kind == String
}

// inferArrowFn pushes a scope and extends the non-generic set with
// the parameter types for the body walk, then pops both.
func (inf *Inferencer) inferArrowFn(e *ast.ArrowFn) Type {
	outer := inf.env
	mark := len(inf.nongen)
	inf.env = NewTypeScope(outer)

	params := make([]Type, len(e.Params))
	for i, param := range e.Params {
		var t Type
		if param.Type != nil {
			t = inf.typeFromAnnotation(param.Type)
		} else {
			t = inf.freshVar()
		}
		params[i] = t
		if param.Name != nil {
			inf.env.Insert(param.Name.Name, t)
		}
		inf.nongen = append(inf.nongen, t)
	}

	// Walk the body; the trailing return (unique once validated)
	// provides the return type, Void when absent or bare.
	var ret Type = TypeVoid
	if e.Body != nil {
		for _, stmt := range e.Body.Stmts {
			t := inf.inferStmt(stmt)
			if _, ok := stmt.(*ast.ReturnStmt); ok {
				ret = t
			}
		}
	}

	if e.ReturnType != nil {
		annot := inf.typeFromAnnotation(e.ReturnType)
		span := e.Span()
		if e.Body != nil {
			span = e.Body.Span()
		}
		inf.unify(ret, annot, span)
		ret = annot
	}

	inf.env = outer
	inf.nongen = inf.nongen[:mark]

	return &Function{Params: params, Return: ret}
}

func (inf *Inferencer) inferCallExpr(e *ast.CallExpr) Type {
	callee := Compress(inf.inferExpr(e.Callee))

	args := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		args[i] = inf.inferExpr(arg)
	}

	switch fn := callee.(type) {
	case *Var:
		result := inf.freshVar()
		inf.unify(fn, &Function{Params: args, Return: result}, e.Span())
		return result

	case *Function:
		if len(fn.Params) != len(args) {
			inf.reportError(diag.CodeArityMismatch,
				"wrong number of arguments: expected "+strconv.Itoa(len(fn.Params))+", got "+strconv.Itoa(len(args)),
				e.Span())
			return fn.Return
		}
		for i := range args {
			inf.unify(args[i], fn.Params[i], e.Args[i].Span())
		}
		return fn.Return

	default:
		inf.reportError(diag.CodeNotCallable,
			"cannot call a value of type "+callee.String(), e.Callee.Span())
		return inf.freshVar()
	}
}

// typeFromAnnotation translates an annotation into a type term.
// Surface spellings map onto the canonical tags; an unrecognized type
// name binds a fresh variable so inference can still proceed.
func (inf *Inferencer) typeFromAnnotation(t ast.TypeExpr) Type {
	switch t := t.(type) {
	case *ast.NamedType:
		switch t.Name.Name {
		case "number":
			return TypeNumber
		case "Float":
			return TypeFloat
		case "boolean", "Bool":
			return TypeBool
		case "string":
			return TypeString
		case "void", "Void", "Unit":
			return TypeVoid
		default:
			return inf.freshVar()
		}

	case *ast.ArrayType:
		return &Array{Elem: inf.typeFromAnnotation(t.Elem)}

	case *ast.FuncType:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			if p.Type != nil {
				params[i] = inf.typeFromAnnotation(p.Type)
			} else {
				params[i] = inf.freshVar()
			}
		}
		return &Function{Params: params, Return: inf.typeFromAnnotation(t.Return)}

	default:
		return inf.freshVar()
	}
}
