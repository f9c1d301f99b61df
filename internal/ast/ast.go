package ast

import "github.com/tinyscript-lang/tinyscript/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr represents a type annotation expression.
type TypeExpr interface {
	Node
	typeNode()
}

// InferredType is implemented by the type checker's terms. Declared
// here so declarations can carry inference results without the AST
// importing the checker.
type InferredType interface {
	String() string
}

// Program represents a parsed compilation unit: an ordered sequence of
// top-level statements.
type Program struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// ConstDecl represents a const declaration statement.
type ConstDecl struct {
	Name  *Ident
	Type  TypeExpr // optional annotation
	Value Expr
	span  lexer.Span

	// Inferred is filled in by the type checker.
	Inferred InferredType
}

// Span returns the declaration span.
func (d *ConstDecl) Span() lexer.Span { return d.span }

// NewConstDecl constructs a const declaration node.
func NewConstDecl(name *Ident, typ TypeExpr, value Expr, span lexer.Span) *ConstDecl {
	return &ConstDecl{
		Name:  name,
		Type:  typ,
		Value: value,
		span:  span,
	}
}

// SetSpan updates the declaration span.
func (d *ConstDecl) SetSpan(span lexer.Span) {
	d.span = span
}

// stmtNode marks ConstDecl as a statement.
func (*ConstDecl) stmtNode() {}

// ReturnStmt represents a return statement with an optional argument.
type ReturnStmt struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{
		Value: value,
		span:  span,
	}
}

// SetSpan updates the statement span.
func (s *ReturnStmt) SetSpan(span lexer.Span) {
	s.span = span
}

// stmtNode marks ReturnStmt as a statement.
func (*ReturnStmt) stmtNode() {}

// BlockStmt represents a braced sequence of statements. Blocks do not
// introduce scopes; the enclosing arrow function does.
type BlockStmt struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *BlockStmt) Span() lexer.Span { return b.span }

// NewBlockStmt constructs a block node.
func NewBlockStmt(stmts []Stmt, span lexer.Span) *BlockStmt {
	return &BlockStmt{
		Stmts: stmts,
		span:  span,
	}
}

// SetSpan updates the block span.
func (b *BlockStmt) SetSpan(span lexer.Span) {
	b.span = span
}

// stmtNode marks BlockStmt as a statement.
func (*BlockStmt) stmtNode() {}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span

	// Decl links a reference to its declaring node (*ConstDecl or
	// *Param). Filled in by the resolver; nil for flagged references
	// and for declaring occurrences themselves.
	Decl Node
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{
		Name: name,
		span: span,
	}
}

// SetSpan updates the identifier span.
func (i *Ident) SetSpan(span lexer.Span) {
	i.span = span
}

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}

// NumberLit represents a numeric literal. IsInt records whether the
// parsed value is an exact integer; the checker types those Number and
// the rest Float.
type NumberLit struct {
	Text  string
	Value float64
	IsInt bool
	span  lexer.Span
}

// Span returns the literal span.
func (l *NumberLit) Span() lexer.Span { return l.span }

// NewNumberLit constructs a numeric literal node.
func NewNumberLit(text string, value float64, isInt bool, span lexer.Span) *NumberLit {
	return &NumberLit{
		Text:  text,
		Value: value,
		IsInt: isInt,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *NumberLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks NumberLit as an expression.
func (*NumberLit) exprNode() {}

// StringLit represents a string literal (decoded value).
type StringLit struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{
		Value: value,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *StringLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks StringLit as an expression.
func (*StringLit) exprNode() {}

// BoolLit represents true or false.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() lexer.Span { return l.span }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{
		Value: value,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *BoolLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks BoolLit as an expression.
func (*BoolLit) exprNode() {}

// ArrayLit represents an array literal.
type ArrayLit struct {
	Elems []Expr
	span  lexer.Span
}

// Span returns the literal span.
func (l *ArrayLit) Span() lexer.Span { return l.span }

// NewArrayLit constructs an array literal node.
func NewArrayLit(elems []Expr, span lexer.Span) *ArrayLit {
	return &ArrayLit{
		Elems: elems,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *ArrayLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks ArrayLit as an expression.
func (*ArrayLit) exprNode() {}

// IndexExpr represents member access: target[index].
type IndexExpr struct {
	Target Expr
	Index  Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *IndexExpr) Span() lexer.Span { return e.span }

// NewIndexExpr constructs an index expression node.
func NewIndexExpr(target, index Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{
		Target: target,
		Index:  index,
		span:   span,
	}
}

// SetSpan updates the expression span.
func (e *IndexExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks IndexExpr as an expression.
func (*IndexExpr) exprNode() {}

// InfixExpr represents an infix binary expression. The grammar only
// produces "+" but the operator is carried so the checker owns the
// unsupported-operator report.
type InfixExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *InfixExpr) Span() lexer.Span { return e.span }

// NewInfixExpr constructs a binary expression node.
func NewInfixExpr(op lexer.TokenType, left, right Expr, span lexer.Span) *InfixExpr {
	return &InfixExpr{
		Op:    op,
		Left:  left,
		Right: right,
		span:  span,
	}
}

// SetSpan updates the expression span.
func (e *InfixExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks InfixExpr as an expression.
func (*InfixExpr) exprNode() {}

// CondExpr represents the ternary conditional cond ? then : else.
type CondExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *CondExpr) Span() lexer.Span { return e.span }

// NewCondExpr constructs a conditional expression node.
func NewCondExpr(cond, then, els Expr, span lexer.Span) *CondExpr {
	return &CondExpr{
		Cond: cond,
		Then: then,
		Else: els,
		span: span,
	}
}

// SetSpan updates the expression span.
func (e *CondExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks CondExpr as an expression.
func (*CondExpr) exprNode() {}

// Param represents an arrow-function parameter.
type Param struct {
	Name *Ident
	Type TypeExpr // optional annotation
	span lexer.Span
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(name *Ident, typ TypeExpr, span lexer.Span) *Param {
	return &Param{
		Name: name,
		Type: typ,
		span: span,
	}
}

// SetSpan updates the parameter span.
func (p *Param) SetSpan(span lexer.Span) {
	p.span = span
}

// ArrowFn represents an arrow function with a block body.
type ArrowFn struct {
	Params     []*Param
	ReturnType TypeExpr // optional annotation
	Body       *BlockStmt
	span       lexer.Span
}

// Span returns the expression span.
func (e *ArrowFn) Span() lexer.Span { return e.span }

// NewArrowFn constructs an arrow function node.
func NewArrowFn(params []*Param, returnType TypeExpr, body *BlockStmt, span lexer.Span) *ArrowFn {
	return &ArrowFn{
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		span:       span,
	}
}

// SetSpan updates the expression span.
func (e *ArrowFn) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks ArrowFn as an expression.
func (*ArrowFn) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{
		Callee: callee,
		Args:   args,
		span:   span,
	}
}

// SetSpan updates the expression span.
func (e *CallExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks CallExpr as an expression.
func (*CallExpr) exprNode() {}

// NamedType represents a primitive type keyword annotation.
type NamedType struct {
	Name *Ident
	span lexer.Span
}

// Span returns the type span.
func (t *NamedType) Span() lexer.Span { return t.span }

// NewNamedType constructs a named type node.
func NewNamedType(name *Ident, span lexer.Span) *NamedType {
	return &NamedType{
		Name: name,
		span: span,
	}
}

// SetSpan updates the type span.
func (t *NamedType) SetSpan(span lexer.Span) {
	t.span = span
}

// typeNode marks NamedType as a type expression.
func (*NamedType) typeNode() {}

// ArrayType represents Array<T> or T[].
type ArrayType struct {
	Elem TypeExpr
	span lexer.Span
}

// Span returns the type span.
func (t *ArrayType) Span() lexer.Span { return t.span }

// NewArrayType constructs an array type node.
func NewArrayType(elem TypeExpr, span lexer.Span) *ArrayType {
	return &ArrayType{
		Elem: elem,
		span: span,
	}
}

// SetSpan updates the type span.
func (t *ArrayType) SetSpan(span lexer.Span) {
	t.span = span
}

// typeNode marks ArrayType as a type expression.
func (*ArrayType) typeNode() {}

// FuncType represents (p: T, ...) => R.
type FuncType struct {
	Params []*Param
	Return TypeExpr
	span   lexer.Span
}

// Span returns the type span.
func (t *FuncType) Span() lexer.Span { return t.span }

// NewFuncType constructs a function type node.
func NewFuncType(params []*Param, ret TypeExpr, span lexer.Span) *FuncType {
	return &FuncType{
		Params: params,
		Return: ret,
		span:   span,
	}
}

// SetSpan updates the type span.
func (t *FuncType) SetSpan(span lexer.Span) {
	t.span = span
}

// typeNode marks FuncType as a type expression.
func (*FuncType) typeNode() {}
