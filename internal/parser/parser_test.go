package parser

import (
	"testing"

	"github.com/eaburns/pretty"

	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, []diag.Diagnostic) {
	t.Helper()

	toks, lexDiags := lexer.Scan(src)
	if len(lexDiags) != 0 {
		t.Fatalf("lexing %q failed: %v", src, lexDiags)
	}

	return Parse(toks)
}

func parseClean(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("parsing %q produced diagnostics: %v", src, diags)
	}
	return prog
}

func firstConst(t *testing.T, prog *ast.Program) *ast.ConstDecl {
	t.Helper()

	if len(prog.Stmts) == 0 {
		t.Fatal("program has no statements")
	}
	decl, ok := prog.Stmts[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ConstDecl", prog.Stmts[0])
	}
	return decl
}

func TestParseConstDecl(t *testing.T) {
	prog := parseClean(t, `const x = 42;`)

	decl := firstConst(t, prog)
	if decl.Name.Name != "x" {
		t.Errorf("name = %q, want x", decl.Name.Name)
	}

	num, ok := decl.Value.(*ast.NumberLit)
	if !ok {
		t.Fatalf("value is %T, want *ast.NumberLit", decl.Value)
	}
	if num.Value != 42 || !num.IsInt {
		t.Errorf("number = %v (int=%v), want 42 (int=true)", num.Value, num.IsInt)
	}
}

func TestParseConstDecl_Annotated(t *testing.T) {
	prog := parseClean(t, `const x: number = 1;`)

	decl := firstConst(t, prog)
	named, ok := decl.Type.(*ast.NamedType)
	if !ok {
		t.Fatalf("annotation is %T, want *ast.NamedType", decl.Type)
	}
	if named.Name.Name != "number" {
		t.Errorf("annotation name = %q, want number", named.Name.Name)
	}
}

func TestParseConstDecl_NoSemicolon(t *testing.T) {
	prog := parseClean(t, `const x = 1`)
	firstConst(t, prog)
}

func TestParseTernary(t *testing.T) {
	prog := parseClean(t, `const x = true ? 1 : 2;`)

	decl := firstConst(t, prog)
	cond, ok := decl.Value.(*ast.CondExpr)
	if !ok {
		t.Fatalf("value is %T, want *ast.CondExpr", decl.Value)
	}
	if _, ok := cond.Cond.(*ast.BoolLit); !ok {
		t.Errorf("condition is %T, want *ast.BoolLit", cond.Cond)
	}
}

// Nested conditionals hang to the right: a ? b : c ? d : e parses as
// a ? b : (c ? d : e).
func TestParseTernary_RightAssociative(t *testing.T) {
	prog := parseClean(t, `const x = true ? 1 : false ? 2 : 3;`)

	decl := firstConst(t, prog)
	outer := decl.Value.(*ast.CondExpr)
	if _, ok := outer.Else.(*ast.CondExpr); !ok {
		t.Fatalf("else branch is %T, want nested *ast.CondExpr", outer.Else)
	}
}

func TestParseBinary_LeftAssociative(t *testing.T) {
	prog := parseClean(t, `const x = 1 + 2 + 3;`)

	decl := firstConst(t, prog)
	outer, ok := decl.Value.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("value is %T, want *ast.InfixExpr", decl.Value)
	}
	if _, ok := outer.Left.(*ast.InfixExpr); !ok {
		t.Fatalf("left operand is %T, want nested *ast.InfixExpr", outer.Left)
	}
	if outer.Op != lexer.PLUS {
		t.Errorf("op = %q, want +", outer.Op)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	prog := parseClean(t, `const xs = [1, 2, 3];`)

	decl := firstConst(t, prog)
	arr, ok := decl.Value.(*ast.ArrayLit)
	if !ok {
		t.Fatalf("value is %T, want *ast.ArrayLit", decl.Value)
	}
	if len(arr.Elems) != 3 {
		t.Errorf("len(elems) = %d, want 3", len(arr.Elems))
	}
}

func TestParseArrayLiteral_Empty(t *testing.T) {
	prog := parseClean(t, `const xs = [];`)

	decl := firstConst(t, prog)
	arr := decl.Value.(*ast.ArrayLit)
	if len(arr.Elems) != 0 {
		t.Errorf("len(elems) = %d, want 0", len(arr.Elems))
	}
}

func TestParsePostfixChain(t *testing.T) {
	prog := parseClean(t, `const x = f(1)[0];`)

	decl := firstConst(t, prog)
	idx, ok := decl.Value.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("value is %T, want *ast.IndexExpr", decl.Value)
	}
	call, ok := idx.Target.(*ast.CallExpr)
	if !ok {
		t.Fatalf("target is %T, want *ast.CallExpr", idx.Target)
	}
	if len(call.Args) != 1 {
		t.Errorf("len(args) = %d, want 1", len(call.Args))
	}
}

// A parenthesized identifier is a grouping, not a one-parameter arrow
// function: only "=>" after the closing paren makes it an arrow.
func TestParseArrowDisambiguation(t *testing.T) {
	prog := parseClean(t, `const a = (x);
const b = (x) => { return x; };
const c = (1 + 2) + 3;`)

	if len(prog.Stmts) != 3 {
		t.Fatalf("len(stmts) = %d, want 3", len(prog.Stmts))
	}

	aDecl := prog.Stmts[0].(*ast.ConstDecl)
	if _, ok := aDecl.Value.(*ast.Ident); !ok {
		t.Errorf("a's value is %T, want *ast.Ident", aDecl.Value)
	}

	bDecl := prog.Stmts[1].(*ast.ConstDecl)
	if _, ok := bDecl.Value.(*ast.ArrowFn); !ok {
		t.Errorf("b's value is %T, want *ast.ArrowFn:\n%s",
			bDecl.Value, pretty.String(bDecl.Value))
	}

	cDecl := prog.Stmts[2].(*ast.ConstDecl)
	if _, ok := cDecl.Value.(*ast.InfixExpr); !ok {
		t.Errorf("c's value is %T, want *ast.InfixExpr", cDecl.Value)
	}
}

func TestParseArrowFn_NoParams(t *testing.T) {
	prog := parseClean(t, `const f = () => { return 1; };`)

	fn := firstConst(t, prog).Value.(*ast.ArrowFn)
	if len(fn.Params) != 0 {
		t.Errorf("len(params) = %d, want 0", len(fn.Params))
	}
}

func TestParseArrowFn_AnnotatedParams(t *testing.T) {
	prog := parseClean(t, `const f = (a: number, b) => { return a; };`)

	fn := firstConst(t, prog).Value.(*ast.ArrowFn)
	if len(fn.Params) != 2 {
		t.Fatalf("len(params) = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].Type == nil {
		t.Error("first param lost its annotation")
	}
	if fn.Params[1].Type != nil {
		t.Error("second param gained an annotation")
	}
}

func TestParseArrowFn_ReturnAnnotation(t *testing.T) {
	prog := parseClean(t, `const f = (a): number => { return a; };`)

	fn := firstConst(t, prog).Value.(*ast.ArrowFn)
	if fn.ReturnType == nil {
		t.Fatal("return annotation missing")
	}
}

func TestParseArrowFn_EmptyBody(t *testing.T) {
	prog := parseClean(t, `const f = () => {};`)

	fn := firstConst(t, prog).Value.(*ast.ArrowFn)
	if len(fn.Body.Stmts) != 0 {
		t.Errorf("len(body) = %d, want 0", len(fn.Body.Stmts))
	}
}

// An arrow function body must be a block. The expression form is
// reported, then parsed anyway as an implicit return so the rest of
// the pipeline still sees a function.
func TestParseArrowFn_ExpressionBodyRejected(t *testing.T) {
	prog, diags := parseSource(t, `const f = (x) => x + 1;`)

	if len(diags) != 1 {
		t.Fatalf("len(diags) = %d, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeExpressionBodyRejected {
		t.Fatalf("code = %s, want %s", diags[0].Code, diag.CodeExpressionBodyRejected)
	}

	fn := firstConst(t, prog).Value.(*ast.ArrowFn)
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("recovered body has %d statements, want 1:\n%s",
			len(fn.Body.Stmts), pretty.String(fn.Body))
	}
	if _, ok := fn.Body.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("recovered statement is %T, want *ast.ReturnStmt", fn.Body.Stmts[0])
	}
}

func TestParseAnyRejected(t *testing.T) {
	src := `const x: any = 5;`
	_, diags := parseSource(t, src)

	if len(diags) != 1 {
		t.Fatalf("len(diags) = %d, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeAnyTypeRejected {
		t.Fatalf("code = %s, want %s", diags[0].Code, diag.CodeAnyTypeRejected)
	}
	if diags[0].Span.Start != 9 {
		t.Errorf("offset = %d, want 9 (position of 'any')", diags[0].Span.Start)
	}
}

func TestParseAnyRejected_InParam(t *testing.T) {
	_, diags := parseSource(t, `const f = (x: any) => { return x; };`)

	found := false
	for _, d := range diags {
		if d.Code == diag.CodeAnyTypeRejected {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s in %v", diag.CodeAnyTypeRejected, diags)
	}
}

func TestParseTypeAnnotations(t *testing.T) {
	tests := []struct {
		src  string
		want string // expected root annotation node
	}{
		{`const a: Array<number> = [];`, "array"},
		{`const b: number[] = [];`, "array"},
		{`const c: string[][] = [];`, "array"},
		{`const d: (a: number) => number = (a) => { return a; };`, "func"},
		{`const e: () => void = () => {};`, "func"},
		{`const f: Custom = 1;`, "named"},
	}

	for _, tt := range tests {
		prog := parseClean(t, tt.src)
		decl := firstConst(t, prog)

		var got string
		switch decl.Type.(type) {
		case *ast.ArrayType:
			got = "array"
		case *ast.FuncType:
			got = "func"
		case *ast.NamedType:
			got = "named"
		default:
			got = "other"
		}

		if got != tt.want {
			t.Errorf("%q: annotation kind = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestParseRecovery(t *testing.T) {
	prog, diags := parseSource(t, `const = 1;
const b = 2;`)

	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	// The second declaration still parses.
	if len(prog.Stmts) != 1 {
		t.Fatalf("len(stmts) = %d, want 1", len(prog.Stmts))
	}
	decl := prog.Stmts[0].(*ast.ConstDecl)
	if decl.Name.Name != "b" {
		t.Errorf("surviving decl = %q, want b", decl.Name.Name)
	}
}

func TestParseRecovery_InsideBlock(t *testing.T) {
	prog, diags := parseSource(t, `const f = () => { const = 1; return 2; };`)

	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	fn := firstConst(t, prog).Value.(*ast.ArrowFn)
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("len(body) = %d, want 1", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("surviving statement is %T, want *ast.ReturnStmt", fn.Body.Stmts[0])
	}
}

// Every node's span stays inside the source and spans are well formed.
func TestParseSpanBounds(t *testing.T) {
	src := `const add = (a: number, b) => { return a + b; };
const r = add(1, 2) + [1, 2][0];
const s = true ? "a" : "b";`

	prog := parseClean(t, src)

	ast.Walk(prog, func(n ast.Node) bool {
		span := n.Span()
		if span.Start < 0 || span.End > len(src) || span.Start > span.End {
			t.Errorf("%T has span [%d,%d) outside [0,%d]", n, span.Start, span.End, len(src))
		}
		return true
	})
}

func TestParseWithFilename(t *testing.T) {
	toks, _ := lexer.ScanFile("main.ts", `const x: any = 1;`)
	_, diags := Parse(toks, WithFilename("main.ts"))

	if len(diags) != 1 {
		t.Fatalf("len(diags) = %d, want 1", len(diags))
	}
	if diags[0].Span.Filename != "main.ts" {
		t.Errorf("filename = %q, want main.ts", diags[0].Span.Filename)
	}
}
