package types

import (
	"testing"

	"github.com/tinyscript-lang/tinyscript/internal/diag"
)

func TestUnifyTerms_VarLinksToTerm(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}

	if err := unifyTerms(v, TypeNumber); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Compress(v) != Type(TypeNumber) {
		t.Errorf("var resolved to %v, want Number", Compress(v))
	}
}

func TestUnifyTerms_TermWithVarSwaps(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}

	if err := unifyTerms(TypeString, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Compress(v) != Type(TypeString) {
		t.Errorf("var resolved to %v, want String", Compress(v))
	}
}

// After a successful unification the two sides print identically.
func TestUnifyTerms_SidesPrintEqual(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}
	w := &Var{ID: 1, Name: "t1"}
	a := &Array{Elem: v}
	b := &Array{Elem: &Array{Elem: w}}

	if err := unifyTerms(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := unifyTerms(w, TypeBool); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Compress(a).String() != Compress(b).String() {
		t.Errorf("sides disagree: %s vs %s", Compress(a), Compress(b))
	}
}

func TestUnifyTerms_PrimitiveMismatch(t *testing.T) {
	err := unifyTerms(TypeNumber, TypeString)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.code != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", err.code, diag.CodeTypeMismatch)
	}
	if err.msg != "cannot unify Number with String" {
		t.Errorf("msg = %q", err.msg)
	}
}

func TestUnifyTerms_StructureMismatch(t *testing.T) {
	err := unifyTerms(&Array{Elem: TypeNumber}, TypeNumber)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.code != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", err.code, diag.CodeTypeMismatch)
	}
}

func TestUnifyTerms_ArrayElementwise(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}

	err := unifyTerms(&Array{Elem: v}, &Array{Elem: TypeBool})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Compress(v) != Type(TypeBool) {
		t.Errorf("element var resolved to %v, want Bool", Compress(v))
	}
}

func TestUnifyTerms_FunctionArity(t *testing.T) {
	f1 := &Function{Params: []Type{TypeNumber}, Return: TypeVoid}
	f2 := &Function{Params: []Type{TypeNumber, TypeNumber}, Return: TypeVoid}

	err := unifyTerms(f1, f2)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.code != diag.CodeArityMismatch {
		t.Errorf("code = %s, want %s", err.code, diag.CodeArityMismatch)
	}
}

func TestUnifyTerms_FunctionPairwise(t *testing.T) {
	p := &Var{ID: 0, Name: "t0"}
	r := &Var{ID: 1, Name: "t1"}
	f1 := &Function{Params: []Type{p}, Return: r}
	f2 := &Function{Params: []Type{TypeString}, Return: TypeBool}

	if err := unifyTerms(f1, f2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Compress(p) != Type(TypeString) || Compress(r) != Type(TypeBool) {
		t.Errorf("resolved to (%v) -> %v, want (String) -> Bool", Compress(p), Compress(r))
	}
}

// The occurs check fires before any link is written, so the variable
// stays a root after the failure.
func TestUnifyTerms_OccursCheck(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}

	err := unifyTerms(v, &Array{Elem: v})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.code != diag.CodeInfiniteType {
		t.Errorf("code = %s, want %s", err.code, diag.CodeInfiniteType)
	}
	if v.Link != nil {
		t.Error("failed unification linked the variable")
	}
}

func TestUnifyTerms_SameVarIsNoop(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}

	if err := unifyTerms(v, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Link != nil {
		t.Error("self-unification should not link the variable")
	}
}

func TestFreshInstance_GenericVarsCopied(t *testing.T) {
	inf := NewInferencer()

	v := inf.freshVar()
	fn := &Function{Params: []Type{&Array{Elem: v}}, Return: v}

	inst := inf.freshInstance(fn).(*Function)

	instParam := Compress(inst.Params[0]).(*Array).Elem
	instRet := Compress(inst.Return)

	if instParam != instRet {
		t.Error("copied variable lost sharing within the instance")
	}
	if instRet == Type(v) {
		t.Error("generic variable was not freshened")
	}
}

func TestFreshInstance_NonGenericPreserved(t *testing.T) {
	inf := NewInferencer()

	v := inf.freshVar()
	inf.nongen = append(inf.nongen, v)

	fn := &Function{Params: []Type{v}, Return: v}
	inst := inf.freshInstance(fn).(*Function)

	if Compress(inst.Params[0]) != Type(v) || Compress(inst.Return) != Type(v) {
		t.Error("non-generic variable was freshened")
	}
}

// A variable reachable through a non-generic term's links counts as
// non-generic itself.
func TestFreshInstance_NonGenericThroughLinks(t *testing.T) {
	inf := NewInferencer()

	param := inf.freshVar()
	elem := inf.freshVar()
	param.Link = &Array{Elem: elem}
	inf.nongen = append(inf.nongen, param)

	if inf.freshInstance(elem) != Type(elem) {
		t.Error("variable inside a non-generic term was freshened")
	}
}
