package types

import (
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeNumber, "Number"},
		{TypeFloat, "Float"},
		{TypeBool, "Bool"},
		{TypeString, "String"},
		{TypeVoid, "Void"},
		{&Array{Elem: TypeNumber}, "Array<Number>"},
		{&Array{Elem: &Array{Elem: TypeString}}, "Array<Array<String>>"},
		{&Function{Params: nil, Return: TypeVoid}, "() -> Void"},
		{&Function{Params: []Type{TypeNumber, TypeNumber}, Return: TypeNumber}, "(Number, Number) -> Number"},
		{
			&Function{
				Params: []Type{
					&Function{Params: []Type{TypeNumber}, Return: TypeNumber},
					TypeNumber,
				},
				Return: TypeNumber,
			},
			"(((Number) -> Number), Number) -> Number",
		},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestVarString(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}
	if got := v.String(); got != "t0" {
		t.Errorf("unlinked var prints %q, want t0", got)
	}

	v.Link = TypeNumber
	if got := v.String(); got != "Number" {
		t.Errorf("linked var prints %q, want Number", got)
	}
}

func TestCompress_Idempotent(t *testing.T) {
	a := &Var{ID: 0, Name: "t0"}
	b := &Var{ID: 1, Name: "t1"}
	c := &Var{ID: 2, Name: "t2"}
	a.Link = b
	b.Link = c
	c.Link = TypeNumber

	once := Compress(a)
	twice := Compress(once)

	if once != twice {
		t.Error("compress is not idempotent")
	}
	if once != Type(TypeNumber) {
		t.Errorf("compress(a) = %v, want Number", once)
	}

	// The whole chain now points straight at the root.
	if a.Link != Type(TypeNumber) || b.Link != Type(TypeNumber) {
		t.Error("path compression did not rewrite intermediate links")
	}
}

func TestCompress_UnlinkedVarIsRoot(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}
	if Compress(v) != Type(v) {
		t.Error("unlinked var should compress to itself")
	}
}

func TestOccursIn(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}
	w := &Var{ID: 1, Name: "t1"}

	tests := []struct {
		typ  Type
		want bool
	}{
		{v, true},
		{w, false},
		{TypeNumber, false},
		{&Array{Elem: v}, true},
		{&Array{Elem: w}, false},
		{&Function{Params: []Type{v}, Return: TypeVoid}, true},
		{&Function{Params: []Type{TypeNumber}, Return: v}, true},
		{&Function{Params: []Type{w}, Return: w}, false},
	}

	for _, tt := range tests {
		if got := OccursIn(v, tt.typ); got != tt.want {
			t.Errorf("OccursIn(t0, %s) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

// Occurrence sees through links: if w forwards to a term containing v,
// v occurs in w.
func TestOccursIn_ThroughLinks(t *testing.T) {
	v := &Var{ID: 0, Name: "t0"}
	w := &Var{ID: 1, Name: "t1"}
	w.Link = &Array{Elem: v}

	if !OccursIn(v, w) {
		t.Error("occurrence check missed a linked term")
	}
}
