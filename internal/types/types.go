package types

import (
	"strconv"
	"strings"
)

// Type represents a type term in the tinyscript type system.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// PrimitiveKind represents the kind of a primitive type. The canonical
// tag set is fixed; the surface keywords number/boolean/void/Unit are
// aliases mapped onto it when annotations are translated.
type PrimitiveKind string

const (
	Number PrimitiveKind = "Number"
	Float  PrimitiveKind = "Float"
	Bool   PrimitiveKind = "Bool"
	String PrimitiveKind = "String"
	Void   PrimitiveKind = "Void"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Common primitive instances. Unification compares primitives by kind,
// not identity, but sharing the instances keeps terms small.
var (
	TypeNumber = &Primitive{Kind: Number}
	TypeFloat  = &Primitive{Kind: Float}
	TypeBool   = &Primitive{Kind: Bool}
	TypeString = &Primitive{Kind: String}
	TypeVoid   = &Primitive{Kind: Void}
)

// Var represents a type variable. Link implements union-find: a
// variable is either a root (Link nil) or forwards to another term.
// Variables are identified by reference, with id kept for stable
// display names.
type Var struct {
	ID   int
	Name string
	Link Type
}

func (v *Var) String() string {
	if v.Link != nil {
		return Compress(v).String()
	}
	return v.Name
}
func (v *Var) IsType() {}

// Array represents an array type with its element type term.
type Array struct {
	Elem Type
}

func (a *Array) String() string { return "Array<" + a.Elem.String() + ">" }
func (a *Array) IsType()        {}

// Function represents an uncurried function type.
type Function struct {
	Params []Type
	Return Type
}

func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		s := p.String()
		// Function-typed parameters are parenthesized so the arrow
		// reads unambiguously inside the parameter list.
		if _, ok := Compress(p).(*Function); ok {
			s = "(" + s + ")"
		}
		params[i] = s
	}
	return "(" + strings.Join(params, ", ") + ") -> " + f.Return.String()
}
func (f *Function) IsType() {}

// Compress path-compresses the link chain rooted at t, returning the
// ultimate non-variable term or the root variable. Intermediate
// variables are re-linked directly to the root.
func Compress(t Type) Type {
	v, ok := t.(*Var)
	if !ok || v.Link == nil {
		return t
	}
	root := Compress(v.Link)
	v.Link = root
	return root
}

// OccursIn returns true iff variable v appears inside t after
// compression. It descends into array elements and function
// parameters and returns.
func OccursIn(v *Var, t Type) bool {
	t = Compress(t)
	switch t := t.(type) {
	case *Var:
		return t == v
	case *Array:
		return OccursIn(v, t.Elem)
	case *Function:
		for _, p := range t.Params {
			if OccursIn(v, p) {
				return true
			}
		}
		return OccursIn(v, t.Return)
	default:
		return false
	}
}

// occursInAny reports whether v appears in any of the given terms.
func occursInAny(v *Var, ts []Type) bool {
	for _, t := range ts {
		if OccursIn(v, t) {
			return true
		}
	}
	return false
}

// varName derives a display name from a variable id: t0, t1, ...
func varName(id int) string {
	return "t" + strconv.Itoa(id)
}
