package types

import (
	"fmt"

	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/lexer"
)

// unifyError carries the diagnostic classification of a failed
// unification so the reporting call site can attach the right code.
type unifyError struct {
	code diag.Code
	msg  string
}

func (e *unifyError) Error() string { return e.msg }

func mismatch(a, b Type) *unifyError {
	return &unifyError{
		code: diag.CodeTypeMismatch,
		msg:  fmt.Sprintf("cannot unify %s with %s", a, b),
	}
}

// unifyTerms performs classical unification over the link structure,
// after compressing both sides. Variables link to terms (with an
// occurs check first); arrays unify element-wise; functions unify
// parameter-wise when arities agree; primitives unify by kind.
// Whatever partial linking happened before a failure stands: callers
// continue best-effort.
func unifyTerms(a, b Type) *unifyError {
	a = Compress(a)
	b = Compress(b)

	if a == b {
		return nil
	}

	if av, ok := a.(*Var); ok {
		if OccursIn(av, b) {
			return &unifyError{
				code: diag.CodeInfiniteType,
				msg:  fmt.Sprintf("infinite type: %s occurs in %s", av.Name, b),
			}
		}
		av.Link = b
		return nil
	}
	if _, ok := b.(*Var); ok {
		return unifyTerms(b, a)
	}

	switch a := a.(type) {
	case *Array:
		if b, ok := b.(*Array); ok {
			return unifyTerms(a.Elem, b.Elem)
		}
	case *Function:
		if b, ok := b.(*Function); ok {
			if len(a.Params) != len(b.Params) {
				return &unifyError{
					code: diag.CodeArityMismatch,
					msg: fmt.Sprintf("arity mismatch: %d parameter(s) vs %d",
						len(a.Params), len(b.Params)),
				}
			}
			for i := range a.Params {
				if err := unifyTerms(a.Params[i], b.Params[i]); err != nil {
					return err
				}
			}
			return unifyTerms(a.Return, b.Return)
		}
	case *Primitive:
		if b, ok := b.(*Primitive); ok && a.Kind == b.Kind {
			return nil
		}
	}
	return mismatch(a, b)
}

// unify unifies a with b and reports any failure at span. It returns
// false on failure; inference proceeds with whatever partial linking
// succeeded.
func (inf *Inferencer) unify(a, b Type, span lexer.Span) bool {
	if err := unifyTerms(a, b); err != nil {
		inf.reportError(err.code, err.msg, span)
		return false
	}
	return true
}

// tryUnify attempts a unification without reporting. Used for the
// numeric tie-break on '+', where Number is attempted before Float.
func (inf *Inferencer) tryUnify(a, b Type) bool {
	return unifyTerms(a, b) == nil
}

// freshInstance produces a copy of t where every variable that is not
// non-generic is replaced by a fresh variable, consistently across the
// copy. Non-generic variables (those occurring in the parameter types
// of enclosing, still-elaborating functions) are preserved by
// identity.
func (inf *Inferencer) freshInstance(t Type) Type {
	mapping := make(map[*Var]*Var)
	return inf.freshen(t, mapping)
}

func (inf *Inferencer) freshen(t Type, mapping map[*Var]*Var) Type {
	t = Compress(t)
	switch t := t.(type) {
	case *Var:
		if occursInAny(t, inf.nongen) {
			return t
		}
		if fresh, ok := mapping[t]; ok {
			return fresh
		}
		fresh := inf.freshVar()
		mapping[t] = fresh
		return fresh
	case *Array:
		return &Array{Elem: inf.freshen(t.Elem, mapping)}
	case *Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = inf.freshen(p, mapping)
		}
		return &Function{Params: params, Return: inf.freshen(t.Return, mapping)}
	default:
		return t
	}
}
