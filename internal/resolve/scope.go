package resolve

import "github.com/tinyscript-lang/tinyscript/internal/ast"

// Declaration represents a named entity in the source code, together
// with every reference the resolver linked back to it.
type Declaration struct {
	Name       string
	Node       ast.Node // *ast.ConstDecl or *ast.Param
	References []*ast.Ident
}

// Scope represents a lexical scope containing declarations. The
// program body is the root scope; each arrow function introduces a
// child. Blocks do not open scopes.
type Scope struct {
	Parent *Scope
	Decls  map[string]*Declaration
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent: parent,
		Decls:  make(map[string]*Declaration),
	}
}

// Insert adds a declaration to the current scope.
func (s *Scope) Insert(name string, decl *Declaration) {
	s.Decls[name] = decl
}

// Lookup finds a declaration in the current scope or any parent scope.
func (s *Scope) Lookup(name string) *Declaration {
	if decl, ok := s.Decls[name]; ok {
		return decl
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}

// LookupLocal finds a declaration in this scope only, ignoring parents.
func (s *Scope) LookupLocal(name string) *Declaration {
	return s.Decls[name]
}
