package syntax

// ScopeID indexes a scope inside its ScopeTree.
type ScopeID int

// NoScope marks a Block that does not open a scope, and the parent of the
// global scope.
const NoScope ScopeID = -1

// GlobalScope is always the first scope of a tree.
const GlobalScope ScopeID = 0

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeBlock
	ScopeCatch
	ScopeClass
)

type DefinitionKind int

const (
	DefImportBinding DefinitionKind = iota
	DefVariable
	DefFunctionName
	DefClassName
	DefParameter
	DefCatchClause
)

func (k DefinitionKind) String() string {
	switch k {
	case DefImportBinding:
		return "ImportBinding"
	case DefVariable:
		return "Variable"
	case DefFunctionName:
		return "FunctionName"
	case DefClassName:
		return "ClassName"
	case DefParameter:
		return "Parameter"
	case DefCatchClause:
		return "CatchClause"
	}
	return "Unknown"
}

// Definition records how a binding was introduced.
type Definition struct {
	Kind DefinitionKind
	Name string
	// Source is the module specifier of an import, e.g. "@primer/components".
	Source string
	// Imported is the exported name an import binds: "default", "*" or the
	// named export.
	Imported string
	Range    Span
}

// Variable is one name in a scope. Redeclarations append to Defs.
type Variable struct {
	Name string
	Defs []Definition
}

// Scope holds its parent as an index so the tree alone owns every scope.
type Scope struct {
	Kind      ScopeKind
	Upper     ScopeID
	Variables []Variable
}

// ScopeTree is an arena of scopes for one file.
type ScopeTree struct {
	scopes []Scope
}

// NewScopeTree returns a tree holding only the global scope.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{scopes: []Scope{{Kind: ScopeGlobal, Upper: NoScope}}}
}

// Push adds a scope below upper and returns its id.
func (t *ScopeTree) Push(kind ScopeKind, upper ScopeID) ScopeID {
	t.scopes = append(t.scopes, Scope{Kind: kind, Upper: upper})
	return ScopeID(len(t.scopes) - 1)
}

// Declare records def in scope id, merging with an existing variable of the
// same name.
func (t *ScopeTree) Declare(id ScopeID, def Definition) {
	s := &t.scopes[id]
	for i := range s.Variables {
		if s.Variables[i].Name == def.Name {
			s.Variables[i].Defs = append(s.Variables[i].Defs, def)
			return
		}
	}
	s.Variables = append(s.Variables, Variable{Name: def.Name, Defs: []Definition{def}})
}

// Scope returns the scope with the given id, or nil when id is out of range.
func (t *ScopeTree) Scope(id ScopeID) *Scope {
	if t == nil || id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

func (t *ScopeTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.scopes)
}

// Lookup returns the variable named name declared directly in scope id.
func (s *Scope) Lookup(name string) *Variable {
	for i := range s.Variables {
		if s.Variables[i].Name == name {
			return &s.Variables[i]
		}
	}
	return nil
}

// NearestOf walks upward from id to the closest scope of one of kinds.
func (t *ScopeTree) NearestOf(id ScopeID, kinds ...ScopeKind) ScopeID {
	for cur := id; cur != NoScope; {
		s := t.Scope(cur)
		if s == nil {
			return NoScope
		}
		for _, k := range kinds {
			if s.Kind == k {
				return cur
			}
		}
		cur = s.Upper
	}
	return NoScope
}
