// # internal/engine/resolver/resolver.go
package resolver

import (
	"regexp"

	"tokenlint/internal/engine/syntax"
)

// ResolveBinding returns the first definition of the nearest variable named
// name, searching scope and then its ancestors. It returns nil for globals
// and unresolved names.
func ResolveBinding(tree *syntax.ScopeTree, scope syntax.ScopeID, name string) *syntax.Definition {
	for cur := scope; cur != syntax.NoScope; {
		s := tree.Scope(cur)
		if s == nil {
			return nil
		}
		if v := s.Lookup(name); v != nil && len(v.Defs) > 0 {
			return &v.Defs[0]
		}
		cur = s.Upper
	}
	return nil
}

// IsImportedFrom reports whether name is bound by an import whose module
// specifier matches pattern.
func IsImportedFrom(pattern *regexp.Regexp, tree *syntax.ScopeTree, scope syntax.ScopeID, name string) bool {
	if pattern == nil {
		return false
	}
	def := ResolveBinding(tree, scope, name)
	return def != nil && def.Kind == syntax.DefImportBinding && pattern.MatchString(def.Source)
}

// rootIdentifier unwraps member expressions down to the leftmost identifier,
// so <Primer.Box> resolves through the Primer binding.
func rootIdentifier(n syntax.Node) (*syntax.Identifier, bool) {
	for {
		switch v := n.(type) {
		case *syntax.Identifier:
			return v, true
		case *syntax.MemberExpression:
			n = v.Object
		default:
			return nil, false
		}
	}
}
