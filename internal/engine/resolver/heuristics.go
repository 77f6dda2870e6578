package resolver

import "tokenlint/internal/engine/syntax"

// IsInternalAccessor recognizes `get`, the library's internal alias of
// themeGet, purely by it being imported from a relative constants module.
// This is a path heuristic: any `get` exported from a file named constants
// next to the caller qualifies. It ignores SkipImportCheck.
func (p *Provenance) IsInternalAccessor(callee syntax.Node, scope syntax.ScopeID) bool {
	ident, ok := callee.(*syntax.Identifier)
	if !ok || ident.Name != DefaultInternalAccessor {
		return false
	}
	return IsImportedFrom(p.internalAccessor, p.scopes, scope, ident.Name)
}
