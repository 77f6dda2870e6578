package resolver

import (
	"fmt"
	"regexp"

	"tokenlint/internal/engine/syntax"
)

const (
	DefaultTrustedModule          = `^@primer/components`
	DefaultAccessorName           = "themeGet"
	DefaultInternalAccessor       = "get"
	DefaultInternalAccessorModule = `^\.\.?/constants$`
)

// ProvenanceOptions configures which imports count as trusted.
type ProvenanceOptions struct {
	// TrustedModule matches the specifier of the component library.
	TrustedModule string
	// InternalAccessorModule matches the relative module that exports the
	// library's own accessor alias.
	InternalAccessorModule string
	// SkipImportCheck turns component and public accessor checks into
	// name-only checks.
	SkipImportCheck bool
}

// Provenance answers "where does this identifier come from" questions for a
// single file.
type Provenance struct {
	scopes           *syntax.ScopeTree
	trusted          *regexp.Regexp
	internalAccessor *regexp.Regexp
	skipImportCheck  bool
}

// Matchers holds the compiled module patterns, shareable across files.
type Matchers struct {
	Trusted          *regexp.Regexp
	InternalAccessor *regexp.Regexp
	SkipImportCheck  bool
}

// Compile validates the module patterns once per run.
func Compile(opts ProvenanceOptions) (Matchers, error) {
	trusted := opts.TrustedModule
	if trusted == "" {
		trusted = DefaultTrustedModule
	}
	internal := opts.InternalAccessorModule
	if internal == "" {
		internal = DefaultInternalAccessorModule
	}

	t, err := regexp.Compile(trusted)
	if err != nil {
		return Matchers{}, fmt.Errorf("invalid trusted module pattern %q: %w", trusted, err)
	}
	i, err := regexp.Compile(internal)
	if err != nil {
		return Matchers{}, fmt.Errorf("invalid internal accessor module pattern %q: %w", internal, err)
	}
	return Matchers{Trusted: t, InternalAccessor: i, SkipImportCheck: opts.SkipImportCheck}, nil
}

// ForScopes binds compiled matchers to a file's scope tree.
func (m Matchers) ForScopes(scopes *syntax.ScopeTree) *Provenance {
	return &Provenance{
		scopes:           scopes,
		trusted:          m.Trusted,
		internalAccessor: m.InternalAccessor,
		skipImportCheck:  m.SkipImportCheck,
	}
}

// SkipsImportCheck reports whether provenance gating is disabled.
func (p *Provenance) SkipsImportCheck() bool { return p.skipImportCheck }

// IsTrustedComponent reports whether an element name was imported from the
// component library. It does not consult SkipImportCheck; callers gate.
func (p *Provenance) IsTrustedComponent(name syntax.Node, scope syntax.ScopeID) bool {
	ident, ok := rootIdentifier(name)
	if !ok {
		return false
	}
	return IsImportedFrom(p.trusted, p.scopes, scope, ident.Name)
}

// IsThemeAccessor recognizes the public themeGet helper.
func (p *Provenance) IsThemeAccessor(callee syntax.Node, scope syntax.ScopeID) bool {
	ident, ok := callee.(*syntax.Identifier)
	if !ok || ident.Name != DefaultAccessorName {
		return false
	}
	if p.skipImportCheck {
		return true
	}
	return IsImportedFrom(p.trusted, p.scopes, scope, ident.Name)
}
