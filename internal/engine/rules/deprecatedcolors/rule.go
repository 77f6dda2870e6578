// Package deprecatedcolors is the no-deprecated-colors rule: it reports
// deprecated color and shadow tokens in component props, sx objects and theme
// accessor calls, fixing them when the replacement is unambiguous.
package deprecatedcolors

import (
	"tokenlint/internal/engine/lint"
	"tokenlint/internal/engine/matcher"
	"tokenlint/internal/engine/resolver"
	"tokenlint/internal/engine/rewrite"
	"tokenlint/internal/engine/syntax"
	"tokenlint/internal/engine/tokens"
)

const ID = "no-deprecated-colors"

// Options mirror the rule's configuration object.
type Options struct {
	SkipImportCheck        bool
	TrustedModule          string
	InternalAccessorModule string
}

type Rule struct {
	table    *tokens.Table
	matchers resolver.Matchers
}

// New compiles the rule once; the result is safe to share across files.
func New(table *tokens.Table, opts Options) (*Rule, error) {
	m, err := resolver.Compile(resolver.ProvenanceOptions{
		TrustedModule:          opts.TrustedModule,
		InternalAccessorModule: opts.InternalAccessorModule,
		SkipImportCheck:        opts.SkipImportCheck,
	})
	if err != nil {
		return nil, err
	}
	return &Rule{table: table, matchers: m}, nil
}

func (r *Rule) ID() string { return ID }

func (r *Rule) Meta() lint.Meta {
	return lint.Meta{
		Type:           "suggestion",
		Description:    "Disallow deprecated color and shadow tokens",
		DocsURL:        "https://primer.style/primitives",
		Fixable:        true,
		HasSuggestions: true,
	}
}

func (r *Rule) Create(ctx *lint.Context) map[syntax.Kind]lint.Handler {
	env := matcher.Env{Table: r.table, Provenance: r.matchers.ForScopes(ctx.File.Scopes)}
	report := func(sites []matcher.UsageSite) {
		for _, site := range sites {
			replacement, _ := r.table.Lookup(site.Name)
			ctx.Report(rewrite.Propose(site, replacement))
		}
	}

	return map[syntax.Kind]lint.Handler{
		syntax.KindJSXOpeningElement: func(n syntax.Node, scope syntax.ScopeID) {
			report(matcher.MatchElement(n.(*syntax.JSXOpeningElement), scope, env))
		},
		syntax.KindCallExpression: func(n syntax.Node, scope syntax.ScopeID) {
			report(matcher.MatchThemeAccessor(n.(*syntax.CallExpression), scope, env))
		},
	}
}
