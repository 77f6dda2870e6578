// Package matcher finds string literals that name deprecated tokens. Every
// matcher is a pure function of one node, its scope and an Env; none of them
// walk the tree.
package matcher

import (
	"strings"

	"tokenlint/internal/engine/resolver"
	"tokenlint/internal/engine/syntax"
	"tokenlint/internal/engine/tokens"
)

// SxProp is the inline style-object prop.
const SxProp = "sx"

// ColorProps are the style props whose values are theme color or shadow keys.
var ColorProps = map[string]bool{
	"color":           true,
	"bg":              true,
	"backgroundColor": true,
	"borderColor":     true,
	"textShadow":      true,
	"boxShadow":       true,
}

// ThemeNamespaces are the accessor path prefixes that hold tokens.
var ThemeNamespaces = map[string]bool{
	"colors":  true,
	"shadows": true,
}

// Identity is the display transform for bare token names.
func Identity(name string) string { return name }

// UsageSite is one literal to report. Display rebuilds the source form of a
// table key, e.g. re-adding a "colors." prefix.
type UsageSite struct {
	Literal *syntax.StringLiteral
	Name    string
	Display func(string) string
}

// Env is what every matcher reads.
type Env struct {
	Table      *tokens.Table
	Provenance *resolver.Provenance
}

func (e Env) deprecated(n syntax.Node) (*syntax.StringLiteral, bool) {
	lit, ok := n.(*syntax.StringLiteral)
	if !ok || !e.Table.Has(lit.Value) {
		return nil, false
	}
	return lit, true
}

// MatchElement runs the attribute matchers on an element from the component
// library, in attribute order, with sx properties before the attribute itself.
func MatchElement(el *syntax.JSXOpeningElement, scope syntax.ScopeID, env Env) []UsageSite {
	if !env.Provenance.SkipsImportCheck() && !env.Provenance.IsTrustedComponent(el.Name, scope) {
		return nil
	}

	var sites []UsageSite
	for _, n := range el.Attributes {
		attr, ok := n.(*syntax.JSXAttribute)
		if !ok || attr.Value == nil {
			continue
		}
		sites = append(sites, MatchSxProperties(attr, env)...)
		sites = append(sites, MatchStyleProp(attr, env)...)
	}
	return sites
}

// MatchStyleProp matches color="gray.5" style attributes.
func MatchStyleProp(attr *syntax.JSXAttribute, env Env) []UsageSite {
	if !ColorProps[attr.Name] {
		return nil
	}
	lit, ok := env.deprecated(attr.Value)
	if !ok {
		return nil
	}
	return []UsageSite{{Literal: lit, Name: lit.Value, Display: Identity}}
}

// MatchSxProperties matches sx={{color: 'gray.5'}}. Only literal, non-computed
// properties are considered; nested objects are not entered.
func MatchSxProperties(attr *syntax.JSXAttribute, env Env) []UsageSite {
	if attr.Name != SxProp {
		return nil
	}
	container, ok := attr.Value.(*syntax.JSXExpressionContainer)
	if !ok {
		return nil
	}
	obj, ok := container.Expression.(*syntax.ObjectExpression)
	if !ok {
		return nil
	}

	var sites []UsageSite
	for _, member := range obj.Properties {
		prop, ok := member.(*syntax.Property)
		if !ok || prop.Computed || prop.Shorthand {
			continue
		}
		if !ColorProps[propertyKey(prop.Key)] {
			continue
		}
		lit, ok := env.deprecated(prop.Value)
		if !ok {
			continue
		}
		sites = append(sites, UsageSite{Literal: lit, Name: lit.Value, Display: Identity})
	}
	return sites
}

func propertyKey(n syntax.Node) string {
	switch k := n.(type) {
	case *syntax.Identifier:
		return k.Name
	case *syntax.StringLiteral:
		return k.Value
	}
	return ""
}

// MatchThemeAccessor matches themeGet('colors.gray.5') and the internal get
// alias. The table key is the path after the namespace segment.
func MatchThemeAccessor(call *syntax.CallExpression, scope syntax.ScopeID, env Env) []UsageSite {
	if !env.Provenance.IsThemeAccessor(call.Callee, scope) && !env.Provenance.IsInternalAccessor(call.Callee, scope) {
		return nil
	}
	if len(call.Arguments) == 0 {
		return nil
	}
	lit, ok := call.Arguments[0].(*syntax.StringLiteral)
	if !ok {
		return nil
	}

	category, path, _ := strings.Cut(lit.Value, ".")
	if !ThemeNamespaces[category] || !env.Table.Has(path) {
		return nil
	}
	return []UsageSite{{
		Literal: lit,
		Name:    path,
		Display: func(name string) string { return category + "." + name },
	}}
}
