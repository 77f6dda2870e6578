package matcher

import (
	"testing"

	"tokenlint/internal/engine/resolver"
	"tokenlint/internal/engine/syntax"
	"tokenlint/internal/engine/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = tokens.NewTable(map[string]tokens.Replacement{
	"yellow.0":    tokens.SingleReplacement("attention.fg"),
	"border.info": tokens.MultipleReplacement("accent.emphasis", "accent.muted"),
	"fade.fg10":   tokens.NoReplacement(),
})

type scene struct {
	tree   *syntax.ScopeTree
	module syntax.ScopeID
}

func newScene(imports map[string]string) scene {
	tree := syntax.NewScopeTree()
	module := tree.Push(syntax.ScopeModule, syntax.GlobalScope)
	for name, source := range imports {
		tree.Declare(module, syntax.Definition{Kind: syntax.DefImportBinding, Name: name, Source: source, Imported: name})
	}
	return scene{tree: tree, module: module}
}

func (s scene) env(t *testing.T, skip bool) Env {
	t.Helper()
	m, err := resolver.Compile(resolver.ProvenanceOptions{SkipImportCheck: skip})
	require.NoError(t, err)
	return Env{Table: testTable, Provenance: m.ForScopes(s.tree)}
}

func str(v string) *syntax.StringLiteral {
	return &syntax.StringLiteral{Value: v, Raw: `"` + v + `"`}
}

func attr(name string, value syntax.Node) *syntax.JSXAttribute {
	return &syntax.JSXAttribute{Name: name, Value: value}
}

func sx(props ...syntax.Node) *syntax.JSXAttribute {
	return attr(SxProp, &syntax.JSXExpressionContainer{Expression: &syntax.ObjectExpression{Properties: props}})
}

func prop(key string, value syntax.Node) *syntax.Property {
	return &syntax.Property{Key: &syntax.Identifier{Name: key}, Value: value}
}

func element(name string, attrs ...syntax.Node) *syntax.JSXOpeningElement {
	return &syntax.JSXOpeningElement{Name: &syntax.Identifier{Name: name}, Attributes: attrs}
}

func names(sites []UsageSite) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Name)
	}
	return out
}

func TestMatchStyleProp(t *testing.T) {
	env := newScene(nil).env(t, true)

	cases := []struct {
		name string
		attr *syntax.JSXAttribute
		want []string
	}{
		{name: "ColorProp", attr: attr("color", str("yellow.0")), want: []string{"yellow.0"}},
		{name: "BoxShadow", attr: attr("boxShadow", str("fade.fg10")), want: []string{"fade.fg10"}},
		{name: "NotAColorProp", attr: attr("title", str("yellow.0")), want: []string{}},
		{name: "CurrentToken", attr: attr("bg", str("attention.fg")), want: []string{}},
		{name: "ExpressionValue", attr: attr("color", &syntax.JSXExpressionContainer{Expression: str("yellow.0")}), want: []string{}},
		{name: "IdentifierValue", attr: attr("color", &syntax.Identifier{Name: "yellow"}), want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(MatchStyleProp(tc.attr, env)))
		})
	}
}

func TestMatchSxProperties(t *testing.T) {
	env := newScene(nil).env(t, true)

	a := sx(
		prop("color", str("yellow.0")),
		prop("padding", str("yellow.0")),
		&syntax.Property{Key: &syntax.StringLiteral{Value: "borderColor"}, Value: str("border.info")},
		&syntax.Property{Key: &syntax.Identifier{Name: "bg"}, Value: str("fade.fg10"), Computed: true},
		&syntax.SpreadElement{Argument: &syntax.Identifier{Name: "rest"}},
		prop("bg", &syntax.Identifier{Name: "dynamic"}),
		prop("color", &syntax.ObjectExpression{Properties: []syntax.Node{prop("color", str("yellow.0"))}}),
	)
	sites := MatchSxProperties(a, env)
	assert.Equal(t, []string{"yellow.0", "border.info"}, names(sites))
	for _, s := range sites {
		assert.Equal(t, s.Name, s.Display(s.Name))
	}

	assert.Empty(t, MatchSxProperties(attr("css", &syntax.JSXExpressionContainer{Expression: &syntax.ObjectExpression{Properties: []syntax.Node{prop("color", str("yellow.0"))}}}), env))
	assert.Empty(t, MatchSxProperties(attr(SxProp, &syntax.JSXExpressionContainer{Expression: &syntax.Identifier{Name: "styles"}}), env))
	assert.Empty(t, MatchSxProperties(attr(SxProp, str("yellow.0")), env))
}

func TestMatchElementProvenanceGate(t *testing.T) {
	s := newScene(map[string]string{"Box": "@primer/components", "Card": "./Card"})
	trusted := element("Box", attr("color", str("yellow.0")))
	untrusted := element("Card", attr("color", str("yellow.0")))
	undeclared := element("div", attr("color", str("yellow.0")))

	strict := s.env(t, false)
	assert.Equal(t, []string{"yellow.0"}, names(MatchElement(trusted, s.module, strict)))
	assert.Empty(t, MatchElement(untrusted, s.module, strict))
	assert.Empty(t, MatchElement(undeclared, s.module, strict))

	loose := s.env(t, true)
	assert.Equal(t, []string{"yellow.0"}, names(MatchElement(untrusted, s.module, loose)))
	assert.Equal(t, []string{"yellow.0"}, names(MatchElement(undeclared, s.module, loose)))
}

func TestMatchElementOrder(t *testing.T) {
	s := newScene(map[string]string{"Box": "@primer/components"})
	el := element("Box",
		attr("bg", str("fade.fg10")),
		&syntax.JSXSpreadAttribute{Argument: &syntax.Identifier{Name: "props"}},
		attr("disabled", nil),
		sx(prop("color", str("yellow.0")), prop("borderColor", str("border.info"))),
		attr("color", str("yellow.0")),
	)
	sites := MatchElement(el, s.module, s.env(t, false))
	assert.Equal(t, []string{"fade.fg10", "yellow.0", "border.info", "yellow.0"}, names(sites))
}

func themeCall(callee string, args ...syntax.Node) *syntax.CallExpression {
	return &syntax.CallExpression{Callee: &syntax.Identifier{Name: callee}, Arguments: args}
}

func TestMatchThemeAccessor(t *testing.T) {
	s := newScene(map[string]string{"themeGet": "@primer/components", "get": "../constants"})
	env := s.env(t, false)

	sites := MatchThemeAccessor(themeCall("themeGet", str("colors.yellow.0")), s.module, env)
	require.Len(t, sites, 1)
	assert.Equal(t, "yellow.0", sites[0].Name)
	assert.Equal(t, "colors.attention.fg", sites[0].Display("attention.fg"))

	sites = MatchThemeAccessor(themeCall("get", str("shadows.fade.fg10")), s.module, env)
	require.Len(t, sites, 1)
	assert.Equal(t, "fade.fg10", sites[0].Name)
	assert.Equal(t, "shadows.x", sites[0].Display("x"))

	cases := map[string]*syntax.CallExpression{
		"UnknownNamespace": themeCall("themeGet", str("space.yellow.0")),
		"NoNamespace":      themeCall("themeGet", str("yellow")),
		"CurrentToken":     themeCall("themeGet", str("colors.attention.fg")),
		"NoArguments":      themeCall("themeGet"),
		"DynamicArgument":  themeCall("themeGet", &syntax.Identifier{Name: "key"}),
		"TemplateArgument": themeCall("themeGet", &syntax.TemplateLiteral{}),
		"OtherCallee":      themeCall("lookup", str("colors.yellow.0")),
	}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, MatchThemeAccessor(call, s.module, env))
		})
	}
}

func TestMatchThemeAccessorProvenance(t *testing.T) {
	s := newScene(map[string]string{"themeGet": "styled-system", "get": "lodash"})
	call := themeCall("themeGet", str("colors.yellow.0"))
	getCall := themeCall("get", str("colors.yellow.0"))

	assert.Empty(t, MatchThemeAccessor(call, s.module, s.env(t, false)))
	assert.Len(t, MatchThemeAccessor(call, s.module, s.env(t, true)), 1)
	assert.Empty(t, MatchThemeAccessor(getCall, s.module, s.env(t, true)))
}
