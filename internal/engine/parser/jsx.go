package parser

import (
	"tokenlint/internal/engine/syntax"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

func (c *converter) jsxElement(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	return c.block(n, syntax.NoScope, c.children(n, scope))
}

func (c *converter) jsxOpening(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	el := &syntax.JSXOpeningElement{
		Range:       c.span(n),
		SelfClosing: n.Kind() == "jsx_self_closing_element",
	}
	if name := n.ChildByFieldName("name"); name != nil {
		el.Name = c.jsxName(name, scope)
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		switch ch.Kind() {
		case "jsx_attribute":
			el.Attributes = append(el.Attributes, c.jsxAttribute(ch, scope))
		case "jsx_expression":
			if inner := firstNamed(ch); inner != nil && inner.Kind() == "spread_element" {
				el.Attributes = append(el.Attributes, &syntax.JSXSpreadAttribute{
					Range:    c.span(ch),
					Argument: c.convert(firstNamed(inner), scope),
				})
			}
		}
	}
	return el
}

// jsxName converts <A>, <A.B.C> and <a:b> element names.
func (c *converter) jsxName(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	switch n.Kind() {
	case "identifier":
		return &syntax.Identifier{Range: c.span(n), Name: c.text(n)}
	case "member_expression":
		return c.convert(n, scope)
	case "nested_identifier":
		count := n.NamedChildCount()
		if count < 2 {
			break
		}
		prop := n.NamedChild(count - 1)
		return &syntax.MemberExpression{
			Range:    c.span(n),
			Object:   c.jsxName(n.NamedChild(0), scope),
			Property: &syntax.Identifier{Range: c.span(prop), Name: c.text(prop)},
		}
	}
	return &syntax.Identifier{Range: c.span(n), Name: c.text(n)}
}

func (c *converter) jsxAttribute(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	attr := &syntax.JSXAttribute{Range: c.span(n)}
	var parts []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if ch := n.NamedChild(i); ch.Kind() != "comment" {
			parts = append(parts, ch)
		}
	}
	if len(parts) == 0 {
		return attr
	}
	attr.Name = c.text(parts[0])
	if len(parts) < 2 {
		return attr
	}
	switch value := parts[1]; value.Kind() {
	case "string":
		raw := c.text(value)
		attr.Value = &syntax.StringLiteral{Range: c.span(value), Value: jsxStringValue(raw), Raw: raw, JSX: true}
	case "jsx_expression":
		attr.Value = c.jsxContainer(value, scope)
	default:
		attr.Value = c.convert(value, scope)
	}
	return attr
}

func (c *converter) jsxContainer(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	return &syntax.JSXExpressionContainer{
		Range:      c.span(n),
		Expression: c.convert(firstNamed(n), scope),
	}
}
