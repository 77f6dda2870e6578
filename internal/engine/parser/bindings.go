package parser

import (
	"tokenlint/internal/engine/syntax"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

func (c *converter) declare(scope syntax.ScopeID, kind syntax.DefinitionKind, name *sitter.Node) {
	c.scopes.Declare(scope, syntax.Definition{Kind: kind, Name: c.text(name), Range: c.span(name)})
}

// declarePattern declares every binding identifier of a parameter list or a
// destructuring pattern.
func (c *converter) declarePattern(scope syntax.ScopeID, kind syntax.DefinitionKind, n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		c.declare(scope, kind, n)
	case "assignment_pattern", "object_assignment_pattern":
		c.declarePattern(scope, kind, n.ChildByFieldName("left"))
	case "pair_pattern":
		c.declarePattern(scope, kind, n.ChildByFieldName("value"))
	case "required_parameter", "optional_parameter":
		c.declarePattern(scope, kind, n.ChildByFieldName("pattern"))
	case "formal_parameters", "object_pattern", "array_pattern", "rest_pattern":
		for i := uint(0); i < n.NamedChildCount(); i++ {
			c.declarePattern(scope, kind, n.NamedChild(i))
		}
	}
}

func (c *converter) importStatement(n *sitter.Node, scope syntax.ScopeID) {
	source := ""
	if src := n.ChildByFieldName("source"); src != nil {
		source = stringValue(c.text(src))
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		switch ch.Kind() {
		case "import_clause":
			c.importClause(ch, scope, source)
		case "import_require_clause":
			// import X = require('mod')
			req := source
			if src := ch.ChildByFieldName("source"); src != nil {
				req = stringValue(c.text(src))
			}
			if id := firstNamed(ch); id != nil && id.Kind() == "identifier" {
				c.importBinding(scope, id, req, "default")
			}
		}
	}
}

func (c *converter) importClause(n *sitter.Node, scope syntax.ScopeID, source string) {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		switch ch.Kind() {
		case "identifier":
			c.importBinding(scope, ch, source, "default")
		case "namespace_import":
			if id := firstNamed(ch); id != nil {
				c.importBinding(scope, id, source, "*")
			}
		case "named_imports":
			for j := uint(0); j < ch.NamedChildCount(); j++ {
				spec := ch.NamedChild(j)
				if spec.Kind() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				imported := c.text(name)
				if name.Kind() == "string" {
					imported = stringValue(imported)
				}
				local := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = alias
				}
				c.importBinding(scope, local, source, imported)
			}
		}
	}
}

func (c *converter) importBinding(scope syntax.ScopeID, local *sitter.Node, source, imported string) {
	c.scopes.Declare(scope, syntax.Definition{
		Kind:     syntax.DefImportBinding,
		Name:     c.text(local),
		Source:   source,
		Imported: imported,
		Range:    c.span(local),
	})
}

// declaration handles let/const (target is the current scope) and var (target
// is the enclosing function or module scope).
func (c *converter) declaration(n *sitter.Node, scope, target syntax.ScopeID) syntax.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		if ch.Kind() == "variable_declarator" {
			c.declarePattern(target, syntax.DefVariable, ch.ChildByFieldName("name"))
		}
	}
	return c.block(n, syntax.NoScope, c.children(n, scope))
}

func (c *converter) function(n *sitter.Node, scope syntax.ScopeID, declaration bool) syntax.Node {
	name := n.ChildByFieldName("name")
	if declaration && name != nil {
		c.declare(scope, syntax.DefFunctionName, name)
	}
	fn := c.scopes.Push(syntax.ScopeFunction, scope)
	// a named function expression sees its own name
	if !declaration && name != nil && name.Kind() == "identifier" {
		c.declare(fn, syntax.DefFunctionName, name)
	}

	var items []syntax.Node
	if params := n.ChildByFieldName("parameters"); params != nil {
		c.declarePattern(fn, syntax.DefParameter, params)
		items = append(items, c.children(params, fn)...)
	} else if param := n.ChildByFieldName("parameter"); param != nil {
		c.declarePattern(fn, syntax.DefParameter, param)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		if body.Kind() == "statement_block" {
			items = append(items, c.children(body, fn)...)
		} else if out := c.convert(body, fn); out != nil {
			items = append(items, out)
		}
	}
	return &syntax.Block{Range: c.span(n), Opens: fn, Items: items}
}

func (c *converter) class(n *sitter.Node, scope syntax.ScopeID, declaration bool) syntax.Node {
	name := n.ChildByFieldName("name")
	if declaration && name != nil {
		c.declare(scope, syntax.DefClassName, name)
	}
	cls := c.scopes.Push(syntax.ScopeClass, scope)
	if name != nil {
		c.declare(cls, syntax.DefClassName, name)
	}
	return &syntax.Block{Range: c.span(n), Opens: cls, Items: c.children(n, cls)}
}

func (c *converter) forIn(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	inner := c.scopes.Push(syntax.ScopeBlock, scope)
	if kind := n.ChildByFieldName("kind"); kind != nil {
		target := inner
		if c.text(kind) == "var" {
			target = c.scopes.NearestOf(scope, syntax.ScopeFunction, syntax.ScopeModule, syntax.ScopeGlobal)
		}
		c.declarePattern(target, syntax.DefVariable, n.ChildByFieldName("left"))
	}
	return &syntax.Block{Range: c.span(n), Opens: inner, Items: c.children(n, inner)}
}

func (c *converter) catch(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	inner := c.scopes.Push(syntax.ScopeCatch, scope)
	c.declarePattern(inner, syntax.DefCatchClause, n.ChildByFieldName("parameter"))
	return &syntax.Block{Range: c.span(n), Opens: inner, Items: c.children(n, inner)}
}
