package parser

import (
	"tokenlint/internal/engine/syntax"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// converter maps a tree-sitter concrete tree onto syntax nodes, declaring
// bindings into the scope tree as it goes. Lookups happen only after the whole
// file is converted, so hoisting needs no second pass.
type converter struct {
	src    []byte
	scopes *syntax.ScopeTree
}

// skipped node kinds never contain anything the rules look at.
var skipped = map[string]bool{
	"comment":                true,
	"hash_bang_line":         true,
	"type_annotation":        true,
	"type_arguments":         true,
	"type_parameters":        true,
	"interface_declaration":  true,
	"type_alias_declaration": true,
	"ambient_declaration":    true,
	"jsx_text":               true,
	"jsx_closing_element":    true,
	"regex":                  true,
}

func (c *converter) span(n *sitter.Node) syntax.Span {
	return syntax.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Utf8Text(c.src)
}

func (c *converter) program(root *sitter.Node) syntax.Node {
	module := c.scopes.Push(syntax.ScopeModule, syntax.GlobalScope)
	return &syntax.Block{
		Range: c.span(root),
		Opens: module,
		Items: c.children(root, module),
	}
}

func (c *converter) children(n *sitter.Node, scope syntax.ScopeID) []syntax.Node {
	var items []syntax.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if out := c.convert(n.NamedChild(i), scope); out != nil {
			items = append(items, out)
		}
	}
	return items
}

// transparent statements add nothing over their only child. Expression
// wrappers (unary, await, as) are kept so a literal inside one is not
// mistaken for a bare literal.
var transparent = map[string]bool{
	"expression_statement": true,
	"export_statement":     true,
	"return_statement":     true,
	"else_clause":          true,
	"labeled_statement":    true,
}

// block wraps items into a Block. Empty wrappers disappear.
func (c *converter) block(n *sitter.Node, opens syntax.ScopeID, items []syntax.Node) syntax.Node {
	if opens == syntax.NoScope {
		if len(items) == 0 {
			return nil
		}
		if len(items) == 1 && transparent[n.Kind()] {
			return items[0]
		}
	}
	return &syntax.Block{Range: c.span(n), Opens: opens, Items: items}
}

func (c *converter) convert(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	if n == nil || skipped[n.Kind()] {
		return nil
	}
	switch n.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"private_property_identifier", "statement_identifier":
		return &syntax.Identifier{Range: c.span(n), Name: c.text(n)}
	case "string":
		raw := c.text(n)
		return &syntax.StringLiteral{Range: c.span(n), Value: stringValue(raw), Raw: raw}
	case "number":
		return &syntax.NumericLiteral{Range: c.span(n), Raw: c.text(n)}
	case "template_string":
		return c.template(n, scope)
	case "parenthesized_expression":
		return c.unwrap(n, scope)
	case "object":
		return c.object(n, scope)
	case "pair":
		return c.pair(n, scope)
	case "spread_element":
		return &syntax.SpreadElement{Range: c.span(n), Argument: c.convert(firstNamed(n), scope)}
	case "member_expression":
		return &syntax.MemberExpression{
			Range:    c.span(n),
			Object:   c.convert(n.ChildByFieldName("object"), scope),
			Property: c.convert(n.ChildByFieldName("property"), scope),
		}
	case "subscript_expression":
		return &syntax.MemberExpression{
			Range:    c.span(n),
			Object:   c.convert(n.ChildByFieldName("object"), scope),
			Property: c.convert(n.ChildByFieldName("index"), scope),
			Computed: true,
		}
	case "call_expression":
		return c.call(n, scope)

	case "import_statement":
		c.importStatement(n, scope)
		return nil
	case "lexical_declaration":
		return c.declaration(n, scope, scope)
	case "variable_declaration":
		return c.declaration(n, scope, c.scopes.NearestOf(scope, syntax.ScopeFunction, syntax.ScopeModule, syntax.ScopeGlobal))
	case "function_declaration", "generator_function_declaration":
		return c.function(n, scope, true)
	case "function_expression", "function", "generator_function", "arrow_function",
		"method_definition", "function_signature":
		return c.function(n, scope, false)
	case "class_declaration", "abstract_class_declaration":
		return c.class(n, scope, true)
	case "class":
		return c.class(n, scope, false)
	case "statement_block", "switch_body", "class_static_block":
		inner := c.scopes.Push(syntax.ScopeBlock, scope)
		return c.block(n, inner, c.children(n, inner))
	case "for_statement":
		inner := c.scopes.Push(syntax.ScopeBlock, scope)
		return c.block(n, inner, c.children(n, inner))
	case "for_in_statement":
		return c.forIn(n, scope)
	case "catch_clause":
		return c.catch(n, scope)

	case "jsx_element":
		return c.jsxElement(n, scope)
	case "jsx_opening_element", "jsx_self_closing_element":
		return c.jsxOpening(n, scope)
	case "jsx_expression":
		return c.jsxContainer(n, scope)
	}
	return c.block(n, syntax.NoScope, c.children(n, scope))
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		if ch != nil && ch.Kind() != "comment" {
			return ch
		}
	}
	return nil
}

// unwrap drops parentheses so (expr) is seen as expr.
func (c *converter) unwrap(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	inner := firstNamed(n)
	if inner == nil {
		return nil
	}
	return c.convert(inner, scope)
}

func (c *converter) template(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	tl := &syntax.TemplateLiteral{Range: c.span(n)}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		if ch.Kind() != "template_substitution" {
			continue
		}
		if expr := c.convert(firstNamed(ch), scope); expr != nil {
			tl.Expressions = append(tl.Expressions, expr)
		}
	}
	return tl
}

func (c *converter) object(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	obj := &syntax.ObjectExpression{Range: c.span(n)}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		switch ch.Kind() {
		case "comment":
			continue
		case "pair", "spread_element":
			if p := c.convert(ch, scope); p != nil {
				obj.Properties = append(obj.Properties, p)
			}
		case "shorthand_property_identifier":
			name := &syntax.Identifier{Range: c.span(ch), Name: c.text(ch)}
			obj.Properties = append(obj.Properties, &syntax.Property{
				Range: name.Range, Key: name, Value: name, Shorthand: true,
			})
		default:
			// methods and accessors are properties whose value is a function
			obj.Properties = append(obj.Properties, &syntax.Property{
				Range: c.span(ch),
				Key:   c.convert(ch.ChildByFieldName("name"), scope),
				Value: c.convert(ch, scope),
			})
		}
	}
	return obj
}

func (c *converter) pair(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	prop := &syntax.Property{Range: c.span(n)}
	key := n.ChildByFieldName("key")
	if key != nil && key.Kind() == "computed_property_name" {
		prop.Computed = true
		prop.Key = c.convert(firstNamed(key), scope)
	} else {
		prop.Key = c.convert(key, scope)
	}
	prop.Value = c.convert(n.ChildByFieldName("value"), scope)
	return prop
}

func (c *converter) call(n *sitter.Node, scope syntax.ScopeID) syntax.Node {
	args := n.ChildByFieldName("arguments")
	callee := c.convert(n.ChildByFieldName("function"), scope)
	if args == nil || args.Kind() != "arguments" {
		// tagged template
		return c.block(n, syntax.NoScope, compact(callee, c.convert(args, scope)))
	}
	call := &syntax.CallExpression{Range: c.span(n), Callee: callee}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		ch := args.NamedChild(i)
		if ch.Kind() == "comment" {
			continue
		}
		arg := c.convert(ch, scope)
		if arg == nil {
			// keep argument positions stable for literals like true or null
			arg = &syntax.Block{Range: c.span(ch), Opens: syntax.NoScope}
		}
		call.Arguments = append(call.Arguments, arg)
	}
	return call
}

func compact(nodes ...syntax.Node) []syntax.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
