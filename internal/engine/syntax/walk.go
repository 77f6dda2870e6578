package syntax

// Children returns the direct children of n in source order. Nil children
// are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Block:
		add(n.Items...)
	case *Identifier, *StringLiteral, *NumericLiteral:
	case *TemplateLiteral:
		add(n.Expressions...)
	case *ObjectExpression:
		add(n.Properties...)
	case *Property:
		add(n.Key, n.Value)
	case *SpreadElement:
		add(n.Argument)
	case *MemberExpression:
		add(n.Object, n.Property)
	case *CallExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *JSXOpeningElement:
		add(n.Name)
		add(n.Attributes...)
	case *JSXAttribute:
		add(n.Value)
	case *JSXSpreadAttribute:
		add(n.Argument)
	case *JSXExpressionContainer:
		add(n.Expression)
	}
	return out
}

// Walk visits n and its descendants depth-first, passing each node the
// innermost scope enclosing it. Returning false from visit skips the node's
// children.
func Walk(n Node, scope ScopeID, visit func(Node, ScopeID) bool) {
	if n == nil {
		return
	}
	if b, ok := n.(*Block); ok && b.Opens != NoScope {
		scope = b.Opens
	}
	if !visit(n, scope) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, scope, visit)
	}
}
