// Package syntax is the node model the lint engine walks. Only the shapes the
// rules inspect get their own variant; everything else is a Block that just
// carries children and, optionally, the lexical scope it opens.
package syntax

// Kind identifies a node variant.
type Kind int

const (
	KindBlock Kind = iota
	KindIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindTemplateLiteral
	KindObjectExpression
	KindProperty
	KindSpreadElement
	KindMemberExpression
	KindCallExpression
	KindJSXOpeningElement
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXExpressionContainer
)

var kindNames = [...]string{
	KindBlock:                  "Block",
	KindIdentifier:             "Identifier",
	KindStringLiteral:          "StringLiteral",
	KindNumericLiteral:         "NumericLiteral",
	KindTemplateLiteral:        "TemplateLiteral",
	KindObjectExpression:       "ObjectExpression",
	KindProperty:               "Property",
	KindSpreadElement:          "SpreadElement",
	KindMemberExpression:       "MemberExpression",
	KindCallExpression:         "CallExpression",
	KindJSXOpeningElement:      "JSXOpeningElement",
	KindJSXAttribute:           "JSXAttribute",
	KindJSXSpreadAttribute:     "JSXSpreadAttribute",
	KindJSXExpressionContainer: "JSXExpressionContainer",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Span is a half-open byte range into the file source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Node is implemented only by the variants in this package.
type Node interface {
	Kind() Kind
	Span() Span
	sealed()
}

// Block is syntax the rules never inspect.
type Block struct {
	Range Span
	// Opens is the scope this node introduces, or NoScope.
	Opens ScopeID
	Items []Node
}

type Identifier struct {
	Range Span
	Name  string
}

// StringLiteral is a quoted string in either JS or JSX attribute position.
type StringLiteral struct {
	Range Span
	Value string
	// Raw is the source text including quotes.
	Raw string
	// JSX attribute strings have no escape sequences.
	JSX bool
}

// Quote returns the quote character used in the source, defaulting to '"'.
func (s *StringLiteral) Quote() byte {
	if len(s.Raw) > 0 && (s.Raw[0] == '\'' || s.Raw[0] == '"') {
		return s.Raw[0]
	}
	return '"'
}

type NumericLiteral struct {
	Range Span
	Raw   string
}

type TemplateLiteral struct {
	Range       Span
	Expressions []Node
}

type ObjectExpression struct {
	Range Span
	// Properties holds *Property and *SpreadElement values.
	Properties []Node
}

type Property struct {
	Range Span
	// Key is an *Identifier, *StringLiteral, *NumericLiteral or, when
	// Computed, any expression.
	Key       Node
	Value     Node
	Computed  bool
	Shorthand bool
}

type SpreadElement struct {
	Range    Span
	Argument Node
}

type MemberExpression struct {
	Range    Span
	Object   Node
	Property Node
	Computed bool
}

type CallExpression struct {
	Range     Span
	Callee    Node
	Arguments []Node
}

// JSXOpeningElement covers both <X ...> and <X ... />.
type JSXOpeningElement struct {
	Range Span
	// Name is an *Identifier or a *MemberExpression for <A.B>.
	Name        Node
	Attributes  []Node
	SelfClosing bool
}

type JSXAttribute struct {
	Range Span
	Name  string
	// Value is nil for boolean attributes like <X disabled>.
	Value Node
}

type JSXSpreadAttribute struct {
	Range    Span
	Argument Node
}

type JSXExpressionContainer struct {
	Range Span
	// Expression is nil for {} and comment-only containers.
	Expression Node
}

func (n *Block) Kind() Kind                  { return KindBlock }
func (n *Identifier) Kind() Kind             { return KindIdentifier }
func (n *StringLiteral) Kind() Kind          { return KindStringLiteral }
func (n *NumericLiteral) Kind() Kind         { return KindNumericLiteral }
func (n *TemplateLiteral) Kind() Kind        { return KindTemplateLiteral }
func (n *ObjectExpression) Kind() Kind       { return KindObjectExpression }
func (n *Property) Kind() Kind               { return KindProperty }
func (n *SpreadElement) Kind() Kind          { return KindSpreadElement }
func (n *MemberExpression) Kind() Kind       { return KindMemberExpression }
func (n *CallExpression) Kind() Kind         { return KindCallExpression }
func (n *JSXOpeningElement) Kind() Kind      { return KindJSXOpeningElement }
func (n *JSXAttribute) Kind() Kind           { return KindJSXAttribute }
func (n *JSXSpreadAttribute) Kind() Kind     { return KindJSXSpreadAttribute }
func (n *JSXExpressionContainer) Kind() Kind { return KindJSXExpressionContainer }

func (n *Block) Span() Span                  { return n.Range }
func (n *Identifier) Span() Span             { return n.Range }
func (n *StringLiteral) Span() Span          { return n.Range }
func (n *NumericLiteral) Span() Span         { return n.Range }
func (n *TemplateLiteral) Span() Span        { return n.Range }
func (n *ObjectExpression) Span() Span       { return n.Range }
func (n *Property) Span() Span               { return n.Range }
func (n *SpreadElement) Span() Span          { return n.Range }
func (n *MemberExpression) Span() Span       { return n.Range }
func (n *CallExpression) Span() Span         { return n.Range }
func (n *JSXOpeningElement) Span() Span      { return n.Range }
func (n *JSXAttribute) Span() Span           { return n.Range }
func (n *JSXSpreadAttribute) Span() Span     { return n.Range }
func (n *JSXExpressionContainer) Span() Span { return n.Range }

func (*Block) sealed()                  {}
func (*Identifier) sealed()             {}
func (*StringLiteral) sealed()          {}
func (*NumericLiteral) sealed()         {}
func (*TemplateLiteral) sealed()        {}
func (*ObjectExpression) sealed()       {}
func (*Property) sealed()               {}
func (*SpreadElement) sealed()          {}
func (*MemberExpression) sealed()       {}
func (*CallExpression) sealed()         {}
func (*JSXOpeningElement) sealed()      {}
func (*JSXAttribute) sealed()           {}
func (*JSXSpreadAttribute) sealed()     {}
func (*JSXExpressionContainer) sealed() {}
