package lint

import "tokenlint/internal/engine/syntax"

// Edit replaces the source bytes in Range with Text.
type Edit struct {
	Range syntax.Span
	Text  string
}

// Suggestion is a fix the user must pick; siblings are alternatives.
type Suggestion struct {
	Desc string
	Fix  Edit
}

// Report is what a rule emits, anchored at a node.
type Report struct {
	Node syntax.Node
	// Name is the deprecated table key, without any namespace prefix such
	// as "colors.".
	Name        string
	Message     string
	Fix         *Edit
	Suggestions []Suggestion
}

// Finding is a located Report ready for the driver.
type Finding struct {
	RuleID      string
	File        string
	Name        string
	Message     string
	Severity    Severity
	Range       syntax.Span
	Start       syntax.Position
	End         syntax.Position
	Fix         *Edit
	Suggestions []Suggestion
}

// Fixable reports whether the finding carries an auto-applicable fix.
func (f Finding) Fixable() bool { return f.Fix != nil }

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Meta describes a rule the way lint drivers expect.
type Meta struct {
	Type           string
	Description    string
	DocsURL        string
	Fixable        bool
	HasSuggestions bool
}
