package lint

import (
	"sort"

	"tokenlint/internal/engine/syntax"
)

// Handler processes one node of the kind it was registered for.
type Handler func(node syntax.Node, scope syntax.ScopeID)

// Rule builds per-file handlers keyed by node kind.
type Rule interface {
	ID() string
	Meta() Meta
	Create(ctx *Context) map[syntax.Kind]Handler
}

// Context is a rule's view of the file being linted.
type Context struct {
	File     *syntax.File
	ruleID   string
	severity Severity
	findings []Finding
}

// Report locates r and records it as a finding.
func (c *Context) Report(r Report) {
	span := r.Node.Span()
	c.findings = append(c.findings, Finding{
		RuleID:      c.ruleID,
		File:        c.File.Path,
		Name:        r.Name,
		Message:     r.Message,
		Severity:    c.severity,
		Range:       span,
		Start:       c.File.Position(span.Start),
		End:         c.File.Position(span.End),
		Fix:         r.Fix,
		Suggestions: r.Suggestions,
	})
}

// Engine walks a file once and dispatches every node to the handlers of all
// rules registered for its kind.
type Engine struct {
	rules    []Rule
	severity Severity
}

func NewEngine(severity Severity, rules ...Rule) *Engine {
	if severity == "" {
		severity = SeverityError
	}
	return &Engine{rules: rules, severity: severity}
}

func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Run lints file and returns findings ordered by position.
func (e *Engine) Run(file *syntax.File) []Finding {
	if file == nil || file.Root == nil {
		return nil
	}

	contexts := make([]*Context, 0, len(e.rules))
	handlers := make(map[syntax.Kind][]Handler)
	for _, rule := range e.rules {
		ctx := &Context{File: file, ruleID: rule.ID(), severity: e.severity}
		contexts = append(contexts, ctx)
		for kind, h := range rule.Create(ctx) {
			handlers[kind] = append(handlers[kind], h)
		}
	}

	syntax.Walk(file.Root, file.RootScope, func(n syntax.Node, scope syntax.ScopeID) bool {
		for _, h := range handlers[n.Kind()] {
			h(n, scope)
		}
		return true
	})

	var findings []Finding
	for _, ctx := range contexts {
		findings = append(findings, ctx.findings...)
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Range.Start < findings[j].Range.Start
	})
	return findings
}
