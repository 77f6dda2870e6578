// Package rewrite turns a deprecated token usage into a report with zero, one
// or many replacement edits.
package rewrite

import (
	"fmt"

	"tokenlint/internal/engine/lint"
	"tokenlint/internal/engine/matcher"
	"tokenlint/internal/engine/tokens"
)

// HelpText is appended when a token has no replacement.
const HelpText = "Go to https://primer.style/primitives or reach out in the #primer channel on Slack to find a suitable replacement."

// Propose builds the report for site given its table entry.
func Propose(site matcher.UsageSite, replacement tokens.Replacement) lint.Report {
	display := site.Display
	if display == nil {
		display = matcher.Identity
	}
	deprecated := display(site.Name)

	report := lint.Report{Node: site.Literal, Name: site.Name}
	switch replacement.Kind() {
	case tokens.KindSingle:
		next := display(replacement.Name())
		report.Message = fmt.Sprintf(`"%s" is deprecated. Use "%s" instead.`, deprecated, next)
		report.Fix = replaceLiteral(site, next)
	case tokens.KindMultiple:
		report.Message = fmt.Sprintf(`"%s" is deprecated.`, deprecated)
		for _, candidate := range replacement.Candidates() {
			next := display(candidate)
			report.Suggestions = append(report.Suggestions, lint.Suggestion{
				Desc: fmt.Sprintf(`Use "%s" instead.`, next),
				Fix:  *replaceLiteral(site, next),
			})
		}
	default:
		report.Message = fmt.Sprintf(`"%s" is deprecated. %s`, deprecated, HelpText)
	}
	return report
}

func replaceLiteral(site matcher.UsageSite, text string) *lint.Edit {
	lit := site.Literal
	if lit.JSX {
		return &lint.Edit{Range: lit.Span(), Text: JSXAttributeValue(text, lit.Quote())}
	}
	return &lint.Edit{Range: lit.Span(), Text: QuoteLiteral(text, lit.Quote())}
}
