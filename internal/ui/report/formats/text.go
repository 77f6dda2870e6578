package formats

import (
	"fmt"
	"io"
	"strings"

	"tokenlint/internal/engine/lint"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type TextOptions struct {
	NoColor bool
}

type textStyles struct {
	path, pos, err, warn, rule, hint, summary, ok lipgloss.Style
}

func newTextStyles(w io.Writer, opts TextOptions) textStyles {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return textStyles{
		path:    r.NewStyle().Underline(true),
		pos:     r.NewStyle().Foreground(lipgloss.Color("#64748B")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#F87171")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
		rule:    r.NewStyle().Foreground(lipgloss.Color("#64748B")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Italic(true),
		summary: r.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
	}
}

// WriteText renders findings grouped per file, in the layout of ESLint's
// stylish formatter. Files without findings are omitted.
func WriteText(w io.Writer, report Report, opts TextOptions) error {
	st := newTextStyles(w, opts)
	var b strings.Builder

	for _, file := range report.sortedFiles() {
		if file.Error == "" && len(file.Findings) == 0 {
			continue
		}
		b.WriteString(st.path.Render(report.relPath(file.Path)))
		b.WriteByte('\n')

		if file.Error != "" {
			fmt.Fprintf(&b, "  %s  %s\n", st.err.Render("fatal"), file.Error)
		}

		posWidth := 0
		for _, f := range file.Findings {
			posWidth = max(posWidth, len(position(f)))
		}
		for _, f := range file.Findings {
			sev := st.err.Render("error  ")
			if f.Severity == lint.SeverityWarning {
				sev = st.warn.Render("warning")
			}
			fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
				st.pos.Render(fmt.Sprintf("%-*s", posWidth, position(f))),
				sev, f.Message, st.rule.Render(f.RuleID))
			for _, s := range f.Suggestions {
				fmt.Fprintf(&b, "  %*s  %s\n", posWidth, "", st.hint.Render("suggestion: "+s.Desc))
			}
		}
		b.WriteByte('\n')
	}

	sum := report.Summary()
	switch {
	case sum.Problems() > 0:
		b.WriteString(st.summary.Render(fmt.Sprintf("✖ %d %s (%d %s, %d %s)",
			sum.Problems(), plural(sum.Problems(), "problem"),
			sum.Errors, plural(sum.Errors, "error"),
			sum.Warnings, plural(sum.Warnings, "warning"))))
		b.WriteByte('\n')
		if sum.Fixable > 0 {
			fmt.Fprintf(&b, "  %d %s potentially fixable with the `--fix` option.\n",
				sum.Fixable, plural(sum.Fixable, "problem"))
		}
	case sum.Failed == 0:
		b.WriteString(st.ok.Render("✔ no deprecated tokens found"))
		b.WriteByte('\n')
	}
	if sum.Failed > 0 {
		fmt.Fprintf(&b, "  %d %s could not be linted.\n", sum.Failed, plural(sum.Failed, "file"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func position(f lint.Finding) string {
	return fmt.Sprintf("%d:%d", f.Start.Line, f.Start.Column)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
