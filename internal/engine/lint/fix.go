package lint

import (
	"sort"
)

// DefaultMaxFixPasses bounds the fix loop, matching common lint drivers.
const DefaultMaxFixPasses = 10

// ApplyEdits applies edits in position order and returns the new source and
// the number applied. An edit overlapping one already applied, or lying
// outside the source, is skipped.
func ApplyEdits(source []byte, edits []Edit) ([]byte, int) {
	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Range.Start < ordered[j].Range.Start
	})

	out := make([]byte, 0, len(source))
	last := 0
	applied := 0
	for _, e := range ordered {
		if e.Range.Start < last || e.Range.End > len(source) || e.Range.Start > e.Range.End {
			continue
		}
		out = append(out, source[last:e.Range.Start]...)
		out = append(out, e.Text...)
		last = e.Range.End
		applied++
	}
	out = append(out, source[last:]...)
	return out, applied
}

// ApplyFixes applies the auto fixes of findings. Suggestions are never
// applied here.
func ApplyFixes(source []byte, findings []Finding) ([]byte, int) {
	edits := make([]Edit, 0, len(findings))
	for _, f := range findings {
		if f.Fix != nil {
			edits = append(edits, *f.Fix)
		}
	}
	if len(edits) == 0 {
		return source, 0
	}
	return ApplyEdits(source, edits)
}

// LintFunc lints source text from scratch.
type LintFunc func(source []byte) ([]Finding, error)

// FixResult is the outcome of FixLoop.
type FixResult struct {
	Output    []byte
	Passes    int
	Applied   int
	Remaining []Finding
}

// Changed reports whether any fix was applied.
func (r FixResult) Changed() bool { return r.Applied > 0 }

// FixLoop lints, applies fixes and re-lints until nothing is fixable or
// maxPasses passes have applied fixes. Remaining holds the findings of the
// final source.
func FixLoop(source []byte, maxPasses int, lintFn LintFunc) (FixResult, error) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	res := FixResult{Output: source}
	findings, err := lintFn(source)
	if err != nil {
		return res, err
	}
	for res.Passes < maxPasses {
		out, n := ApplyFixes(res.Output, findings)
		if n == 0 {
			break
		}
		res.Output = out
		res.Applied += n
		res.Passes++

		findings, err = lintFn(res.Output)
		if err != nil {
			return res, err
		}
	}
	res.Remaining = findings
	return res, nil
}
