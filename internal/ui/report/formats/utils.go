package formats

import (
	"sort"

	"tokenlint/internal/engine/lint"
	"tokenlint/internal/shared/util"
)

// RuleInfo describes one rule for formats that list rule metadata.
type RuleInfo struct {
	ID   string
	Meta lint.Meta
}

// FileReport is one linted file. Error is set when the file could not be
// linted; Findings is then empty.
type FileReport struct {
	Path     string
	Findings []lint.Finding
	Error    string
}

// Report is the input to every format.
type Report struct {
	// Root makes paths relative; empty keeps them as given.
	Root  string
	Rules []RuleInfo
	Files []FileReport
}

// Summary counts findings the way the text footer prints them.
type Summary struct {
	Errors   int
	Warnings int
	Fixable  int
	Failed   int
}

func (s Summary) Problems() int { return s.Errors + s.Warnings }

func (r Report) Summary() Summary {
	var s Summary
	for _, f := range r.Files {
		if f.Error != "" {
			s.Failed++
		}
		for _, finding := range f.Findings {
			if finding.Severity == lint.SeverityWarning {
				s.Warnings++
			} else {
				s.Errors++
			}
			if finding.Fixable() {
				s.Fixable++
			}
		}
	}
	return s
}

func (r Report) relPath(path string) string {
	return util.RelativeSlashPath(r.Root, path)
}

// sortedFiles returns the files ordered by relative path.
func (r Report) sortedFiles() []FileReport {
	files := make([]FileReport, len(r.Files))
	copy(files, r.Files)
	sort.SliceStable(files, func(i, j int) bool {
		return r.relPath(files[i].Path) < r.relPath(files[j].Path)
	})
	return files
}
