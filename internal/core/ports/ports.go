package ports

import (
	"tokenlint/internal/engine/lint"
	"tokenlint/internal/engine/parser"
	"tokenlint/internal/engine/syntax"
)

// CodeParser abstracts source parsing and language-file support checks.
type CodeParser interface {
	Parse(path string, content []byte) (*syntax.File, error)
	GetLanguage(path string) string
	IsSupportedPath(filePath string) bool
	SupportedExtensions() []string
	PoolStats() []parser.PoolStats
}

// Linter runs rules over a parsed file.
type Linter interface {
	Run(file *syntax.File) []lint.Finding
	Rules() []lint.Rule
}
