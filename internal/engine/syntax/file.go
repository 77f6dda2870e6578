package syntax

import "sort"

// File is one parsed source file as handed to the lint engine.
type File struct {
	Path     string
	Language string
	Source   []byte
	Root     Node
	Scopes   *ScopeTree
	// RootScope is the scope active at Root, usually the module scope.
	RootScope ScopeID

	lineStarts []int
}

// Position is a 1-based line and column; Column counts bytes.
type Position struct {
	Line   int
	Column int
}

// Text returns the source covered by span.
func (f *File) Text(span Span) string {
	if span.Start < 0 || span.End > len(f.Source) || span.Start > span.End {
		return ""
	}
	return string(f.Source[span.Start:span.End])
}

// Position converts a byte offset into a line/column pair.
func (f *File) Position(offset int) Position {
	if f.lineStarts == nil {
		f.lineStarts = []int{0}
		for i, b := range f.Source {
			if b == '\n' {
				f.lineStarts = append(f.lineStarts, i+1)
			}
		}
	}
	line := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line + 1, Column: offset - f.lineStarts[line] + 1}
}
