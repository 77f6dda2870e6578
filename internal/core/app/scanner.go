package app

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// ScanDirectories lists lintable files under paths. Directory globs match a
// directory's base name and prune the walk; file globs match file base names.
// A path naming a file is kept when its extension is supported.
func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	dirGlobs, err := compileGlobs(excludeDirs, "dir")
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(excludeFiles, "file")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path != root && matchAny(dirGlobs, base) {
					return filepath.SkipDir
				}
				return nil
			}

			if !a.Parser.IsSupportedPath(path) || matchAny(fileGlobs, base) {
				return nil
			}
			clean := filepath.Clean(path)
			if !seen[clean] {
				seen[clean] = true
				files = append(files, clean)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func compileGlobs(patterns []string, kind string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude %s pattern %q: %w", kind, p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
