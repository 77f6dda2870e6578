package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeExtension lowercases an extension and ensures the leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// RelativeSlashPath makes filePath relative to root with forward slashes.
// Paths outside root, or any path when root is empty, are only slash-normalized.
func RelativeSlashPath(root, filePath string) string {
	if root != "" {
		absRoot, errRoot := filepath.Abs(root)
		absPath, errPath := filepath.Abs(filePath)
		if errRoot == nil && errPath == nil {
			if rel, err := filepath.Rel(absRoot, absPath); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				filePath = rel
			}
		}
	}
	return filepath.ToSlash(filePath)
}

// WriteFileWithDirs creates parent directories (0755) and writes the file with perm.
func WriteFileWithDirs(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, perm)
}

// WriteFilePreservingMode rewrites an existing file without changing its permissions.
func WriteFilePreservingMode(path string, data []byte) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, data, perm)
}
