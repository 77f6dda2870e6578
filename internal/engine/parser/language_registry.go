package parser

import (
	"fmt"
	"strings"

	"tokenlint/internal/shared/util"
)

type LanguageSpec struct {
	Name       string
	Extensions []string
	Enabled    bool
}

// LanguageOverride is the config-facing patch for one language.
type LanguageOverride struct {
	Enabled    *bool
	Extensions []string
}

func DefaultLanguageRegistry() map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"javascript": {
			Name:       "javascript",
			Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			Enabled:    true,
		},
		"typescript": {
			Name:       "typescript",
			Extensions: []string{".ts", ".mts", ".cts"},
			Enabled:    true,
		},
		"tsx": {
			Name:       "tsx",
			Extensions: []string{".tsx"},
			Enabled:    true,
		},
	}
}

// BuildLanguageRegistry applies overrides to the defaults. Unknown language
// names are rejected since there is no grammar to load for them.
func BuildLanguageRegistry(overrides map[string]LanguageOverride) (map[string]LanguageSpec, error) {
	registry := DefaultLanguageRegistry()
	for _, name := range util.SortedStringKeys(overrides) {
		override := overrides[name]
		key := strings.ToLower(strings.TrimSpace(name))
		spec, ok := registry[key]
		if !ok {
			return nil, fmt.Errorf("unknown language %q", name)
		}
		if override.Enabled != nil {
			spec.Enabled = *override.Enabled
		}
		if len(override.Extensions) > 0 {
			exts := make([]string, 0, len(override.Extensions))
			for _, ext := range override.Extensions {
				if norm := util.NormalizeExtension(ext); norm != "" {
					exts = append(exts, norm)
				}
			}
			spec.Extensions = exts
		}
		registry[key] = spec
	}

	owners := make(map[string]string)
	for _, name := range util.SortedStringKeys(registry) {
		spec := registry[name]
		if !spec.Enabled {
			continue
		}
		for _, ext := range spec.Extensions {
			if prev, dup := owners[ext]; dup {
				return nil, fmt.Errorf("extension %s claimed by both %s and %s", ext, prev, name)
			}
			owners[ext] = name
		}
	}
	return registry, nil
}

func cloneLanguageRegistry(in map[string]LanguageSpec) map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(in))
	for name, spec := range in {
		spec.Extensions = append([]string(nil), spec.Extensions...)
		out[name] = spec
	}
	return out
}
