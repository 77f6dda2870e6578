// # internal/engine/parser/loader.go
package parser

import (
	"fmt"
	"sort"

	"tokenlint/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
	registry  map[string]LanguageSpec
}

func NewGrammarLoader() (*GrammarLoader, error) {
	return NewGrammarLoaderWithRegistry(DefaultLanguageRegistry())
}

func NewGrammarLoaderWithRegistry(registry map[string]LanguageSpec) (*GrammarLoader, error) {
	if registry == nil {
		registry = DefaultLanguageRegistry()
	}

	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
		registry:  cloneLanguageRegistry(registry),
	}

	for _, langID := range util.SortedStringKeys(gl.registry) {
		spec := gl.registry[langID]
		if !spec.Enabled {
			continue
		}
		switch langID {
		case "javascript":
			gl.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
		case "typescript":
			gl.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
		case "tsx":
			gl.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
		default:
			return nil, fmt.Errorf("language %q is enabled but runtime grammar loading is not implemented", langID)
		}
	}

	return gl, nil
}

func (gl *GrammarLoader) LanguageRegistry() map[string]LanguageSpec {
	return cloneLanguageRegistry(gl.registry)
}

func (gl *GrammarLoader) Language(name string) *sitter.Language {
	return gl.languages[name]
}

func (gl *GrammarLoader) SupportedExtensions() []string {
	set := make(map[string]bool)
	for _, spec := range gl.registry {
		if !spec.Enabled {
			continue
		}
		for _, ext := range spec.Extensions {
			set[ext] = true
		}
	}
	extensions := make([]string, 0, len(set))
	for ext := range set {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
