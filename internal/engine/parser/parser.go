// # internal/engine/parser/parser.go
package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"tokenlint/internal/core/errors"
	"tokenlint/internal/engine/syntax"
	"tokenlint/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser turns JS/TS sources into syntax.File values. One Parser is shared by
// all lint workers; tree-sitter parsers are drawn from per-language pools.
type Parser struct {
	loader     *GrammarLoader
	pools      map[string]*ParserPool
	extensions map[string]string
}

func NewParser(loader *GrammarLoader) *Parser {
	p := &Parser{
		loader:     loader,
		pools:      make(map[string]*ParserPool),
		extensions: make(map[string]string),
	}
	for lang, spec := range loader.LanguageRegistry() {
		if !spec.Enabled {
			continue
		}
		grammar := loader.Language(lang)
		if grammar == nil {
			continue
		}
		p.pools[lang] = NewParserPool(grammar)
		for _, ext := range spec.Extensions {
			p.extensions[strings.ToLower(ext)] = lang
		}
	}
	return p
}

// PoolStats describes one language's parser pool.
type PoolStats struct {
	Language    string
	Leased      uint64
	Active      int
	OldestLease time.Duration
}

func (s PoolStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("leased", s.Leased),
		slog.Int("active", s.Active),
		slog.Duration("oldest", s.OldestLease),
	)
}

// PoolStats reports the parser pools in language order. After a run every
// pool should have Active == 0.
func (p *Parser) PoolStats() []PoolStats {
	stats := make([]PoolStats, 0, len(p.pools))
	for _, lang := range util.SortedStringKeys(p.pools) {
		pool := p.pools[lang]
		stats = append(stats, PoolStats{
			Language:    lang,
			Leased:      pool.Leased(),
			Active:      pool.Active(),
			OldestLease: pool.OldestLease(),
		})
	}
	return stats
}

// Parse parses content and builds its node tree and scope tree. Sources with
// syntax errors are rejected with a PARSE_ERROR pointing at the first one.
func (p *Parser) Parse(path string, content []byte) (*syntax.File, error) {
	lang := p.GetLanguage(path)
	if lang == "" {
		return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "unsupported language"), errors.CtxPath, path)
	}
	pool := p.pools[lang]
	if pool == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", lang)), errors.CtxLanguage, lang)
	}

	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		msg := "syntax error"
		if bad := firstError(root); bad != nil {
			pos := bad.StartPosition()
			msg = fmt.Sprintf("syntax error at %d:%d", pos.Row+1, pos.Column+1)
		}
		err := errors.AddContext(errors.New(errors.CodeParse, msg), errors.CtxPath, path)
		return nil, errors.AddContext(err, errors.CtxLanguage, lang)
	}

	scopes := syntax.NewScopeTree()
	c := &converter{src: content, scopes: scopes}
	file := &syntax.File{
		Path:      path,
		Language:  lang,
		Source:    content,
		Root:      c.program(root),
		Scopes:    scopes,
		RootScope: syntax.GlobalScope,
	}
	return file, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil || !ch.HasError() && !ch.IsMissing() {
			continue
		}
		if bad := firstError(ch); bad != nil {
			return bad
		}
	}
	return nil
}

func (p *Parser) GetLanguage(path string) string {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.GetLanguage(path) != ""
}

func (p *Parser) SupportedExtensions() []string {
	return util.SortedStringKeys(p.extensions)
}
