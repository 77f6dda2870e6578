// # internal/engine/parser/pool.go
package parser

import (
	"sync"
	"sync/atomic"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool recycles tree-sitter parsers for one grammar. Lint workers take a
// parser per file and hand it back afterwards:
//
//	sp := pool.Get()
//	defer pool.Put(sp)
//	tree := sp.Parse(source, nil)
//
// Safe for concurrent use.
type ParserPool struct {
	lang *sitter.Language
	pool sync.Pool

	leases   map[*sitter.Parser]time.Time
	leasesMu sync.Mutex
	leased   atomic.Uint64
}

// NewParserPool creates a pool for lang, which must outlive the pool.
func NewParserPool(lang *sitter.Language) *ParserPool {
	p := &ParserPool{
		lang:   lang,
		leases: make(map[*sitter.Parser]time.Time),
	}
	p.pool.New = func() any {
		sp := sitter.NewParser()
		_ = sp.SetLanguage(lang)
		return sp
	}
	return p
}

// Get returns a parser configured for the pool's grammar.
func (p *ParserPool) Get() *sitter.Parser {
	sp := p.pool.Get().(*sitter.Parser)
	// Reset() upstream may have cleared the language.
	_ = sp.SetLanguage(p.lang)

	p.leasesMu.Lock()
	p.leases[sp] = time.Now()
	p.leasesMu.Unlock()
	p.leased.Add(1)
	return sp
}

// Put resets sp and makes it available again. sp must not be used afterwards.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	p.leasesMu.Lock()
	delete(p.leases, sp)
	p.leasesMu.Unlock()

	sp.Reset()
	p.pool.Put(sp)
}

// Active reports how many parsers are currently checked out.
func (p *ParserPool) Active() int {
	p.leasesMu.Lock()
	defer p.leasesMu.Unlock()
	return len(p.leases)
}

// OldestLease returns how long the longest outstanding parser has been held,
// or zero when nothing is checked out.
func (p *ParserPool) OldestLease() time.Duration {
	p.leasesMu.Lock()
	defer p.leasesMu.Unlock()
	var oldest time.Duration
	now := time.Now()
	for _, since := range p.leases {
		if d := now.Sub(since); d > oldest {
			oldest = d
		}
	}
	return oldest
}

// Leased counts every Get since the pool was created.
func (p *ParserPool) Leased() uint64 {
	return p.leased.Load()
}
