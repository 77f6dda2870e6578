package tokens

import "tokenlint/internal/shared/util"

// Table maps deprecated token names to their replacements. It is never
// mutated after construction and may be shared between goroutines.
type Table struct {
	entries map[string]Replacement
}

// NewTable copies entries into a new immutable table.
func NewTable(entries map[string]Replacement) *Table {
	t := &Table{entries: make(map[string]Replacement, len(entries))}
	for name, r := range entries {
		t.entries[name] = r
	}
	return t
}

// Lookup reports the replacement for name and whether name is deprecated.
func (t *Table) Lookup(name string) (Replacement, bool) {
	if t == nil {
		return Replacement{}, false
	}
	r, ok := t.entries[name]
	return r, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Names returns the deprecated names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return util.SortedStringKeys(t.entries)
}
