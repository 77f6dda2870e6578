package tokens

// ReplacementKind tells how many canonical names replace a deprecated token.
type ReplacementKind int

const (
	KindNone ReplacementKind = iota
	KindSingle
	KindMultiple
)

func (k ReplacementKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSingle:
		return "single"
	case KindMultiple:
		return "multiple"
	}
	return "unknown"
}

// Replacement is the value side of a deprecation entry. The zero value means
// the token has no replacement.
type Replacement struct {
	kind  ReplacementKind
	names []string
}

func NoReplacement() Replacement {
	return Replacement{kind: KindNone}
}

func SingleReplacement(name string) Replacement {
	return Replacement{kind: KindSingle, names: []string{name}}
}

// MultipleReplacement keeps the candidates in the order given. A one-element
// list is still a choice and stays KindMultiple.
func MultipleReplacement(names ...string) Replacement {
	out := make([]string, len(names))
	copy(out, names)
	return Replacement{kind: KindMultiple, names: out}
}

func (r Replacement) Kind() ReplacementKind { return r.kind }

// Name returns the replacement of a KindSingle entry and "" otherwise.
func (r Replacement) Name() string {
	if r.kind != KindSingle {
		return ""
	}
	return r.names[0]
}

// Candidates returns every replacement name, in table order.
func (r Replacement) Candidates() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
