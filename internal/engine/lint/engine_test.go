package lint

import (
	"bytes"
	"errors"
	"testing"

	"tokenlint/internal/engine/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callRule reports every call whose callee is named "bad".
type callRule struct{ scopes []syntax.ScopeID }

func (r *callRule) ID() string { return "test/no-bad-call" }
func (r *callRule) Meta() Meta { return Meta{Type: "problem"} }
func (r *callRule) Create(ctx *Context) map[syntax.Kind]Handler {
	return map[syntax.Kind]Handler{
		syntax.KindCallExpression: func(n syntax.Node, scope syntax.ScopeID) {
			call := n.(*syntax.CallExpression)
			if id, ok := call.Callee.(*syntax.Identifier); ok && id.Name == "bad" {
				r.scopes = append(r.scopes, scope)
				ctx.Report(Report{Node: call.Callee, Name: id.Name, Message: "no bad", Fix: &Edit{Range: id.Range, Text: "good"}})
			}
		},
	}
}

func TestEngineRun(t *testing.T) {
	src := []byte("bad()\nfn(() => bad())")
	tree := syntax.NewScopeTree()
	module := tree.Push(syntax.ScopeModule, syntax.GlobalScope)
	fn := tree.Push(syntax.ScopeFunction, module)

	second := &syntax.CallExpression{Range: syntax.Span{Start: 15, End: 20}, Callee: &syntax.Identifier{Range: syntax.Span{Start: 15, End: 18}, Name: "bad"}}
	first := &syntax.CallExpression{Range: syntax.Span{Start: 0, End: 5}, Callee: &syntax.Identifier{Range: syntax.Span{Start: 0, End: 3}, Name: "bad"}}
	root := &syntax.Block{Opens: module, Items: []syntax.Node{
		&syntax.CallExpression{Callee: &syntax.Identifier{Name: "fn"}, Arguments: []syntax.Node{
			&syntax.Block{Opens: fn, Items: []syntax.Node{second}},
		}},
		first,
	}}
	file := &syntax.File{Path: "a.js", Source: src, Root: root, Scopes: tree, RootScope: syntax.GlobalScope}

	rule := &callRule{}
	findings := NewEngine("", rule).Run(file)
	require.Len(t, findings, 2)

	// Sorted by position even though the walk met the nested call first.
	assert.Equal(t, 0, findings[0].Range.Start)
	assert.Equal(t, syntax.Position{Line: 1, Column: 1}, findings[0].Start)
	assert.Equal(t, syntax.Position{Line: 2, Column: 10}, findings[1].Start)
	assert.Equal(t, "test/no-bad-call", findings[1].RuleID)
	assert.Equal(t, SeverityError, findings[1].Severity)
	assert.Equal(t, "a.js", findings[1].File)
	assert.True(t, findings[0].Fixable())

	assert.Equal(t, []syntax.ScopeID{fn, module}, rule.scopes)
}

func TestEngineRunEmptyFile(t *testing.T) {
	assert.Empty(t, NewEngine(SeverityWarning, &callRule{}).Run(&syntax.File{}))
	assert.Empty(t, NewEngine(SeverityWarning).Run(nil))
	assert.Len(t, NewEngine(SeverityWarning, &callRule{}).Rules(), 1)
}

func TestApplyEdits(t *testing.T) {
	src := []byte(`color="a" bg="b"`)
	out, n := ApplyEdits(src, []Edit{
		{Range: syntax.Span{Start: 13, End: 16}, Text: `"y"`},
		{Range: syntax.Span{Start: 6, End: 9}, Text: `"x"`},
		{Range: syntax.Span{Start: 7, End: 8}, Text: `z`},
		{Range: syntax.Span{Start: 10, End: 99}, Text: `oops`},
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, `color="x" bg="y"`, string(out))
	assert.Equal(t, `color="a" bg="b"`, string(src))
}

func TestApplyFixesIgnoresSuggestions(t *testing.T) {
	src := []byte(`"a"`)
	findings := []Finding{{Suggestions: []Suggestion{{Desc: "x", Fix: Edit{Range: syntax.Span{Start: 0, End: 3}, Text: `"x"`}}}}}
	out, n := ApplyFixes(src, findings)
	assert.Zero(t, n)
	assert.Equal(t, src, out)
}

func TestFixLoop(t *testing.T) {
	// Each pass rewrites one "aa" to "b"; the loop stops once no fix applies.
	lintFn := func(src []byte) ([]Finding, error) {
		i := bytes.Index(src, []byte("aa"))
		if i < 0 {
			return []Finding{{Message: "unfixable"}}, nil
		}
		return []Finding{{Fix: &Edit{Range: syntax.Span{Start: i, End: i + 2}, Text: "b"}}}, nil
	}

	res, err := FixLoop([]byte("aaaaaa"), 0, lintFn)
	require.NoError(t, err)
	assert.Equal(t, "bbb", string(res.Output))
	assert.Equal(t, 3, res.Passes)
	assert.Equal(t, 3, res.Applied)
	assert.True(t, res.Changed())
	require.Len(t, res.Remaining, 1)
	assert.Equal(t, "unfixable", res.Remaining[0].Message)

	res, err = FixLoop([]byte("aaaaaa"), 2, lintFn)
	require.NoError(t, err)
	assert.Equal(t, "bbaa", string(res.Output))
	assert.Equal(t, 2, res.Passes)
	require.Len(t, res.Remaining, 1)
	assert.True(t, res.Remaining[0].Fixable())
}

func TestFixLoopPropagatesErrors(t *testing.T) {
	boom := errors.New("parse failed")
	_, err := FixLoop([]byte("x"), 1, func([]byte) ([]Finding, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}
