package deprecatedcolors

import (
	"testing"

	"tokenlint/internal/engine/lint"
	"tokenlint/internal/engine/parser"
	"tokenlint/internal/engine/rewrite"
	"tokenlint/internal/engine/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	parser *parser.Parser
	engine *lint.Engine
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	table, err := tokens.Default()
	require.NoError(t, err)
	rule, err := New(table, opts)
	require.NoError(t, err)
	loader, err := parser.NewGrammarLoader()
	require.NoError(t, err)
	return &harness{parser: parser.NewParser(loader), engine: lint.NewEngine(lint.SeverityError, rule)}
}

func (h *harness) lint(t *testing.T, path, src string) []lint.Finding {
	t.Helper()
	findings, err := h.lintBytes(path, []byte(src))
	require.NoError(t, err)
	return findings
}

func (h *harness) lintBytes(path string, src []byte) ([]lint.Finding, error) {
	file, err := h.parser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	return h.engine.Run(file), nil
}

const primerImport = "import {Box, themeGet} from '@primer/components'\n"

func TestRule_StylePropSingleReplacement(t *testing.T) {
	h := newHarness(t, Options{})
	src := primerImport + `const a = <Box color="yellow.0" />`
	findings := h.lint(t, "a.jsx", src)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, ID, f.RuleID)
	assert.Equal(t, "yellow.0", f.Name)
	assert.Equal(t, `"yellow.0" is deprecated. Use "attention.fg" instead.`, f.Message)
	require.NotNil(t, f.Fix)
	assert.Equal(t, `"attention.fg"`, f.Fix.Text)
	assert.Equal(t, `"yellow.0"`, src[f.Fix.Range.Start:f.Fix.Range.End])
	assert.Equal(t, 2, f.Start.Line)
	assert.Empty(t, f.Suggestions)
}

func TestRule_ThemeAccessorKeepsNamespaceAndQuote(t *testing.T) {
	h := newHarness(t, Options{})
	src := primerImport + `const Wrapper = styled.div` + "`" + `color: ${themeGet('colors.yellow.0')};` + "`"
	findings := h.lint(t, "a.js", src)
	require.Len(t, findings, 1)
	assert.Equal(t, `"colors.yellow.0" is deprecated. Use "colors.attention.fg" instead.`, findings[0].Message)
	require.NotNil(t, findings[0].Fix)
	assert.Equal(t, `'colors.attention.fg'`, findings[0].Fix.Text)
}

func TestRule_ShadowNamespace(t *testing.T) {
	h := newHarness(t, Options{})
	findings := h.lint(t, "a.ts", primerImport+`const s = themeGet("shadows.small")`)
	require.Len(t, findings, 1)
	assert.Equal(t, "small", findings[0].Name)
	assert.Equal(t, `"shadows.shadow.small"`, findings[0].Fix.Text)
}

func TestRule_SxMultipleReplacements(t *testing.T) {
	h := newHarness(t, Options{})
	findings := h.lint(t, "a.tsx", primerImport+`const a = <Box sx={{borderColor: 'border.info', p: 2}} />`)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, `"border.info" is deprecated.`, f.Message)
	assert.Nil(t, f.Fix)
	require.Len(t, f.Suggestions, 2)
	assert.Equal(t, `Use "accent.emphasis" instead.`, f.Suggestions[0].Desc)
	assert.Equal(t, `'accent.emphasis'`, f.Suggestions[0].Fix.Text)
	assert.Equal(t, `Use "accent.muted" instead.`, f.Suggestions[1].Desc)
}

func TestRule_NoReplacement(t *testing.T) {
	h := newHarness(t, Options{})
	findings := h.lint(t, "a.jsx", primerImport+`const a = <Box bg="bg.canvasMobile" />`)
	require.Len(t, findings, 1)
	assert.Equal(t, `"bg.canvasMobile" is deprecated. `+rewrite.HelpText, findings[0].Message)
	assert.Nil(t, findings[0].Fix)
	assert.Empty(t, findings[0].Suggestions)
}

func TestRule_ImportProvenance(t *testing.T) {
	cases := []struct {
		name string
		src  string
		skip bool
		want int
	}{
		{"local component", `const a = <Box color="yellow.0" />`, false, 0},
		{"local component skip check", `const a = <Box color="yellow.0" />`, true, 1},
		{"other library", "import {Box} from 'rebass'\nconst a = <Box color=\"yellow.0\" />", false, 0},
		{"renamed import", "import {Box as B} from '@primer/components'\nconst a = <B color=\"yellow.0\" />", false, 1},
		{"namespace member", "import * as Primer from '@primer/components'\nconst a = <Primer.Box color=\"yellow.0\" />", false, 1},
		{"themeGet not imported", `const c = themeGet('colors.yellow.0')`, false, 0},
		{"themeGet skip check", `const c = themeGet('colors.yellow.0')`, true, 1},
		{"themeGet shadowed", primerImport + `function f(themeGet) { return themeGet('colors.yellow.0') }`, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Options{SkipImportCheck: tc.skip})
			assert.Len(t, h.lint(t, "a.jsx", tc.src), tc.want)
		})
	}
}

func TestRule_InternalAccessor(t *testing.T) {
	cases := []struct {
		name string
		src  string
		skip bool
		want int
	}{
		{"sibling constants", "import {get} from './constants'\nget('colors.text.primary')", false, 1},
		{"parent constants", "import {get} from '../constants'\nget('colors.text.primary')", false, 1},
		{"skip check still needs import", "get('colors.text.primary')", true, 0},
		{"lodash get", "import {get} from 'lodash'\nget('colors.text.primary')", false, 0},
		{"deeper constants", "import {get} from '../../constants'\nget('colors.text.primary')", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Options{SkipImportCheck: tc.skip})
			findings := h.lint(t, "a.js", tc.src)
			require.Len(t, findings, tc.want)
			if tc.want > 0 {
				assert.Equal(t, `'colors.fg.default'`, findings[0].Fix.Text)
			}
		})
	}
}

func TestRule_IgnoresNonMatches(t *testing.T) {
	h := newHarness(t, Options{})
	src := primerImport + `
const a = <Box m="yellow.0" color={"yellow.0"} sx={{[key]: 'yellow.0', ...rest, nested: {color: 'yellow.0'}}} />
const b = themeGet('space.yellow.0')
const c = themeGet('colors.not.deprecated')
const d = themeGet(` + "`colors.yellow.0`" + `)
`
	assert.Empty(t, h.lint(t, "a.jsx", src))
}

func TestRule_AttributeOrder(t *testing.T) {
	h := newHarness(t, Options{})
	src := primerImport + `const a = <Box sx={{color: 'text.primary', bg: 'bg.primary'}} borderColor="gray.2" />`
	findings := h.lint(t, "a.jsx", src)
	require.Len(t, findings, 3)
	assert.Equal(t, "text.primary", findings[0].Name)
	assert.Equal(t, "bg.primary", findings[1].Name)
	assert.Equal(t, "gray.2", findings[2].Name)
}

func TestRule_FixIsIdempotent(t *testing.T) {
	h := newHarness(t, Options{})
	src := primerImport + `const a = <Box color="yellow.0" sx={{bg: 'bg.primary', borderColor: 'border.info'}} />
const b = themeGet('colors.blue.5')
`
	res, err := lint.FixLoop([]byte(src), lint.DefaultMaxFixPasses, func(b []byte) ([]lint.Finding, error) {
		return h.lintBytes("a.jsx", b)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passes)
	assert.Equal(t, 3, res.Applied)
	assert.Contains(t, string(res.Output), `color="attention.fg"`)
	assert.Contains(t, string(res.Output), `bg: 'canvas.default'`)
	assert.Contains(t, string(res.Output), `themeGet('colors.accent.fg')`)

	// only the ambiguous token is left, and fixing again changes nothing
	require.Len(t, res.Remaining, 1)
	assert.Equal(t, "border.info", res.Remaining[0].Name)
	again, n := lint.ApplyFixes(res.Output, res.Remaining)
	assert.Zero(t, n)
	assert.Equal(t, res.Output, again)
}

func TestRule_BadPattern(t *testing.T) {
	table, err := tokens.Default()
	require.NoError(t, err)
	_, err = New(table, Options{TrustedModule: "("})
	assert.Error(t, err)
}
