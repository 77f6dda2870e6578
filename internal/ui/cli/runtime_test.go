package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tokenlint/internal/engine/parser"
	"tokenlint/internal/shared/version"
	"tokenlint/internal/ui/picker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const component = `import {Box} from '@primer/components'

export const A = () => <Box color="yellow.0" sx={{borderColor: 'border.info'}} />
`

const clean = `import {Box} from '@primer/components'

export const A = () => <Box color="fg.default" />
`

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, pick PickFunc, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	if pick == nil {
		pick = func([]picker.Candidate) ([]picker.Decision, error) {
			t.Fatal("picker should not run")
			return nil, nil
		}
	}
	code := run(context.Background(), args, streams{out: &out, err: &errOut, pick: pick})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

// workspace creates a project directory and makes it the working directory.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func TestRun_Version(t *testing.T) {
	res := runCLI(t, nil, "--version")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "tokenlint "+version.Version+"\n", res.stdout)
}

func TestRun_BadFlag(t *testing.T) {
	res := runCLI(t, nil, "--no-such-flag")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "no-such-flag")
}

func TestRun_InvalidFormat(t *testing.T) {
	workspace(t, nil)
	assert.Equal(t, 2, runCLI(t, nil, "--format", "xml").code)
}

func TestRun_BadConfigFile(t *testing.T) {
	workspace(t, map[string]string{"tokenlint.toml": "paths = ["})
	assert.Equal(t, 2, runCLI(t, nil).code)
}

func TestRun_CleanProject(t *testing.T) {
	workspace(t, map[string]string{"src/A.jsx": clean})
	res := runCLI(t, nil, "--no-color")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "no deprecated tokens found")
}

func TestRun_ReportsFindingsAsJSON(t *testing.T) {
	workspace(t, map[string]string{"src/A.jsx": component, "src/B.jsx": clean})
	res := runCLI(t, nil, "--format", "json", "src")
	assert.Equal(t, 1, res.code)

	var files []struct {
		FilePath string `json:"filePath"`
		Messages []struct {
			Token string `json:"token"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &files))
	require.Len(t, files, 2)
	assert.Equal(t, "src/A.jsx", files[0].FilePath)
	require.Len(t, files[0].Messages, 2)
	assert.Equal(t, "yellow.0", files[0].Messages[0].Token)
	assert.Equal(t, "border.info", files[0].Messages[1].Token)
	assert.Empty(t, files[1].Messages)
}

func TestRun_WritesReportAndMetricsFiles(t *testing.T) {
	dir := workspace(t, map[string]string{"A.tsx": component})
	res := runCLI(t, nil, "--format", "sarif", "--output", "out/report.sarif", "--metrics-file", "out/metrics.prom")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)

	report, err := os.ReadFile(filepath.Join(dir, "out", "report.sarif"))
	require.NoError(t, err)
	assert.Contains(t, string(report), `"version": "2.1.0"`)

	metrics, err := os.ReadFile(filepath.Join(dir, "out", "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "tokenlint_files_total")
}

func TestRun_FixWritesFiles(t *testing.T) {
	dir := workspace(t, map[string]string{"A.jsx": component})
	res := runCLI(t, nil, "--fix", "--no-color")
	// the multi-candidate token still needs a decision
	assert.Equal(t, 1, res.code)

	got, err := os.ReadFile(filepath.Join(dir, "A.jsx"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `color="attention.fg"`)
	assert.Contains(t, string(got), `'border.info'`)
}

func TestRun_Interactive(t *testing.T) {
	dir := workspace(t, map[string]string{"A.jsx": component})
	var offered []picker.Candidate
	pick := func(c []picker.Candidate) ([]picker.Decision, error) {
		offered = c
		return []picker.Decision{{Path: c[0].Path, Edit: c[0].Finding.Suggestions[1].Fix}}, nil
	}
	res := runCLI(t, pick, "--fix", "--interactive", "--no-color")
	assert.Equal(t, 0, res.code)
	require.Len(t, offered, 1)
	assert.Equal(t, "border.info", offered[0].Finding.Name)

	got, err := os.ReadFile(filepath.Join(dir, "A.jsx"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `color="attention.fg"`)
	assert.Contains(t, string(got), `borderColor: 'accent.muted'`)
}

func TestRun_SkipImportCheckFlagOverridesConfig(t *testing.T) {
	src := `export const A = () => <Box color="yellow.0" />` + "\n"
	workspace(t, map[string]string{"A.jsx": src, "tokenlint.toml": "[rule]\nskip_import_check = false\n"})
	assert.Equal(t, 0, runCLI(t, nil, "--no-color").code)
	assert.Equal(t, 1, runCLI(t, nil, "--no-color", "--skip-import-check").code)
}

func TestRun_WarningSeverityPasses(t *testing.T) {
	workspace(t, map[string]string{"A.jsx": component, "tokenlint.toml": "[rule]\nseverity = \"warning\"\n"})
	res := runCLI(t, nil, "--no-color")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "warning")
}

func TestRun_PrintTable(t *testing.T) {
	workspace(t, nil)
	res := runCLI(t, nil, "--print-table")
	assert.Equal(t, 0, res.code)
	assert.Regexp(t, `(?m)^yellow\.0\s+attention\.fg$`, res.stdout)
	assert.Regexp(t, `(?m)^border\.info\s+accent\.emphasis \| accent\.muted$`, res.stdout)
	assert.Regexp(t, `(?m)^bg\.canvasMobile\s+\(no replacement\)$`, res.stdout)
}

func TestRun_MissingTableFile(t *testing.T) {
	workspace(t, nil)
	assert.Equal(t, 2, runCLI(t, nil, "--table", "missing.json").code)
}

func TestRun_VerboseLogsParserPools(t *testing.T) {
	workspace(t, map[string]string{"src/A.jsx": clean})
	res := runCLI(t, nil, "--verbose", "--no-color")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "language=javascript pool.leased=1 pool.active=0")
	assert.NotContains(t, res.stderr, "still checked out")
}

func TestLogParserPools_WarnsOnOutstandingParsers(t *testing.T) {
	var buf bytes.Buffer
	configureLogging(&buf, false)
	logParserPools([]parser.PoolStats{
		{Language: "javascript", Leased: 3},
		{Language: "tsx", Leased: 2, Active: 1, OldestLease: time.Second},
	})
	assert.Contains(t, buf.String(), `msg="parsers still checked out after run" language=tsx active=1 oldest=1s`)
	assert.NotContains(t, buf.String(), "javascript")
}
