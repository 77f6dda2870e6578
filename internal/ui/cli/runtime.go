// # internal/ui/cli/runtime.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreapp "tokenlint/internal/core/app"
	"tokenlint/internal/core/config"
	"tokenlint/internal/core/errors"
	"tokenlint/internal/engine/lint"
	"tokenlint/internal/engine/parser"
	"tokenlint/internal/engine/tokens"
	"tokenlint/internal/shared/observability"
	"tokenlint/internal/shared/util"
	"tokenlint/internal/shared/version"
	"tokenlint/internal/ui/picker"
	"tokenlint/internal/ui/report/formats"
)

const (
	exitOK       = 0
	exitFindings = 1
	exitUsage    = 2
)

// PickFunc asks the user to choose suggestions.
type PickFunc func([]picker.Candidate) ([]picker.Decision, error)

type streams struct {
	out  io.Writer
	err  io.Writer
	pick PickFunc
}

func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, streams{
		out: os.Stdout,
		err: os.Stderr,
		pick: func(c []picker.Candidate) ([]picker.Decision, error) {
			return picker.Run(c)
		},
	})
}

func run(ctx context.Context, args []string, s streams) int {
	opts, err := parseOptions(args, s.err)
	if err == flag.ErrHelp {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(s.out, "tokenlint %s\n", version.Version)
		return exitOK
	}

	configureLogging(s.err, opts.verbose)

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return exitUsage
	}
	applyOptions(cfg, opts)
	if err := config.Validate(cfg); err != nil {
		slog.Error("invalid options", "error", err)
		return exitUsage
	}

	shutdown, err := observability.SetupTracing(ctx, observability.TracingOptions{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	app, err := coreapp.New(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return exitUsage
	}

	if opts.printTable {
		if err := writeTable(s.out, app.Table); err != nil {
			slog.Error("failed to print table", "error", err)
			return exitFindings
		}
		return exitOK
	}

	res, err := app.Run(ctx, opts.args)
	if err != nil {
		slog.Error("lint run failed", "error", err)
		if errors.IsCode(err, errors.CodeValidationError) {
			return exitUsage
		}
		return exitFindings
	}

	if opts.interactive {
		res = pickSuggestions(ctx, app, res, s.pick)
	}

	slog.Debug("run complete",
		"files", len(res.Files),
		"findings", res.FindingCount(),
		"fixed", res.FixedCount(),
		"failed", res.ErrorCount(),
		"heap", util.ReadHeapStats(),
	)
	logParserPools(app.Parser.PoolStats())

	report := buildReport(app, res)
	if err := writeReport(s.out, cfg, report); err != nil {
		slog.Error("failed to write report", "error", err)
		return exitFindings
	}

	if cfg.Output.MetricsFile != "" {
		if err := observability.WriteMetrics(cfg.Output.MetricsFile); err != nil {
			slog.Warn("failed to write metrics", "path", cfg.Output.MetricsFile, "error", err)
		}
	}

	sum := report.Summary()
	if sum.Errors > 0 || sum.Failed > 0 {
		return exitFindings
	}
	return exitOK
}

// logParserPools reports pool usage and warns about parsers never returned.
func logParserPools(stats []parser.PoolStats) {
	for _, st := range stats {
		if st.Active > 0 {
			slog.Warn("parsers still checked out after run", "language", st.Language, "active", st.Active, "oldest", st.OldestLease)
			continue
		}
		slog.Debug("parser pool", "language", st.Language, "pool", st)
	}
}

func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// applyOptions lets explicitly given flags win over the config file.
func applyOptions(cfg *config.Config, opts cliOptions) {
	if opts.set["fix"] {
		cfg.Run.Fix = opts.fix
	}
	if opts.set["format"] {
		cfg.Output.Format = opts.format
	}
	if opts.set["output"] {
		cfg.Output.Path = opts.outputPath
	}
	if opts.set["skip-import-check"] {
		cfg.Rule.SkipImportCheck = opts.skipImportCheck
	}
	if opts.set["table"] {
		cfg.Table.Path = opts.tablePath
	}
	if opts.set["concurrency"] {
		cfg.Run.Concurrency = opts.concurrency
	}
	if opts.set["max-fix-passes"] {
		cfg.Run.MaxFixPasses = opts.maxFixPasses
	}
	if opts.set["metrics-file"] {
		cfg.Output.MetricsFile = opts.metricsFile
	}
	if opts.set["no-color"] {
		cfg.Output.NoColor = opts.noColor
	}
}

// pickSuggestions applies the user's choices and re-lints the touched files
// so the report reflects what is on disk.
func pickSuggestions(ctx context.Context, app *coreapp.App, res coreapp.RunResult, pick PickFunc) coreapp.RunResult {
	var candidates []picker.Candidate
	for _, f := range res.Files {
		if f.Err == nil {
			candidates = append(candidates, picker.Collect(f.Path, f.Findings)...)
		}
	}
	if len(candidates) == 0 {
		return res
	}

	decisions, err := pick(candidates)
	if err != nil {
		slog.Warn("interactive picker failed", "error", err)
		return res
	}
	byPath := make(map[string][]lint.Edit)
	for _, d := range decisions {
		byPath[d.Path] = append(byPath[d.Path], d.Edit)
	}

	for i, f := range res.Files {
		edits := byPath[f.Path]
		if len(edits) == 0 {
			continue
		}
		n, err := app.ApplyEdits(f, edits)
		if err != nil {
			slog.Warn("failed to apply suggestions", "path", f.Path, "error", err)
			continue
		}
		slog.Debug("applied suggestions", "path", f.Path, "edits", n)
		fixed := f.Fixed + n
		res.Files[i] = app.LintFile(ctx, f.Path)
		res.Files[i].Fixed += fixed
	}
	return res
}

func buildReport(app *coreapp.App, res coreapp.RunResult) formats.Report {
	cwd, _ := os.Getwd()
	report := formats.Report{Root: cwd}
	for _, rule := range app.Engine.Rules() {
		report.Rules = append(report.Rules, formats.RuleInfo{ID: rule.ID(), Meta: rule.Meta()})
	}
	for _, f := range res.Files {
		fr := formats.FileReport{Path: f.Path, Findings: f.Findings}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		report.Files = append(report.Files, fr)
	}
	return report
}

func writeReport(stdout io.Writer, cfg *config.Config, report formats.Report) error {
	var data []byte
	var err error
	switch cfg.Output.Format {
	case config.FormatJSON:
		data, err = formats.GenerateJSON(report)
	case config.FormatSARIF:
		data, err = formats.GenerateSARIF(report)
	default:
		if cfg.Output.Path == "" {
			return formats.WriteText(stdout, report, formats.TextOptions{NoColor: cfg.Output.NoColor})
		}
		var b strings.Builder
		err = formats.WriteText(&b, report, formats.TextOptions{NoColor: true})
		data = []byte(b.String())
	}
	if err != nil {
		return err
	}
	if cfg.Output.Path != "" {
		return util.WriteFileWithDirs(cfg.Output.Path, data, 0o644)
	}
	if _, err := stdout.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(stdout, "\n")
	return err
}

func writeTable(w io.Writer, table *tokens.Table) error {
	var b strings.Builder
	names := table.Names()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		r, _ := table.Lookup(name)
		var target string
		switch r.Kind() {
		case tokens.KindSingle:
			target = r.Name()
		case tokens.KindMultiple:
			target = strings.Join(r.Candidates(), " | ")
		default:
			target = "(no replacement)"
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width, name, target)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
