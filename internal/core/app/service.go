package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"tokenlint/internal/core/errors"
	"tokenlint/internal/engine/lint"
	"tokenlint/internal/shared/observability"
	"tokenlint/internal/shared/util"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path     string
	Language string
	Findings []lint.Finding
	// Source is the file content the findings refer to, after any fixes.
	Source []byte
	// Fixed counts edits written back by the fix loop.
	Fixed  int
	Passes int
	Err    error
}

// RunResult collects per-file results in path order.
type RunResult struct {
	Files []FileResult
}

func (r RunResult) FindingCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Findings)
	}
	return n
}

func (r RunResult) FixedCount() int {
	n := 0
	for _, f := range r.Files {
		n += f.Fixed
	}
	return n
}

func (r RunResult) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Run discovers files under paths (or the configured paths) and lints them
// concurrently. Per-file failures are logged and recorded on the file result;
// only discovery errors and cancellation fail the run.
func (a *App) Run(ctx context.Context, paths []string) (RunResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Run")
	defer span.End()
	start := time.Now()
	defer func() { observability.RunDuration.Observe(time.Since(start).Seconds()) }()

	if len(paths) == 0 {
		paths = a.Config.Paths
	}
	files, err := a.ScanDirectories(paths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		return RunResult{}, errors.Wrap(err, errors.CodeValidationError, "scan directories")
	}
	span.SetAttributes(attribute.Int("files", len(files)))

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Run.Concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.LintFile(gctx, path)
			if results[i].Err != nil {
				slog.Warn("failed to lint file", "path", path, "error", results[i].Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunResult{}, err
	}
	return RunResult{Files: results}, nil
}

// LintFile lints a single file, running the fix loop and writing the file
// back when fixing is enabled.
func (a *App) LintFile(ctx context.Context, path string) FileResult {
	lang := a.Parser.GetLanguage(path)
	_, span := observability.Tracer.Start(ctx, "app.LintFile", trace.WithAttributes(
		attribute.String("path", path),
		attribute.String("language", lang),
	))
	defer span.End()
	start := time.Now()

	res := FileResult{Path: path, Language: lang}
	defer func() {
		status := "ok"
		if res.Err != nil {
			status = "error"
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, "lint failed")
		}
		observability.FilesLinted.WithLabelValues(lang, status).Inc()
		observability.LintDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.Int("findings", len(res.Findings)), attribute.Int("fixed", res.Fixed))
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		res.Err = errors.AddContext(errors.Wrap(err, code, "read source"), errors.CtxPath, path)
		return res
	}
	res.Source = src

	lintSource := func(b []byte) ([]lint.Finding, error) {
		parseStart := time.Now()
		file, err := a.Parser.Parse(path, b)
		observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(parseStart).Seconds())
		if err != nil {
			return nil, err
		}
		return a.Engine.Run(file), nil
	}

	if !a.Config.Run.Fix {
		res.Findings, res.Err = lintSource(src)
		countFindings(res.Findings)
		return res
	}

	fixed, err := lint.FixLoop(src, a.Config.Run.MaxFixPasses, lintSource)
	if err != nil {
		res.Err = err
		return res
	}
	if fixed.Changed() {
		if err := util.WriteFilePreservingMode(path, fixed.Output); err != nil {
			res.Err = errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write fixes"), errors.CtxPath, path)
			return res
		}
		observability.FixesApplied.Add(float64(fixed.Applied))
	}
	res.Source = fixed.Output
	res.Findings = fixed.Remaining
	res.Fixed = fixed.Applied
	res.Passes = fixed.Passes
	countFindings(res.Findings)
	return res
}

// ApplyEdits applies chosen suggestion edits to the file on disk. Edits refer
// to the content last returned in FileResult.Source; the file is rejected if
// it changed since.
func (a *App) ApplyEdits(result FileResult, edits []lint.Edit) (int, error) {
	if len(edits) == 0 {
		return 0, nil
	}
	current, err := os.ReadFile(result.Path)
	if err != nil {
		return 0, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "read source"), errors.CtxPath, result.Path)
	}
	if string(current) != string(result.Source) {
		return 0, errors.AddContext(errors.New(errors.CodeValidationError, "file changed since it was linted"), errors.CtxPath, result.Path)
	}
	out, n := lint.ApplyEdits(current, edits)
	if n == 0 {
		return 0, nil
	}
	if err := util.WriteFilePreservingMode(result.Path, out); err != nil {
		return 0, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write edits"), errors.CtxPath, result.Path)
	}
	observability.FixesApplied.Add(float64(n))
	return n, nil
}

func countFindings(findings []lint.Finding) {
	for _, f := range findings {
		kind := "none"
		switch {
		case f.Fix != nil:
			kind = "single"
		case len(f.Suggestions) > 0:
			kind = "multiple"
		}
		observability.FindingsTotal.WithLabelValues(kind).Inc()
	}
}
