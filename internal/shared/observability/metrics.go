package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every tokenlint metric. It is private to the process so the
// textfile dump carries no Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Metrics definitions
var (
	FilesLinted = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "tokenlint_files_total",
		Help: "Files processed, by language and outcome (ok, error).",
	}, []string{"language", "status"})

	FindingsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "tokenlint_findings_total",
		Help: "Deprecated token usages reported, by replacement kind.",
	}, []string{"kind"})

	FixesApplied = factory.NewCounter(prometheus.CounterOpts{
		Name: "tokenlint_fixes_applied_total",
		Help: "Edits written back to disk by --fix or the suggestion picker.",
	})

	ParsingDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tokenlint_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	LintDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tokenlint_lint_seconds",
		Help:    "Time spent linting a file, fix passes included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	RunDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "tokenlint_run_seconds",
		Help:    "Wall time of a whole lint run.",
		Buckets: prometheus.DefBuckets,
	})
)

// WriteMetrics dumps the registry in node_exporter textfile format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
