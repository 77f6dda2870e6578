package cli

import (
	"flag"
	"io"
)

type cliOptions struct {
	configPath      string
	fix             bool
	interactive     bool
	format          string
	outputPath      string
	skipImportCheck bool
	tablePath       string
	concurrency     int
	maxFixPasses    int
	metricsFile     string
	noColor         bool
	printTable      bool
	verbose         bool
	version         bool
	args            []string
	// set holds the flags given explicitly; only those override config.
	set map[string]bool
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("tokenlint", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default ./tokenlint.toml when present)")
	fs.BoolVar(&opts.fix, "fix", false, "Apply unambiguous replacements in place")
	fs.BoolVar(&opts.interactive, "interactive", false, "Choose among multiple replacements in a terminal picker")
	fs.StringVar(&opts.format, "format", "", "Output format: text, json or sarif")
	fs.StringVar(&opts.outputPath, "output", "", "Write the report to this file instead of stdout")
	fs.BoolVar(&opts.skipImportCheck, "skip-import-check", false, "Do not require components and themeGet to be imported from the component library")
	fs.StringVar(&opts.tablePath, "table", "", "JSON or YAML deprecation table (default: embedded)")
	fs.IntVar(&opts.concurrency, "concurrency", 0, "Files linted in parallel")
	fs.IntVar(&opts.maxFixPasses, "max-fix-passes", 0, "Maximum lint/fix passes per file")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&opts.printTable, "print-table", false, "Print the active deprecation table and exit")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.args = fs.Args()
	return opts, nil
}
