package config

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "tokenlint.toml"

type Config struct {
	Paths     []string                  `toml:"paths"`
	Rule      RuleConfig                `toml:"rule"`
	Table     TableConfig               `toml:"table"`
	Exclude   ExcludeConfig             `toml:"exclude"`
	Languages map[string]LanguageConfig `toml:"languages"`
	Run       RunConfig                 `toml:"run"`
	Output    OutputConfig              `toml:"output"`
	Tracing   TracingConfig             `toml:"tracing"`
}

// RuleConfig is the no-deprecated-colors option object plus the module
// patterns it checks imports against.
type RuleConfig struct {
	SkipImportCheck        bool   `toml:"skip_import_check"`
	TrustedModule          string `toml:"trusted_module"`
	InternalAccessorModule string `toml:"internal_accessor_module"`
	Severity               string `toml:"severity"`
}

type TableConfig struct {
	// Path to a JSON or YAML deprecation table. Empty uses the embedded one.
	Path string `toml:"path"`
}

type ExcludeConfig struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type LanguageConfig struct {
	Enabled    *bool    `toml:"enabled"`
	Extensions []string `toml:"extensions"`
}

type RunConfig struct {
	Concurrency  int  `toml:"concurrency"`
	Fix          bool `toml:"fix"`
	MaxFixPasses int  `toml:"max_fix_passes"`
}

type OutputConfig struct {
	Format      string `toml:"format"`
	Path        string `toml:"path"`
	MetricsFile string `toml:"metrics_file"`
	NoColor     bool   `toml:"no_color"`
}

type TracingConfig struct {
	Endpoint    string `toml:"endpoint"`
	Insecure    bool   `toml:"insecure"`
	ServiceName string `toml:"service_name"`
}

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)
