package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: TOKENLINT_[SECTION]_[KEY] (e.g., TOKENLINT_RULE_SKIP_IMPORT_CHECK).
func ApplyEnvOverrides(cfg *Config) {
	setEnvList(&cfg.Paths, "TOKENLINT_PATHS")

	// Rule
	setEnvBool(&cfg.Rule.SkipImportCheck, "TOKENLINT_RULE_SKIP_IMPORT_CHECK")
	setEnvString(&cfg.Rule.TrustedModule, "TOKENLINT_RULE_TRUSTED_MODULE")
	setEnvString(&cfg.Rule.InternalAccessorModule, "TOKENLINT_RULE_INTERNAL_ACCESSOR_MODULE")
	setEnvString(&cfg.Rule.Severity, "TOKENLINT_RULE_SEVERITY")

	setEnvString(&cfg.Table.Path, "TOKENLINT_TABLE_PATH")

	// Exclude
	setEnvList(&cfg.Exclude.Dirs, "TOKENLINT_EXCLUDE_DIRS")
	setEnvList(&cfg.Exclude.Files, "TOKENLINT_EXCLUDE_FILES")

	// Run
	setEnvInt(&cfg.Run.Concurrency, "TOKENLINT_RUN_CONCURRENCY")
	setEnvBool(&cfg.Run.Fix, "TOKENLINT_RUN_FIX")
	setEnvInt(&cfg.Run.MaxFixPasses, "TOKENLINT_RUN_MAX_FIX_PASSES")

	// Output
	setEnvString(&cfg.Output.Format, "TOKENLINT_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "TOKENLINT_OUTPUT_PATH")
	setEnvString(&cfg.Output.MetricsFile, "TOKENLINT_OUTPUT_METRICS_FILE")
	setEnvBool(&cfg.Output.NoColor, "TOKENLINT_OUTPUT_NO_COLOR")

	// Tracing
	setEnvString(&cfg.Tracing.Endpoint, "TOKENLINT_TRACING_ENDPOINT")
	setEnvBool(&cfg.Tracing.Insecure, "TOKENLINT_TRACING_INSECURE")
	setEnvString(&cfg.Tracing.ServiceName, "TOKENLINT_TRACING_SERVICE_NAME")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

// setEnvList splits a comma-separated value.
func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		var items []string
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		slog.Debug("applying env override", "key", key, "value", val)
		*target = items
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}
