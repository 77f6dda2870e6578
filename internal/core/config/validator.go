package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

func validateRule(cfg *Config) error {
	if cfg.Rule.TrustedModule != "" {
		if _, err := regexp.Compile(cfg.Rule.TrustedModule); err != nil {
			return fmt.Errorf("rule.trusted_module is not a valid pattern: %w", err)
		}
	}
	if cfg.Rule.InternalAccessorModule != "" {
		if _, err := regexp.Compile(cfg.Rule.InternalAccessorModule); err != nil {
			return fmt.Errorf("rule.internal_accessor_module is not a valid pattern: %w", err)
		}
	}
	severity := strings.ToLower(strings.TrimSpace(cfg.Rule.Severity))
	if severity != "error" && severity != "warning" {
		return fmt.Errorf("rule.severity must be one of: error, warning")
	}
	cfg.Rule.Severity = severity
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.dirs[%d] %q: %w", i, pattern, err)
		}
	}
	for i, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.files[%d] %q: %w", i, pattern, err)
		}
	}
	return nil
}

func validateLanguages(cfg *Config) error {
	for language, settings := range cfg.Languages {
		if strings.TrimSpace(language) == "" {
			return fmt.Errorf("languages key must not be empty")
		}
		for _, ext := range settings.Extensions {
			if strings.TrimSpace(ext) == "" {
				return fmt.Errorf("languages.%s.extensions must not include empty values", language)
			}
		}
	}
	return nil
}

func validateRun(cfg *Config) error {
	if cfg.Run.Concurrency < 1 {
		return fmt.Errorf("run.concurrency must be >= 1")
	}
	if cfg.Run.MaxFixPasses < 1 {
		return fmt.Errorf("run.max_fix_passes must be >= 1, got %d", cfg.Run.MaxFixPasses)
	}
	for i, p := range cfg.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("paths[%d] must not be empty", i)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	format := strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	switch format {
	case FormatText, FormatJSON, FormatSARIF:
	default:
		return fmt.Errorf("output.format must be one of: text, json, sarif")
	}
	cfg.Output.Format = format
	if cfg.Output.MetricsFile != "" && cfg.Output.MetricsFile == cfg.Output.Path {
		return fmt.Errorf("output.metrics_file and output.path must differ")
	}
	return nil
}
