package config

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strings"

	domainerrors "tokenlint/internal/core/errors"

	"github.com/BurntSushi/toml"
)

const defaultMaxFixPasses = 10

// Load reads a TOML config file, fills defaults and validates it. Environment
// overrides are applied between defaults and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domainerrors.AddContext(
				domainerrors.Wrap(err, domainerrors.CodeNotFound, "config file not found"),
				domainerrors.CtxPath, path)
		}
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, domainerrors.AddContext(
			domainerrors.Wrap(err, domainerrors.CodeParse, "invalid config file"),
			domainerrors.CtxPath, path)
	}
	return finish(&cfg)
}

// Resolve loads path, or DefaultFile when path is empty and that file exists,
// or falls back to the built-in defaults.
func Resolve(path string) (*Config, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return finish(&Config{})
}

// Default returns the built-in configuration without env overrides.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	ApplyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "node_modules", "dist", "build", "coverage"}
	}
	if len(cfg.Exclude.Files) == 0 {
		cfg.Exclude.Files = []string{"*.min.js", "*.d.ts"}
	}
	if strings.TrimSpace(cfg.Rule.Severity) == "" {
		cfg.Rule.Severity = "error"
	}
	if cfg.Run.Concurrency <= 0 {
		cfg.Run.Concurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.Run.MaxFixPasses == 0 {
		cfg.Run.MaxFixPasses = defaultMaxFixPasses
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = FormatText
	}
	if strings.TrimSpace(cfg.Tracing.ServiceName) == "" {
		cfg.Tracing.ServiceName = "tokenlint"
	}
}

// Validate checks a config after defaults and overrides.
func Validate(cfg *Config) error {
	validators := []func(*Config) error{
		validateRule,
		validateExclude,
		validateLanguages,
		validateRun,
		validateOutput,
	}
	for _, validate := range validators {
		if err := validate(cfg); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeValidationError, err.Error())
		}
	}
	return nil
}
