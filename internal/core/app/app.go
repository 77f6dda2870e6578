package app

import (
	"fmt"

	"tokenlint/internal/core/config"
	"tokenlint/internal/core/ports"
	"tokenlint/internal/engine/lint"
	"tokenlint/internal/engine/parser"
	"tokenlint/internal/engine/rules/deprecatedcolors"
	"tokenlint/internal/engine/tokens"
)

// App wires configuration, the parser and the lint engine for one run.
type App struct {
	Config *config.Config
	Parser ports.CodeParser
	Table  *tokens.Table
	Engine ports.Linter
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	registry, err := parser.BuildLanguageRegistry(languageOverrides(cfg.Languages))
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}
	loader, err := parser.NewGrammarLoaderWithRegistry(registry)
	if err != nil {
		return nil, fmt.Errorf("load grammars: %w", err)
	}

	table, err := tokens.LoadFile(cfg.Table.Path)
	if err != nil {
		return nil, err
	}

	rule, err := deprecatedcolors.New(table, deprecatedcolors.Options{
		SkipImportCheck:        cfg.Rule.SkipImportCheck,
		TrustedModule:          cfg.Rule.TrustedModule,
		InternalAccessorModule: cfg.Rule.InternalAccessorModule,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Parser: parser.NewParser(loader),
		Table:  table,
		Engine: lint.NewEngine(lint.Severity(cfg.Rule.Severity), rule),
	}, nil
}

func languageOverrides(in map[string]config.LanguageConfig) map[string]parser.LanguageOverride {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]parser.LanguageOverride, len(in))
	for name, lc := range in {
		out[name] = parser.LanguageOverride{Enabled: lc.Enabled, Extensions: lc.Extensions}
	}
	return out
}
