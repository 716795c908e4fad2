package engine

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/marlowe/lintel/pkg/config"
	"github.com/marlowe/lintel/pkg/loader"
	"github.com/marlowe/lintel/pkg/rule"
)

// Engine ties a rule selection to the loader and runner. It is constructed
// once per invocation; the registry it receives must not be mutated while
// the engine runs.
type Engine struct {
	cfg       *config.Config
	rules     []rule.Rule
	overrides map[string]rule.Severity
	walker    *Walker
	runner    *Runner
	log       hclog.Logger
}

func New(cfg *config.Config, registry *rule.Registry, log hclog.Logger) (*Engine, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	// All() is name-sorted, so the selection below and the walker's
	// per-node callback order are deterministic across runs.
	var activeRules []rule.Rule
	for _, r := range registry.All() {
		rc, exists := cfg.Rules[r.Name()]
		if exists && !rc.Enabled {
			continue
		}
		if !exists && !cfg.EnableAll {
			continue
		}
		activeRules = append(activeRules, r)
	}

	if len(activeRules) == 0 {
		return nil, fmt.Errorf("no rules enabled; enable rules in .lintel.yml or use --enable-all")
	}

	overrides := make(map[string]rule.Severity)
	for name, rc := range cfg.Rules {
		if rc.Severity == "" {
			continue
		}
		sev, err := rule.ParseSeverity(rc.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		overrides[name] = sev
	}

	walker := NewWalker(activeRules, log.Named("walker"))
	runner := NewRunner(walker, cfg.Concurrency, cfg.Exclude, log.Named("runner"))

	return &Engine{
		cfg:       cfg,
		rules:     activeRules,
		overrides: overrides,
		walker:    walker,
		runner:    runner,
		log:       log,
	}, nil
}

// Run loads the packages matching the patterns and analyzes every file.
// Type information is skipped entirely when no active rule needs it.
func (e *Engine) Run(ctx context.Context, patterns []string) ([]rule.Diagnostic, error) {
	needsTypes := false
	for _, r := range e.rules {
		if r.NeedsTypeInfo() {
			needsTypes = true
			break
		}
	}

	mode := loader.LoadSyntax
	if needsTypes {
		mode = loader.LoadTypes
	}

	e.log.Debug("loading packages",
		"patterns", patterns, "types", needsTypes, "tests", e.cfg.Tests)
	result, err := loader.Load(ctx, patterns, mode, loader.Options{Tests: e.cfg.Tests})
	if err != nil {
		return nil, err
	}

	diags, err := e.runner.Run(ctx, result.Packages)
	if err != nil {
		return diags, err
	}
	e.applyOverrides(diags)
	return diags, nil
}

// applyOverrides rewrites diagnostic severities configured per rule.
func (e *Engine) applyOverrides(diags []rule.Diagnostic) {
	if len(e.overrides) == 0 {
		return
	}
	for i := range diags {
		if sev, ok := e.overrides[diags[i].Rule]; ok {
			diags[i].Severity = sev
		}
	}
}

func (e *Engine) ActiveRules() []rule.Rule {
	return e.rules
}

// Faults returns the number of rule callbacks that panicked during the run.
func (e *Engine) Faults() int64 {
	return e.walker.Faults()
}
