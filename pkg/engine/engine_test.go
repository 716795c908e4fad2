package engine

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/config"
	"github.com/marlowe/lintel/pkg/rule"
)

type stubRule struct {
	name      string
	needsInfo bool
}

func (r stubRule) Name() string            { return r.name }
func (r stubRule) Category() rule.Category { return rule.CategoryStyle }
func (r stubRule) Severity() rule.Severity { return rule.SeverityWarning }
func (r stubRule) Description() string     { return "stub" }
func (r stubRule) NeedsTypeInfo() bool     { return r.needsInfo }
func (r stubRule) NodeTypes() []ast.Node   { return nil }

func (r stubRule) Check(*rule.Context, ast.Node) []rule.Diagnostic { return nil }

func stubRegistry(t *testing.T, names ...string) *rule.Registry {
	t.Helper()
	reg := rule.NewRegistry()
	for _, n := range names {
		reg.Register(stubRule{name: n})
	}
	return reg
}

func activeNames(e *Engine) []string {
	var out []string
	for _, r := range e.ActiveRules() {
		out = append(out, r.Name())
	}
	return out
}

func TestNewSelectsConfiguredRules(t *testing.T) {
	reg := stubRegistry(t, "charlie", "alpha", "bravo")
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"alpha": {Enabled: true},
		"bravo": {Enabled: false},
	}}

	e, err := New(cfg, reg, nil)
	require.NoError(t, err)

	// bravo is disabled, charlie is not mentioned and EnableAll is off.
	assert.Equal(t, []string{"alpha"}, activeNames(e))
}

func TestNewEnableAll(t *testing.T) {
	reg := stubRegistry(t, "charlie", "alpha", "bravo")
	cfg := &config.Config{
		EnableAll: true,
		Rules:     map[string]config.RuleConfig{"bravo": {Enabled: false}},
	}

	e, err := New(cfg, reg, nil)
	require.NoError(t, err)

	// An explicit disable wins over EnableAll, and the selection is sorted.
	assert.Equal(t, []string{"alpha", "charlie"}, activeNames(e))
}

func TestNewNoRulesEnabled(t *testing.T) {
	_, err := New(&config.Config{}, stubRegistry(t, "alpha"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rules enabled")
}

func TestNewSeverityOverride(t *testing.T) {
	reg := stubRegistry(t, "alpha")
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"alpha": {Enabled: true, Severity: "error"},
	}}

	e, err := New(cfg, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, rule.SeverityError, e.overrides["alpha"])
}

func TestNewRejectsUnknownSeverity(t *testing.T) {
	reg := stubRegistry(t, "alpha")
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"alpha": {Enabled: true, Severity: "loud"},
	}}

	_, err := New(cfg, reg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule alpha")
	assert.Contains(t, err.Error(), `unknown severity "loud"`)
}

func TestApplyOverrides(t *testing.T) {
	e := &Engine{overrides: map[string]rule.Severity{"alpha": rule.SeverityError}}
	diags := []rule.Diagnostic{
		{Rule: "alpha", Severity: rule.SeverityInfo},
		{Rule: "bravo", Severity: rule.SeverityWarning},
	}

	e.applyOverrides(diags)

	assert.Equal(t, rule.SeverityError, diags[0].Severity)
	assert.Equal(t, rule.SeverityWarning, diags[1].Severity)
}
