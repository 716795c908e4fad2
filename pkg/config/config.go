package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Rules       map[string]RuleConfig `yaml:"rules"`
	Output      OutputConfig          `yaml:"output"`
	Exclude     []string              `yaml:"exclude,omitempty"`
	Concurrency int                   `yaml:"concurrency"`
	EnableAll   bool                  `yaml:"enable_all"`
	Tests       bool                  `yaml:"tests"`
}

type RuleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Severity string `yaml:"severity,omitempty"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Rules:       make(map[string]RuleConfig),
		Output:      OutputConfig{Format: "text", Color: true},
		Concurrency: runtime.NumCPU(),
		EnableAll:   true,
		Tests:       true,
	}
}

var configNames = []string{".lintel.yml", ".lintel.yaml", "lintel.yml", "lintel.yaml"}

// Load searches dir and then each parent directory for a config file and
// parses the first one found. Defaults apply when no file exists.
func Load(dir string) (*Config, error) {
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			cfg, err := parse(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return cfg, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return DefaultConfig(), nil
		}
		dir = parent
	}
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return cfg, nil
}

// WriteDefault writes a starter config that lists the given rules
// explicitly, with enable_all switched off.
func WriteDefault(path string, rules map[string]RuleConfig) error {
	cfg := DefaultConfig()
	cfg.EnableAll = false
	cfg.Rules = make(map[string]RuleConfig, len(rules))
	for name, rc := range rules {
		cfg.Rules[name] = rc
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
