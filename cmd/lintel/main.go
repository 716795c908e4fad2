package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/marlowe/lintel/pkg/config"
	"github.com/marlowe/lintel/pkg/engine"
	"github.com/marlowe/lintel/pkg/report"
	"github.com/marlowe/lintel/pkg/rule"

	// Register all rules via init()
	_ "github.com/marlowe/lintel/pkg/rules/bugs"
	_ "github.com/marlowe/lintel/pkg/rules/perf"
	_ "github.com/marlowe/lintel/pkg/rules/style"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:     "lintel",
		Short:   "A pluggable static-analysis rule engine for Go",
		Version: version,
	}

	root.AddCommand(runCmd())
	root.AddCommand(listRulesCmd())
	root.AddCommand(initConfigCmd())

	if err := root.Execute(); err != nil {
		os.Exit(2)
	}
}

func runCmd() *cobra.Command {
	var (
		configPath  string
		format      string
		enableAll   bool
		noColor     bool
		verbose     bool
		tests       bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "run [packages...]",
		Short: "Analyze Go packages with the enabled rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			level := hclog.Info
			if verbose {
				level = hclog.Debug
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "lintel",
				Output: os.Stderr,
				Level:  level,
			})

			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				wd, _ := os.Getwd()
				cfg, err = config.Load(wd)
			}
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if format != "" {
				cfg.Output.Format = format
			}
			if enableAll {
				cfg.EnableAll = true
			}
			if noColor {
				cfg.Output.Color = false
			}
			if cmd.Flags().Changed("tests") {
				cfg.Tests = tests
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}

			// A bad format should fail before any analysis runs.
			reporter, err := report.New(cfg.Output.Format, cfg.Output.Color)
			if err != nil {
				return err
			}

			eng, err := engine.New(cfg, rule.GlobalRegistry(), logger)
			if err != nil {
				return err
			}

			diags, err := eng.Run(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if err := reporter.Report(os.Stdout, diags); err != nil {
				return fmt.Errorf("reporting: %w", err)
			}

			logger.Info("analysis complete",
				"packages", len(args),
				"rules", len(eng.ActiveRules()),
				"findings", len(diags),
				"faults", eng.Faults(),
				"elapsed", time.Since(start).Round(time.Millisecond).String(),
			)

			if len(diags) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json, sarif")
	cmd.Flags().BoolVar(&enableAll, "enable-all", false, "enable all rules regardless of config")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored text output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&tests, "tests", true, "analyze test files as well")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "number of concurrent workers (0 = NumCPU)")

	return cmd
}

func listRulesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List all available lint rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			// All() is name-sorted; the stable sort groups by category
			// while keeping names ordered within each group.
			rules := rule.GlobalRegistry().All()
			sort.SliceStable(rules, func(i, j int) bool {
				return rules[i].Category() < rules[j].Category()
			})

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "RULE\tCATEGORY\tSEVERITY\tTYPES\tDESCRIPTION\n")
			for _, r := range rules {
				if category != "" && r.Category().String() != category {
					continue
				}
				needsTypes := "no"
				if r.NeedsTypeInfo() {
					needsTypes = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.Name(), r.Category(), r.Severity(), needsTypes, r.Description())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list rules in this category: bugs, style, perf")

	return cmd
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default .lintel.yml config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".lintel.yml"
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists; remove it first", path)
			}
			entries := make(map[string]config.RuleConfig)
			for _, r := range rule.GlobalRegistry().All() {
				entries[r.Name()] = config.RuleConfig{
					Enabled:  true,
					Severity: r.Severity().String(),
				}
			}
			if err := config.WriteDefault(path, entries); err != nil {
				return err
			}
			fmt.Printf("Created %s with default configuration.\n", path)
			return nil
		},
	}
}
