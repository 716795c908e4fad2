package loader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/tools/go/packages"
)

type LoadMode int

const (
	// LoadSyntax loads parsed AST but no type information.
	LoadSyntax LoadMode = iota
	// LoadTypes loads full type information in addition to AST.
	LoadTypes
)

// Options adjusts what Load resolves beyond the bare patterns.
type Options struct {
	// Dir is the directory patterns are resolved relative to. Empty means
	// the current working directory.
	Dir string
	// Tests also loads each matched package's test variants.
	Tests bool
	// BuildFlags are passed through to the underlying build system.
	BuildFlags []string
}

type Result struct {
	Packages []*packages.Package
}

// Load resolves the Go packages matching the patterns. The mode controls
// whether type information is computed; skipping it is significantly faster
// when only AST-level rules are active. Canceling the context aborts the
// underlying driver invocation.
func Load(ctx context.Context, patterns []string, mode LoadMode, opts Options) (*Result, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        opts.Dir,
		Tests:      opts.Tests,
		BuildFlags: opts.BuildFlags,
	}

	switch mode {
	case LoadSyntax:
		cfg.Mode = packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedImports |
			packages.NeedCompiledGoFiles
	case LoadTypes:
		cfg.Mode = packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedImports |
			packages.NeedCompiledGoFiles |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedDeps
	default:
		return nil, fmt.Errorf("unknown load mode: %d", mode)
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	// Every broken package is named in the error, not just the first one
	// the driver happened to report.
	var loadErrs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, fmt.Errorf("%s: %w", pkg.PkgPath, e))
		}
	}
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(loadErrs...))
	}

	return &Result{Packages: pkgs}, nil
}
