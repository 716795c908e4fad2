package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/marlowe/lintel/pkg/rule"
)

// Runner fans file analysis out across a bounded set of goroutines. Files
// are independent analysis units: each gets its own context, and the only
// shared state is the guarded diagnostic slice.
type Runner struct {
	walker      *Walker
	concurrency int
	exclude     []string
	workdir     string
	log         hclog.Logger
}

func NewRunner(walker *Walker, concurrency int, exclude []string, log hclog.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	wd, _ := os.Getwd()
	return &Runner{
		walker:      walker,
		concurrency: concurrency,
		exclude:     exclude,
		workdir:     wd,
		log:         log,
	}
}

type fileUnit struct {
	pkg      *packages.Package
	fileIdx  int
	filePath string
}

// Run analyzes all package files in parallel and returns the collected
// diagnostics sorted by position and de-duplicated, so output order is
// stable regardless of scheduling.
func (r *Runner) Run(ctx context.Context, pkgs []*packages.Package) ([]rule.Diagnostic, error) {
	var units []fileUnit
	for _, pkg := range pkgs {
		for i := range pkg.Syntax {
			path := ""
			if i < len(pkg.CompiledGoFiles) {
				path = pkg.CompiledGoFiles[i]
			}
			if r.excluded(path) {
				r.log.Debug("skipping excluded file", "file", path)
				continue
			}
			units = append(units, fileUnit{pkg: pkg, fileIdx: i, filePath: path})
		}
	}

	var (
		mu       sync.Mutex
		allDiags []rule.Diagnostic
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, u := range units {
		u := u
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			rctx := &rule.Context{
				File:     u.pkg.Syntax[u.fileIdx],
				FileSet:  u.pkg.Fset,
				TypeInfo: u.pkg.TypesInfo,
				Pkg:      u.pkg.Types,
				FilePath: u.filePath,
			}

			diags := r.walker.Walk(rctx)

			mu.Lock()
			allDiags = append(allDiags, diags...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return allDiags, err
	}

	sortDiagnostics(allDiags)
	return dedupe(allDiags), nil
}

// excluded matches the file path, made relative to the working directory
// when possible, against the configured glob patterns.
func (r *Runner) excluded(path string) bool {
	if path == "" || len(r.exclude) == 0 {
		return false
	}
	rel := path
	if r.workdir != "" {
		if p, err := filepath.Rel(r.workdir, path); err == nil && !strings.HasPrefix(p, "..") {
			rel = p
		}
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range r.exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func sortDiagnostics(diags []rule.Diagnostic) {
	for i := 1; i < len(diags); i++ {
		for j := i; j > 0 && less(diags[j], diags[j-1]); j-- {
			diags[j], diags[j-1] = diags[j-1], diags[j]
		}
	}
}

func less(a, b rule.Diagnostic) bool {
	if a.Pos.Filename != b.Pos.Filename {
		return a.Pos.Filename < b.Pos.Filename
	}
	if a.Pos.Line != b.Pos.Line {
		return a.Pos.Line < b.Pos.Line
	}
	if a.Pos.Column != b.Pos.Column {
		return a.Pos.Column < b.Pos.Column
	}
	if a.Rule != b.Rule {
		return a.Rule < b.Rule
	}
	return a.Message < b.Message
}

// dedupe drops identical adjacent diagnostics. Duplicates appear when the
// same file is analyzed under more than one package variant.
func dedupe(diags []rule.Diagnostic) []rule.Diagnostic {
	if len(diags) < 2 {
		return diags
	}
	out := diags[:1]
	for _, d := range diags[1:] {
		last := out[len(out)-1]
		if d.Rule == last.Rule && d.Pos == last.Pos && d.Message == last.Message {
			continue
		}
		out = append(out, d)
	}
	return out
}
