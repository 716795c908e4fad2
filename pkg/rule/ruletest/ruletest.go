// Package ruletest provides a hermetic harness for exercising rules against
// type-checked source snippets. Snippets are checked with a map-backed
// importer, so tests never touch the build toolchain or GOROOT; any package
// a snippet imports must be supplied as a Dep.
package ruletest

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/engine"
	"github.com/marlowe/lintel/pkg/rule"
)

// Dep is an auxiliary package a test snippet can import.
type Dep struct {
	Path string
	Src  string
}

type mapImporter map[string]*types.Package

func (m mapImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := m[path]; ok {
		return pkg, nil
	}
	return nil, fmt.Errorf("package %q is not available in this harness", path)
}

// Load type-checks src as a single-file package, with deps importable, and
// returns a Context ready to hand to a rule. Sources must be well-typed:
// go/types rejects unused imports and variables like the compiler does.
func Load(t *testing.T, src string, deps ...Dep) *rule.Context {
	t.Helper()

	imports := make(mapImporter)
	for _, d := range deps {
		pkg, _, _, _ := typeCheck(t, d.Path, d.Src, imports)
		imports[d.Path] = pkg
	}

	pkg, file, fset, info := typeCheck(t, "p", src, imports)
	return &rule.Context{
		File:     file,
		FileSet:  fset,
		TypeInfo: info,
		Pkg:      pkg,
		FilePath: fset.Position(file.Pos()).Filename,
	}
}

// Run dispatches the context's file through the engine walker with just the
// given rules registered and returns whatever they report.
func Run(t *testing.T, ctx *rule.Context, rules ...rule.Rule) []rule.Diagnostic {
	t.Helper()
	w := engine.NewWalker(rules, hclog.NewNullLogger())
	return w.Walk(ctx)
}

func typeCheck(t *testing.T, path, src string, imp types.Importer) (*types.Package, *ast.File, *token.FileSet, *types.Info) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path+".go", src, parser.SkipObjectResolution)
	require.NoError(t, err, "parsing %s", path)

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
		Instances:  make(map[*ast.Ident]types.Instance),
	}
	conf := types.Config{Importer: imp}
	pkg, err := conf.Check(path, fset, []*ast.File{file}, info)
	require.NoError(t, err, "type checking %s", path)

	return pkg, file, fset, info
}
