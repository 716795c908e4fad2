package style

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/marlowe/lintel/pkg/rule"
)

// ImportOrder checks that import blocks list standard library packages
// before third-party ones. A path whose first segment contains a dot is
// treated as third-party, the same heuristic goimports uses.
type ImportOrder struct{}

func (ImportOrder) Name() string            { return "import-order" }
func (ImportOrder) Category() rule.Category { return rule.CategoryStyle }
func (ImportOrder) Severity() rule.Severity { return rule.SeverityInfo }
func (ImportOrder) Description() string {
	return "Checks that standard library imports precede third-party imports"
}
func (ImportOrder) NeedsTypeInfo() bool { return false }
func (ImportOrder) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.File)(nil)}
}

func (ImportOrder) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	file, ok := node.(*ast.File)
	if !ok {
		return nil
	}

	var diags []rule.Diagnostic
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}

		last := -1
		for _, spec := range gd.Specs {
			is, ok := spec.(*ast.ImportSpec)
			if !ok {
				continue
			}
			path, err := strconv.Unquote(is.Path.Value)
			if err != nil {
				continue
			}
			group := importGroup(path)
			if group < last {
				diags = append(diags, rule.Diagnostic{
					Rule:     "import-order",
					Category: rule.CategoryStyle,
					Severity: rule.SeverityInfo,
					Pos:      ctx.FileSet.Position(is.Pos()),
					End:      ctx.FileSet.Position(is.End()),
					Message:  "import " + strconv.Quote(path) + " is out of order; standard library imports come first",
				})
				continue
			}
			last = group
		}
	}
	return diags
}

func importGroup(path string) int {
	first, _, _ := strings.Cut(path, "/")
	if strings.Contains(first, ".") {
		return 1
	}
	return 0
}

func init() {
	rule.Register(ImportOrder{})
}
