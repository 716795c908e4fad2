package perf

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/marlowe/lintel/pkg/rule"
)

// PreallocSlice suggests preallocating slices that are grown with append on
// every iteration of a loop. Growing one element at a time reallocates and
// copies repeatedly; a capacity hint up front avoids the churn.
type PreallocSlice struct{}

func (PreallocSlice) Name() string            { return "prealloc-slice" }
func (PreallocSlice) Category() rule.Category { return rule.CategoryPerf }
func (PreallocSlice) Severity() rule.Severity { return rule.SeverityInfo }
func (PreallocSlice) Description() string {
	return "Suggests preallocating slices grown with append inside loops"
}
func (PreallocSlice) NeedsTypeInfo() bool { return true }
func (PreallocSlice) NodeTypes() []ast.Node {
	return []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}
}

func (PreallocSlice) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	if ctx.TypeInfo == nil {
		return nil
	}

	var body *ast.BlockStmt
	switch n := node.(type) {
	case *ast.RangeStmt:
		body = n.Body
	case *ast.ForStmt:
		body = n.Body
	}
	if body == nil {
		return nil
	}

	var diags []rule.Diagnostic
	for _, stmt := range body.List {
		assign, ok := stmt.(*ast.AssignStmt)
		if !ok || assign.Tok != token.ASSIGN || len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
			continue
		}
		call, ok := assign.Rhs[0].(*ast.CallExpr)
		if !ok || len(call.Args) < 2 {
			continue
		}
		fn, ok := call.Fun.(*ast.Ident)
		if !ok || fn.Name != "append" {
			continue
		}
		if _, ok := ctx.ObjectOf(fn).(*types.Builtin); !ok {
			continue
		}

		// The grown slice must be both the target and the first argument,
		// compared by object so a shadowing := never matches.
		lhs, ok := assign.Lhs[0].(*ast.Ident)
		if !ok {
			continue
		}
		arg, ok := call.Args[0].(*ast.Ident)
		if !ok {
			continue
		}
		obj := ctx.ObjectOf(lhs)
		if obj == nil || obj != ctx.ObjectOf(arg) {
			continue
		}

		diags = append(diags, rule.Diagnostic{
			Rule:     "prealloc-slice",
			Category: rule.CategoryPerf,
			Severity: rule.SeverityInfo,
			Pos:      ctx.FileSet.Position(assign.Pos()),
			End:      ctx.FileSet.Position(assign.End()),
			Message:  "consider preallocating " + lhs.Name + " with a capacity before the loop",
		})
	}

	return diags
}

func init() {
	rule.Register(PreallocSlice{})
}
