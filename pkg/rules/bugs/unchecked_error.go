package bugs

import (
	"go/ast"
	"go/types"

	"github.com/marlowe/lintel/pkg/rule"
)

var errorType = types.Universe.Lookup("error").Type()

// UncheckedError flags expression statements whose call result contains an
// error value that is silently discarded.
type UncheckedError struct{}

func (UncheckedError) Name() string            { return "unchecked-error" }
func (UncheckedError) Category() rule.Category { return rule.CategoryBugs }
func (UncheckedError) Severity() rule.Severity { return rule.SeverityError }
func (UncheckedError) Description() string {
	return "Detects ignored error return values"
}
func (UncheckedError) NeedsTypeInfo() bool { return true }
func (UncheckedError) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.ExprStmt)(nil)}
}

func (UncheckedError) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	stmt, ok := node.(*ast.ExprStmt)
	if !ok || ctx.TypeInfo == nil {
		return nil
	}

	call, ok := stmt.X.(*ast.CallExpr)
	if !ok {
		return nil
	}

	t := ctx.TypeOf(call)
	if t == nil || !discardsError(t) {
		return nil
	}

	return []rule.Diagnostic{{
		Rule:     "unchecked-error",
		Category: rule.CategoryBugs,
		Severity: rule.SeverityError,
		Pos:      ctx.FileSet.Position(call.Pos()),
		End:      ctx.FileSet.Position(call.End()),
		Message:  "error return value is not checked",
	}}
}

// discardsError reports whether a call result type carries an error, either
// as the sole result or anywhere in the result tuple.
func discardsError(t types.Type) bool {
	if tup, ok := t.(*types.Tuple); ok {
		for i := 0; i < tup.Len(); i++ {
			if implementsError(tup.At(i).Type()) {
				return true
			}
		}
		return false
	}
	return implementsError(t)
}

func implementsError(t types.Type) bool {
	return types.AssignableTo(t, errorType)
}

func init() {
	rule.Register(UncheckedError{})
}
