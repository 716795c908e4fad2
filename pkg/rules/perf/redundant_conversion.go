package perf

import (
	"go/ast"
	"go/types"

	"github.com/marlowe/lintel/pkg/rule"
)

// RedundantConversion flags conversions whose operand already has exactly
// the target type, such as int(i) where i is an int.
type RedundantConversion struct{}

func (RedundantConversion) Name() string            { return "redundant-conversion" }
func (RedundantConversion) Category() rule.Category { return rule.CategoryPerf }
func (RedundantConversion) Severity() rule.Severity { return rule.SeverityWarning }
func (RedundantConversion) Description() string {
	return "Detects type conversions to the expression's own type"
}
func (RedundantConversion) NeedsTypeInfo() bool { return true }
func (RedundantConversion) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.CallExpr)(nil)}
}

func (RedundantConversion) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	call, ok := node.(*ast.CallExpr)
	if !ok || ctx.TypeInfo == nil || len(call.Args) != 1 {
		return nil
	}

	// Only conversions, not function calls.
	tv, ok := ctx.TypeInfo.Types[call.Fun]
	if !ok || !tv.IsType() {
		return nil
	}

	// Constant operands are recorded with the conversion's own type, so
	// they would always compare identical; int32(1) is not redundant.
	if atv, ok := ctx.TypeInfo.Types[call.Args[0]]; !ok || atv.Value != nil {
		return nil
	}

	argType := ctx.TypeOf(call.Args[0])
	if argType == nil || !types.Identical(argType, tv.Type) {
		return nil
	}

	return []rule.Diagnostic{{
		Rule:     "redundant-conversion",
		Category: rule.CategoryPerf,
		Severity: rule.SeverityWarning,
		Pos:      ctx.FileSet.Position(call.Pos()),
		End:      ctx.FileSet.Position(call.End()),
		Message:  "redundant conversion; expression already has type " + argType.String(),
	}}
}

func init() {
	rule.Register(RedundantConversion{})
}
