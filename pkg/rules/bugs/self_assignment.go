package bugs

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/marlowe/lintel/pkg/rule"
)

// SelfAssignment flags statements that assign an expression to itself, such
// as x = x or s.field = s.field. Only side-effect-free reference shapes are
// compared, so a = a stays reportable while f().x = f().x does not.
type SelfAssignment struct{}

func (SelfAssignment) Name() string            { return "self-assignment" }
func (SelfAssignment) Category() rule.Category { return rule.CategoryBugs }
func (SelfAssignment) Severity() rule.Severity { return rule.SeverityWarning }
func (SelfAssignment) Description() string {
	return "Detects assignments of an expression to itself"
}
func (SelfAssignment) NeedsTypeInfo() bool { return false }
func (SelfAssignment) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.AssignStmt)(nil)}
}

func (SelfAssignment) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	assign, ok := node.(*ast.AssignStmt)
	if !ok || assign.Tok != token.ASSIGN || len(assign.Lhs) != len(assign.Rhs) {
		return nil
	}

	var diags []rule.Diagnostic
	for i := range assign.Lhs {
		lhs, rhs := assign.Lhs[i], assign.Rhs[i]
		if !plainRef(lhs) || !plainRef(rhs) {
			continue
		}
		if types.ExprString(lhs) != types.ExprString(rhs) {
			continue
		}
		diags = append(diags, rule.Diagnostic{
			Rule:     "self-assignment",
			Category: rule.CategoryBugs,
			Severity: rule.SeverityWarning,
			Pos:      ctx.FileSet.Position(lhs.Pos()),
			End:      ctx.FileSet.Position(rhs.End()),
			Message:  types.ExprString(lhs) + " is assigned to itself",
		})
	}
	return diags
}

// plainRef reports whether evaluating the expression twice is guaranteed to
// denote the same location with no side effects.
func plainRef(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		return plainRef(x.X)
	case *ast.ParenExpr:
		return plainRef(x.X)
	case *ast.IndexExpr:
		return plainRef(x.X) && plainIndex(x.Index)
	default:
		return false
	}
}

func plainIndex(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return true
	case *ast.BasicLit:
		return true
	case *ast.ParenExpr:
		return plainIndex(x.X)
	default:
		return false
	}
}

func init() {
	rule.Register(SelfAssignment{})
}
