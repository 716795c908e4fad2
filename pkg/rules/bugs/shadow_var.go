package bugs

import (
	"go/ast"
	"go/token"

	"github.com/marlowe/lintel/pkg/rule"
)

// ShadowVar flags short declarations that bind a name already visible from
// an enclosing scope. Shadowing an err variable inside an inner block is a
// recurring source of silently dropped errors.
type ShadowVar struct{}

func (ShadowVar) Name() string            { return "shadow-var" }
func (ShadowVar) Category() rule.Category { return rule.CategoryBugs }
func (ShadowVar) Severity() rule.Severity { return rule.SeverityWarning }
func (ShadowVar) Description() string {
	return "Detects short declarations that shadow a name from an enclosing scope"
}
func (ShadowVar) NeedsTypeInfo() bool { return true }
func (ShadowVar) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.AssignStmt)(nil)}
}

func (ShadowVar) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	assign, ok := node.(*ast.AssignStmt)
	if !ok || assign.Tok != token.DEFINE || ctx.TypeInfo == nil {
		return nil
	}

	var diags []rule.Diagnostic
	for _, lhs := range assign.Lhs {
		ident, ok := lhs.(*ast.Ident)
		if !ok || ident.Name == "_" {
			continue
		}

		// Only names this statement actually defines count; := may also
		// reuse a variable that already exists in the same scope.
		obj := ctx.TypeInfo.Defs[ident]
		if obj == nil || obj.Parent() == nil {
			continue
		}

		for outer := obj.Parent().Parent(); outer != nil; outer = outer.Parent() {
			shadowed := outer.Lookup(ident.Name)
			if shadowed == nil {
				continue
			}
			msg := ident.Name + " shadows the declaration at " + ctx.FileSet.Position(shadowed.Pos()).String()
			if shadowed.Pos() == token.NoPos {
				msg = ident.Name + " shadows a builtin"
			}
			diags = append(diags, rule.Diagnostic{
				Rule:     "shadow-var",
				Category: rule.CategoryBugs,
				Severity: rule.SeverityWarning,
				Pos:      ctx.FileSet.Position(ident.Pos()),
				End:      ctx.FileSet.Position(ident.End()),
				Message:  msg,
			})
			break
		}
	}
	return diags
}

func init() {
	rule.Register(ShadowVar{})
}
