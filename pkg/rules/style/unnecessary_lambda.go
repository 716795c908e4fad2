package style

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/marlowe/lintel/pkg/purity"
	"github.com/marlowe/lintel/pkg/rule"
)

// UnnecessaryLambda flags function literals that do nothing but forward
// their parameters, unchanged and in order, to another callable that could
// be referenced directly:
//
//	each(names, func(s string) { emit(s) })   ->   each(names, emit)
//
// The literal is only redundant when evaluating the bare callee has no
// effects of its own, so the callee must be built from immutable references
// and must never read the literal's parameters. Replacing the literal must
// also be well-typed: Go function types are invariant, so the callee's
// signature has to be assignable to the literal's.
type UnnecessaryLambda struct{}

func (UnnecessaryLambda) Name() string            { return "unnecessary-lambda" }
func (UnnecessaryLambda) Category() rule.Category { return rule.CategoryStyle }
func (UnnecessaryLambda) Severity() rule.Severity { return rule.SeverityInfo }
func (UnnecessaryLambda) Description() string {
	return "Detects function literals that merely forward their parameters to another callable"
}
func (UnnecessaryLambda) NeedsTypeInfo() bool { return true }
func (UnnecessaryLambda) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.FuncLit)(nil)}
}

func (UnnecessaryLambda) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	lit, ok := node.(*ast.FuncLit)
	if !ok || ctx.TypeInfo == nil {
		return nil
	}

	call := forwardedCall(lit)
	if call == nil {
		return nil
	}

	params, ok := paramObjects(ctx.TypeInfo, lit)
	if !ok || !forwardsExactly(ctx.TypeInfo, call, params) {
		return nil
	}

	// Conversions and builtins look like calls but are not values that a
	// bare reference could replace. Unresolved callees disqualify too.
	tv, ok := ctx.TypeInfo.Types[call.Fun]
	if !ok || !tv.IsValue() {
		return nil
	}

	forbidden := purity.NewSet(params...)
	callee := astutil.Unparen(call.Fun)

	switch fn := callee.(type) {
	case *ast.IndexExpr, *ast.IndexListExpr:
		// Explicit instantiation or an indexed callable; the bare
		// reference cannot stand in for either.
		return nil
	case *ast.Ident:
		if !assignable(ctx.TypeInfo, lit, call.Fun) {
			return nil
		}
		if !purity.IsFinal(ctx.TypeInfo, forbidden, fn) {
			return nil
		}
	case *ast.SelectorExpr:
		if !plainChain(fn.X) {
			return nil
		}
		if cgoCallee(ctx.TypeInfo, fn) {
			return nil
		}
		if !assignable(ctx.TypeInfo, lit, call.Fun) {
			return nil
		}
		if !purity.IsFinal(ctx.TypeInfo, forbidden, fn) {
			return nil
		}
	default:
		// A computed callable is safe only when it is final: evaluating
		// it must not observe the parameters or any mutable binding.
		if !assignable(ctx.TypeInfo, lit, call.Fun) {
			return nil
		}
		if !purity.IsFinal(ctx.TypeInfo, forbidden, callee) {
			return nil
		}
	}

	msg := "function literal only forwards its parameters; use the called function directly"
	if name := calleeName(callee); name != "" {
		msg = "function literal only forwards its parameters; use " + name + " directly"
	}

	return []rule.Diagnostic{{
		Rule:     "unnecessary-lambda",
		Category: rule.CategoryStyle,
		Severity: rule.SeverityInfo,
		Pos:      ctx.FileSet.Position(lit.Pos()),
		End:      ctx.FileSet.Position(lit.End()),
		Message:  msg,
	}}
}

// forwardedCall returns the single call the literal's body reduces to:
// either { f(...) } or { return f(...) }. Nil for every other body shape.
func forwardedCall(lit *ast.FuncLit) *ast.CallExpr {
	if lit.Body == nil || len(lit.Body.List) != 1 {
		return nil
	}
	switch stmt := lit.Body.List[0].(type) {
	case *ast.ExprStmt:
		if call, ok := stmt.X.(*ast.CallExpr); ok {
			return call
		}
	case *ast.ReturnStmt:
		if len(stmt.Results) == 1 {
			if call, ok := stmt.Results[0].(*ast.CallExpr); ok {
				return call
			}
		}
	}
	return nil
}

// paramObjects resolves the literal's declared parameters in order. The
// second result is false when any parameter is unnamed or unresolved; such
// a literal can never be a pure forwarding wrapper.
func paramObjects(info *types.Info, lit *ast.FuncLit) ([]types.Object, bool) {
	if lit.Type == nil || lit.Type.Params == nil {
		return nil, false
	}
	objs := make([]types.Object, 0, lit.Type.Params.NumFields())
	for _, field := range lit.Type.Params.List {
		if len(field.Names) == 0 {
			return nil, false
		}
		for _, name := range field.Names {
			obj := info.ObjectOf(name)
			if obj == nil {
				return nil, false
			}
			objs = append(objs, obj)
		}
	}
	return objs, true
}

// forwardsExactly reports whether the call's arguments are exactly the given
// parameter objects: same count, same order, each a bare identifier with no
// transformation. Object identity, not spelling, decides a match.
func forwardsExactly(info *types.Info, call *ast.CallExpr, params []types.Object) bool {
	if len(call.Args) != len(params) {
		return false
	}
	for i, arg := range call.Args {
		id, ok := arg.(*ast.Ident)
		if !ok {
			return false
		}
		if info.ObjectOf(id) != params[i] {
			return false
		}
	}
	return true
}

// plainChain reports whether a selector target consists only of identifier,
// selector and paren segments. Index, call, assertion and dereference
// segments make the receiver's evaluation observable: a method value binds
// its receiver immediately, so lifting such a target out of the literal
// would change when it runs.
func plainChain(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		return plainChain(x.X)
	case *ast.ParenExpr:
		return plainChain(x.X)
	default:
		return false
	}
}

// cgoCallee reports whether the selector names a symbol from the "C"
// pseudo-package. Those exist only at call position and cannot be used as
// function values.
func cgoCallee(info *types.Info, sel *ast.SelectorExpr) bool {
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	pn, ok := info.ObjectOf(id).(*types.PkgName)
	return ok && pn.Imported().Path() == "C"
}

// assignable reports whether the callee, taken as a value, could stand
// wherever the literal's type is expected.
func assignable(info *types.Info, lit *ast.FuncLit, fun ast.Expr) bool {
	litType := info.TypeOf(lit)
	calleeType := calleeValueType(info, fun)
	if litType == nil || calleeType == nil {
		return false
	}
	return types.AssignableTo(calleeType, litType)
}

// calleeValueType resolves the type the callee would have outside call
// position. Method selections report their method-value signature, with the
// receiver already bound.
func calleeValueType(info *types.Info, fun ast.Expr) types.Type {
	fun = astutil.Unparen(fun)
	if sel, ok := fun.(*ast.SelectorExpr); ok {
		if s, ok := info.Selections[sel]; ok {
			return s.Type()
		}
	}
	return info.TypeOf(fun)
}

func calleeName(e ast.Expr) string {
	switch e.(type) {
	case *ast.Ident, *ast.SelectorExpr:
		return types.ExprString(e)
	default:
		return ""
	}
}

func init() {
	rule.Register(UnnecessaryLambda{})
}
