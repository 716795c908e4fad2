// Package purity decides whether evaluating an expression is free of
// observable effects: it reads no binding from a caller-supplied forbidden
// set and is built only from references to immutable declarations. Rules use
// it to tell when a sub-expression can be lifted out of a function literal
// without changing behavior.
package purity

import (
	"go/ast"
	"go/types"
)

// Set is an identity set of resolved objects an expression must not read.
type Set map[types.Object]struct{}

func NewSet(objs ...types.Object) Set {
	s := make(Set, len(objs))
	for _, obj := range objs {
		s.Add(obj)
	}
	return s
}

func (s Set) Add(obj types.Object) {
	if obj != nil {
		s[obj] = struct{}{}
	}
}

func (s Set) Has(obj types.Object) bool {
	_, ok := s[obj]
	return ok
}

// IsFinal reports whether e never reads an object in forbidden and is
// composed only of the expression shapes that are provably safe to hoist:
// identifiers bound to immutable declarations, selector chains of such
// identifiers, parenthesized forms of either, and function literals whose
// entire subtree is free of forbidden references. Every other shape is
// conservatively not final. A nil expression is trivially final.
//
// The check is pure: it never mutates its inputs and may be re-invoked on
// the same expression at no cost beyond re-traversal.
func IsFinal(info *types.Info, forbidden Set, e ast.Expr) bool {
	if e == nil {
		return true
	}
	if info == nil {
		return false
	}
	switch x := e.(type) {
	case *ast.ParenExpr:
		return IsFinal(info, forbidden, x.X)
	case *ast.FuncLit:
		return !readsForbidden(info, forbidden, x)
	case *ast.SelectorExpr:
		return IsFinal(info, forbidden, x.X) && finalIdent(info, forbidden, x.Sel)
	case *ast.Ident:
		return finalIdent(info, forbidden, x)
	default:
		return false
	}
}

// finalIdent classifies a single identifier. The forbidden-set test must run
// before the immutability classification: a forbidden object is never final,
// whatever its kind.
func finalIdent(info *types.Info, forbidden Set, id *ast.Ident) bool {
	obj := info.ObjectOf(id)
	if obj == nil {
		// An unresolved identifier could name anything, including a
		// mutable or forbidden binding.
		return false
	}
	if forbidden.Has(obj) {
		return false
	}
	return immutable(obj)
}

// immutable reports whether reading the object can never observe a state
// change. Go has no final variables, so every *types.Var (locals,
// parameters, package variables, struct fields) counts as mutable.
func immutable(obj types.Object) bool {
	switch obj.(type) {
	case *types.Func, *types.Const, *types.PkgName, *types.TypeName, *types.Builtin, *types.Nil:
		return true
	default:
		return false
	}
}

// readsForbidden walks the whole subtree and reports whether any identifier
// in it resolves to a forbidden object. Shadowing needs no special handling:
// inner declarations produce distinct objects.
func readsForbidden(info *types.Info, forbidden Set, n ast.Node) bool {
	found := false
	ast.Inspect(n, func(c ast.Node) bool {
		if found {
			return false
		}
		id, ok := c.(*ast.Ident)
		if !ok {
			return true
		}
		if obj := info.ObjectOf(id); obj != nil && forbidden.Has(obj) {
			found = true
			return false
		}
		return true
	})
	return found
}
