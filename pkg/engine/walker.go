package engine

import (
	"go/ast"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"github.com/marlowe/lintel/pkg/rule"
)

// Walker performs a single-pass pre-order traversal of a file AST,
// dispatching each node to only the rules that registered interest in that
// node type. A Walker is immutable after construction and safe for
// concurrent use across files.
type Walker struct {
	dispatchTable map[reflect.Type][]rule.Rule
	log           hclog.Logger
	faults        atomic.Int64
	diagPool      sync.Pool
}

// NewWalker builds the dispatch table for the given rules. Rules are invoked
// per node in the order given; callers that need a deterministic order sort
// the slice before constructing the walker.
func NewWalker(rules []rule.Rule, log hclog.Logger) *Walker {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	w := &Walker{
		dispatchTable: make(map[reflect.Type][]rule.Rule),
		log:           log,
		diagPool: sync.Pool{
			New: func() any {
				s := make([]rule.Diagnostic, 0, 8)
				return &s
			},
		},
	}

	for _, r := range rules {
		for _, nodeProto := range r.NodeTypes() {
			t := reflect.TypeOf(nodeProto)
			w.dispatchTable[t] = append(w.dispatchTable[t], r)
		}
	}

	return w
}

// Walk traverses the file AST exactly once, in document order, and returns
// all diagnostics produced by registered rules. Each node is offered to
// every rule registered for its type; a faulting rule is skipped for that
// node and the traversal continues. The tree is never mutated.
func (w *Walker) Walk(ctx *rule.Context) []rule.Diagnostic {
	poolVal, _ := w.diagPool.Get().(*[]rule.Diagnostic)
	if poolVal == nil {
		s := make([]rule.Diagnostic, 0, 8)
		poolVal = &s
	}
	buf := poolVal
	*buf = (*buf)[:0]
	defer w.diagPool.Put(buf)

	ast.Inspect(ctx.File, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		t := reflect.TypeOf(n)
		rules, ok := w.dispatchTable[t]
		if !ok {
			return true
		}
		for _, r := range rules {
			*buf = append(*buf, w.check(r, ctx, n)...)
		}
		return true
	})

	out := make([]rule.Diagnostic, len(*buf))
	copy(out, *buf)
	return out
}

// check runs a single rule callback, converting a panic into a logged fault
// so one rule cannot abort the walk for the others.
func (w *Walker) check(r rule.Rule, ctx *rule.Context, n ast.Node) (diags []rule.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			w.faults.Add(1)
			w.log.Error("rule panicked, skipping node",
				"rule", r.Name(),
				"file", ctx.FilePath,
				"pos", ctx.FileSet.Position(n.Pos()).String(),
				"panic", rec,
			)
			diags = nil
		}
	}()
	return r.Check(ctx, n)
}

// Faults returns how many rule callbacks have panicked across all walks.
func (w *Walker) Faults() int64 {
	return w.faults.Load()
}
