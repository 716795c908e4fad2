package rule

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a config-file severity string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q (want info, warning or error)", s)
	}
}

type Category int

const (
	CategoryBugs Category = iota
	CategoryStyle
	CategoryPerf
)

func (c Category) String() string {
	switch c {
	case CategoryBugs:
		return "bugs"
	case CategoryStyle:
		return "style"
	case CategoryPerf:
		return "perf"
	default:
		return "unknown"
	}
}

type Diagnostic struct {
	Rule     string
	Category Category
	Severity Severity
	Pos      token.Position
	End      token.Position
	Message  string
}

// Context carries the per-file state a rule needs during a check: the file's
// AST, position table, and the resolved type information for its package.
// Rules must treat every field as read-only.
type Context struct {
	File     *ast.File
	FileSet  *token.FileSet
	TypeInfo *types.Info
	Pkg      *types.Package
	FilePath string
}

// TypeOf returns the type recorded for an expression, or nil when type
// information is unavailable or the expression was not resolved.
func (c *Context) TypeOf(e ast.Expr) types.Type {
	if c.TypeInfo == nil {
		return nil
	}
	return c.TypeInfo.TypeOf(e)
}

// ObjectOf returns the object an identifier denotes, or nil when type
// information is unavailable or the identifier was not resolved.
func (c *Context) ObjectOf(id *ast.Ident) types.Object {
	if c.TypeInfo == nil {
		return nil
	}
	return c.TypeInfo.ObjectOf(id)
}

// Rule is the interface that all lint rules must implement.
type Rule interface {
	Name() string
	Category() Category
	Severity() Severity
	Description() string
	NeedsTypeInfo() bool
	// NodeTypes returns zero-value instances of the AST node types
	// this rule is interested in. The walker uses reflect.TypeOf on
	// each to build a dispatch table.
	NodeTypes() []ast.Node
	Check(ctx *Context, node ast.Node) []Diagnostic
}
