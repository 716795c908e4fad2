package style

import (
	"go/ast"
	"strings"
	"unicode"

	"github.com/marlowe/lintel/pkg/rule"
)

// NamingConvention flags exported identifiers that stray from Go casing:
// underscores in names that should be MixedCaps, and half-capitalized
// initialisms such as Url or Http in place of URL and HTTP.
type NamingConvention struct{}

func (NamingConvention) Name() string            { return "naming-convention" }
func (NamingConvention) Category() rule.Category { return rule.CategoryStyle }
func (NamingConvention) Severity() rule.Severity { return rule.SeverityWarning }
func (NamingConvention) Description() string {
	return "Checks exported names for MixedCaps casing and initialism spelling"
}
func (NamingConvention) NeedsTypeInfo() bool { return false }
func (NamingConvention) NodeTypes() []ast.Node {
	return []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.TypeSpec)(nil),
		(*ast.ValueSpec)(nil),
	}
}

func (NamingConvention) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	var diags []rule.Diagnostic
	switch n := node.(type) {
	case *ast.FuncDecl:
		if d := checkName(ctx, n.Name); d != nil {
			diags = append(diags, *d)
		}
	case *ast.TypeSpec:
		if d := checkName(ctx, n.Name); d != nil {
			diags = append(diags, *d)
		}
	case *ast.ValueSpec:
		for _, name := range n.Names {
			if d := checkName(ctx, name); d != nil {
				diags = append(diags, *d)
			}
		}
	}
	return diags
}

func checkName(ctx *rule.Context, ident *ast.Ident) *rule.Diagnostic {
	if ident == nil || !ident.IsExported() {
		return nil
	}
	name := ident.Name

	if strings.Contains(name, "_") {
		// SCREAMING_CASE constants are tolerated.
		if name == strings.ToUpper(name) {
			return nil
		}
		return namingDiag(ctx, ident, rule.SeverityWarning,
			"exported name "+name+" contains underscores; use MixedCaps")
	}

	for _, acr := range initialisms {
		if strings.Contains(name, acr) {
			continue
		}
		mixed := acr[:1] + strings.ToLower(acr[1:])
		idx := strings.Index(name, mixed)
		if idx < 0 {
			continue
		}
		end := idx + len(mixed)
		if end < len(name) && !unicode.IsUpper(rune(name[end])) {
			continue
		}
		return namingDiag(ctx, ident, rule.SeverityInfo,
			name+" should spell "+mixed+" as "+acr)
	}

	return nil
}

func namingDiag(ctx *rule.Context, ident *ast.Ident, sev rule.Severity, msg string) *rule.Diagnostic {
	return &rule.Diagnostic{
		Rule:     "naming-convention",
		Category: rule.CategoryStyle,
		Severity: sev,
		Pos:      ctx.FileSet.Position(ident.Pos()),
		End:      ctx.FileSet.Position(ident.End()),
		Message:  msg,
	}
}

var initialisms = []string{
	"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP",
	"HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC",
	"SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI",
	"UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XMPP", "XSRF", "XSS",
}

func init() {
	rule.Register(NamingConvention{})
}
