package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/marlowe/lintel/pkg/rule"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// TextReporter writes one line per diagnostic in the conventional
// path:line:col form, followed by a count of findings broken down by
// severity.
type TextReporter struct {
	Color bool
}

func (r *TextReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	counts := make(map[rule.Severity]int)
	for _, d := range diagnostics {
		counts[d.Severity]++
		if r.Color {
			_, _ = fmt.Fprintf(w, "%s%s:%s %s%s%s: %s %s(%s)%s\n",
				colorGray, d.Pos, colorReset,
				severityColor(d.Severity), d.Severity, colorReset,
				d.Message,
				colorGray, d.Rule, colorReset,
			)
		} else {
			_, _ = fmt.Fprintf(w, "%s: %s: %s (%s)\n",
				d.Pos, d.Severity, d.Message, d.Rule,
			)
		}
	}

	if len(diagnostics) > 0 {
		_, _ = fmt.Fprintf(w, "\nfound %s: %s\n",
			plural(len(diagnostics), "issue"), breakdown(counts))
	}

	return nil
}

// breakdown renders the per-severity counts, most severe first, skipping
// severities with no findings.
func breakdown(counts map[rule.Severity]int) string {
	var parts []string
	for _, sev := range []rule.Severity{rule.SeverityError, rule.SeverityWarning, rule.SeverityInfo} {
		if n := counts[sev]; n > 0 {
			parts = append(parts, plural(n, sev.String()))
		}
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 || noun == "info" {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func severityColor(s rule.Severity) string {
	switch s {
	case rule.SeverityError:
		return colorRed
	case rule.SeverityWarning:
		return colorYellow
	case rule.SeverityInfo:
		return colorCyan
	default:
		return colorReset
	}
}
