package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/marlowe/lintel/pkg/rule"
)

// Reporter renders a diagnostic slice to a writer. The engine core imposes
// no serialization; everything format-specific lives behind this interface.
type Reporter interface {
	Report(w io.Writer, diagnostics []rule.Diagnostic) error
}

// Formats lists the output formats New accepts.
var Formats = []string{"text", "json", "sarif"}

// New returns the reporter for the named format. An empty format selects
// text output.
func New(format string, color bool) (Reporter, error) {
	switch format {
	case "text", "":
		return &TextReporter{Color: color}, nil
	case "json":
		return &JSONReporter{}, nil
	case "sarif":
		return &SARIFReporter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s)", format, strings.Join(Formats, ", "))
	}
}
