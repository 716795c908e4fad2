package report

import (
	"encoding/json"
	"io"

	"github.com/marlowe/lintel/pkg/rule"
)

type JSONReporter struct{}

type jsonDiagnostic struct {
	Rule      string `json:"rule"`
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
	Message   string `json:"message"`
}

func (r *JSONReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, jsonDiagnostic{
			Rule:      d.Rule,
			Category:  d.Category.String(),
			Severity:  d.Severity.String(),
			File:      d.Pos.Filename,
			Line:      d.Pos.Line,
			Column:    d.Pos.Column,
			EndLine:   d.End.Line,
			EndColumn: d.End.Column,
			Message:   d.Message,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
