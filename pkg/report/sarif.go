package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/marlowe/lintel/pkg/rule"
)

type SARIFReporter struct{}

func (r *SARIFReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("lintel", "https://github.com/marlowe/lintel")

	seen := make(map[string]bool)
	for _, d := range diagnostics {
		if !seen[d.Rule] {
			seen[d.Rule] = true
			run.AddRule(d.Rule).
				WithDescription(d.Rule).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: toSarifLevel(d.Severity),
				})
		}

		region := sarif.NewRegion().
			WithStartLine(d.Pos.Line).
			WithStartColumn(d.Pos.Column)
		if d.End.Line > 0 {
			region = region.WithEndLine(d.End.Line).WithEndColumn(d.End.Column)
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.Pos.Filename)).
				WithRegion(region),
		)

		result := sarif.NewRuleResult(d.Rule).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(toSarifLevel(d.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}

	rep.AddRun(run)
	return rep.PrettyWrite(w)
}

func toSarifLevel(s rule.Severity) string {
	switch s {
	case rule.SeverityError:
		return "error"
	case rule.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
