package ui

import (
	"strings"

	"github.com/muurk/quickpanel/internal/sysexec"
)

// Checks renders a tool availability report, one line per tool.
func Checks(report *sysexec.ToolReport) string {
	var lines []string
	for _, c := range report.Checks {
		var marker string
		switch {
		case c.Available:
			marker = CheckOKStyle.Render(SuccessMarker)
		case c.Tool.Optional:
			marker = CheckOptionalStyle.Render(WarningMarker)
		default:
			marker = CheckMissingStyle.Render(FailureMarker)
		}

		detail := c.Path
		if !c.Available {
			detail = c.Message
		}
		lines = append(lines, "  "+marker+" "+
			ResultKeyStyle.Render(c.Tool.Name)+" "+
			ResultValueStyle.Render(c.Tool.Purpose)+"  "+
			TroubleshootingItemStyle.Render(detail))
	}
	return strings.Join(lines, "\n")
}
