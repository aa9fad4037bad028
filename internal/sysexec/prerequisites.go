package sysexec

import (
	"fmt"
	"os/exec"
)

// Tool describes an external binary quickpanel depends on.
type Tool struct {
	// Name is the binary looked up in PATH
	Name string
	// Purpose is a short description shown by the doctor command
	Purpose string
	// Optional tools only degrade a single module when missing
	Optional bool
}

// ToolCheck represents the result of checking a single tool.
type ToolCheck struct {
	Tool
	// Available indicates whether the binary was found
	Available bool
	// Path is the resolved path
	Path string
	// Message provides additional context
	Message string
	// Error contains the underlying error if the check failed
	Error error
}

// ToolReport contains the results of all tool checks.
type ToolReport struct {
	Checks []ToolCheck
	// AllRequired is true if every non-optional tool is available
	AllRequired bool
}

// Missing returns the checks whose tool was not found.
func (r *ToolReport) Missing() []ToolCheck {
	var missing []ToolCheck
	for _, c := range r.Checks {
		if !c.Available {
			missing = append(missing, c)
		}
	}
	return missing
}

// CheckTools looks up every tool in PATH.
func CheckTools(tools []Tool) *ToolReport {
	return checkTools(tools, exec.LookPath)
}

func checkTools(tools []Tool, lookPath func(string) (string, error)) *ToolReport {
	report := &ToolReport{
		Checks:      make([]ToolCheck, 0, len(tools)),
		AllRequired: true,
	}

	for _, tool := range tools {
		check := ToolCheck{Tool: tool}

		path, err := lookPath(tool.Name)
		if err != nil {
			check.Error = &NotFoundError{Tool: tool.Name, Err: err}
			if tool.Optional {
				check.Message = fmt.Sprintf("%s not found; %s will show defaults", tool.Name, tool.Purpose)
			} else {
				check.Message = fmt.Sprintf("%s not found; required for %s", tool.Name, tool.Purpose)
				report.AllRequired = false
			}
		} else {
			check.Available = true
			check.Path = path
			check.Message = fmt.Sprintf("Found at %s", path)
		}

		report.Checks = append(report.Checks, check)
	}

	return report
}
