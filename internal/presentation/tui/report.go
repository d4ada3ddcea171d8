package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/testwrap/internal/presentation/graph"
	"github.com/aretw0/testwrap/pkg/domain"
)

// ReportMarkdown formats a run report as a markdown document with a stage
// table and a pipeline diagram.
func ReportMarkdown(r *domain.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Name)
	fmt.Fprintf(&sb, "- **Result:** %s\n", resultString(r.Passed))
	if r.WorkDir != "" {
		fmt.Fprintf(&sb, "- **Working directory:** `%s`\n", r.WorkDir)
	}
	if !r.Started.IsZero() {
		fmt.Fprintf(&sb, "- **Started:** %s\n", r.Started.Format(time.RFC3339))
	}
	fmt.Fprintf(&sb, "- **Duration:** %s\n\n", formatDuration(r.Duration))

	sb.WriteString("| Stage | Result | Exit code | Duration | Detail |\n")
	sb.WriteString("|---|---|---:|---:|---|\n")
	for _, s := range r.Stages {
		code := "-"
		if s.Stage.IsCommand() {
			code = fmt.Sprint(s.ExitCode)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			s.Stage, resultString(s.Passed), code, formatDuration(s.Duration), escapeCell(s.Detail))
	}

	sb.WriteString("\n```mermaid\n")
	sb.WriteString(graph.GenerateMermaid(r))
	sb.WriteString("```\n")

	return sb.String()
}

// RenderReport writes the markdown report to w.
func RenderReport(w io.Writer, r *domain.Report) error {
	return RenderMarkdown(w, ReportMarkdown(r))
}

func resultString(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
