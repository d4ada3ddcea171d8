package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/testwrap/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the wrapper pipeline.
// Stages present in the report are styled as passed or failed; the rest are
// drawn dimmed as skipped. Optional stages (pre/post command, conditions)
// are always drawn so the chart keeps the same shape between runs.
func GenerateMermaid(r *domain.Report) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	attempted := make(map[domain.Stage]domain.StageResult, len(r.Stages))
	for _, s := range r.Stages {
		attempted[s.Stage] = s
	}

	for i, stage := range domain.Stages {
		id := sanitizeMermaidID(string(stage))

		// Commands are subroutines, checks are plain boxes.
		opener, closer := "[", "]"
		switch stage {
		case domain.StagePreCommand, domain.StageCommand, domain.StagePostCommand:
			opener, closer = "[[", "]]"
		case domain.StageValidate:
			opener, closer = "((", "))"
		}

		label := string(stage)
		if res, ok := attempted[stage]; ok && res.Stage.IsCommand() {
			label = fmt.Sprintf("%s <br/> rc=%d", stage, res.ExitCode)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

		if i > 0 {
			prev := sanitizeMermaidID(string(domain.Stages[i-1]))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", prev, id))
		}
	}

	sb.WriteString("\n    %% Outcome Styles\n")
	// Force black text (color:#000) for contrast on both light and dark themes.
	sb.WriteString("    classDef passed fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:4px,color:#000;\n")
	sb.WriteString("    classDef skipped fill:#fafafa,stroke:#bdbdbd,stroke-dasharray:4,color:#9e9e9e;\n")

	for _, stage := range domain.Stages {
		class := "skipped"
		if res, ok := attempted[stage]; ok {
			class = "failed"
			if res.Passed {
				class = "passed"
			}
		}
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(string(stage)), class))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
