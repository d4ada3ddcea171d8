package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintStatus writes a one-line PASS/FAIL summary of the run to w.
// Colour is only emitted when w supports it.
func PrintStatus(w io.Writer, r *domain.Report) {
	out := termenv.NewOutput(w)

	if r.Passed {
		badge := out.String(" PASS ").Bold().Foreground(out.Color("#ffffff")).Background(out.Color("#2e7d32"))
		fmt.Fprintf(w, "%s %s (%s)\n", badge, r.Name, formatDuration(r.Duration))
		return
	}

	badge := out.String(" FAIL ").Bold().Foreground(out.Color("#ffffff")).Background(out.Color("#c62828"))
	failed, ok := r.Failed()
	if !ok {
		fmt.Fprintf(w, "%s %s (%s)\n", badge, r.Name, formatDuration(r.Duration))
		return
	}
	stage := out.String(string(failed.Stage)).Foreground(out.Color("#fb7185"))
	fmt.Fprintf(w, "%s %s at %s: %s\n", badge, r.Name, stage, failed.Detail)
}
