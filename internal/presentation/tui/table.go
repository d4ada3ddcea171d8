package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/testwrap/pkg/history"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintHistory writes the recorded runs as a table.
func PrintHistory(w io.Writer, records []history.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Recorded Runs (%d)", len(records)))

	t.AppendHeader(table.Row{"Name", "Status", "Exit Code", "Failed Stage", "Duration", "Started", "Detail"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Name", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Exit Code", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Detail", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	passed := 0
	for _, rec := range records {
		if rec.Passed {
			passed++
		}
		code := "-"
		if rec.ExitCode >= 0 {
			code = fmt.Sprint(rec.ExitCode)
		}
		started := "-"
		if !rec.Started.IsZero() {
			started = rec.Started.Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{
			rec.Name,
			resultString(rec.Passed),
			code,
			string(rec.Stage),
			formatDuration(rec.Duration),
			started,
			rec.Detail,
		})
	}

	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d/%d passed", passed, len(records))})
	t.Render()
}
