package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedReport() *domain.Report {
	r := &domain.Report{Name: "ls", WorkDir: "/tmp/testwrap-1", Duration: 1500 * time.Millisecond}
	r.Add(domain.StageResult{Stage: domain.StageValidate, Passed: true})
	r.Add(domain.StageResult{Stage: domain.StageCommand, Passed: true, ExitCode: 0, Duration: time.Second})
	r.Add(domain.StageResult{Stage: domain.StageFilesExist, Passed: false, Detail: "out|put.txt\nmissing (FILES_EXIST)"})
	return r
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(failedReport())

	assert.True(t, strings.HasPrefix(md, "# ls\n"))
	assert.Contains(t, md, "- **Result:** FAIL")
	assert.Contains(t, md, "`/tmp/testwrap-1`")
	assert.Contains(t, md, "| command | PASS | 0 | 1s |  |")
	assert.Contains(t, md, "| files-exist | FAIL | - | 0s | out\\|put.txt missing (FILES_EXIST) |")
	assert.Contains(t, md, "```mermaid\ngraph LR\n")
	assert.NotContains(t, md, "Started")
}

func TestRenderReportPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := failedReport()
	require.NoError(t, RenderReport(&buf, r))
	assert.Equal(t, ReportMarkdown(r), buf.String())
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer()("# Heading\n\nbody text")
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "body text")
}

func TestPrintStatus(t *testing.T) {
	t.Run("pass", func(t *testing.T) {
		var buf bytes.Buffer
		PrintStatus(&buf, &domain.Report{Name: "ok", Passed: true, Duration: 2 * time.Second})
		assert.Equal(t, " PASS  ok (2s)\n", buf.String())
	})

	t.Run("fail", func(t *testing.T) {
		var buf bytes.Buffer
		PrintStatus(&buf, failedReport())
		assert.Contains(t, buf.String(), " FAIL  ls at files-exist: ")
		assert.NotContains(t, buf.String(), "\x1b[")
	})
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	PrintHistory(&buf, []history.Record{
		{Name: "alpha", Passed: true, ExitCode: 0, Duration: time.Second},
		{Name: "beta", Passed: false, Stage: domain.StageCommand, ExitCode: 134, Detail: "return code 134 doesn't match expected 0"},
		{Name: "gamma", Passed: false, Stage: domain.StageValidate, ExitCode: -1},
	})

	out := buf.String()
	assert.Contains(t, out, "Recorded Runs (3)")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "134")
	assert.Contains(t, out, "1/3 passed")
	assert.Contains(t, strings.ToUpper(out), "EXIT CODE")
}
