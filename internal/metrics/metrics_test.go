package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gauge returns the value of the gauge name whose labels include want.
func gauge(t *testing.T, m *Metrics, name string, want map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			matched := 0
			for _, lp := range metric.GetLabel() {
				if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
					matched++
				}
			}
			if matched == len(want) {
				return metric.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("gauge %s%v not found", name, want)
	return 0
}

func TestObserve(t *testing.T) {
	m := New()
	r := &domain.Report{Name: "t1", Started: time.Unix(1700000000, 0), Duration: 2 * time.Second, Passed: false}
	r.Add(domain.StageResult{Stage: domain.StageValidate, Passed: true, Duration: time.Millisecond})
	r.Add(domain.StageResult{Stage: domain.StageCommand, Passed: false, ExitCode: 134, Duration: time.Second})

	m.Observe(r)

	test := map[string]string{"test": "t1"}
	assert.Equal(t, 0.0, gauge(t, m, "testwrap_run_success", test))
	assert.Equal(t, 2.0, gauge(t, m, "testwrap_run_duration_seconds", test))
	assert.Equal(t, 1700000000.0, gauge(t, m, "testwrap_run_timestamp_seconds", test))
	assert.Equal(t, 134.0, gauge(t, m, "testwrap_command_exit_code", test))
	assert.Equal(t, 1.0, gauge(t, m, "testwrap_stage_duration_seconds",
		map[string]string{"test": "t1", "stage": "command", "passed": "false"}))
	assert.Equal(t, 0.001, gauge(t, m, "testwrap_stage_duration_seconds",
		map[string]string{"stage": "validate", "passed": "true"}))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(&domain.Report{Name: "ok", Passed: true})

	path := filepath.Join(t.TempDir(), "testwrap.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `testwrap_run_success{test="ok"} 1`)
	assert.Contains(t, string(data), `testwrap_command_exit_code{test="ok"} -1`)
}
