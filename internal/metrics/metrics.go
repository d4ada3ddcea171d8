// Package metrics exposes run outcomes as Prometheus metrics.
//
// A wrapper process is short-lived, so metrics are written once per run in the
// node_exporter textfile-collector format instead of being served.
package metrics

import (
	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds a private registry with the run gauges.
type Metrics struct {
	registry      *prometheus.Registry
	runSuccess    *prometheus.GaugeVec
	runDuration   *prometheus.GaugeVec
	runTimestamp  *prometheus.GaugeVec
	exitCode      *prometheus.GaugeVec
	stageDuration *prometheus.GaugeVec
}

// New creates and registers the run metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testwrap_run_success",
			Help: "1 if the last wrapped run passed every check, 0 otherwise",
		}, []string{"test"}),
		runDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testwrap_run_duration_seconds",
			Help: "Wall time of the last wrapped run",
		}, []string{"test"}),
		runTimestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testwrap_run_timestamp_seconds",
			Help: "Unix time the last wrapped run started",
		}, []string{"test"}),
		exitCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testwrap_command_exit_code",
			Help: "Effective exit code of the primary command (-1 if it never ran)",
		}, []string{"test"}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testwrap_stage_duration_seconds",
			Help: "Duration of each attempted pipeline stage",
		}, []string{"test", "stage", "passed"}),
	}
	m.registry.MustRegister(m.runSuccess, m.runDuration, m.runTimestamp, m.exitCode, m.stageDuration)
	return m
}

// Observe records a finished run.
func (m *Metrics) Observe(r *domain.Report) {
	name := r.Name
	success := 0.0
	if r.Passed {
		success = 1
	}
	m.runSuccess.WithLabelValues(name).Set(success)
	m.runDuration.WithLabelValues(name).Set(r.Duration.Seconds())
	m.runTimestamp.WithLabelValues(name).Set(float64(r.Started.Unix()))
	m.exitCode.WithLabelValues(name).Set(float64(r.MainExitCode()))

	for _, s := range r.Stages {
		passed := "false"
		if s.Passed {
			passed = "true"
		}
		m.stageDuration.WithLabelValues(name, string(s.Stage), passed).Set(s.Duration.Seconds())
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile atomically writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
