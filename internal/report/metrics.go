package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/educacion-app/frontend-smoke/internal/smoke"
)

// NewRegistry builds a registry describing s, suitable for the node
// exporter textfile collector.
func NewRegistry(s Summary) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	checkPassed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "frontend_smoke_check_passed",
		Help: "1 if the named smoke check passed in the last run, 0 otherwise",
	}, []string{"check"})
	outcomes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "frontend_smoke_checks",
		Help: "Number of smoke checks in the last run by outcome",
	}, []string{"outcome"})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "frontend_smoke_run_duration_seconds",
		Help: "Wall time of the last smoke run",
	})
	finished := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "frontend_smoke_last_run_timestamp_seconds",
		Help: "Unix time the last smoke run finished",
	})
	successRate := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "frontend_smoke_success_rate_percent",
		Help: "Percentage of passing checks in the last run",
	})

	for _, c := range []prometheus.Collector{checkPassed, outcomes, duration, finished, successRate} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	for _, kind := range []smoke.Kind{smoke.KindPass, smoke.KindAssertion, smoke.KindError} {
		outcomes.WithLabelValues(kind.String()).Set(0)
	}
	for _, r := range s.Results {
		v := 0.0
		if r.Passed {
			v = 1
		}
		checkPassed.WithLabelValues(r.Name).Set(v)
		outcomes.WithLabelValues(r.Kind.String()).Inc()
	}
	duration.Set(s.Duration().Seconds())
	finished.Set(float64(s.FinishedAt.Unix()))
	successRate.Set(s.SuccessRate)

	return reg, nil
}

// WriteMetrics writes s to path in the Prometheus text format.
func WriteMetrics(path string, s Summary) error {
	reg, err := NewRegistry(s)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
