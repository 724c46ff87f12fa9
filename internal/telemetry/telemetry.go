// Package telemetry records batch simulation statistics with Prometheus
// collectors on a private registry.
package telemetry

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusFailed  = "failed"
)

// Recorder receives one observation per simulated projectile.
type Recorder interface {
	ObserveSimulation(status string, steps int, elapsed time.Duration)
}

// Registry holds the collectors for one process or one test.
type Registry struct {
	reg *prometheus.Registry

	simulationsTotal  *prometheus.CounterVec
	integrationSteps  prometheus.Histogram
	simulationSeconds prometheus.Histogram
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ballistics_simulations_total",
				Help: "Total number of projectile simulations by outcome.",
			},
			[]string{"status"},
		),
		integrationSteps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ballistics_integration_steps",
				Help:    "Accepted integrator steps per simulation.",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
		simulationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ballistics_simulation_seconds",
				Help:    "Wall time of one projectile simulation in seconds.",
				Buckets: prometheus.ExponentialBuckets(1e-4, 4, 8),
			},
		),
	}
	r.reg.MustRegister(r.simulationsTotal, r.integrationSteps, r.simulationSeconds)
	return r
}

func (r *Registry) ObserveSimulation(status string, steps int, elapsed time.Duration) {
	r.simulationsTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		r.integrationSteps.Observe(float64(steps))
	}
	r.simulationSeconds.Observe(elapsed.Seconds())
}

// Gatherer exposes the registry for scraping or inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Sample is a flattened metric value for reports.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Summary gathers counters and histogram counts and sums, sorted by name.
func (r *Registry) Summary() ([]Sample, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: m.GetCounter().GetValue()})
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				out = append(out,
					Sample{Name: mf.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: mf.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveSimulation(string, int, time.Duration) {}
