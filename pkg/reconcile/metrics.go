/*
Copyright 2025 The Declconf Authors.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records reconciliation outcomes.
type Metrics interface {
	// Reconciled records a completed reconciliation and the number of
	// changes it produced.
	Reconciled(changes int)
}

// NopMetrics records nothing.
type NopMetrics struct{}

// Reconciled does nothing.
func (NopMetrics) Reconciled(_ int) {}

// PrometheusMetrics records reconciliation outcomes as Prometheus metrics.
// It satisfies both Metrics and prometheus.Collector. Callers must register
// it with their registry.
type PrometheusMetrics struct {
	reconciliations prometheus.Counter
	changes         prometheus.Counter
	changesPer      prometheus.Histogram
}

// NewPrometheusMetrics returns new Prometheus reconciliation metrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		reconciliations: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: "declconf",
			Name:      "reconciliations_total",
			Help:      "Total number of configuration reconciliations.",
		}),
		changes: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: "declconf",
			Name:      "changes_total",
			Help:      "Total number of configuration changes recorded.",
		}),
		changesPer: prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: "declconf",
			Name:      "reconciliation_changes",
			Help:      "Number of changes recorded per reconciliation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// Reconciled records a completed reconciliation and the number of changes it
// produced.
func (m *PrometheusMetrics) Reconciled(changes int) {
	m.reconciliations.Inc()
	m.changes.Add(float64(changes))
	m.changesPer.Observe(float64(changes))
}

// Describe sends the descriptors of each metric to the provided channel.
func (m *PrometheusMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.reconciliations.Describe(ch)
	m.changes.Describe(ch)
	m.changesPer.Describe(ch)
}

// Collect sends each collected metric to the provided channel.
func (m *PrometheusMetrics) Collect(ch chan<- prometheus.Metric) {
	m.reconciliations.Collect(ch)
	m.changes.Collect(ch)
	m.changesPer.Collect(ch)
}
