package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once       sync.Once
	operations *prom.CounterVec
	rehashes   *prom.HistogramVec
	growth     *prom.CounterVec
	elements   *prom.GaugeVec
	buckets    *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.operations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "chainset",
			Name:      "operations_total",
			Help:      "Set operations by kind and outcome",
		}, []string{"set", "op", "result"})
		pr.rehashes = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "chainset",
			Name:      "rehash_duration_seconds",
			Help:      "Duration of full bucket array rebuilds",
			Buckets:   prom.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"set"})
		pr.growth = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "chainset",
			Name:      "bucket_growth_total",
			Help:      "Buckets added by rehashes",
		}, []string{"set"})
		pr.elements = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "chainset",
			Name:      "elements",
			Help:      "Distinct elements currently stored",
		}, []string{"set"})
		pr.buckets = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "chainset",
			Name:      "buckets",
			Help:      "Current bucket array length",
		}, []string{"set"})
		reg.MustRegister(pr.operations, pr.rehashes, pr.growth, pr.elements, pr.buckets)
	})
	return pr
}

func (p *PrometheusRecorder) IncOperation(set string, op Operation, result ResultLabel) {
	if p == nil || p.operations == nil {
		return
	}
	p.operations.WithLabelValues(set, string(op), string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRehash(set string, from, to int, d time.Duration) {
	if p == nil || p.rehashes == nil {
		return
	}
	p.rehashes.WithLabelValues(set).Observe(d.Seconds())
	if to > from {
		p.growth.WithLabelValues(set).Add(float64(to - from))
	}
}

func (p *PrometheusRecorder) SetElements(set string, n int) {
	if p == nil || p.elements == nil {
		return
	}
	p.elements.WithLabelValues(set).Set(float64(n))
}

func (p *PrometheusRecorder) SetBuckets(set string, n int) {
	if p == nil || p.buckets == nil {
		return
	}
	p.buckets.WithLabelValues(set).Set(float64(n))
}

// Forget drops every series labelled with set, used when a set is deleted.
func (p *PrometheusRecorder) Forget(set string) {
	if p == nil || p.operations == nil {
		return
	}
	labels := prom.Labels{"set": set}
	p.operations.DeletePartialMatch(labels)
	p.rehashes.DeletePartialMatch(labels)
	p.growth.DeletePartialMatch(labels)
	p.elements.DeletePartialMatch(labels)
	p.buckets.DeletePartialMatch(labels)
}
