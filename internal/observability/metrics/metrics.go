package metrics

import "github.com/prometheus/client_golang/prometheus"

// ClassifierMetrics exposes counters/histograms for intent classification.
type ClassifierMetrics struct {
	classificationsTotal *prometheus.CounterVec
	classifyLatency      prometheus.Histogram
}

func NewClassifierMetrics(reg prometheus.Registerer) *ClassifierMetrics {
	m := &ClassifierMetrics{
		classificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pharmabot",
			Subsystem: "intent",
			Name:      "classifications_total",
			Help:      "Total intent classifications by resolved intent and source",
		}, []string{"intent", "source"}),
		classifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pharmabot",
			Subsystem: "intent",
			Name:      "classify_seconds",
			Help:      "Latency of message classification including session I/O",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.classificationsTotal, m.classifyLatency)
	return m
}

func (m *ClassifierMetrics) ObserveClassification(intent, source string) {
	if m == nil {
		return
	}
	m.classificationsTotal.WithLabelValues(intent, source).Inc()
}

func (m *ClassifierMetrics) ObserveClassifyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.classifyLatency.Observe(seconds)
}
