package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the gate module.
type Metrics struct {
	// Classifications by resolved reason and quality (classified/fallback)
	Classifications *prometheus.CounterVec

	// Evidence bullets produced per evaluation
	EvidenceBullets prometheus.Histogram

	// Recommendations by reason and recommended action
	Recommendations *prometheus.CounterVec

	// Full evaluation latency
	EvaluateLatency prometheus.Histogram

	// Action previews by channel and execution mode
	Previews *prometheus.CounterVec
}

// New creates the gate metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "foiagate_gate_classifications_total",
			Help: "Total gate classifications by reason and quality",
		}, []string{"reason", "quality"}),

		EvidenceBullets: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "foiagate_gate_evidence_bullets",
			Help:    "Number of evidence bullets produced per evaluation",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),

		Recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "foiagate_gate_recommendations_total",
			Help: "Total recommendations by reason and recommended action",
		}, []string{"reason", "action"}),

		EvaluateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "foiagate_gate_evaluate_duration_seconds",
			Help:    "Duration of a full gate evaluation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),

		Previews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "foiagate_action_previews_total",
			Help: "Total action previews by channel and execution mode",
		}, []string{"channel", "mode"}), // channel: "portal", "email"
	}
}

// IncrementClassification records one classification.
func (m *Metrics) IncrementClassification(reason, quality string) {
	if m != nil {
		m.Classifications.WithLabelValues(reason, quality).Inc()
	}
}

// ObserveEvidence records how many bullets an evaluation produced.
func (m *Metrics) ObserveEvidence(n int) {
	if m != nil {
		m.EvidenceBullets.Observe(float64(n))
	}
}

// IncrementRecommendation records a recommendation.
func (m *Metrics) IncrementRecommendation(reason, action string) {
	if m != nil {
		m.Recommendations.WithLabelValues(reason, action).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementPreview records a built preview.
func (m *Metrics) IncrementPreview(channel, mode string) {
	if m != nil {
		m.Previews.WithLabelValues(channel, mode).Inc()
	}
}
