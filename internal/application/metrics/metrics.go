package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application lifecycle.
type Metrics struct {
	Submitted            prometheus.Counter
	Decided              *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	DecideDuration       prometheus.Histogram
}

// New creates and registers all lifecycle metrics.
func New() *Metrics {
	return &Metrics{
		Submitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_applications_submitted_total",
			Help: "Total number of applications accepted into the active partition",
		}),
		Decided: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_applications_decided_total",
			Help: "Total number of decided applications by outcome",
		}, []string{"outcome"}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_notification_failures_total",
			Help: "Total number of decision notifications that failed on every channel",
		}),
		DecideDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_decide_duration_seconds",
			Help:    "Latency of the decide operation including the archive move",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementSubmitted() {
	m.Submitted.Inc()
}

func (m *Metrics) IncrementDecided(outcome string) {
	m.Decided.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementNotificationFailures() {
	m.NotificationFailures.Inc()
}

func (m *Metrics) ObserveDecideDuration(d time.Duration) {
	m.DecideDuration.Observe(d.Seconds())
}
