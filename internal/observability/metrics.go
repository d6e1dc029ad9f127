package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service. The
// registerer is injected so tests can use an isolated registry.
type Metrics struct {
	Turns           *prometheus.CounterVec
	SlotRejections  *prometheus.CounterVec
	LeadsCaptured   prometheus.Counter
	LeadsAbandoned  prometheus.Counter
	PortErrors      *prometheus.CounterVec
	TurnDuration    prometheus.Histogram
	ActiveEpisodes  prometheus.Gauge
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Processed turns by effective intent.",
		}, []string{"intent"}),
		SlotRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_rejections_total",
			Help:      "Slot values rejected by validation, by slot.",
		}, []string{"slot"}),
		LeadsCaptured: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_captured_total",
			Help:      "Lead records submitted successfully to the backend action.",
		}),
		LeadsAbandoned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lead_episodes_abandoned_total",
			Help:      "Lead episodes abandoned after exhausting slot retries.",
		}),
		PortErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "port_errors_total",
			Help:      "External port failures by port name.",
		}, []string{"port"}),
		TurnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "End-to-end turn processing latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ActiveEpisodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_lead_episodes",
			Help:      "Sessions currently in a slot-filling state.",
		}),
	}
}

func (m *Metrics) ObserveTurn(intent string, d time.Duration) {
	m.Turns.WithLabelValues(intent).Inc()
	m.TurnDuration.Observe(d.Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
