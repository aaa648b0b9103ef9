package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Identification outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeExhausted = "exhausted"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Escalation kinds recorded by the identifier.
const (
	EscalationNoise       = "noise"
	EscalationOutside     = "outside"
	EscalationSensitivity = "sensitivity"
	EscalationMorphology  = "morphology"
)

// Batch input results.
const (
	BatchOK        = "ok"
	BatchExhausted = "exhausted"
	BatchFailed    = "failed"
)

// Metrics tracks document identification. All methods are safe on a nil
// receiver so callers without metrics pass nil.
type Metrics struct {
	Identifications  *prometheus.CounterVec
	Attempts         prometheus.Counter
	Escalations      *prometheus.CounterVec
	IdentifyDuration prometheus.Histogram
	BatchDocuments   *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Identifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "doccrop_identifications_total",
			Help: "Document identifications by outcome",
		}, []string{"outcome"}),
		Attempts: f.NewCounter(prometheus.CounterOpts{
			Name: "doccrop_identify_attempts_total",
			Help: "Identification attempts, re-runs included",
		}),
		Escalations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "doccrop_escalations_total",
			Help: "Retry escalations by kind",
		}, []string{"kind"}),
		IdentifyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "doccrop_identify_duration_seconds",
			Help:    "Duration of a full identification",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BatchDocuments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "doccrop_batch_documents_total",
			Help: "Batch inputs by result",
		}, []string{"result"}),
	}
}

// ObserveIdentification records one finished identification.
// Call with time.Now() taken at the start.
func (m *Metrics) ObserveIdentification(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Identifications.WithLabelValues(outcome).Inc()
	m.IdentifyDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementAttempts() {
	if m == nil {
		return
	}
	m.Attempts.Inc()
}

func (m *Metrics) IncrementEscalation(kind string) {
	if m == nil {
		return
	}
	m.Escalations.WithLabelValues(kind).Inc()
}

// IncrementBatch counts a batch input by one of the Batch* results.
func (m *Metrics) IncrementBatch(result string) {
	if m == nil {
		return
	}
	m.BatchDocuments.WithLabelValues(result).Inc()
}

// Handler serves the collectors of g on /metrics and a liveness probe on
// /healthz.
func Handler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
