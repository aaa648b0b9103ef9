package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveIdentification(OutcomeAccepted, time.Now())
	m.ObserveIdentification(OutcomeAccepted, time.Now())
	m.ObserveIdentification(OutcomeExhausted, time.Now())
	m.IncrementAttempts()
	m.IncrementEscalation(EscalationNoise)
	m.IncrementBatch(BatchOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Identifications.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Identifications.WithLabelValues(OutcomeExhausted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Attempts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Escalations.WithLabelValues(EscalationNoise)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchDocuments.WithLabelValues(BatchOK)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveIdentification(OutcomeFailed, time.Now())
		m.IncrementAttempts()
		m.IncrementEscalation(EscalationOutside)
		m.IncrementBatch("failed")
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncrementAttempts()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "doccrop_identify_attempts_total 1")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
