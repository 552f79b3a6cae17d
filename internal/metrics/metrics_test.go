package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestIncrementsCounter(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/posts", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/posts", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/posts", "200")))
}

func TestAuthEventOutcome(t *testing.T) {
	m := New()

	m.AuthEvent("login", nil)
	m.AuthEvent("login", errors.New("boom"))
	m.AuthEvent("login", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues("login", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.authEvents.WithLabelValues("login", "failure")))
}

func TestSubscriberGauge(t *testing.T) {
	m := New()

	m.SubscriberAdded()
	m.SubscriberAdded()
	m.SubscriberRemoved()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscribers))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.AuthEvent("signup", nil)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "auth_events_total")
}
