package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRule(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRule("like-terms", "Add")
	m.ObserveRule("like-terms", "Add")
	m.ObserveRule("log-identity", "Ln")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RuleFirings.WithLabelValues("Add", "like-terms")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleFirings.WithLabelValues("Ln", "log-identity")))
}

func TestObserveTool(t *testing.T) {
	m := New(nil)
	m.ObserveTool("simplify", false)
	m.ObserveTool("simplify", true)
	m.ObserveTool("simplify", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("simplify", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("simplify", "error")))
}

func TestMiddleware(t *testing.T) {
	m := New(nil)
	h := m.Middleware("/tool", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/tool", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tool", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/tool", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/tool", "405")))
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.ObserveRule("abs-nested", "Abs")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `symkernel_rule_firings_total{head="Abs",rule="abs-nested"} 1`)
}
