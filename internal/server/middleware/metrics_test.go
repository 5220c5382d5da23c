package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Middleware(t *testing.T) {
	m := NewMetrics()

	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/api/{kind}/{id:[0-9]+}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	for _, path := range []string{"/api/tour/1/", "/api/worker/2/"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	// Оба запроса попадают в один шаблон маршрута
	count := testutil.ToFloat64(m.requests.WithLabelValues("/api/{kind}/{id:[0-9]+}/", http.MethodDelete, "204"))
	assert.Equal(t, 2.0, count)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.requests.WithLabelValues("/health", http.MethodGet, "200").Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tourplan_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
