package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(Config{Namespace: "medifind", ServiceName: "test"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/medicines/search", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/medicines/search?query=x", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/medicines/search", "404")))
}

func TestGaugeAndStoreCounters(t *testing.T) {
	m := NewMetrics(Config{Namespace: "medifind", ServiceName: "test"})

	m.SetDocuments("medicineDB", 42)
	m.ObserveStore("find", nil)
	m.ObserveStore("find", errors.New("boom"))

	assert.Equal(t, 42.0, testutil.ToFloat64(m.documents.WithLabelValues("medicineDB")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("find", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("find", "error")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics(Config{Namespace: "medifind", ServiceName: "test"})
	m.SetDocuments("medicineDB", 3)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `medifind_collection_documents{collection="medicineDB",service="test"} 3`), body)
}
