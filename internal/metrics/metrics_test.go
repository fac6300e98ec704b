package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingCreated)
	IncBookingCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(bookingCreated))

	before = testutil.ToFloat64(chatResponses.WithLabelValues("greeting"))
	IncChatResponse("greeting")
	assert.Equal(t, before+1, testutil.ToFloat64(chatResponses.WithLabelValues("greeting")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Register()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/metrics", Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rentalhub_http_request_duration_seconds")
}
