package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs a recording tracer provider for the test
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return sr
}

func tracedEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), TracingWithConfig(TracingConfig{ServiceName: "test-service", Enabled: true}), SpanEnricher())
	engine.GET("/work-orders/:id", func(c *gin.Context) {
		if c.Param("id") == "boom" {
			_ = c.Error(assert.AnError)
			c.Status(http.StatusBadGateway)
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	engine := gin.New()
	engine.Use(TracingWithConfig(TracingConfig{Enabled: false}))
	engine.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracingWithConfig_Enabled(t *testing.T) {
	sr := setupTestTracer(t)

	req := httptest.NewRequest(http.MethodGet, "/work-orders/16306", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	tracedEngine().ServeHTTP(w, req)

	require.Len(t, sr.Ended(), 1)
	span := sr.Ended()[0]
	assert.Contains(t, span.Name(), "/work-orders/:id")

	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "req-42", attrs["request_id"])
	assert.Equal(t, "16306", attrs["work_order.id"])
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestSpanEnricher_MarksServerErrors(t *testing.T) {
	sr := setupTestTracer(t)

	w := httptest.NewRecorder()
	tracedEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/work-orders/boom", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
}
