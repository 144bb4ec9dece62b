package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/v1/orders", "/v1/orders"},
		{"/v1/orders/42/transitions", "/v1/orders/{id}/transitions"},
		{"/v1/transitions/8e7a6b5c/confirm", "/v1/transitions/{id}/confirm"},
		{"/v1/transitions/8e7a6b5c/decline", "/v1/transitions/{id}/decline"},
		{"/v1/transitions/8e7a6b5c", "/v1/transitions/{id}"},
		{"/v1/profile", "/v1/profile"},
		{"/healthz", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := routeLabel(tt.path); got != tt.want {
				t.Errorf("routeLabel(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestWithMetrics(t *testing.T) {
	collect := func(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.DataPoint[int64] {
		t.Helper()
		var rm metricdata.ResourceMetrics
		if err := reader.Collect(context.Background(), &rm); err != nil {
			t.Fatalf("collect metrics: %v", err)
		}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != "http_requests_total" {
					continue
				}
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatal("expected Sum[int64] data for http_requests_total")
				}
				return sum.DataPoints
			}
		}
		t.Fatal("http_requests_total metric not found")
		return nil
	}

	attrString := func(dp metricdata.DataPoint[int64], key string) string {
		value, _ := dp.Attributes.Value(attribute.Key(key))
		return value.AsString()
	}

	t.Run("records the route pattern and captured status", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		handler := WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}), metrics)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/42/transitions", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		points := collect(t, reader)
		if len(points) != 1 {
			t.Fatalf("got %d data points, want 1", len(points))
		}
		if got := attrString(points[0], "path"); got != "/v1/orders/{id}/transitions" {
			t.Errorf("path label = %s, want route pattern", got)
		}
		if value, _ := points[0].Attributes.Value(attribute.Key("status_code")); value.AsInt64() != http.StatusCreated {
			t.Errorf("status_code label = %d, want 201", value.AsInt64())
		}
	})

	t.Run("defaults to 200 when the handler writes no header", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		handler := WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}), metrics)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		points := collect(t, reader)
		if len(points) != 1 {
			t.Fatalf("got %d data points, want 1", len(points))
		}
		if value, _ := points[0].Attributes.Value(attribute.Key("status_code")); value.AsInt64() != http.StatusOK {
			t.Errorf("status_code label = %d, want 200", value.AsInt64())
		}
	})
}
