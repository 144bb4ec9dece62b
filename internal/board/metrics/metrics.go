package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	orderLoadsTotal    metric.Int64Counter
	loadDuration       metric.Float64Histogram
	transitionsTotal   metric.Int64Counter
	transitionDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.orderLoadsTotal, err = meter.Int64Counter(
		"order_loads_total",
		metric.WithDescription("Total order list loads from the remote backend"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_loads_total counter: %w", err)
	}

	m.loadDuration, err = meter.Float64Histogram(
		"order_load_duration_seconds",
		metric.WithDescription("Duration of order list loads"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_load_duration histogram: %w", err)
	}

	m.transitionsTotal, err = meter.Int64Counter(
		"order_transitions_total",
		metric.WithDescription("Total confirmed order status transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_transitions_total counter: %w", err)
	}

	m.transitionDuration, err = meter.Float64Histogram(
		"order_transition_duration_seconds",
		metric.WithDescription("Duration of status update calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_transition_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordLoad(ctx context.Context, success bool, durationSeconds float64) {
	m.orderLoadsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", resultLabel(success)),
	))
	m.loadDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordTransition(ctx context.Context, status string, success bool, durationSeconds float64) {
	m.transitionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("result", resultLabel(success)),
	))
	m.transitionDuration.Record(ctx, durationSeconds)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
