package backend

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/feastly/opsboard/internal/board/domain"
	"github.com/feastly/opsboard/internal/board/metrics"
	"github.com/feastly/opsboard/internal/board/ports"
	"github.com/feastly/opsboard/internal/telemetry"
)

// ObservableOrderService decorates an order service with spans and metrics.
type ObservableOrderService struct {
	service ports.OrderService
	metrics *metrics.Metrics
}

func NewObservableOrderService(service ports.OrderService, metrics *metrics.Metrics) *ObservableOrderService {
	return &ObservableOrderService{
		service: service,
		metrics: metrics,
	}
}

func (o *ObservableOrderService) ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("restaurant.id", restaurantID),
		attribute.String("operation", "list_orders"),
	)

	start := time.Now()
	orders, err := o.service.ListOrders(ctx, restaurantID)
	duration := time.Since(start).Seconds()

	o.metrics.RecordLoad(ctx, err == nil, duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (o *ObservableOrderService) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.Status) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.String("order.new_status", status.Label()),
		attribute.String("operation", "update_order_status"),
	)

	start := time.Now()
	err := o.service.UpdateOrderStatus(ctx, orderID, status)
	duration := time.Since(start).Seconds()

	o.metrics.RecordTransition(ctx, status.Label(), err == nil, duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
