package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/feastly/opsboard/internal/board/domain"
)

const (
	exchangeName = "restaurant_orders"
	exchangeType = "topic"
)

// RabbitMQEventBus publishes status changes to a topic exchange. Routing key
// is orders.status.<label>, so consumers can subscribe to e.g. only
// cancellations.
type RabbitMQEventBus struct {
	ch *amqp.Channel
}

type statusChangedEvent struct {
	OrderID   int64     `json:"order_id"`
	Status    int       `json:"status"`
	Label     string    `json:"label"`
	ChangedAt time.Time `json:"changed_at"`
}

// Dial connects to the broker and declares the exchange.
func Dial(url string) (*RabbitMQEventBus, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchangeName,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return &RabbitMQEventBus{ch: ch}, closeFn, nil
}

func (b *RabbitMQEventBus) PublishStatusChanged(ctx context.Context, orderID int64, status domain.Status) error {
	event := statusChangedEvent{
		OrderID:   orderID,
		Status:    int(status),
		Label:     status.Label(),
		ChangedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}

	routingKey := "orders.status." + status.Label()

	return b.ch.PublishWithContext(ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
