package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	channel  *amqp.Channel
	exchange string
}

// NewPublisher opens a channel and declares the durable topic exchange toasts are published on.
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{channel: ch, exchange: exchange}, nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}

type NotificationPublisher struct {
	pub        *Publisher
	routingKey string
}

func NewNotificationPublisher(pub *Publisher, routingKey string) *NotificationPublisher {
	return &NotificationPublisher{pub: pub, routingKey: routingKey}
}

func (np *NotificationPublisher) PublishNotification(ctx context.Context, msg []byte) error {
	return np.pub.channel.PublishWithContext(ctx,
		np.pub.exchange,
		np.routingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         msg,
			DeliveryMode: amqp.Transient,
			Timestamp:    time.Now().UTC(),
		},
	)
}
