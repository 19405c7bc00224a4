package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const propertyQueueName = "property.events"

// Publisher sends property events to RabbitMQ. Publishing is best effort:
// errors are logged and returned so callers can ignore them without
// interrupting the request that triggered the event.
type Publisher struct {
	url    string
	logger *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

// Publish declares the durable property.events queue and publishes the event
// as a persistent JSON message. Mutations are rare relative to reads, so a
// connection per publish keeps the publisher stateless and immune to broker
// restarts.
func (p *Publisher) Publish(ctx context.Context, event PropertyEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(propertyQueueName, true, false, false, false, nil); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", propertyQueueName, false, false, pub); err != nil {
		p.logger.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	return nil
}
