package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"ordersvc/internal/dal/rabbitmq"
	"ordersvc/internal/service/models/outbox"
)

// envelope is the wire shape delivered to downstream consumers. The
// outbox record id travels with the message so consumers can
// deduplicate under at-least-once delivery.
type envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     string          `json:"eventType"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RabbitMQPublisher delivers outbox messages to a RabbitMQ queue. It is
// the delivery callback plugged into the outbox dispatcher.
type RabbitMQPublisher struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewRabbitMQPublisher(client *rabbitmq.Client) *RabbitMQPublisher {
	queueName := viper.GetString("rabbitmq.outbox.queue")
	if queueName == "" {
		queueName = "oms.order.events"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQPublisher{
		client: client,
		queue:  queue,
	}
}

// Publish sends one outbox message. A non-nil error makes the
// dispatcher roll back and retry the whole containing batch.
func (p *RabbitMQPublisher) Publish(_ context.Context, msg outbox.Message) error {
	body, err := json.Marshal(envelope{
		ID:            msg.ID.String(),
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID,
		EventType:     msg.EventType,
		Payload:       json.RawMessage(msg.Payload),
		CreatedAt:     msg.CreatedAt,
	})
	if err != nil {
		return err
	}

	return p.client.Channel().Publish(
		"",
		p.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   msg.ID.String(),
			Type:        msg.EventType,
			Body:        body,
		},
	)
}
