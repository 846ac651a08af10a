package messaging

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

func (rmq *RabbitMQBroker) PublishClaimDecided(ctx context.Context, evt ports.ClaimDecidedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// The breaker keeps a flapping broker from stalling the relay loop.
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
