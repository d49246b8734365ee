package userssvc

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/chirper/social-system/internal/infrastructure/queue"
	"github.com/chirper/social-system/internal/rpc"
)

// RevertConsumer drains the revert-create-user queue. The gateway emits
// these events fire-and-forget; this is the only subscriber.
type RevertConsumer struct {
	manager *queue.Manager
	queue   string
	svc     *Service
	log     zerolog.Logger
}

func NewRevertConsumer(manager *queue.Manager, queueName string, svc *Service, log zerolog.Logger) *RevertConsumer {
	return &RevertConsumer{manager: manager, queue: queueName, svc: svc, log: log}
}

type revertPayload struct {
	Username string `json:"username"`
}

// Start consumes until ctx is cancelled or the delivery channel closes.
// It runs in its own goroutine; startup errors are returned synchronously.
func (c *RevertConsumer) Start(ctx context.Context) error {
	ch, err := c.manager.Connection().Channel()
	if err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return err
	}

	go func() {
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					c.log.Warn().Str("queue", c.queue).Msg("delivery channel closed")
					return
				}
				c.handle(ctx, d)
			}
		}
	}()

	c.log.Info().Str("queue", c.queue).Str("pattern", rpc.PatternUserRevertCreate).Msg("revert consumer started")
	return nil
}

func (c *RevertConsumer) handle(ctx context.Context, d amqp.Delivery) {
	var p revertPayload
	if err := json.Unmarshal(d.Body, &p); err != nil || p.Username == "" {
		// Poison message: requeueing would loop forever.
		c.log.Error().Err(err).Msg("revert event undecodable, dropping")
		_ = d.Nack(false, false)
		return
	}

	if err := c.svc.RevertCreate(ctx, p.Username); err != nil {
		c.log.Error().Err(err).Str("username", p.Username).Msg("revert failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
