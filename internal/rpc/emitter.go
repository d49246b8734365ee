package rpc

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/chirper/social-system/internal/metrics"
)

// Emitter publishes fire-and-forget events to a direct exchange with the
// operation pattern as the routing key. Emit never reports delivery
// success to callers; a lost event is an accepted trade-off. Swapping this
// implementation for a tracked outbox does not change call sites.
type Emitter struct {
	exchange string
	conn     *amqp.Connection
	log      zerolog.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewEmitter declares the exchange and returns an Emitter bound to it.
func NewEmitter(conn *amqp.Connection, exchange string, log zerolog.Logger) (*Emitter, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &Emitter{exchange: exchange, conn: conn, ch: ch, log: log}, nil
}

// Emit publishes payload under pattern. Failures are logged and counted,
// never returned: the contract is emit semantics, not request/reply.
func (e *Emitter) Emit(pattern string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		e.log.Error().Err(err).Str("pattern", pattern).Msg("emit: marshal failed")
		metrics.EventsEmittedTotal.WithLabelValues(pattern, "error").Inc()
		return
	}

	e.mu.Lock()
	err = e.ch.Publish(e.exchange, pattern, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	e.mu.Unlock()

	if err != nil {
		e.log.Error().Err(err).Str("pattern", pattern).Msg("emit: publish failed, event lost")
		metrics.EventsEmittedTotal.WithLabelValues(pattern, "error").Inc()
		return
	}

	e.log.Debug().Str("pattern", pattern).Msg("event emitted")
	metrics.EventsEmittedTotal.WithLabelValues(pattern, "ok").Inc()
}

// Close releases the AMQP channel. The connection is owned by the caller.
func (e *Emitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ch == nil {
		return nil
	}
	err := e.ch.Close()
	e.ch = nil
	return err
}
