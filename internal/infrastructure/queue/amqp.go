// Package queue maintains the AMQP connection and the event topology
// shared by the gateway (publisher) and the users service (consumer).
package queue

import (
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

// Manager owns a single AMQP connection.
type Manager struct {
	url  string
	mu   sync.RWMutex
	conn *amqp.Connection
}

func NewManager(url string) (*Manager, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	return &Manager{url: url, conn: conn}, nil
}

func (m *Manager) Connection() *amqp.Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conn
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}

// DeclareEventTopology ensures the direct exchange exists and binds one
// durable queue per routing key. Both sides declare the same topology so
// startup order does not matter.
func (m *Manager) DeclareEventTopology(exchange string, bindings map[string]string) error {
	ch, err := m.Connection().Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	for queue, key := range bindings {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, key, exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}
	return nil
}
