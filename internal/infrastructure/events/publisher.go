// Package events publica los cambios de estado de pedidos en RabbitMQ para que otros
// sistemas del depósito (facturación, avisos al cliente) se enteren sin consultar la API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

// RoutingKey clave de los eventos de cambio de estado.
const RoutingKey = "order.status_changed"

// Channel subconjunto de *amqp091.Channel que usa el publisher.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = Nop{}
	_ Channel              = (*amqp091.Channel)(nil)
)

// Publisher publica en un exchange fanout durable. Un canal AMQP no admite publicaciones
// concurrentes, por eso cada envío toma el mutex.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	ch       Channel
	exchange string
	log      *logger.Logger
}

// Dial conecta al broker y declara el exchange.
func Dial(url, exchange string, log *logger.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: conectar a RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: abrir canal: %w", err)
	}
	p, err := NewPublisher(ch, exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher usa un canal ya abierto.
func NewPublisher(ch Channel, exchange string, log *logger.Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp091.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("events: declarar exchange %s: %w", exchange, err)
	}
	return &Publisher{ch: ch, exchange: exchange, log: log}, nil
}

// PublishStatusChanged serializa el evento como JSON persistente.
func (p *Publisher) PublishStatusChanged(ctx context.Context, evt dto.StatusChangedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: serializar: %w", err)
	}
	ts := evt.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    ts,
		Type:         RoutingKey,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("events: publicar %s: %w", evt.OrderID, err)
	}
	p.log.Debug().Str("order_id", evt.OrderID).Str("to", evt.ToStatus).Msg("evento publicado")
	return nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Nop descarta los eventos; se usa cuando no hay broker configurado.
type Nop struct{}

func (Nop) PublishStatusChanged(context.Context, dto.StatusChangedEvent) error { return nil }
