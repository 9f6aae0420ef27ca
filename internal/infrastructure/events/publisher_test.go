package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/infrastructure/events"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

type fakeChannel struct {
	declared   string
	kind       string
	declareErr error
	publishErr error
	exchange   string
	key        string
	msgs       []amqp091.Publishing
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared, f.kind = name, kind
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishStatusChanged(t *testing.T) {
	ch := &fakeChannel{}
	p, err := events.NewPublisher(ch, "order_status_changed", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "order_status_changed", ch.declared)
	assert.Equal(t, amqp091.ExchangeFanout, ch.kind)

	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	evt := dto.StatusChangedEvent{OrderID: "123", FromStatus: "RECIBIDO", ToStatus: "EMBALADO", UserID: "7", UserRole: "EMBALADOR", Source: "qr", OccurredAt: at}
	require.NoError(t, p.PublishStatusChanged(context.Background(), evt))

	require.Len(t, ch.msgs, 1)
	msg := ch.msgs[0]
	assert.Equal(t, events.RoutingKey, ch.key)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.NotEmpty(t, msg.MessageId)
	assert.True(t, msg.Timestamp.Equal(at))

	var back dto.StatusChangedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &back))
	assert.Equal(t, "EMBALADO", back.ToStatus)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNewPublisher_ErrorAlDeclarar(t *testing.T) {
	_, err := events.NewPublisher(&fakeChannel{declareErr: errors.New("access refused")}, "x", logger.Nop())
	assert.ErrorContains(t, err, "access refused")
}

func TestPublishStatusChanged_Error(t *testing.T) {
	p, err := events.NewPublisher(&fakeChannel{publishErr: amqp091.ErrClosed}, "x", logger.Nop())
	require.NoError(t, err)
	err = p.PublishStatusChanged(context.Background(), dto.StatusChangedEvent{OrderID: "1"})
	assert.ErrorIs(t, err, amqp091.ErrClosed)
}
