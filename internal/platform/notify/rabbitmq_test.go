package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokerConfirm resolves when the test sends the broker's answer.
type brokerConfirm struct{ ack chan bool }

func (c *brokerConfirm) WaitContext(ctx context.Context) (bool, error) {
	select {
	case ack := <-c.ack:
		return ack, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type fakeChannel struct {
	mu       sync.Mutex
	confirms []*brokerConfirm
	keys     []string
	bodies   [][]byte
}

func (f *fakeChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &brokerConfirm{ack: make(chan bool, 1)}
	f.confirms = append(f.confirms, c)
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, msg.Body)
	return c, nil
}

func (f *fakeChannel) confirm(i int) *brokerConfirm {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.confirms) {
		return nil
	}
	return f.confirms[i]
}

func TestLateConfirmDoesNotAnswerNextPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{exchange: "pos_events", publish: ch.publish}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Publish(ctx, KitchenNewOrder, map[string]string{"n": "1"})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

	// The broker finally nacks the first message.
	ch.confirm(0).ack <- false

	nextCtx, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	done := make(chan error, 1)
	go func() { done <- p.Publish(nextCtx, OrderStatusChanged, map[string]string{"n": "2"}) }()

	require.Eventually(t, func() bool { return ch.confirm(1) != nil }, time.Second, time.Millisecond)
	ch.confirm(1).ack <- true
	require.NoError(t, <-done)

	assert.Equal(t, []string{string(KitchenNewOrder), string(OrderStatusChanged)}, ch.keys)
	assert.Len(t, ch.confirm(0).ack, 1, "first confirm is left with its own message")
}

func TestPublishReportsNack(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{exchange: "pos_events", publish: func(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
		c, err := ch.publish(ctx, exchange, key, msg)
		ch.confirm(0).ack <- false
		return c, err
	}}

	err := p.Publish(context.Background(), TableStatusChanged, TableStatusPayload{Status: "FREE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nack")

	var env struct {
		Event Event `json:"event"`
	}
	require.NoError(t, json.Unmarshal(ch.bodies[0], &env))
	assert.Equal(t, TableStatusChanged, env.Event)
}
