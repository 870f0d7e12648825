package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	err     error
	events  []Event
	ctxErrs []error
}

func (s *stubPublisher) Publish(ctx context.Context, event Event, payload any) error {
	s.events = append(s.events, event)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func TestNotifySurvivesCanceledRequest(t *testing.T) {
	pub := &stubPublisher{}
	n := NewNotifier(pub, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, OrderPaid, OrderPaidPayload{OrderID: uuid.New()})

	require.Equal(t, []Event{OrderPaid}, pub.events)
	assert.NoError(t, pub.ctxErrs[0])
}

func TestNotifyLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	pub := &stubPublisher{err: errors.New("broker down")}
	n := NewNotifier(pub, slog.New(slog.NewTextHandler(&buf, nil)), time.Second)

	n.Notify(context.Background(), TableStatusChanged, TableStatusPayload{TableID: uuid.New(), Status: "FREE"})

	assert.Contains(t, buf.String(), "notification dropped")
	assert.Contains(t, buf.String(), "table.status_changed")
	assert.Contains(t, buf.String(), "broker down")
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, p.Publish(context.Background(), KitchenNewOrder, NewOrderPayload{OrderType: "TAKEAWAY"}))
	assert.Contains(t, buf.String(), `"event":"kitchen.new_order"`)
}
