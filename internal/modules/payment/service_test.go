package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
	"github.com/georgemunganga/restaurant-pos/internal/platform/memstore"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

func TestProcessPaymentValidation(t *testing.T) {
	ctx := context.Background()
	h := memstore.NewHarness()
	f, err := h.Seed(ctx)
	require.NoError(t, err)
	o, err := h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "TAKEAWAY",
		Items:     []order.ItemRequest{{ProductID: f.Products["Soda"].ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  payment.ProcessPaymentRequest
		kind error
	}{
		{"zero amount", payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: decimal.Zero, Method: "CASH"}, apperr.ErrInvalid},
		{"negative amount", payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: decimal.NewFromInt(-1), Method: "CASH"}, apperr.ErrInvalid},
		{"unknown method", payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: o.TotalAmount, Method: "CHEQUE"}, apperr.ErrInvalid},
		{"bad order id", payment.ProcessPaymentRequest{OrderID: "42", Amount: o.TotalAmount, Method: "CASH"}, apperr.ErrInvalid},
		{"unknown order", payment.ProcessPaymentRequest{OrderID: uuid.NewString(), Amount: o.TotalAmount, Method: "CASH"}, apperr.ErrNotFound},
		{"sub-cent amount", payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: decimal.RequireFromString("0.004"), Method: "CASH"}, apperr.ErrInvalid},
		{"unknown order before bad amount", payment.ProcessPaymentRequest{OrderID: uuid.NewString(), Amount: decimal.Zero, Method: "CHEQUE"}, apperr.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Services.Payments.ProcessPayment(ctx, tc.req)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
		})
	}

	payments, err := h.Services.Payments.ListOrderPayments(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestAmountMismatchIsAccepted(t *testing.T) {
	ctx := context.Background()
	h := memstore.NewHarness()
	f, err := h.Seed(ctx)
	require.NoError(t, err)
	o, err := h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "TAKEAWAY",
		Items:     []order.ItemRequest{{ProductID: f.Products["Burger"].ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	p, err := h.Services.Payments.ProcessPayment(ctx, payment.ProcessPaymentRequest{
		OrderID:              o.ID.String(),
		Amount:               decimal.RequireFromString("15.004"),
		Method:               " upi ",
		TransactionReference: "  UPI-7781  ",
	})
	require.NoError(t, err)
	assert.Equal(t, payment.MethodUPI, p.Method)
	assert.True(t, decimal.RequireFromString("15").Equal(p.Amount))
	require.NotNil(t, p.TransactionReference)
	assert.Equal(t, "UPI-7781", *p.TransactionReference)

	got, err := h.Services.Payments.GetPayment(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// Takeaway orders never announce a table change.
	assert.Empty(t, h.Events.Of(notify.TableStatusChanged))
	paid := h.Events.Of(notify.OrderPaid)
	require.Len(t, paid, 1)
	assert.Equal(t, "UPI", paid[0].(notify.OrderPaidPayload).Method)
}

func TestDineInPaymentFreesTable(t *testing.T) {
	ctx := context.Background()
	h := memstore.NewHarness()
	f, err := h.Seed(ctx)
	require.NoError(t, err)
	o, err := h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   f.Tables[1].ID.String(),
		Items:     []order.ItemRequest{{ProductID: f.Products["Fries"].ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	h.Events.Reset()

	_, err = h.Services.Payments.ProcessPayment(ctx, payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: o.TotalAmount, Method: "CARD"})
	require.NoError(t, err)

	events := h.Events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, notify.TableStatusChanged, events[0].Event)
	assert.Equal(t, notify.TableStatusPayload{TableID: f.Tables[1].ID, Status: "FREE"}, events[0].Payload)
	assert.Equal(t, notify.OrderPaid, events[1].Event)

	// The freed table can be seated again.
	_, err = h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   f.Tables[1].ID.String(),
	})
	assert.NoError(t, err)
}

func TestBrokerFailureDoesNotUndoPayment(t *testing.T) {
	ctx := context.Background()
	h := memstore.NewHarness()
	f, err := h.Seed(ctx)
	require.NoError(t, err)
	o, err := h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "TAKEAWAY",
		Items:     []order.ItemRequest{{ProductID: f.Products["Fries"].ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	h.Events.Err = errors.New("broker unreachable")
	_, err = h.Services.Payments.ProcessPayment(ctx, payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: o.TotalAmount, Method: "CASH"})
	require.NoError(t, err)

	got, err := h.Services.Orders.GetOrder(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, got.Status)
}
