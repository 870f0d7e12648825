package receipt_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
	"github.com/georgemunganga/restaurant-pos/internal/modules/receipt"
	"github.com/georgemunganga/restaurant-pos/internal/platform/memstore"
)

var numberPattern = regexp.MustCompile(`^RCP-\d{8}-\d{8}$`)

func TestReceiptRequiresPayment(t *testing.T) {
	ctx := context.Background()
	h := memstore.NewHarness()
	f, err := h.Seed(ctx)
	require.NoError(t, err)
	o, err := h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "TAKEAWAY",
		Items:     []order.ItemRequest{{ProductID: f.Products["Soda"].ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = h.Services.Receipts.GenerateReceipt(ctx, o.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrInvalid), "got %v", err)

	receipts, err := h.Services.Receipts.ListOrderReceipts(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestDineInReceipt(t *testing.T) {
	ctx := context.Background()
	h := memstore.NewHarness()
	f, err := h.Seed(ctx)
	require.NoError(t, err)
	o, err := h.Services.Orders.CreateOrder(ctx, order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   f.Tables[1].ID.String(),
		Items: []order.ItemRequest{
			{ProductID: f.Products["Burger"].ID.String(), Quantity: 2},
			{ProductID: f.Products["Soda"].ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	_, err = h.Services.Payments.ProcessPayment(ctx, payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: o.TotalAmount, Method: "CARD"})
	require.NoError(t, err)

	v, err := h.Services.Receipts.GenerateReceipt(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Regexp(t, numberPattern, v.ReceiptNumber)
	assert.Equal(t, "T2", v.TableLabel)
	assert.Equal(t, order.TypeDineIn, v.OrderType)
	assert.True(t, decimal.RequireFromString("27.25").Equal(v.Total), "total %s", v.Total)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "Burger", v.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(25).Equal(v.Items[0].LineTotal))
	require.Len(t, v.Payments, 1)
	assert.Equal(t, payment.MethodCard, v.Payments[0].Method)
}

func TestReprintGetsNewNumber(t *testing.T) {
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
	_, err = h.Services.Payments.ProcessPayment(ctx, payment.ProcessPaymentRequest{OrderID: o.ID.String(), Amount: o.TotalAmount, Method: "CASH"})
	require.NoError(t, err)

	first, err := h.Services.Receipts.GenerateReceipt(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, receipt.TakeawayLabel, first.TableLabel)
	second, err := h.Services.Receipts.GenerateReceipt(ctx, o.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, first.ReceiptNumber, second.ReceiptNumber)

	receipts, err := h.Services.Receipts.ListOrderReceipts(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
}
