package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/restaurant-pos/internal/app"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
)

func call(t *testing.T, srv http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestOrderOverHTTP(t *testing.T) {
	h, f := seed(t)
	srv := app.NewRouter(h.Services, h.Log, 5*time.Second, false)

	rec := call(t, srv, http.MethodPost, "/api/v1/orders", order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   f.Tables[0].ID.String(),
		Items:     []order.ItemRequest{{ProductID: f.Products["Burger"].ID.String(), Quantity: 2}},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var o order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.True(t, decimal.RequireFromString("25").Equal(o.TotalAmount))

	rec = call(t, srv, http.MethodGet, "/api/v1/orders/table/"+f.Tables[0].ID.String()+"/active", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/orders/"+o.ID.String()+"/send", nil, "")
	assert.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/orders", order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   f.Tables[0].ID.String(),
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/kitchen/orders/"+o.ID.String()+"/ready", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/payments", payment.ProcessPaymentRequest{
		OrderID: o.ID.String(),
		Amount:  o.TotalAmount,
		Method:  "CASH",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/receipts/order/"+o.ID.String(), nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"table_label":"T1"`)
}

func TestTableRoutesKeepOccupancy(t *testing.T) {
	h, f := seed(t)
	srv := app.NewRouter(h.Services, h.Log, 5*time.Second, false)
	tableID := f.Tables[0].ID.String()

	rec := call(t, srv, http.MethodPost, "/api/v1/orders", order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   tableID,
		Items:     []order.ItemRequest{{ProductID: f.Products["Burger"].ID.String(), Quantity: 1}},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/tables/"+tableID+"/release", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = call(t, srv, http.MethodPost, "/api/v1/orders", order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "DINE_IN",
		TableID:   tableID,
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Tables are claimed by dine-in orders only.
	rec = call(t, srv, http.MethodPost, "/api/v1/tables/"+f.Tables[1].ID.String()+"/claim", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, srv, http.MethodGet, "/api/v1/tables/"+f.Tables[1].ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"FREE"`)

	mismatches, err := h.Services.Tables.CheckOccupancy(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestErrorMapping(t *testing.T) {
	h, _ := seed(t)
	srv := app.NewRouter(h.Services, h.Log, 5*time.Second, false)

	rec := call(t, srv, http.MethodGet, "/api/v1/orders/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, srv, http.MethodGet, "/api/v1/orders/00000000-0000-0000-0000-000000000001", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	rec = call(t, srv, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthGuardsProtectedRoutes(t *testing.T) {
	ctx := context.Background()
	h, f := seed(t)
	srv := app.NewRouter(h.Services, h.Log, 5*time.Second, true)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	waiterID := uuid.New()
	require.NoError(t, h.Store.Staff().Create(ctx, &staff.Staff{
		ID:           waiterID,
		BranchID:     f.BranchID,
		Email:        "waiter@example.com",
		PasswordHash: string(hash),
		Name:         "Waiter",
		Role:         staff.RoleWaiter,
	}))

	rec := call(t, srv, http.MethodGet, "/api/v1/tables", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, srv, http.MethodGet, "/api/v1/tables", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, srv, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "waiter@example.com", "password": "wrong password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, srv, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "waiter@example.com", "password": "correct horse",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))

	rec = call(t, srv, http.MethodGet, "/api/v1/tables", nil, tok.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Orders opened with a token record who opened them.
	rec = call(t, srv, http.MethodPost, "/api/v1/orders", order.CreateOrderRequest{
		SessionID: f.Session.ID.String(),
		OrderType: "TAKEAWAY",
		Items:     []order.ItemRequest{{ProductID: f.Products["Soda"].ID.String(), Quantity: 1}},
	}, tok.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var o order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))

	history, err := h.Services.Kitchen.History(ctx, o.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].ChangedBy)
	assert.Equal(t, waiterID, *history[0].ChangedBy)
}
