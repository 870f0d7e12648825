package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemsIncrementsInPlace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orderID, productID := uuid.New(), uuid.New()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []*Item{
		{ID: uuid.New(), ProductID: productID, ProductName: "Tea", Quantity: 3, PriceAtTime: decimal.RequireFromString("1.50")},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM orders WHERE id=\$1 FOR UPDATE`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("IN_PROGRESS"))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectQuery(`UPDATE orders SET total_amount = total_amount \+ \$1`).
		WithArgs(decimal.RequireFromString("4.50"), orderID).
		WillReturnRows(sqlmock.NewRows([]string{"total_amount"}).AddRow("14.50"))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT .* FROM orders WHERE id=\$1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "branch_id", "session_id", "table_id", "customer_id",
			"order_type", "status", "total_amount", "created_at", "updated_at",
		}).AddRow(orderID.String(), uuid.NewString(), uuid.NewString(), nil, nil, "TAKEAWAY", "IN_PROGRESS", "14.50", now, now))
	mock.ExpectQuery(`FROM order_items WHERE order_id=\$1 ORDER BY seq`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "product_name", "quantity", "price_at_time", "created_at",
		}).AddRow(items[0].ID.String(), orderID.String(), productID.String(), "Tea", 3, "1.50", now))

	o, err := NewPostgresRepository(db).AddItems(context.Background(), orderID, items)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("14.50").Equal(o.TotalAmount))
	assert.Nil(t, o.TableID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, orderID, items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItemsRejectsCompletedOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("COMPLETED"))
	mock.ExpectRollback()

	_, err = NewPostgresRepository(db).AddItems(context.Background(), uuid.New(), nil)
	assert.True(t, errors.Is(err, ErrCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOnClosedSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT closed_at FROM sessions WHERE id=\$1 FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"closed_at"}).AddRow(time.Now()))
	mock.ExpectRollback()

	o := &Order{ID: uuid.New(), SessionID: uuid.New(), OrderType: TypeTakeaway, Status: StatusCreated}
	err = NewPostgresRepository(db).Create(context.Background(), o, &StatusLog{ID: uuid.New(), OrderID: o.ID})
	assert.True(t, errors.Is(err, ErrSessionClosed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListItemsKeepsInsertionOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orderID := uuid.New()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	// One transaction stamps every line with the same created_at.
	rows := sqlmock.NewRows([]string{
		"id", "order_id", "product_id", "product_name", "quantity", "price_at_time", "created_at",
	}).
		AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), "Soup", 1, "6.00", now).
		AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), "Bread", 2, "1.25", now).
		AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), "Wine", 1, "8.00", now)
	mock.ExpectQuery(`FROM order_items WHERE order_id=\$1 ORDER BY seq$`).
		WithArgs(orderID).
		WillReturnRows(rows)

	items, err := ListItems(context.Background(), db, orderID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Soup", "Bread", "Wine"}, []string{items[0].ProductName, items[1].ProductName, items[2].ProductName})
	assert.NoError(t, mock.ExpectationsWereMet())
}
