package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Order, entry *StatusLog) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// Holds off a concurrent CloseSession until this order is committed.
		var closedAt sql.NullTime
		err := tx.QueryRowContext(ctx,
			`SELECT closed_at FROM sessions WHERE id=$1 FOR SHARE`, o.SessionID).Scan(&closedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("session %s not found", o.SessionID)
		}
		if err != nil {
			return fmt.Errorf("lock session: %w", err)
		}
		if closedAt.Valid {
			return fmt.Errorf("session %s: %w", o.SessionID, ErrSessionClosed)
		}

		if o.TableID != nil {
			if err := table.Claim(ctx, tx, *o.TableID); err != nil {
				return err
			}
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders
			  (id, branch_id, session_id, table_id, customer_id, order_type, status, total_amount)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING created_at, updated_at`,
			o.ID, o.BranchID, o.SessionID, o.TableID, o.CustomerID,
			o.OrderType, o.Status, o.TotalAmount).Scan(&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
			return err
		}
		return InsertStatusLog(ctx, tx, entry)
	})
}

func (r *postgresRepo) AddItems(ctx context.Context, orderID uuid.UUID, items []*Item) (*Order, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var status Status
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("order %s not found", orderID)
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if status == StatusCompleted {
			return fmt.Errorf("order %s: %w", orderID, ErrCompleted)
		}

		if err := insertItems(ctx, tx, orderID, items); err != nil {
			return err
		}

		delta := decimal.Zero
		for _, it := range items {
			delta = delta.Add(it.LineTotal())
		}
		var total decimal.Decimal
		if err := tx.QueryRowContext(ctx, `
			UPDATE orders SET total_amount = total_amount + $1, updated_at = NOW()
			WHERE id=$2
			RETURNING total_amount`, delta, orderID).Scan(&total); err != nil {
			return fmt.Errorf("increment total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, orderID)
}

func (r *postgresRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := ScanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+Columns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Items, err = ListItems(ctx, r.db, o.ID)
	return o, err
}

func (r *postgresRepo) GetActiveForTable(ctx context.Context, tableID uuid.UUID) (*Order, error) {
	o, err := ScanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+Columns+` FROM orders
		WHERE table_id=$1 AND order_type=$2 AND status<>$3
		ORDER BY created_at DESC LIMIT 1`, tableID, TypeDineIn, StatusCompleted))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("table %s has no active order", tableID)
	}
	if err != nil {
		return nil, fmt.Errorf("get active order: %w", err)
	}
	o.Items, err = ListItems(ctx, r.db, o.ID)
	return o, err
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Order, error) {
	return QueryOrders(ctx, r.db,
		`SELECT `+Columns+` FROM orders WHERE session_id=$1 ORDER BY created_at ASC`, sessionID)
}

// ── shared helpers ───────────────────────────────────────────────────────────
// The kitchen and payment repositories read and write the same tables.

// Columns is the select list understood by ScanOrder.
const Columns = `id, branch_id, session_id, table_id, customer_id, order_type, status, total_amount, created_at, updated_at`

type RowScanner interface{ Scan(dest ...interface{}) error }

func ScanOrder(row RowScanner) (*Order, error) {
	o := &Order{}
	var tableID, customerID uuid.NullUUID
	err := row.Scan(&o.ID, &o.BranchID, &o.SessionID, &tableID, &customerID,
		&o.OrderType, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tableID.Valid {
		o.TableID = &tableID.UUID
	}
	if customerID.Valid {
		o.CustomerID = &customerID.UUID
	}
	return o, nil
}

// QueryOrders runs a query selecting Columns and loads each order's items.
func QueryOrders(ctx context.Context, q database.DBTX, query string, args ...interface{}) ([]*Order, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	var orders []*Order
	for rows.Next() {
		o, err := ScanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Items, err = ListItems(ctx, q, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func ListItems(ctx context.Context, q database.DBTX, orderID uuid.UUID) ([]*Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price_at_time, created_at
		FROM order_items WHERE order_id=$1 ORDER BY seq`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it := &Item{}
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.PriceAtTime, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func InsertStatusLog(ctx context.Context, q database.DBTX, e *StatusLog) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO order_status_logs (id, order_id, status, changed_by, note)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING changed_at`,
		e.ID, e.OrderID, e.Status, e.ChangedBy, e.Note).Scan(&e.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, items []*Item) error {
	for _, it := range items {
		it.OrderID = orderID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price_at_time)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING created_at`,
			it.ID, orderID, it.ProductID, it.ProductName, it.Quantity, it.PriceAtTime).Scan(&it.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}
