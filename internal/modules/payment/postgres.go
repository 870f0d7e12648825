package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Process(ctx context.Context, p *Payment, entry *order.StatusLog) (*Settlement, error) {
	st := &Settlement{Payment: p}
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			orderType order.Type
			status    order.Status
			tableID   uuid.NullUUID
		)
		err := tx.QueryRowContext(ctx, `
			SELECT order_type, status, table_id, total_amount
			FROM orders WHERE id=$1 FOR UPDATE`, p.OrderID).
			Scan(&orderType, &status, &tableID, &st.OrderTotal)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("order %s not found", p.OrderID)
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if status == order.StatusCompleted {
			return fmt.Errorf("order %s: %w", p.OrderID, ErrAlreadyPaid)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO payments (id, order_id, method, amount, status, transaction_reference)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING created_at`,
			p.ID, p.OrderID, p.Method, p.Amount, p.Status, p.TransactionReference).Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`,
			order.StatusCompleted, p.OrderID); err != nil {
			return fmt.Errorf("complete order: %w", err)
		}
		if err := order.InsertStatusLog(ctx, tx, entry); err != nil {
			return err
		}

		if orderType != order.TypeDineIn || !tableID.Valid {
			return nil
		}
		st.TableID = &tableID.UUID

		// Payments for orders sharing a table queue here, so the last one
		// sees the others committed.
		var locked uuid.UUID
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM tables WHERE id=$1 FOR UPDATE`, tableID.UUID).Scan(&locked); err != nil {
			return fmt.Errorf("lock table: %w", err)
		}
		var others int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM orders
			WHERE table_id=$1 AND status<>$2 AND id<>$3`,
			tableID.UUID, order.StatusCompleted, p.OrderID).Scan(&others); err != nil {
			return fmt.Errorf("count table orders: %w", err)
		}
		if others > 0 {
			return nil
		}
		if err := table.Release(ctx, tx, tableID.UUID); err != nil {
			return err
		}
		st.TableReleased = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

const paymentColumns = `id, order_id, method, amount, status, transaction_reference, created_at`

func scanPayment(row rowScanner) (*Payment, error) {
	p := &Payment{}
	var reference sql.NullString
	err := row.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &reference, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if reference.Valid {
		p.TransactionReference = &reference.String
	}
	return p, nil
}

func (r *postgresRepo) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("payment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
