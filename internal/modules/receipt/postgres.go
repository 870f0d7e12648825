package receipt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) NextSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('receipt_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next receipt number: %w", err)
	}
	return n, nil
}

func (r *postgresRepo) Create(ctx context.Context, rc *Receipt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO receipts (id, order_id, receipt_number, issued_at) VALUES ($1,$2,$3,$4)`,
		rc.ID, rc.OrderID, rc.ReceiptNumber, rc.IssuedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Conflict("receipt number %s already issued", rc.ReceiptNumber)
	}
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, receipt_number, issued_at
		FROM receipts WHERE order_id=$1 ORDER BY issued_at ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	receipts := []*Receipt{}
	for rows.Next() {
		rc := &Receipt{}
		if err := rows.Scan(&rc.ID, &rc.OrderID, &rc.ReceiptNumber, &rc.IssuedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}
