package kitchen

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to order.Status, entry *order.StatusLog) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
			to, orderID, from)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("order %s: %w", orderID, ErrStaleStatus)
		}
		return order.InsertStatusLog(ctx, tx, entry)
	})
}

func (r *postgresRepo) ListByStatus(ctx context.Context, branchID *uuid.UUID, statuses ...order.Status) ([]*order.Order, error) {
	args := make([]interface{}, 0, len(statuses)+1)
	marks := make([]string, len(statuses))
	for i, s := range statuses {
		args = append(args, s)
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	query := `SELECT ` + order.Columns + ` FROM orders WHERE status IN (` + strings.Join(marks, ",") + `)`
	if branchID != nil {
		args = append(args, *branchID)
		query += fmt.Sprintf(` AND branch_id=$%d`, len(args))
	}
	query += ` ORDER BY created_at ASC`
	return order.QueryOrders(ctx, r.db, query, args...)
}

func (r *postgresRepo) History(ctx context.Context, orderID uuid.UUID) ([]*order.StatusLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, status, changed_by, note, changed_at
		FROM order_status_logs WHERE order_id=$1 ORDER BY changed_at ASC, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	defer rows.Close()

	var logs []*order.StatusLog
	for rows.Next() {
		e := &order.StatusLog{}
		var changedBy uuid.NullUUID
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &changedBy, &e.Note, &e.ChangedAt); err != nil {
			return nil, err
		}
		if changedBy.Valid {
			e.ChangedBy = &changedBy.UUID
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}
