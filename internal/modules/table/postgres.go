package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Claim marks a FREE table OCCUPIED. It takes a DBTX so order creation can
// run it inside its own transaction.
func Claim(ctx context.Context, q database.DBTX, id uuid.UUID) error {
	return transition(ctx, q, id, StatusFree, StatusOccupied)
}

// Release marks a table FREE. The payment transaction runs it through q.
func Release(ctx context.Context, q database.DBTX, id uuid.UUID) error {
	res, err := q.ExecContext(ctx,
		`UPDATE tables SET status=$1, updated_at=NOW() WHERE id=$2`, StatusFree, id)
	if err != nil {
		return fmt.Errorf("release table: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("release table: %w", err)
	} else if n == 0 {
		return apperr.NotFound("table %s not found", id)
	}
	return nil
}

func transition(ctx context.Context, q database.DBTX, id uuid.UUID, from, to Status) error {
	res, err := q.ExecContext(ctx,
		`UPDATE tables SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`, to, id, from)
	if err != nil {
		return fmt.Errorf("update table status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update table status: %w", err)
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tables WHERE id=$1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check table: %w", err)
	}
	if !exists {
		return apperr.NotFound("table %s not found", id)
	}
	return fmt.Errorf("table %s: %w", id, statusConflict(from))
}

func (r *postgresRepo) Transition(ctx context.Context, id uuid.UUID, from, to Status) error {
	return transition(ctx, r.db, id, from, to)
}

func (r *postgresRepo) ReleaseIdle(ctx context.Context, id uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// Waits for an in-flight order claim so the count below sees its order.
		var locked uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM tables WHERE id=$1 FOR UPDATE`, id).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("table %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("lock table: %w", err)
		}

		var active int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM orders
			WHERE table_id=$1 AND order_type='DINE_IN' AND status<>'COMPLETED'`, id).Scan(&active); err != nil {
			return fmt.Errorf("count active orders: %w", err)
		}
		if active > 0 {
			return fmt.Errorf("table %s: %w", id, ErrInUse)
		}
		return Release(ctx, tx, id)
	})
}

func (r *postgresRepo) CreateFloor(ctx context.Context, f *Floor) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO floors (id, branch_id, name) VALUES ($1,$2,$3) RETURNING created_at`,
		f.ID, f.BranchID, f.Name).Scan(&f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert floor: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListFloors(ctx context.Context, branchID uuid.UUID) ([]*Floor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, branch_id, name, created_at FROM floors WHERE branch_id=$1 ORDER BY name`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	defer rows.Close()

	var floors []*Floor
	for rows.Next() {
		f := &Floor{}
		if err := rows.Scan(&f.ID, &f.BranchID, &f.Name, &f.CreatedAt); err != nil {
			return nil, err
		}
		floors = append(floors, f)
	}
	return floors, rows.Err()
}

func (r *postgresRepo) CreateTable(ctx context.Context, t *Table) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tables (id, floor_id, label, seats, status)
		SELECT $1, f.id, $3, $4, $5 FROM floors f WHERE f.id=$2
		RETURNING created_at, updated_at`,
		t.ID, t.FloorID, t.Label, t.Seats, t.Status).Scan(&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("floor %s not found", t.FloorID)
	}
	if err != nil {
		return fmt.Errorf("insert table: %w", err)
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

const tableColumns = `id, floor_id, label, seats, status, created_at, updated_at`

func scanTable(row rowScanner) (*Table, error) {
	t := &Table{}
	err := row.Scan(&t.ID, &t.FloorID, &t.Label, &t.Seats, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) GetTable(ctx context.Context, id uuid.UUID) (*Table, error) {
	t, err := scanTable(r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("table %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	return t, nil
}

func (r *postgresRepo) ListTables(ctx context.Context, floorID *uuid.UUID) ([]*Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables`
	args := []interface{}{}
	if floorID != nil {
		query += ` WHERE floor_id=$1`
		args = append(args, *floorID)
	}
	query += ` ORDER BY label`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *postgresRepo) Mismatches(ctx context.Context) ([]*Mismatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.label, t.status, COUNT(o.id)
		FROM tables t
		LEFT JOIN orders o
		  ON o.table_id = t.id AND o.order_type = 'DINE_IN' AND o.status <> 'COMPLETED'
		GROUP BY t.id, t.label, t.status
		HAVING (t.status = 'OCCUPIED' AND COUNT(o.id) <> 1)
		    OR (t.status <> 'OCCUPIED' AND COUNT(o.id) > 0)
		ORDER BY t.label`)
	if err != nil {
		return nil, fmt.Errorf("table mismatches: %w", err)
	}
	defer rows.Close()

	var out []*Mismatch
	for rows.Next() {
		m := &Mismatch{}
		if err := rows.Scan(&m.TableID, &m.Label, &m.Status, &m.ActiveOrders); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
