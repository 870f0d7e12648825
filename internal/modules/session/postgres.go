package session

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

type rowScanner interface{ Scan(dest ...interface{}) error }

const (
	terminalColumns = `id, branch_id, name, staff_id, created_at, updated_at`
	sessionColumns  = `id, terminal_id, staff_id, opened_at, closed_at, total_sales`
)

func scanTerminal(row rowScanner) (*Terminal, error) {
	t := &Terminal{}
	var staffID uuid.NullUUID
	if err := row.Scan(&t.ID, &t.BranchID, &t.Name, &staffID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if staffID.Valid {
		t.StaffID = &staffID.UUID
	}
	return t, nil
}

func scanSession(row rowScanner) (*Session, error) {
	s := &Session{}
	var staffID uuid.NullUUID
	var closedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.TerminalID, &staffID, &s.OpenedAt, &closedAt, &s.TotalSales); err != nil {
		return nil, err
	}
	if staffID.Valid {
		s.StaffID = &staffID.UUID
	}
	if closedAt.Valid {
		s.ClosedAt = &closedAt.Time
	}
	return s, nil
}

func (r *postgresRepo) CreateTerminal(ctx context.Context, t *Terminal) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO terminals (id, branch_id, name) VALUES ($1,$2,$3) RETURNING created_at, updated_at`,
		t.ID, t.BranchID, t.Name).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert terminal: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetTerminal(ctx context.Context, id uuid.UUID) (*Terminal, error) {
	t, err := scanTerminal(r.db.QueryRowContext(ctx,
		`SELECT `+terminalColumns+` FROM terminals WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("terminal %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get terminal: %w", err)
	}
	return t, nil
}

func (r *postgresRepo) ListTerminals(ctx context.Context, branchID uuid.UUID) ([]*Terminal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+terminalColumns+` FROM terminals WHERE branch_id=$1 ORDER BY name`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list terminals: %w", err)
	}
	defer rows.Close()

	var terminals []*Terminal
	for rows.Next() {
		t, err := scanTerminal(rows)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, t)
	}
	return terminals, rows.Err()
}

func (r *postgresRepo) Open(ctx context.Context, s *Session) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// Serialises concurrent opens on the same terminal.
		var locked uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM terminals WHERE id=$1 FOR UPDATE`, s.TerminalID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("terminal %s not found", s.TerminalID)
		}
		if err != nil {
			return fmt.Errorf("lock terminal: %w", err)
		}

		var open bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM sessions WHERE terminal_id=$1 AND closed_at IS NULL)`,
			s.TerminalID).Scan(&open); err != nil {
			return fmt.Errorf("check open session: %w", err)
		}
		if open {
			return fmt.Errorf("terminal %s: %w", s.TerminalID, ErrAlreadyOpen)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO sessions (id, terminal_id, staff_id, total_sales)
			VALUES ($1,$2,$3,0)
			RETURNING opened_at, total_sales`,
			s.ID, s.TerminalID, s.StaffID).Scan(&s.OpenedAt, &s.TotalSales)
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("terminal %s: %w", s.TerminalID, ErrAlreadyOpen)
		}
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE terminals SET staff_id=$1, updated_at=NOW() WHERE id=$2`,
			s.StaffID, s.TerminalID); err != nil {
			return fmt.Errorf("bind terminal: %w", err)
		}
		return nil
	})
}

func (r *postgresRepo) Close(ctx context.Context, id uuid.UUID) (*Session, error) {
	var s *Session
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		s, err = scanSession(tx.QueryRowContext(ctx,
			`SELECT `+sessionColumns+` FROM sessions WHERE id=$1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("session %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("lock session: %w", err)
		}
		if !s.IsOpen() {
			return fmt.Errorf("session %s: %w", id, ErrAlreadyClosed)
		}

		var closedAt sql.NullTime
		err = tx.QueryRowContext(ctx, `
			UPDATE sessions
			SET closed_at = NOW(),
			    total_sales = (SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE session_id=$1)
			WHERE id=$1
			RETURNING closed_at, total_sales`, id).Scan(&closedAt, &s.TotalSales)
		if err != nil {
			return fmt.Errorf("close session: %w", err)
		}
		s.ClosedAt = &closedAt.Time

		if _, err := tx.ExecContext(ctx,
			`UPDATE terminals SET staff_id=NULL, updated_at=NOW() WHERE id=$1`, s.TerminalID); err != nil {
			return fmt.Errorf("unbind terminal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

func (r *postgresRepo) GetOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE terminal_id=$1 AND closed_at IS NULL`, terminalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("terminal %s has no open session", terminalID)
	}
	if err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return s, nil
}
