package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/platform/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL staff repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const staffColumns = `id, branch_id, email, password_hash, name, role, created_at, updated_at`

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanStaff(row rowScanner) (*Staff, error) {
	s := &Staff{}
	err := row.Scan(
		&s.ID,
		&s.BranchID,
		&s.Email,
		&s.PasswordHash,
		&s.Name,
		&s.Role,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) Create(ctx context.Context, s *Staff) error {
	query := `
		INSERT INTO staff (id, branch_id, email, password_hash, name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, s.ID, s.BranchID, s.Email, s.PasswordHash, s.Name, s.Role).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return apperr.Conflict("email %s is already registered", s.Email)
	}
	if err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	s, err := scanStaff(r.db.QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("staff %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff by email: %w", err)
	}
	return s, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	s, err := scanStaff(r.db.QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("staff %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return s, nil
}

func (r *postgresRepository) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*Staff, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE branch_id = $1 ORDER BY name`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var members []*Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return members, rows.Err()
}
