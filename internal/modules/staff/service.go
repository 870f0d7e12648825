package staff

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

const minPasswordLen = 8

// Service defines the staff directory.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Staff, error)
	GetStaff(ctx context.Context, id string) (*Staff, error)
	ListStaff(ctx context.Context, branchID string) ([]*Staff, error)
}

type service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new staff service.
func NewService(repo Repository, log *slog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Staff, error) {
	branchID, err := apperr.ParseID("branch_id", req.BranchID)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Invalid("invalid email: %q", req.Email)
	}
	if len(req.Password) < minPasswordLen {
		return nil, apperr.Invalid("password must be at least %d characters", minPasswordLen)
	}
	role := Role(strings.ToUpper(req.Role))
	if !role.Valid() {
		return nil, apperr.Invalid("invalid role: %q", req.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &Staff{
		ID:           uuid.New(),
		BranchID:     branchID,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "staff registered", "action", "register_staff", "staff_id", member.ID, "role", role)
	return member, nil
}

func (s *service) GetStaff(ctx context.Context, id string) (*Staff, error) {
	uid, err := apperr.ParseID("staff_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListStaff(ctx context.Context, branchID string) ([]*Staff, error) {
	bid, err := apperr.ParseID("branch_id", branchID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBranch(ctx, bid)
}
