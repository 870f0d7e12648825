package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/platform/actor"
)

// Service manages terminals and the sessions opened on them.
type Service interface {
	CreateTerminal(ctx context.Context, req CreateTerminalRequest) (*Terminal, error)
	GetTerminal(ctx context.Context, id string) (*Terminal, error)
	ListTerminals(ctx context.Context, branchID string) ([]*Terminal, error)

	// OpenSession starts a shift on a terminal. A terminal holds at most one
	// open session.
	OpenSession(ctx context.Context, req OpenSessionRequest) (*Session, error)

	// CloseSession ends a shift and records total sales over all of its orders.
	CloseSession(ctx context.Context, id string) (*Session, error)

	GetSession(ctx context.Context, id string) (*Session, error)
	GetOpenSession(ctx context.Context, terminalID string) (*Session, error)
}

type service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) CreateTerminal(ctx context.Context, req CreateTerminalRequest) (*Terminal, error) {
	branchID, err := apperr.ParseID("branch_id", req.BranchID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	t := &Terminal{ID: uuid.New(), BranchID: branchID, Name: name}
	if err := s.repo.CreateTerminal(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTerminal(ctx context.Context, id string) (*Terminal, error) {
	uid, err := apperr.ParseID("terminal_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTerminal(ctx, uid)
}

func (s *service) ListTerminals(ctx context.Context, branchID string) ([]*Terminal, error) {
	bid, err := apperr.ParseID("branch_id", branchID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTerminals(ctx, bid)
}

func (s *service) OpenSession(ctx context.Context, req OpenSessionRequest) (*Session, error) {
	terminalID, err := apperr.ParseID("terminal_id", req.TerminalID)
	if err != nil {
		return nil, err
	}
	staffID, err := apperr.ParseOptionalID("staff_id", req.StaffID)
	if err != nil {
		return nil, err
	}
	if staffID == nil {
		staffID = actor.StaffID(ctx)
	}
	if staffID == nil {
		return nil, apperr.Invalid("staff_id is required")
	}

	sess := &Session{ID: uuid.New(), TerminalID: terminalID, StaffID: staffID}
	if err := s.repo.Open(ctx, sess); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "session opened",
		"action", "open_session", "session_id", sess.ID, "terminal_id", terminalID, "staff_id", *staffID)
	return sess, nil
}

func (s *service) CloseSession(ctx context.Context, id string) (*Session, error) {
	uid, err := apperr.ParseID("session_id", id)
	if err != nil {
		return nil, err
	}
	sess, err := s.repo.Close(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "session closed",
		"action", "close_session", "session_id", sess.ID, "total_sales", sess.TotalSales.StringFixed(2))
	return sess, nil
}

func (s *service) GetSession(ctx context.Context, id string) (*Session, error) {
	uid, err := apperr.ParseID("session_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid)
}

func (s *service) GetOpenSession(ctx context.Context, terminalID string) (*Session, error) {
	uid, err := apperr.ParseID("terminal_id", terminalID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOpenByTerminal(ctx, uid)
}
