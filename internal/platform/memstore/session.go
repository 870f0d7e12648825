package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/session"
)

type sessionRepo struct{ s *Store }

func (r sessionRepo) CreateTerminal(ctx context.Context, t *session.Terminal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	c := *t
	r.s.terminals[t.ID] = &c
	return nil
}

func (r sessionRepo) GetTerminal(ctx context.Context, id uuid.UUID) (*session.Terminal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.terminals[id]
	if !ok {
		return nil, apperr.NotFound("terminal %s not found", id)
	}
	c := *t
	return &c, nil
}

func (r sessionRepo) ListTerminals(ctx context.Context, branchID uuid.UUID) ([]*session.Terminal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*session.Terminal
	for _, t := range r.s.terminals {
		if t.BranchID == branchID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r sessionRepo) Open(ctx context.Context, ss *session.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	term, ok := r.s.terminals[ss.TerminalID]
	if !ok {
		return apperr.NotFound("terminal %s not found", ss.TerminalID)
	}
	for _, other := range r.s.sessions {
		if other.TerminalID == ss.TerminalID && other.IsOpen() {
			return fmt.Errorf("terminal %s: %w", ss.TerminalID, session.ErrAlreadyOpen)
		}
	}
	ss.OpenedAt = r.s.now()
	ss.ClosedAt = nil
	ss.TotalSales = decimal.Zero
	r.s.sessions[ss.ID] = copySession(ss)

	term.StaffID = ss.StaffID
	term.UpdatedAt = ss.OpenedAt
	return nil
}

func (r sessionRepo) Close(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ss, ok := r.s.sessions[id]
	if !ok {
		return nil, apperr.NotFound("session %s not found", id)
	}
	if !ss.IsOpen() {
		return nil, fmt.Errorf("session %s: %w", id, session.ErrAlreadyClosed)
	}
	total := decimal.Zero
	for _, o := range r.s.orders {
		if o.SessionID == id {
			total = total.Add(o.TotalAmount)
		}
	}
	now := r.s.now()
	ss.ClosedAt = &now
	ss.TotalSales = total

	if term, ok := r.s.terminals[ss.TerminalID]; ok {
		term.StaffID = nil
		term.UpdatedAt = now
	}
	return copySession(ss), nil
}

func (r sessionRepo) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ss, ok := r.s.sessions[id]
	if !ok {
		return nil, apperr.NotFound("session %s not found", id)
	}
	return copySession(ss), nil
}

func (r sessionRepo) GetOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*session.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ss := range r.s.sessions {
		if ss.TerminalID == terminalID && ss.IsOpen() {
			return copySession(ss), nil
		}
	}
	return nil, apperr.NotFound("terminal %s has no open session", terminalID)
}
