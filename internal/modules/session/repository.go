package session

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for terminals and sessions.
type Repository interface {
	CreateTerminal(ctx context.Context, t *Terminal) error
	GetTerminal(ctx context.Context, id uuid.UUID) (*Terminal, error)
	ListTerminals(ctx context.Context, branchID uuid.UUID) ([]*Terminal, error)

	// Open inserts s and binds its terminal to s.StaffID atomically.
	// ErrAlreadyOpen is returned when the terminal has an open session.
	Open(ctx context.Context, s *Session) error

	// Close stamps closed_at, totals the session's orders and unbinds the
	// terminal atomically. ErrAlreadyClosed is returned for a closed session.
	Close(ctx context.Context, id uuid.UUID) (*Session, error)

	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	GetOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*Session, error)
}
