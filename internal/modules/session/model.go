package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

var (
	ErrAlreadyOpen   = apperr.New(apperr.ErrConflict, "terminal already has an open session")
	ErrAlreadyClosed = apperr.New(apperr.ErrConflict, "session already closed")
)

// Terminal is a till. StaffID is set while a session is open on it.
type Terminal struct {
	ID        uuid.UUID  `json:"id"`
	BranchID  uuid.UUID  `json:"branch_id"`
	Name      string     `json:"name"`
	StaffID   *uuid.UUID `json:"staff_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Session is one staff member's shift on a terminal. Orders can only be
// created against an open session.
type Session struct {
	ID         uuid.UUID       `json:"id"`
	TerminalID uuid.UUID       `json:"terminal_id"`
	StaffID    *uuid.UUID      `json:"staff_id,omitempty"`
	OpenedAt   time.Time       `json:"opened_at"`
	ClosedAt   *time.Time      `json:"closed_at,omitempty"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

func (s *Session) IsOpen() bool { return s.ClosedAt == nil }

type CreateTerminalRequest struct {
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
}

type OpenSessionRequest struct {
	TerminalID string `json:"terminal_id"`
	StaffID    string `json:"staff_id"`
}
