// Package actor carries the authenticated staff member through a request context.
package actor

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Staff identifies who is acting on a request.
type Staff struct {
	ID       uuid.UUID
	BranchID uuid.UUID
	Role     string
}

func WithStaff(ctx context.Context, s Staff) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the acting staff member, if any.
func FromContext(ctx context.Context) (Staff, bool) {
	s, ok := ctx.Value(ctxKey{}).(Staff)
	return s, ok
}

// StaffID returns the acting staff id, or nil for anonymous requests.
func StaffID(ctx context.Context) *uuid.UUID {
	s, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	id := s.ID
	return &id
}
