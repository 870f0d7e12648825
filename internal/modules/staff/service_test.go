package staff_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
	"github.com/georgemunganga/restaurant-pos/internal/platform/memstore"
)

func newService() staff.Service {
	return staff.NewService(memstore.New().Staff(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	branch := uuid.NewString()

	m, err := svc.Register(ctx, staff.RegisterRequest{
		BranchID: branch, Email: " Asha@Example.com ", Password: "s3cret-pass", Name: "Asha", Role: "waiter",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", m.Email)
	assert.Equal(t, staff.RoleWaiter, m.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte("s3cret-pass")))

	_, err = svc.Register(ctx, staff.RegisterRequest{
		BranchID: branch, Email: "asha@example.com", Password: "another-pass", Name: "Asha 2", Role: "CASHIER",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	members, err := svc.ListStaff(ctx, branch)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	branch := uuid.NewString()
	tests := map[string]staff.RegisterRequest{
		"bad email":      {BranchID: branch, Email: "not-an-email", Password: "long-enough", Role: "ADMIN"},
		"short password": {BranchID: branch, Email: "a@b.co", Password: "short", Role: "ADMIN"},
		"unknown role":   {BranchID: branch, Email: "a@b.co", Password: "long-enough", Role: "CHEF"},
		"bad branch":     {BranchID: "hq", Email: "a@b.co", Password: "long-enough", Role: "ADMIN"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), req)
			assert.True(t, errors.Is(err, apperr.ErrInvalid), "got %v", err)
		})
	}
}
