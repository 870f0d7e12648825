package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"not found", NotFound("order %s not found", "x"), ErrNotFound},
		{"invalid", Invalid("items must not be empty"), ErrInvalid},
		{"conflict", Conflict("table is not free"), ErrConflict},
		{"transition", InvalidTransition("READY -> COMPLETED"), ErrInvalidTransition},
		{"wrapped conflict", fmt.Errorf("create order: %w", Conflict("busy")), ErrConflict},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), ErrUnavailable},
		{"canceled", context.Canceled, ErrUnavailable},
		{"plain", errors.New("connection reset"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestModuleSentinelKeepsKind(t *testing.T) {
	errClosed := New(ErrConflict, "session already closed")
	wrapped := fmt.Errorf("close: %w", errClosed)

	assert.ErrorIs(t, wrapped, errClosed)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, "session already closed", errClosed.Error())
}

func TestParseID(t *testing.T) {
	_, err := ParseID("order_id", "")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "order_id is required")

	_, err = ParseID("order_id", "nope")
	require.ErrorIs(t, err, ErrInvalid)

	id, err := ParseID("order_id", "7f1c2a4e-3c1d-4b8e-9a55-2d3c4b5a6f70")
	require.NoError(t, err)
	assert.Equal(t, "7f1c2a4e-3c1d-4b8e-9a55-2d3c4b5a6f70", id.String())

	opt, err := ParseOptionalID("table_id", "")
	require.NoError(t, err)
	assert.Nil(t, opt)
}
