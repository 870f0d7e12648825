package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

func TestOpenRejectsSecondSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	terminalID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM terminals WHERE id=\$1 FOR UPDATE`).
		WithArgs(terminalID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(terminalID.String()))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	staffID := uuid.New()
	err = NewPostgresRepository(db).Open(context.Background(), &Session{ID: uuid.New(), TerminalID: terminalID, StaffID: &staffID})
	assert.True(t, errors.Is(err, ErrAlreadyOpen))
	assert.Equal(t, apperr.ErrConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenMapsUniqueIndexRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	terminalID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM terminals`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(terminalID.String()))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO sessions`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	staffID := uuid.New()
	err = NewPostgresRepository(db).Open(context.Background(), &Session{ID: uuid.New(), TerminalID: terminalID, StaffID: &staffID})
	assert.True(t, errors.Is(err, ErrAlreadyOpen))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenBindsTerminal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	terminalID, staffID := uuid.New(), uuid.New()
	opened := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM terminals`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(terminalID.String()))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"opened_at", "total_sales"}).AddRow(opened, "0"))
	mock.ExpectExec(`UPDATE terminals SET staff_id=\$1`).
		WithArgs(staffID, terminalID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := &Session{ID: uuid.New(), TerminalID: terminalID, StaffID: &staffID}
	require.NoError(t, NewPostgresRepository(db).Open(context.Background(), s))
	assert.Equal(t, opened, s.OpenedAt)
	assert.True(t, s.TotalSales.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
