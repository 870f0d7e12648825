package table

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

const updateStatus = `UPDATE tables SET status=\$1, updated_at=NOW\(\) WHERE id=\$2 AND status=\$3`

func TestClaimIsOneConditionalUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(updateStatus).
		WithArgs(StatusOccupied, id, StatusFree).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Claim(context.Background(), db, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimTakenTableIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(updateStatus).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = Claim(context.Background(), db, id)
	assert.True(t, errors.Is(err, ErrNotFree))
	assert.Equal(t, apperr.ErrConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimMissingTableIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(updateStatus).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = Claim(context.Background(), db, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE tables SET status`).WillReturnResult(sqlmock.NewResult(0, 0))

	err = Release(context.Background(), db, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCreateTableOnUnknownFloor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tables`).WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	err = NewPostgresRepository(db).CreateTable(context.Background(), &Table{ID: uuid.New(), FloorID: uuid.New(), Label: "T9", Status: StatusFree})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCancelReservationOnTakenTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(updateStatus).
		WithArgs(StatusFree, id, StatusReserved).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = NewPostgresRepository(db).Transition(context.Background(), id, StatusReserved, StatusFree)
	assert.True(t, errors.Is(err, ErrNotReserved), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseIdleRefusesActiveOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tables WHERE id=\$1 FOR UPDATE`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err = NewPostgresRepository(db).ReleaseIdle(context.Background(), id)
	assert.True(t, errors.Is(err, ErrInUse), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseIdleFreesEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tables WHERE id=\$1 FOR UPDATE`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE tables SET status=\$1, updated_at=NOW\(\) WHERE id=\$2`).
		WithArgs(StatusFree, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewPostgresRepository(db).ReleaseIdle(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
