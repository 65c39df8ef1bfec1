package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/model"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return newStore(sqlx.NewDb(db, "sqlite")), mock
}

func TestInsertHandoverWrapsWriteError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO handovers").WillReturnError(errors.New("disk I/O error"))

	_, err := s.InsertHandover(context.Background(), model.HandoverInput{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating handover")
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasksWrapsReadError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM tasks").WillReturnError(errors.New("database is locked"))

	_, err := s.ListTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing tasks")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskStatusZeroRowsIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE tasks SET status_id").
		WithArgs(model.StatusTaskCompleted, true, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateTaskStatus(context.Background(), 4, model.StatusTaskCompleted, true)
	assert.ErrorContains(t, err, "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
