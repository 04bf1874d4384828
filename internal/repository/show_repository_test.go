package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigtop/showrunner/internal/model"
)

func newShowMock(t *testing.T) (*ShowRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewShowRepo(db), mock
}

func TestShowCreateAssignsIdentity(t *testing.T) {
	repo, mock := newShowMock(t)

	mock.ExpectExec(`INSERT INTO shows`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &model.Show{Title: "Winter Gala"}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.NotEmpty(t, s.ID)
	assert.NotEmpty(t, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowGetByIDNotFound(t *testing.T) {
	repo, mock := newShowMock(t)

	mock.ExpectQuery(`FROM shows WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date", "venue", "description", "created_at"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrShowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowUpdatePreservesUnsetFields(t *testing.T) {
	repo, mock := newShowMock(t)

	mock.ExpectQuery(`FROM shows WHERE id = \?`).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date", "venue", "description", "created_at"}).
			AddRow("show-1", "Winter Gala", "2026-12-20", "Grand Hall", nil, "2026-01-01 10:00:00"))
	mock.ExpectExec(`UPDATE shows SET title = \?, date = \?, venue = \?, description = \?`).
		WithArgs("Winter Gala", "2026-12-20", "Royal Tent", nil, "show-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	venue := "Royal Tent"
	out, err := repo.Update(context.Background(), "show-1", model.ShowUpdate{Venue: &venue})
	require.NoError(t, err)
	assert.Equal(t, "Winter Gala", out.Title)
	assert.Equal(t, "Royal Tent", out.Venue)
	assert.Equal(t, "2026-12-20", out.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowDeleteCascadeOrder(t *testing.T) {
	repo, mock := newShowMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM shows WHERE id = \? FOR UPDATE`).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM expenses WHERE show_id = \?`).
		WithArgs("show-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM acts WHERE show_id = \?`).
		WithArgs("show-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM shows WHERE id = \?`).
		WithArgs("show-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), "show-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowDeleteCascadeNotFound(t *testing.T) {
	repo, mock := newShowMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM shows WHERE id = \? FOR UPDATE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrShowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowListEmpty(t *testing.T) {
	repo, mock := newShowMock(t)

	mock.ExpectQuery(`FROM shows ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date", "venue", "description", "created_at"}))

	shows, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, shows)
	assert.Empty(t, shows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
