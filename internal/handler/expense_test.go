package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExpenseLinkedToAct(t *testing.T) {
	h, e, mock := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM shows WHERE id = \?`).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT show_id FROM acts WHERE id = \?`).
		WithArgs("act-1").
		WillReturnRows(sqlmock.NewRows([]string{"show_id"}).AddRow("show-1"))
	mock.ExpectExec(`INSERT INTO expenses`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// The recorded event enriches its payload with the show title.
	mock.ExpectQuery(`FROM shows WHERE id = \?`).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date", "venue", "description", "created_at"}).
			AddRow("show-1", "Winter Gala", nil, nil, nil, "2026-01-01 10:00:00"))

	c, rec := request(e, http.MethodPost, "/api/expenses",
		`{"show_id":"show-1","act_id":"act-1","category":"performer_fee","amount":"250.00","description":"Trapeze duo"}`)
	require.NoError(t, h.CreateExpense(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "performer_fee", body["category"])
	assert.NotEmpty(t, body["id"])
	assert.Contains(t, rec.Body.String(), `"amount":250.00`, "amount is a JSON number with two decimals")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseRejectsNegativeAmount(t *testing.T) {
	h, e, mock := newTestHandler(t)

	c, rec := request(e, http.MethodPost, "/api/expenses",
		`{"show_id":"show-1","category":"venue","amount":"-5.00","description":"Hall"}`)
	require.NoError(t, h.CreateExpense(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "must not be negative", fields["amount"])
	assert.NoError(t, mock.ExpectationsWereMet(), "no SQL is issued for invalid input")
}

func TestCreateExpenseRejectsUnknownCategory(t *testing.T) {
	h, e, mock := newTestHandler(t)

	c, rec := request(e, http.MethodPost, "/api/expenses",
		`{"show_id":"show-1","category":"catering","amount":"5.00","description":"Snacks"}`)
	require.NoError(t, h.CreateExpense(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields["category"], "must be one of")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseRequiresAmount(t *testing.T) {
	h, e, mock := newTestHandler(t)

	c, rec := request(e, http.MethodPost, "/api/expenses",
		`{"show_id":"show-1","category":"venue","description":"Hall"}`)
	require.NoError(t, h.CreateExpense(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "is required", fields["amount"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseActFromOtherShow(t *testing.T) {
	h, e, mock := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM shows WHERE id = \?`).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT show_id FROM acts WHERE id = \?`).
		WithArgs("act-9").
		WillReturnRows(sqlmock.NewRows([]string{"show_id"}).AddRow("show-2"))
	mock.ExpectRollback()

	c, rec := request(e, http.MethodPost, "/api/expenses",
		`{"show_id":"show-1","act_id":"act-9","category":"equipment","amount":"80.00","description":"Rigging"}`)
	require.NoError(t, h.CreateExpense(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseUnknownActID(t *testing.T) {
	h, e, mock := newTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM shows WHERE id = \?`).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT show_id FROM acts WHERE id = \?`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"show_id"}))
	mock.ExpectRollback()

	c, rec := request(e, http.MethodPost, "/api/expenses",
		`{"show_id":"show-1","act_id":"ghost","category":"other","amount":"10.00","description":"Misc"}`)
	require.NoError(t, h.CreateExpense(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "act does not exist", fields["act_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExpenseSerializedPerShow(t *testing.T) {
	h, e, mock := newTestHandler(t)

	expenseRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "show_id", "act_id", "category", "amount", "description", "date", "created_at"}).
			AddRow("exp-1", "show-1", nil, "venue", "500.00", "Hall rental", nil, "2026-01-01 10:00:00")
	}
	// The handler loads the expense to find its show before taking the lock,
	// then the repository re-reads it under the row lock.
	mock.ExpectQuery(`FROM expenses WHERE id = \?`).
		WithArgs("exp-1").
		WillReturnRows(expenseRow())
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM expenses WHERE id = \? FOR UPDATE`).
		WithArgs("exp-1").
		WillReturnRows(expenseRow())
	mock.ExpectExec(`UPDATE expenses SET act_id = \?`).
		WithArgs(nil, "venue", sqlmock.AnyArg(), "Main hall rental", nil, "exp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := request(e, http.MethodPut, "/api/expenses/exp-1",
		`{"description":"Main hall rental"}`, "id", "exp-1")
	require.NoError(t, h.UpdateExpense(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Main hall rental", body["description"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExpenseNotFound(t *testing.T) {
	h, e, mock := newTestHandler(t)

	mock.ExpectQuery(`FROM expenses WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := request(e, http.MethodPut, "/api/expenses/missing",
		`{"description":"Misc"}`, "id", "missing")
	require.NoError(t, h.UpdateExpense(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpenseNotFound(t *testing.T) {
	h, e, mock := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \?`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := request(e, http.MethodDelete, "/api/expenses/missing", "", "id", "missing")
	require.NoError(t, h.DeleteExpense(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
