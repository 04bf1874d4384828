// This file defines repository methods for expenses. An expense may reference
// an act of the same show; creation and updates verify that linkage before
// writing so a mismatched act_id never reaches the table.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bigtop/showrunner/internal/identity"
	"github.com/bigtop/showrunner/internal/model"
)

// ExpenseRepo manages persistence for the expense ledger.
type ExpenseRepo struct {
	db *sql.DB
}

// NewExpenseRepo constructs an ExpenseRepo with the given DB handle.
func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

const expenseColumns = `id, show_id, act_id, category, amount, description, date, created_at`

func scanExpense(row interface{ Scan(...any) error }) (*model.Expense, error) {
	var e model.Expense
	var actID, date sql.NullString
	if err := row.Scan(&e.ID, &e.ShowID, &actID, &e.Category, &e.Amount, &e.Description, &date, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.ActID = actID.String
	e.Date = date.String
	return &e, nil
}

// checkActLink verifies that actID names an act belonging to showID. It is a
// no-op for an empty actID ("no linked act"). The act row is locked so a
// concurrent act deletion cannot invalidate the link before the caller's
// transaction commits.
func checkActLink(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, actID, showID string) error {
	if actID == "" {
		return nil
	}
	var actShow string
	err := q.QueryRowContext(ctx, `SELECT show_id FROM acts WHERE id = ? FOR UPDATE`, actID).Scan(&actShow)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActNotFound
		}
		return err
	}
	if actShow != showID {
		return ErrActShowMismatch
	}
	return nil
}

// Create inserts a new expense after verifying the show exists and any act
// reference points into the same show. An empty ActID is stored as NULL.
func (r *ExpenseRepo) Create(ctx context.Context, e *model.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ?`, e.ShowID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrShowNotFound
		}
		return err
	}
	if err = checkActLink(ctx, tx, e.ActID, e.ShowID); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = identity.NewID()
	}
	if e.CreatedAt == "" {
		e.CreatedAt = identity.Now()
	}
	const q = `INSERT INTO expenses (id, show_id, act_id, category, amount, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, q, e.ID, e.ShowID, nullable(e.ActID), string(e.Category),
		e.Amount, e.Description, nullable(e.Date), e.CreatedAt)
	return err
}

// GetByID retrieves an expense by its ID. Returns ErrExpenseNotFound when missing.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*model.Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListByShow returns the expense ledger of a show, newest first. An unknown or
// empty show yields an empty slice, not an error.
func (r *ExpenseRepo) ListByShow(ctx context.Context, showID string) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE show_id = ? ORDER BY created_at DESC, id`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// Update applies the non-nil fields of in to the expense and returns the
// updated row. A new act reference is verified against the expense's show;
// setting ActID to the empty string clears the link. ShowID is immutable. The
// read-merge-write runs under FOR UPDATE so concurrent updates cannot lose
// fields and a racing act deletion surfaces as ErrActNotFound, not an FK
// failure.
func (r *ExpenseRepo) Update(ctx context.Context, id string, in model.ExpenseUpdate) (exp *model.Expense, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	cur, err := scanExpense(tx.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrExpenseNotFound
		}
		return nil, err
	}
	if in.ActID != nil {
		cur.ActID = *in.ActID
	}
	if in.Category != nil {
		cur.Category = *in.Category
	}
	if in.Amount != nil {
		cur.Amount = *in.Amount
	}
	if in.Description != nil {
		cur.Description = *in.Description
	}
	if in.Date != nil {
		cur.Date = *in.Date
	}
	if err = checkActLink(ctx, tx, cur.ActID, cur.ShowID); err != nil {
		return nil, err
	}
	const q = `UPDATE expenses SET act_id = ?, category = ?, amount = ?, description = ?, date = ? WHERE id = ?`
	_, err = tx.ExecContext(ctx, q, nullable(cur.ActID), string(cur.Category), cur.Amount,
		cur.Description, nullable(cur.Date), id)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

// Delete removes an expense. Returns ErrExpenseNotFound when it does not exist.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
