// This file defines repository methods for shows. Deleting a show cascades to
// its acts and expenses inside a single transaction so readers never observe a
// partially removed show.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bigtop/showrunner/internal/identity"
	"github.com/bigtop/showrunner/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin transactions
// spanning multiple repositories.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

const showColumns = `id, title, date, venue, description, created_at`

func scanShow(row interface{ Scan(...any) error }) (*model.Show, error) {
	var s model.Show
	var date, venue, desc sql.NullString
	if err := row.Scan(&s.ID, &s.Title, &date, &venue, &desc, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Date = date.String
	s.Venue = venue.String
	s.Description = desc.String
	return &s, nil
}

// Create inserts a new show. The ID and CreatedAt are assigned here if the
// caller left them empty.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	if s.ID == "" {
		s.ID = identity.NewID()
	}
	if s.CreatedAt == "" {
		s.CreatedAt = identity.Now()
	}
	const q = `INSERT INTO shows (id, title, date, venue, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.Title, nullable(s.Date), nullable(s.Venue), nullable(s.Description), s.CreatedAt)
	return err
}

// GetByID retrieves a show by its ID. It returns ErrShowNotFound when there is
// no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id string) (*model.Show, error) {
	s, err := scanShow(r.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns all shows ordered by creation time, newest first. When no shows
// exist it returns an empty slice and nil error.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+showColumns+` FROM shows ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Show{}
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// Update applies the non-nil fields of in to the show and returns the updated
// row. ID and CreatedAt are immutable.
func (r *ShowRepo) Update(ctx context.Context, id string, in model.ShowUpdate) (*model.Show, error) {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		cur.Title = *in.Title
	}
	if in.Date != nil {
		cur.Date = *in.Date
	}
	if in.Venue != nil {
		cur.Venue = *in.Venue
	}
	if in.Description != nil {
		cur.Description = *in.Description
	}
	const q = `UPDATE shows SET title = ?, date = ?, venue = ?, description = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, cur.Title, nullable(cur.Date), nullable(cur.Venue), nullable(cur.Description), id); err != nil {
		return nil, err
	}
	return cur, nil
}

// DeleteCascade removes a show together with all of its acts and expenses in
// one transaction. It returns ErrShowNotFound when the show does not exist.
func (r *ShowRepo) DeleteCascade(ctx context.Context, id string) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? FOR UPDATE`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrShowNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM expenses WHERE show_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM acts WHERE show_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	return err
}

// nullable converts an empty string to a NULL parameter so optional text
// columns stay NULL instead of storing "".
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
