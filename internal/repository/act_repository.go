// This file defines repository methods for acts. Every operation that touches
// sequence_order runs in a transaction: creation reads the current maximum
// position under FOR UPDATE before inserting, deletion renumbers the acts
// above the removed position and clears expense references, and moves apply
// the shift window computed by the program package. Renumbering UPDATEs carry
// ORDER BY sequence_order so the unique key on (show_id, sequence_order) is
// never transiently violated.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/bigtop/showrunner/internal/identity"
	"github.com/bigtop/showrunner/internal/model"
	"github.com/bigtop/showrunner/internal/program"
)

// ActRepo manages persistence for acts and the ordering of a show's program.
type ActRepo struct {
	db *sql.DB
}

// NewActRepo constructs an ActRepo with the given DB handle.
func NewActRepo(db *sql.DB) *ActRepo {
	return &ActRepo{db: db}
}

const actColumns = `id, show_id, name, performers, duration, sequence_order,
	description, staging_notes, sound_requirements, lighting_requirements, created_at`

func scanAct(row interface{ Scan(...any) error }) (*model.Act, error) {
	var a model.Act
	var performers, desc, staging, sound, lighting sql.NullString
	err := row.Scan(&a.ID, &a.ShowID, &a.Name, &performers, &a.Duration, &a.SequenceOrder,
		&desc, &staging, &sound, &lighting, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Performers = performers.String
	a.Description = desc.String
	a.StagingNotes = staging.String
	a.SoundRequirements = sound.String
	a.LightingRequirements = lighting.String
	return &a, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062),
// which on the acts table means a sequence position collision.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// Create appends a new act to the end of its show's program. The position is
// computed server-side from the current maximum; any value on a.SequenceOrder
// is overwritten. Returns ErrShowNotFound when the show does not exist and
// ErrConflict when the computed position collides with a concurrent write.
func (r *ActRepo) Create(ctx context.Context, a *model.Act) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? FOR UPDATE`, a.ShowID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrShowNotFound
		}
		return err
	}
	var max int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sequence_order), 0) FROM acts WHERE show_id = ? FOR UPDATE`, a.ShowID).Scan(&max)
	if err != nil {
		return err
	}
	a.SequenceOrder = program.AppendPosition(max)
	if a.ID == "" {
		a.ID = identity.NewID()
	}
	if a.CreatedAt == "" {
		a.CreatedAt = identity.Now()
	}
	const q = `INSERT INTO acts (id, show_id, name, performers, duration, sequence_order,
		description, staging_notes, sound_requirements, lighting_requirements, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, q, a.ID, a.ShowID, a.Name, nullable(a.Performers), a.Duration,
		a.SequenceOrder, nullable(a.Description), nullable(a.StagingNotes),
		nullable(a.SoundRequirements), nullable(a.LightingRequirements), a.CreatedAt)
	if isDuplicateKey(err) {
		err = ErrConflict
	}
	return err
}

// GetByID retrieves an act by its ID. Returns ErrActNotFound when missing.
func (r *ActRepo) GetByID(ctx context.Context, id string) (*model.Act, error) {
	a, err := scanAct(r.db.QueryRowContext(ctx, `SELECT `+actColumns+` FROM acts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListByShow returns the program of a show in display order (sequence_order
// ascending). An unknown or empty show yields an empty slice, not an error.
func (r *ActRepo) ListByShow(ctx context.Context, showID string) ([]model.Act, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actColumns+` FROM acts WHERE show_id = ? ORDER BY sequence_order ASC`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Act{}
	for rows.Next() {
		a, err := scanAct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

// Update applies the non-nil fields of in to the act and returns the updated
// row. The act's show, position and creation time are never touched here. The
// read-merge-write runs under FOR UPDATE so concurrent updates to the same act
// cannot lose fields.
func (r *ActRepo) Update(ctx context.Context, id string, in model.ActUpdate) (act *model.Act, err error) {
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
	cur, err := scanAct(tx.QueryRowContext(ctx, `SELECT `+actColumns+` FROM acts WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrActNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		cur.Name = *in.Name
	}
	if in.Performers != nil {
		cur.Performers = *in.Performers
	}
	if in.Duration != nil {
		cur.Duration = *in.Duration
	}
	if in.Description != nil {
		cur.Description = *in.Description
	}
	if in.StagingNotes != nil {
		cur.StagingNotes = *in.StagingNotes
	}
	if in.SoundRequirements != nil {
		cur.SoundRequirements = *in.SoundRequirements
	}
	if in.LightingRequirements != nil {
		cur.LightingRequirements = *in.LightingRequirements
	}
	const q = `UPDATE acts SET name = ?, performers = ?, duration = ?, description = ?,
		staging_notes = ?, sound_requirements = ?, lighting_requirements = ? WHERE id = ?`
	_, err = tx.ExecContext(ctx, q, cur.Name, nullable(cur.Performers), cur.Duration,
		nullable(cur.Description), nullable(cur.StagingNotes), nullable(cur.SoundRequirements),
		nullable(cur.LightingRequirements), id)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

// verifyDense confirms the show's positions are exactly 1..N after a
// renumbering. A violation aborts the transaction as a sequence conflict,
// leaving the previous consistent ordering in place.
func verifyDense(ctx context.Context, tx *sql.Tx, showID string) error {
	rows, err := tx.QueryContext(ctx, `SELECT sequence_order FROM acts WHERE show_id = ?`, showID)
	if err != nil {
		return err
	}
	defer rows.Close()
	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return err
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !program.Dense(positions) {
		return ErrConflict
	}
	return nil
}

// DeleteRenumber removes an act, decrements the positions of every act after
// it in the same show, and clears act_id on expenses that referenced it. The
// three steps commit atomically; expenses themselves are never deleted here.
func (r *ActRepo) DeleteRenumber(ctx context.Context, id string) error {
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
	var showID string
	var pos int
	err = tx.QueryRowContext(ctx, `SELECT show_id, sequence_order FROM acts WHERE id = ? FOR UPDATE`, id).Scan(&showID, &pos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrActNotFound
		}
		return err
	}
	// Clear expense references first so the FK on expenses.act_id never
	// blocks the delete; the expenses themselves are kept.
	if _, err = tx.ExecContext(ctx, `UPDATE expenses SET act_id = NULL WHERE act_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM acts WHERE id = ?`, id); err != nil {
		return err
	}
	sh := program.CloseGapShift(pos)
	// Ascending order keeps the unique key satisfied while the gap closes.
	_, err = tx.ExecContext(ctx,
		`UPDATE acts SET sequence_order = sequence_order + ? WHERE show_id = ? AND sequence_order > ? ORDER BY sequence_order ASC`,
		sh.Delta, showID, pos)
	if err != nil {
		return err
	}
	err = verifyDense(ctx, tx, showID)
	return err
}

// Move places the act at 1-based position p and shifts the acts in between by
// one in the direction that closes the gap, preserving dense numbering. The
// whole renumbering commits atomically. Returns ErrPositionOutOfRange when p
// exceeds the program length.
func (r *ActRepo) Move(ctx context.Context, id string, p int) error {
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
	var showID string
	var old int
	err = tx.QueryRowContext(ctx, `SELECT show_id, sequence_order FROM acts WHERE id = ? FOR UPDATE`, id).Scan(&showID, &old)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrActNotFound
		}
		return err
	}
	var n int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM acts WHERE show_id = ? FOR UPDATE`, showID).Scan(&n); err != nil {
		return err
	}
	if !program.ValidPosition(p, n) {
		err = ErrPositionOutOfRange
		return err
	}
	sh, moved := program.MoveShift(old, p)
	if !moved {
		return nil
	}
	// Park the moved act at 0 so the window shift never collides with it.
	if _, err = tx.ExecContext(ctx, `UPDATE acts SET sequence_order = 0 WHERE id = ?`, id); err != nil {
		return err
	}
	order := "ASC"
	if sh.Delta > 0 {
		order = "DESC"
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE acts SET sequence_order = sequence_order + ? WHERE show_id = ? AND sequence_order BETWEEN ? AND ? ORDER BY sequence_order `+order,
		sh.Delta, showID, sh.Lo, sh.Hi)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE acts SET sequence_order = ? WHERE id = ?`, p, id); err != nil {
		if isDuplicateKey(err) {
			err = ErrConflict
		}
		return err
	}
	err = verifyDense(ctx, tx, showID)
	return err
}
