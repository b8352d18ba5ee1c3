package memes

import (
	"context"
	"database/sql"
	"errors"
	"syscall"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. The database generates ids and
// timestamps server-side; every statement returns the affected row.
type PGRepo struct {
	DB *sql.DB
}

// Insert creates a new meme row and returns it.
func (r *PGRepo) Insert(ctx context.Context, title string) (Meme, error) {
	const query = `
INSERT INTO meme_center.memes (title)
VALUES ($1)
RETURNING id, title, created, modified`
	var m Meme
	err := r.DB.QueryRowContext(ctx, query, title).
		Scan(&m.ID, &m.Title, &m.Created, &m.Modified)
	if err != nil {
		return Meme{}, classifyStoreErr(err)
	}
	return m, nil
}

// GetByID fetches a meme row.
func (r *PGRepo) GetByID(ctx context.Context, id uuid.UUID) (Meme, error) {
	const query = `
SELECT id, title, created, modified
FROM meme_center.memes
WHERE id = $1`
	var m Meme
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Title, &m.Created, &m.Modified)
	if err != nil {
		return Meme{}, classifyStoreErr(err)
	}
	return m, nil
}

// List returns up to limit rows starting at offset, in creation order.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Meme, error) {
	const query = `
SELECT id, title, created, modified
FROM meme_center.memes
ORDER BY created
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	defer rows.Close()

	var out []Meme
	for rows.Next() {
		var m Meme
		if err := rows.Scan(&m.ID, &m.Title, &m.Created, &m.Modified); err != nil {
			return nil, classifyStoreErr(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreErr(err)
	}
	return out, nil
}

// Update sets the title and bumps modified.
func (r *PGRepo) Update(ctx context.Context, id uuid.UUID, title string) (Meme, error) {
	const query = `
UPDATE meme_center.memes
SET title = $2, modified = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING id, title, created, modified`
	var m Meme
	err := r.DB.QueryRowContext(ctx, query, id, title).
		Scan(&m.ID, &m.Title, &m.Created, &m.Modified)
	if err != nil {
		return Meme{}, classifyStoreErr(err)
	}
	return m, nil
}

// Delete removes the row and returns it.
func (r *PGRepo) Delete(ctx context.Context, id uuid.UUID) (Meme, error) {
	const query = `
DELETE FROM meme_center.memes
WHERE id = $1
RETURNING id, title, created, modified`
	var m Meme
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Title, &m.Created, &m.Modified)
	if err != nil {
		return Meme{}, classifyStoreErr(err)
	}
	return m, nil
}

// classifyStoreErr applies the three-way failure classification every repo
// call goes through: no row, connection refused, or unknown.
func classifyStoreErr(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound.Wrap(err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return ErrStoreConnection.Wrap(err)
	default:
		return ErrStoreUnknown.Wrap(err)
	}
}

var _ Repo = (*PGRepo)(nil)
