package memes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo, used as the dev
// fallback when no database is configured and by handler tests. Rows keep
// insertion order, matching the Postgres creation-order listing.
type MemoryRepo struct {
	mu    sync.RWMutex
	rows  []Meme
	index map[uuid.UUID]int
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{index: make(map[uuid.UUID]int)}
}

// Insert creates a new meme row and returns it.
func (r *MemoryRepo) Insert(ctx context.Context, title string) (Meme, error) {
	if err := ctx.Err(); err != nil {
		return Meme{}, ErrStoreUnknown.Wrap(err)
	}
	now := time.Now().UTC()
	m := Meme{
		ID:       uuid.New(),
		Title:    title,
		Created:  now,
		Modified: now,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[m.ID] = len(r.rows)
	r.rows = append(r.rows, m)
	return m, nil
}

// GetByID fetches a meme row.
func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (Meme, error) {
	if err := ctx.Err(); err != nil {
		return Meme{}, ErrStoreUnknown.Wrap(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return Meme{}, ErrNotFound
	}
	return r.rows[i], nil
}

// List returns up to limit rows starting at offset, in insertion order.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Meme, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrStoreUnknown.Wrap(err)
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset >= len(r.rows) {
		return []Meme{}, nil
	}
	end := len(r.rows)
	if offset+limit < end {
		end = offset + limit
	}
	out := make([]Meme, end-offset)
	copy(out, r.rows[offset:end])
	return out, nil
}

// Update sets the title and bumps modified.
func (r *MemoryRepo) Update(ctx context.Context, id uuid.UUID, title string) (Meme, error) {
	if err := ctx.Err(); err != nil {
		return Meme{}, ErrStoreUnknown.Wrap(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return Meme{}, ErrNotFound
	}
	r.rows[i].Title = title
	r.rows[i].Modified = time.Now().UTC()
	return r.rows[i], nil
}

// Delete removes the row and returns it.
func (r *MemoryRepo) Delete(ctx context.Context, id uuid.UUID) (Meme, error) {
	if err := ctx.Err(); err != nil {
		return Meme{}, ErrStoreUnknown.Wrap(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return Meme{}, ErrNotFound
	}
	m := r.rows[i]
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.rows); j++ {
		r.index[r.rows[j].ID] = j
	}
	return m, nil
}

var _ Repo = (*MemoryRepo)(nil)
