package memes

import (
	"context"

	"github.com/google/uuid"
)

// Repo defines the metadata store operations for memes. Each call is a
// single atomic statement, committed immediately; there are no
// multi-statement transactions.
type Repo interface {
	Insert(ctx context.Context, title string) (Meme, error)
	GetByID(ctx context.Context, id uuid.UUID) (Meme, error)
	List(ctx context.Context, limit, offset int) ([]Meme, error)
	Update(ctx context.Context, id uuid.UUID, title string) (Meme, error)
	Delete(ctx context.Context, id uuid.UUID) (Meme, error)
}
