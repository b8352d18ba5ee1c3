package memes

import (
	"context"
	"io"

	"github.com/google/uuid"

	"meme-backend/internal/shared/storage/blob"
	"meme-backend/internal/shared/telemetry"
)

// Service orchestrates the metadata store and the blob store. The two
// writes in Create, Update and Delete are independent and non-atomic:
// there is no two-phase commit and no compensating rollback, so a failure
// between them leaves an orphaned row or a stale blob. The gap is logged,
// never corrected.
type Service struct {
	Repo Repo
	Blob blob.Store
}

// Create inserts the metadata row, then uploads the validated file bytes
// under the new id. If the upload fails after the insert succeeded, the
// row stays behind without a blob.
func (s *Service) Create(ctx context.Context, title string, data []byte) (Meme, error) {
	meme, err := s.Repo.Insert(ctx, title)
	if err != nil {
		return Meme{}, err
	}
	if err := s.Blob.Upload(ctx, meme.ID.String(), data); err != nil {
		telemetry.Warn("meme.orphaned_row", map[string]any{
			"meme_id": meme.ID.String(),
			"err":     err.Error(),
		})
		return Meme{}, err
	}
	return meme, nil
}

// Read returns the meme row and a single-pass stream of its image bytes.
// The caller owns the stream and must close it. A row without a blob
// surfaces the blob store's not-found.
func (s *Service) Read(ctx context.Context, id uuid.UUID) (Meme, io.ReadCloser, error) {
	meme, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Meme{}, nil, err
	}
	stream, err := s.Blob.Download(ctx, meme.ID.String())
	if err != nil {
		return Meme{}, nil, err
	}
	return meme, stream, nil
}

// List returns one page of memes in creation order. page is 1-indexed.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]Meme, error) {
	return s.Repo.List(ctx, pageSize, (page-1)*pageSize)
}

// Update applies the optional branches: a non-empty title updates the row
// (not-found is checked here only), file bytes overwrite the blob without
// any existence check. With neither, the call is a no-op success.
func (s *Service) Update(ctx context.Context, id uuid.UUID, title string, data []byte) error {
	if title != "" {
		if _, err := s.Repo.Update(ctx, id, title); err != nil {
			return err
		}
	}
	if data != nil {
		if err := s.Blob.Upload(ctx, id.String(), data); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the blob first, unconditionally and best-effort, then the
// metadata row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Blob.Delete(ctx, id.String()); err != nil {
		return err
	}
	_, err := s.Repo.Delete(ctx, id)
	return err
}
