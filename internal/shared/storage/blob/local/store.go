// Package local implements the blob store port on the local filesystem,
// used for development and handler tests.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"meme-backend/internal/shared/storage/blob"
)

// Store implements blob.Store using files under a base directory.
type Store struct {
	baseDir string
}

// New creates a local blob store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Upload writes data to disk under key.
func (s *Store) Upload(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return blob.Classify(err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	return nil
}

// Download opens the stored object for reading.
func (s *Store) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, blob.Classify(err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, blob.ErrUnknown.Wrap(err)
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, blob.ErrNotFound.Wrap(err)
		}
		return nil, blob.ErrUnknown.Wrap(err)
	}
	return f, nil
}

// Delete removes the stored object; a missing file is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return blob.Classify(err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return blob.ErrUnknown.Wrap(err)
	}
	return nil
}

func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ blob.Store = (*Store)(nil)
