// Package blob defines the contract for the binary side of a meme: image
// bytes stored in an object store under the meme's id.
package blob

import (
	"context"
	"errors"
	"io"
	"syscall"

	"meme-backend/internal/apperr"
)

// Store saves, streams and removes binary objects keyed by meme id.
type Store interface {
	// Upload stores data under key, overwriting any existing object.
	Upload(ctx context.Context, key string, data []byte) error

	// Download returns a single-pass stream of the object bytes. The
	// stream owns the underlying connection until Close is called.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. The remote result is best-effort: only
	// transport-level failures are reported.
	Delete(ctx context.Context, key string) error
}

var (
	ErrNotFound   = apperr.New("The requested meme was not found in the object store. Try updating the meme.")
	ErrConnection = apperr.New("Failed to connect to the object store. Try again later.")
	ErrUnknown    = apperr.New("Unknown object store error.")
)

// Classify maps a low-level failure onto the store taxonomy. Failures that
// are already classified pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ErrConnection.Wrap(err)
	}
	return ErrUnknown.Wrap(err)
}
