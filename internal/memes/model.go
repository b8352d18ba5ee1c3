package memes

import (
	"time"

	"github.com/google/uuid"
)

// Meme is the stored record for a single meme: a title plus an image blob
// held in the object store under the meme's id. Timestamps are managed by
// the metadata store; modified bumps on every mutation.
type Meme struct {
	ID       uuid.UUID
	Title    string
	Created  time.Time
	Modified time.Time
}
