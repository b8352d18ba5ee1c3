package memes

import "meme-backend/internal/apperr"

// Upload validation failures.
var (
	ErrEmptyFile            = apperr.New("The file is empty or was not uploaded.")
	ErrTooLargeFile         = apperr.New("The file is too large.")
	ErrInvalidFileType      = apperr.New("File type validation failed. Supported types: .jpg.")
	ErrNotSupportedFileType = apperr.New("Unsupported file type.")
)

// Metadata store failures.
var (
	ErrNotFound        = apperr.New("Meme not found in the database.")
	ErrStoreConnection = apperr.New("Failed to connect to the data server. Try again later.")
	ErrStoreUnknown    = apperr.New("Unknown data server error.")
)
