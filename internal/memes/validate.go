package memes

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

const sniffLen = 512

// ValidateUpload runs the upload checks in order: presence, size, content
// type. The type is sniffed from the leading bytes, never from the filename
// or the declared content type; only jpeg passes the allow-list. On success
// the full file bytes are returned, so no downstream rewind is needed.
// The gate is pure: no store is touched.
func ValidateUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > maxBytes {
		return nil, ErrTooLargeFile
	}

	f, err := fh.Open()
	if err != nil {
		return nil, ErrEmptyFile.Wrap(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	// The multipart header size is client-reported; re-check what was read.
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLargeFile
	}

	switch sniffContentType(data) {
	case "image/jpeg":
		return data, nil
	case "application/octet-stream":
		return nil, ErrNotSupportedFileType
	default:
		return nil, ErrInvalidFileType
	}
}

func sniffContentType(data []byte) string {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return http.DetectContentType(data)
}
