// Package httpstore implements the blob store port against the HTTP
// object-store gateway (upload / download/{bucket}/{key} /
// delete/{bucket}/{key}).
package httpstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"meme-backend/internal/shared/storage/blob"
)

// Store is a thin client for the object-store gateway.
type Store struct {
	client  *http.Client
	baseURL string
	bucket  string
}

// New creates a gateway-backed blob store. baseURL is the gateway root,
// for example "http://localhost:9000".
func New(baseURL, bucket string) *Store {
	return &Store{
		// Connect and header timeouts only: downloads stream for as long
		// as the consumer keeps reading.
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				ResponseHeaderTimeout: 10 * time.Second,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

// Upload posts data as a multipart form. Any non-200 gateway response is an
// unknown store error.
func (s *Store) Upload(ctx context.Context, key string, data []byte) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("bucket", s.bucket); err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	if err := form.WriteField("object_name", key); err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	part, err := form.CreateFormFile("file", key)
	if err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	if _, err := part.Write(data); err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	if err := form.Close(); err != nil {
		return blob.ErrUnknown.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url("upload"), &body)
	if err != nil {
		return blob.ErrUnknown.Wrap(err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return blob.Classify(err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return blob.ErrUnknown.Wrap(fmt.Errorf("gateway upload status %d", resp.StatusCode))
	}
	return nil
}

// Download streams the object bytes. The returned body holds the outbound
// connection until it is closed.
func (s *Store) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url("download/"+s.bucket+"/"+key), nil)
	if err != nil {
		return nil, blob.ErrUnknown.Wrap(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, blob.Classify(err)
	}
	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp.Body)
		return nil, blob.ErrNotFound.Wrap(fmt.Errorf("gateway download status %d", resp.StatusCode))
	}
	return resp.Body, nil
}

// Delete issues the gateway delete. The response status is intentionally
// not inspected; only transport failures surface.
func (s *Store) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.url("delete/"+s.bucket+"/"+key), nil)
	if err != nil {
		return blob.ErrUnknown.Wrap(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return blob.Classify(err)
	}
	drainAndClose(resp.Body)
	return nil
}

func (s *Store) url(path string) string {
	return s.baseURL + "/" + path
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

var _ blob.Store = (*Store)(nil)
