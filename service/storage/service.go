// Package storage reads and writes whole documents through viant/afs, so the
// input and output may live on the local file system or any other afs scheme.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("storage: not found")

// Service implements afs-backed document storage
type Service struct {
	fs afs.Service
}

// Download returns the content stored at URL.
func (s *Service) Download(ctx context.Context, URL string) ([]byte, error) {
	if URL == "" {
		return nil, fmt.Errorf("download URL cannot be empty")
	}
	URL = Normalize(URL)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if %s exists: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	return data, nil
}

// Upload writes data to URL in a single call, replacing any existing content.
func (s *Service) Upload(ctx context.Context, URL string, data []byte) error {
	if URL == "" {
		return fmt.Errorf("upload URL cannot be empty")
	}
	URL = Normalize(URL)
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return nil
}

// Exists reports whether URL exists.
func (s *Service) Exists(ctx context.Context, URL string) (bool, error) {
	return s.fs.Exists(ctx, Normalize(URL))
}

// Normalize turns relative or absolute local paths into file:// URLs and
// leaves URLs with a scheme untouched.
func Normalize(URL string) string {
	return url.Normalize(URL, file.Scheme)
}

// New creates a storage service; a nil fs defaults to afs.New().
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
