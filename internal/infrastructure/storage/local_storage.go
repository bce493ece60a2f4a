package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStorage keeps documents below a directory on disk.
type LocalStorage struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

// NewLocalStorage creates root when missing. baseURL is the public prefix
// the directory is served under, e.g. /media/uploads.
func NewLocalStorage(root, baseURL string, logger *zap.Logger) (*LocalStorage, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/"), logger: logger}, nil
}

func (s *LocalStorage) path(key string) (string, error) {
	if err := ValidKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Put writes body to key, replacing an existing object.
func (s *LocalStorage) Put(ctx context.Context, key string, body io.Reader, size int64, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create object: %w", err)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(p)
		return fmt.Errorf("failed to write object: %w", err)
	}
	if size >= 0 && n != size {
		_ = os.Remove(p)
		return fmt.Errorf("short write for %s: %d of %d bytes", key, n, size)
	}
	s.logger.Debug("document stored", zap.String("key", key), zap.Int64("size", n))
	return nil
}

// Open returns the object for reading.
func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return f, nil
}

// Delete removes the object. A missing object is not an error.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether key is stored.
func (s *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// URL returns the static URL of key.
func (s *LocalStorage) URL(_ context.Context, key string) (string, error) {
	if err := ValidKey(key); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

var _ DocumentStorage = (*LocalStorage)(nil)
