// Package storage keeps the supporting documents applicants upload, either
// on the local filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	infraconfig "github.com/sereci/sirepre/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned when a key does not exist.
var ErrObjectNotFound = errors.New("storage object not found")

// DocumentStorage stores uploaded documents under opaque keys.
type DocumentStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns where a client can download the object
	URL(ctx context.Context, key string) (string, error)
}

// NewDocumentKey builds a unique key "<yyyy>/<mm>/<uuid><ext>" keeping
// only the lower-cased extension of the client file name.
func NewDocumentKey(filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 8 {
		ext = ""
	}
	return path.Join(fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())), uuid.NewString()+ext)
}

// ValidKey rejects empty, absolute and parent-relative keys.
func ValidKey(key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	if path.IsAbs(key) || strings.HasPrefix(key, "\\") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	for _, part := range strings.FieldsFunc(key, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("invalid storage key %q", key)
		}
	}
	return nil
}

// New returns the DocumentStorage selected by cfg.Type.
func New(ctx context.Context, cfg *infraconfig.StorageConfig, localDir, localBaseURL string, logger *zap.Logger) (DocumentStorage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(localDir, localBaseURL, logger)
	case "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
