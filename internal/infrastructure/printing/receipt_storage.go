package printing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sereci/sirepre/internal/domain/printing"
	"go.uber.org/zap"
)

// ReceiptStorageConfig contains configuration for receipt storage
type ReceiptStorageConfig struct {
	// ReceiptDir holds comprobante_<ci>.pdf files
	ReceiptDir string
	// QRTempDir holds QR images that live only while a receipt is drawn
	QRTempDir string
	// LogoPath is the institutional logo, skipped when missing
	LogoPath string
	// BaseURL prefixes receipt URLs, e.g. /api/postulantes/pdf
	BaseURL string
	Logger  *zap.Logger
}

// ReceiptStorage stores receipts at fixed paths derived from the cédula.
// Saving twice for the same cédula replaces the earlier file.
type ReceiptStorage struct {
	config ReceiptStorageConfig
	logger *zap.Logger
}

// NewReceiptStorage creates both directories when they do not exist.
func NewReceiptStorage(config ReceiptStorageConfig) (*ReceiptStorage, error) {
	if config.ReceiptDir == "" {
		return nil, NewRenderError(ErrCodeStorageFailed, "receipt directory is required", nil)
	}
	if config.BaseURL == "" {
		config.BaseURL = "/api/postulantes/pdf"
	}
	for _, dir := range []string{config.ReceiptDir, config.QRTempDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewRenderError(ErrCodeStorageFailed,
				fmt.Sprintf("failed to create storage directory: %s", dir), err)
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptStorage{config: config, logger: logger}, nil
}

// Path returns the location of the receipt of ci.
func (s *ReceiptStorage) Path(ci int64) string {
	return filepath.Join(s.config.ReceiptDir, printing.ReceiptFilename(ci))
}

// Save writes data as the receipt of ci and returns its file name. The
// bytes go to a sibling temp file first and are renamed into place, so a
// reader never sees a half-written receipt.
func (s *ReceiptStorage) Save(ctx context.Context, ci int64, data []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}
	if ci <= 0 {
		return "", NewRenderError(ErrCodeStorageFailed, "cédula is required", nil)
	}
	if len(data) == 0 {
		return "", NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	tmp, err := os.CreateTemp(s.config.ReceiptDir, ".comprobante-*.tmp")
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", NewRenderError(ErrCodeStorageFailed, "failed to write PDF file", err)
	}
	if err := tmp.Close(); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to close PDF file", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to set PDF permissions", err)
	}

	path := s.Path(ci)
	if err := os.Rename(tmpName, path); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to move PDF into place", err)
	}

	filename := printing.ReceiptFilename(ci)
	s.logger.Info("receipt stored",
		zap.String("path", path),
		zap.Int("size", len(data)))
	return filename, nil
}

// Open returns the receipt of ci for reading.
func (s *ReceiptStorage) Open(ci int64) (*os.File, error) {
	f, err := os.Open(s.Path(ci))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewRenderError(ErrCodeNotFound, "PDF no encontrado", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open PDF file", err)
	}
	return f, nil
}

// Exists reports whether a receipt has been stored for ci.
func (s *ReceiptStorage) Exists(ci int64) bool {
	info, err := os.Stat(s.Path(ci))
	return err == nil && !info.IsDir()
}

// URL returns the public retrieval URL of the receipt of ci.
func (s *ReceiptStorage) URL(ci int64) string {
	return strings.TrimSuffix(s.config.BaseURL, "/") + "/" + strconv.FormatInt(ci, 10) + "/"
}

// LogoPath returns the configured logo when the file exists, empty
// otherwise.
func (s *ReceiptStorage) LogoPath() string {
	if s.config.LogoPath == "" {
		return ""
	}
	if _, err := os.Stat(s.config.LogoPath); err != nil {
		s.logger.Debug("receipt logo not found", zap.String("path", s.config.LogoPath))
		return ""
	}
	return s.config.LogoPath
}

// CleanupOlderThan removes QR images left behind in the temp directory by
// a process that died mid-generation.
func (s *ReceiptStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	if s.config.QRTempDir == "" {
		return 0, nil
	}
	cutoff := time.Now().Add(-age)
	deleted := 0

	entries, err := os.ReadDir(s.config.QRTempDir)
	if err != nil {
		return 0, NewRenderError(ErrCodeStorageFailed, "failed to list QR directory", err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".png" {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.config.QRTempDir, entry.Name())); err == nil {
			deleted++
		}
	}

	if deleted > 0 {
		s.logger.Info("stale QR images removed", zap.Int("deleted", deleted), zap.Duration("age", age))
	}
	return deleted, nil
}
