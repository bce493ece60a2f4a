package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// UploadService stores documents ahead of the submission.
type UploadService struct {
	uploads   registration.UploadedFileRepository
	documents storage.DocumentStorage
	maxSize   int64
	logger    *zap.Logger
}

// NewUploadService creates a new UploadService. maxSize <= 0 disables the
// size check.
func NewUploadService(uploads registration.UploadedFileRepository, documents storage.DocumentStorage, maxSize int64, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{uploads: uploads, documents: documents, maxSize: maxSize, logger: logger}
}

// MaxSize returns the configured upload limit in bytes.
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// Upload stores file and records it so the form can reference it by ID.
func (s *UploadService) Upload(ctx context.Context, file DocumentUpload) (*UploadResult, error) {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", fmt.Sprintf(
			"El archivo (%s) excede el tamaño máximo permitido de %s",
			humanize.IBytes(uint64(file.Size)), humanize.IBytes(uint64(s.maxSize))))
	}

	key := storage.NewDocumentKey(file.Filename, time.Now())
	record, err := registration.NewUploadedFile(file.Filename, key, file.ContentType, file.Size)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Put(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}
	if err := s.uploads.Create(ctx, record); err != nil {
		if delErr := s.documents.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	url, err := s.documents.URL(ctx, key)
	if err != nil {
		return nil, err
	}
	s.logger.Info("document uploaded",
		zap.String("id", record.ID.String()),
		zap.String("name", record.Name),
		zap.String("size", humanize.IBytes(uint64(record.Size))))
	return &UploadResult{ID: record.ID, URL: url, Name: record.Name}, nil
}
