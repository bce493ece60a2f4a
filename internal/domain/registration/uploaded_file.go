package registration

import (
	"path/filepath"
	"strings"

	"github.com/sereci/sirepre/internal/domain/shared"
)

// UploadedFile is a document uploaded ahead of the submission and later
// referenced by ID from the form.
type UploadedFile struct {
	shared.BaseEntity
	Name        string
	StorageKey  string
	ContentType string
	Size        int64
}

// allowedExtensions are the document types the form accepts.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// NewUploadedFile validates the file name and creates the record.
func NewUploadedFile(name, storageKey, contentType string, size int64) (*UploadedFile, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." {
		return nil, shared.NewDomainError("INVALID_FILE", "No se proporcionó ningún archivo")
	}
	if !IsAllowedDocument(name) {
		return nil, shared.NewDomainError("INVALID_FILE_TYPE", "Tipo de archivo no permitido: "+filepath.Ext(name))
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "El archivo está vacío")
	}
	return &UploadedFile{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		StorageKey:  storageKey,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// IsAllowedDocument reports whether name has an accepted extension.
func IsAllowedDocument(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}
