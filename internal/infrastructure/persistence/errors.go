package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/shared"
)

// notFound maps gorm's missing-record error to shared.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// isUniqueViolation recognises unique constraint failures from postgres and
// sqlite, translated or not.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
