package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// BaseModel is the id and timestamp columns every table has.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseFrom(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// ToDomain returns the columns as a domain BaseEntity.
func (m BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}
