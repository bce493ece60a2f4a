package models

import (
	"time"

	"github.com/sereci/sirepre/internal/domain/identity"
)

// StaffUserModel is the persistence model for staff users.
type StaffUserModel struct {
	BaseModel
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FullName     string     `gorm:"type:varchar(150)"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Active       bool       `gorm:"not null"`
	LastLoginAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (StaffUserModel) TableName() string {
	return "staff_users"
}

// ToDomain converts the model to a staff user.
func (m *StaffUserModel) ToDomain() *identity.StaffUser {
	return &identity.StaffUser{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         identity.Role(m.Role),
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
	}
}

// StaffUserModelFromDomain creates a model from a staff user.
func StaffUserModelFromDomain(u *identity.StaffUser) *StaffUserModel {
	m := &StaffUserModel{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         string(u.Role),
		Active:       u.Active,
		LastLoginAt:  u.LastLoginAt,
	}
	m.BaseModel = baseFrom(u.BaseEntity)
	return m
}
