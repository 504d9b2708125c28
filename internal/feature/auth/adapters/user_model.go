// Package adapters provides the credential store implementations for the auth feature.
package adapters

import (
	"strconv"
	"time"

	"job_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM mapping of the users table.
type UserModel struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName pins the table name regardless of naming strategy.
func (UserModel) TableName() string { return "users" }

func (m *UserModel) toEntity() *entity.User {
	return &entity.User{
		ID:           strconv.FormatUint(m.ID, 10),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func fromEntity(u *entity.User) *UserModel {
	return &UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}
