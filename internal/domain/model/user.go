package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"type:varchar(255);not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	PasswordHash   string `gorm:"column:password_hash;not null"`
	Role           Role   `gorm:"type:varchar(20);not null;default:'USER'"`
	Phone          string `gorm:"type:varchar(50)"`
	DefaultAddress string `gorm:"type:text"`
	IsActive       bool   `gorm:"not null;default:true"`
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// プロフィールの公開ビュー
type UserProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DefaultAddress string `json:"default_address"`
}
