package models

import "time"

// User is a local account synced from the external identity provider.
// ExternalID is the provider's subject claim; rows are created lazily the
// first time a verified token for that subject arrives.
type User struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ExternalID string `json:"external_id" gorm:"uniqueIndex;size:64"`
	Email      string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Role       string `json:"role" gorm:"size:20;not null;default:teacher"`
	Password   string `json:"-" gorm:""` // bcrypt hash, only for the local admin fallback

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
