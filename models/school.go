package models

import "time"

type School struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Timezone string `json:"timezone" gorm:"size:50;not null;default:UTC"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchoolMembership links a local user to a school with a role. Every
// school-scoped request must match one of these rows.
type SchoolMembership struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_membership_user_school;not null"`
	SchoolID uint   `json:"school_id" gorm:"uniqueIndex:idx_membership_user_school;not null"`
	Role     string `json:"role" gorm:"size:20;not null;default:teacher"` // kiosk|teacher|admin|owner

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
