package models

import "time"

type Student struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SchoolID  uint   `json:"school_id" gorm:"index;not null"`
	FirstName string `json:"first_name" gorm:"size:50;not null"`
	LastName  string `json:"last_name" gorm:"size:50;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
