package models

import "time"

// Schedule is a recurring weekly slot. No two classes may share a school's
// slot, hence the uniqueness over (school, day, start time).
type Schedule struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SchoolID  uint   `json:"school_id" gorm:"uniqueIndex:idx_schedule_slot;not null"`
	ClassID   uint   `json:"class_id" gorm:"index;not null"`
	DayID     uint   `json:"day_id" gorm:"uniqueIndex:idx_schedule_slot;not null"`
	StartTime string `json:"start_time" gorm:"uniqueIndex:idx_schedule_slot;size:5;not null"` // HH:MM

	Class *ClassModel `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Day   *Day        `json:"day,omitempty" gorm:"foreignKey:DayID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
