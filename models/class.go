package models

import "time"

// ClassModel is the catalog entry for a class ("Foil", "Longsword"), as
// opposed to its weekly template (Schedule) and its dated instances
// (ClassOccurrence).
type ClassModel struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	SchoolID        uint   `json:"school_id" gorm:"uniqueIndex:idx_class_school_name;not null"`
	Name            string `json:"name" gorm:"uniqueIndex:idx_class_school_name;size:50;not null"`
	DurationMinutes int    `json:"duration_minutes" gorm:"not null;default:60"`
	IsRecurring     bool   `json:"is_recurring" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Day is the weekday lookup table. Seeded with the seven weekday names at
// migrate time.
type Day struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:20;uniqueIndex;not null"` // Monday..Sunday
}

// WeekdayNumber maps the day name to ISO weekday numbering (Monday=1).
// Returns 0 for an unknown name.
func (d *Day) WeekdayNumber() int {
	switch d.Name {
	case "Monday":
		return 1
	case "Tuesday":
		return 2
	case "Wednesday":
		return 3
	case "Thursday":
		return 4
	case "Friday":
		return 5
	case "Saturday":
		return 6
	case "Sunday":
		return 7
	}
	return 0
}
