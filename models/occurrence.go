package models

import "time"

// ClassOccurrence is one concrete dated instance of a class. The class and
// schedule references are nullable; the fallback name snapshot keeps the row
// meaningful after the class is deleted.
type ClassOccurrence struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	SchoolID          uint   `json:"school_id" gorm:"uniqueIndex:idx_occurrence_slot;not null"`
	ClassID           *uint  `json:"class_id" gorm:"index"`
	FallbackClassName string `json:"fallback_class_name" gorm:"uniqueIndex:idx_occurrence_slot;size:50;not null"`
	ScheduleID        *uint  `json:"schedule_id" gorm:"index"`

	PlannedDate            string `json:"planned_date" gorm:"size:10;not null"` // YYYY-MM-DD
	ActualDate             string `json:"actual_date" gorm:"uniqueIndex:idx_occurrence_slot;size:10;not null"`
	PlannedStartTime       string `json:"planned_start_time" gorm:"size:5;not null"` // HH:MM
	ActualStartTime        string `json:"actual_start_time" gorm:"uniqueIndex:idx_occurrence_slot;size:5;not null"`
	PlannedDurationMinutes int    `json:"planned_duration_minutes" gorm:"not null"`
	ActualDurationMinutes  int    `json:"actual_duration_minutes" gorm:"not null"`

	IsCancelled bool   `json:"is_cancelled" gorm:"not null;default:false"`
	Notes       string `json:"notes" gorm:"type:text"`

	Class *ClassModel `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassName prefers the live class reference and falls back to the snapshot.
// Never panics on a partially populated row: an unset reference with an empty
// snapshot yields "".
func (o *ClassOccurrence) ClassName() string {
	if o.Class != nil && o.Class.Name != "" {
		return o.Class.Name
	}
	return o.FallbackClassName
}

// EffectiveClassID prefers the live reference, falling back to the class id
// recorded on the occurrence's attendance rows when the class is gone.
func (o *ClassOccurrence) EffectiveClassID() uint {
	if o.ClassID != nil {
		return *o.ClassID
	}
	return 0
}
