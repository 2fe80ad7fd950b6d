package models

import "time"

// Attendance is one student's presence fact for one class occurrence on one
// date. Student and occurrence references are nullable weak links; the
// fallback snapshot fields are written at check-in time so deleting the
// student or occurrence elsewhere does not destroy the historical fact.
type Attendance struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	SchoolID uint `json:"school_id" gorm:"uniqueIndex:idx_attendance_key;not null"`

	StudentID           *uint  `json:"student_id" gorm:"index"`
	FallbackStudentID   uint   `json:"fallback_student_id" gorm:"uniqueIndex:idx_attendance_key;not null"`
	FallbackStudentName string `json:"fallback_student_name" gorm:"size:120"`

	OccurrenceID      *uint  `json:"occurrence_id" gorm:"uniqueIndex:idx_attendance_key"`
	FallbackClassID   uint   `json:"fallback_class_id"`
	FallbackClassName string `json:"fallback_class_name" gorm:"size:50"`

	AttendanceDate string `json:"attendance_date" gorm:"index;size:10;not null"` // YYYY-MM-DD
	IsShowedUp     bool   `json:"is_showed_up" gorm:"not null;default:true"`

	Student    *Student         `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Occurrence *ClassOccurrence `json:"occurrence,omitempty" gorm:"foreignKey:OccurrenceID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveStudentID prefers the live student reference, falling back to the
// snapshot id when the student was deleted.
func (a *Attendance) EffectiveStudentID() uint {
	if a.StudentID != nil {
		return *a.StudentID
	}
	return a.FallbackStudentID
}

// EffectiveOccurrenceID prefers the live occurrence reference, falling back
// to the snapshot class id when the occurrence was deleted. Confirmation
// keys rows by this value.
func (a *Attendance) EffectiveOccurrenceID() uint {
	if a.OccurrenceID != nil {
		return *a.OccurrenceID
	}
	return a.FallbackClassID
}

// StudentName prefers the live student, falling back to the snapshot.
func (a *Attendance) StudentName() string {
	if a.Student != nil {
		return a.Student.FullName()
	}
	return a.FallbackStudentName
}

// ClassName resolves through the occurrence when it is still around,
// otherwise uses the snapshot taken at check-in.
func (a *Attendance) ClassName() string {
	if a.Occurrence != nil {
		if name := a.Occurrence.ClassName(); name != "" {
			return name
		}
	}
	return a.FallbackClassName
}
