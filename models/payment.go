package models

import "time"

// Price is the monthly price of a class.
type Price struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	SchoolID uint    `json:"school_id" gorm:"uniqueIndex:idx_price_school_class;not null"`
	ClassID  uint    `json:"class_id" gorm:"uniqueIndex:idx_price_school_class;not null"`
	Amount   float64 `json:"amount" gorm:"not null"`

	Class *ClassModel `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment records a monthly payment of a student for a class. References are
// weak, snapshots keep the fact after deletions, same scheme as Attendance.
type Payment struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	SchoolID uint `json:"school_id" gorm:"index;not null"`

	StudentID           *uint  `json:"student_id" gorm:"index"`
	FallbackStudentID   uint   `json:"fallback_student_id" gorm:"not null"`
	FallbackStudentName string `json:"fallback_student_name" gorm:"size:120"`

	ClassID           *uint  `json:"class_id" gorm:"index"`
	FallbackClassName string `json:"fallback_class_name" gorm:"size:50"`

	Amount float64 `json:"amount" gorm:"not null"`
	// PaymentDate is normalized to the first instant of the paid month so
	// summaries can group on it directly.
	PaymentDate time.Time `json:"payment_date" gorm:"index;not null"`

	Student *Student    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Class   *ClassModel `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentName prefers the live student reference over the snapshot.
func (p *Payment) StudentName() string {
	if p.Student != nil {
		return p.Student.FullName()
	}
	return p.FallbackStudentName
}

// ClassName prefers the live class reference over the snapshot.
func (p *Payment) ClassName() string {
	if p.Class != nil && p.Class.Name != "" {
		return p.Class.Name
	}
	return p.FallbackClassName
}
