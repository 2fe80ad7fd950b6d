package attendance

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/models"
)

// GormStore is the production Store, bound to one school and one *gorm.DB.
// Handlers pass a transaction so every reconciliation applies all-or-nothing.
type GormStore struct {
	db       *gorm.DB
	schoolID uint
}

func NewGormStore(db *gorm.DB, schoolID uint) *GormStore {
	return &GormStore{db: db, schoolID: schoolID}
}

func (s *GormStore) CheckedIn(studentID uint, date string) (map[uint]uint, error) {
	var rows []models.Attendance
	err := s.db.
		Where("school_id = ? AND attendance_date = ?", s.schoolID, date).
		Where("student_id = ? OR (student_id IS NULL AND fallback_student_id = ?)", studentID, studentID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]uint, len(rows))
	for i := range rows {
		out[rows[i].EffectiveOccurrenceID()] = rows[i].ID
	}
	return out, nil
}

func (s *GormStore) CreateCheckIn(studentID, occurrenceID uint, date string) error {
	var student models.Student
	if err := s.db.First(&student, "id = ? AND school_id = ?", studentID, s.schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "student", ID: studentID}
		}
		return err
	}
	var occ models.ClassOccurrence
	if err := s.db.Preload("Class").First(&occ, "id = ? AND school_id = ?", occurrenceID, s.schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "class occurrence", ID: occurrenceID}
		}
		return err
	}

	rec := models.Attendance{
		SchoolID:            s.schoolID,
		StudentID:           &student.ID,
		FallbackStudentID:   student.ID,
		FallbackStudentName: student.FullName(),
		OccurrenceID:        &occ.ID,
		FallbackClassID:     occ.EffectiveClassID(),
		FallbackClassName:   occ.ClassName(),
		AttendanceDate:      date,
		IsShowedUp:          true,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return conflict
		}
		return err
	}
	return nil
}

func (s *GormStore) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.
		Where("school_id = ? AND id IN ?", s.schoolID, ids).
		Delete(&models.Attendance{}).Error
}

func (s *GormStore) ForDate(date string) ([]Row, error) {
	var recs []models.Attendance
	err := s.db.
		Where("school_id = ? AND attendance_date = ?", s.schoolID, date).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(recs))
	for i := range recs {
		rows = append(rows, Row{
			ID:           recs[i].ID,
			StudentID:    recs[i].EffectiveStudentID(),
			OccurrenceID: recs[i].EffectiveOccurrenceID(),
			ShowedUp:     recs[i].IsShowedUp,
		})
	}
	return rows, nil
}

func (s *GormStore) ToggleShowedUp(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Model(&models.Attendance{}).
		Where("school_id = ? AND id IN ?", s.schoolID, ids).
		Update("is_showed_up", gorm.Expr("NOT is_showed_up")).Error
}
