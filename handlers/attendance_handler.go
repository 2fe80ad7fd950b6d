package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// GET /attendances?date=YYYY-MM-DD&studentId=
func (h *AttendanceHandler) List(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = today()
	}
	if !isDateYYYYMMDD(date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
	}

	tx := database.DB.
		Preload("Student").
		Preload("Occurrence").
		Preload("Occurrence.Class").
		Where("school_id = ? AND attendance_date = ?", middlewares.SchoolID(c), date)

	if sid := atoiOr(c.QueryParam("studentId"), 0); sid > 0 {
		tx = tx.Where("student_id = ? OR (student_id IS NULL AND fallback_student_id = ?)", sid, sid)
	}

	var rows []models.Attendance
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]map[string]any, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, map[string]any{
			"id":             r.ID,
			"studentId":      r.EffectiveStudentID(),
			"studentName":    r.StudentName(),
			"occurrenceId":   r.EffectiveOccurrenceID(),
			"className":      r.ClassName(),
			"attendanceDate": r.AttendanceDate,
			"isShowedUp":     r.IsShowedUp,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": out})
}

// GET /attended_students?occurrenceId=&date=YYYY-MM-DD
func (h *AttendanceHandler) AttendedStudents(c echo.Context) error {
	occurrenceID := atoiOr(c.QueryParam("occurrenceId"), 0)
	if occurrenceID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	date := c.QueryParam("date")
	if date == "" {
		date = today()
	}
	if !isDateYYYYMMDD(date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
	}

	var rows []models.Attendance
	err := database.DB.
		Preload("Student").
		Where("school_id = ? AND attendance_date = ? AND is_showed_up", middlewares.SchoolID(c), date).
		Where("occurrence_id = ? OR (occurrence_id IS NULL AND fallback_class_id = ?)", occurrenceID, occurrenceID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]map[string]any, 0, len(rows))
	for i := range rows {
		out = append(out, map[string]any{
			"studentId":   rows[i].EffectiveStudentID(),
			"studentName": rows[i].StudentName(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": out})
}
