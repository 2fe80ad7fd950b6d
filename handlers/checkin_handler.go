package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/attendance"
	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
)

type CheckInHandler struct{}

func NewCheckInHandler() *CheckInHandler { return &CheckInHandler{} }

type checkInPayload struct {
	StudentID       uint   `json:"studentId"`
	OccurrencesList []uint `json:"occurrencesList"`
	TodayDate       string `json:"todayDate"`
}

// POST /check_in
//
// The occurrence list is the authoritative state for the student's day: the
// reconciler diffs it against what is stored and reports what it actually
// added and removed. An empty list checks the student out of everything.
func (h *CheckInHandler) CheckIn(c echo.Context) error {
	var req struct {
		CheckInData *checkInPayload `json:"checkInData"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if req.CheckInData == nil || req.CheckInData.StudentID == 0 || req.CheckInData.TodayDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	if !isDateYYYYMMDD(req.CheckInData.TodayDate) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
	}

	schoolID := middlewares.SchoolID(c)
	var res attendance.CheckInResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		st := attendance.NewGormStore(tx, schoolID)
		var err error
		res, err = attendance.ReconcileCheckIn(st, req.CheckInData.StudentID, req.CheckInData.TodayDate, req.CheckInData.OccurrencesList)
		return err
	})
	if err != nil {
		return domainError(c, err)
	}

	checkedIn := res.Added
	if checkedIn == nil {
		checkedIn = []uint{}
	}
	checkedOut := res.Removed
	if checkedOut == nil {
		checkedOut = []uint{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":        "Check-in data was successfully updated",
		"studentId":      req.CheckInData.StudentID,
		"attendanceDate": req.CheckInData.TodayDate,
		"checkedIn":      checkedIn,
		"checkedOut":     checkedOut,
	})
}

// PUT /confirm
//
// The confirmation list is the corrected truth for the whole day across all
// students. Unconfirmed rows are deleted, show-up flags are reconciled, and
// pairs with no existing check-in are ignored. Missing date means today.
func (h *CheckInHandler) Confirm(c echo.Context) error {
	var req struct {
		ConfirmationList any    `json:"confirmationList"`
		Date             string `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if req.ConfirmationList == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}

	desired, err := attendance.ParseConfirmations(req.ConfirmationList)
	if err != nil {
		return domainError(c, err)
	}

	date := req.Date
	if date == "" {
		date = today()
	} else if !isDateYYYYMMDD(date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
	}

	schoolID := middlewares.SchoolID(c)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		st := attendance.NewGormStore(tx, schoolID)
		return attendance.ReconcileConfirmation(st, date, desired)
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Attendance confirmed successfully"})
}
