package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/config"
	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
	"github.com/mbliznikova/check-in-backend/scheduling"
)

type OccurrenceHandler struct {
	cfg *config.Config
}

func NewOccurrenceHandler(cfg *config.Config) *OccurrenceHandler {
	return &OccurrenceHandler{cfg: cfg}
}

type occurrencePayload struct {
	ClassID         uint   `json:"classId"`
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	// Pointer so an explicit empty string clears the notes while an absent
	// field leaves them alone.
	Notes *string `json:"notes"`
}

// applyTo copies the set fields of a partial update onto the occurrence.
// Only the actual fields change; the planned ones keep what the weekly
// generator wrote.
func (p *occurrencePayload) applyTo(o *models.ClassOccurrence) error {
	if p.Date != "" {
		if !isDateYYYYMMDD(p.Date) {
			return models.NewValidationError("Invalid date format")
		}
		o.ActualDate = p.Date
	}
	if p.StartTime != "" {
		if !reHHMM.MatchString(p.StartTime) {
			return models.NewValidationError("Invalid time format")
		}
		o.ActualStartTime = p.StartTime
	}
	if p.DurationMinutes > 0 {
		o.ActualDurationMinutes = p.DurationMinutes
	}
	if p.Notes != nil {
		o.Notes = strings.TrimSpace(*p.Notes)
	}
	return nil
}

// GET /occurrences?date=YYYY-MM-DD
func (h *OccurrenceHandler) List(c echo.Context) error {
	tx := database.DB.
		Preload("Class").
		Where("school_id = ?", middlewares.SchoolID(c))
	if date := c.QueryParam("date"); date != "" {
		if !isDateYYYYMMDD(date) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
		}
		tx = tx.Where("actual_date = ?", date)
	}
	var items []models.ClassOccurrence
	if err := tx.Order("actual_date ASC, actual_start_time ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": items})
}

// POST /occurrences creates a one-off occurrence. Duplicate
// (class, date, time) within the school is a 409.
func (h *OccurrenceHandler) Create(c echo.Context) error {
	var p occurrencePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if p.ClassID == 0 || p.Date == "" || p.StartTime == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	if !isDateYYYYMMDD(p.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
	}
	if !reHHMM.MatchString(p.StartTime) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid time format"})
	}

	var class models.ClassModel
	if err := database.DB.First(&class, "id = ? AND school_id = ?", p.ClassID, middlewares.SchoolID(c)).Error; err != nil {
		return domainError(c, &models.NotFoundError{Resource: "class", ID: p.ClassID})
	}

	duration := p.DurationMinutes
	if duration <= 0 {
		duration = class.DurationMinutes
	}
	notes := ""
	if p.Notes != nil {
		notes = strings.TrimSpace(*p.Notes)
	}
	item := models.ClassOccurrence{
		SchoolID:               middlewares.SchoolID(c),
		ClassID:                &class.ID,
		FallbackClassName:      class.Name,
		PlannedDate:            p.Date,
		ActualDate:             p.Date,
		PlannedStartTime:       p.StartTime,
		ActualStartTime:        p.StartTime,
		PlannedDurationMinutes: duration,
		ActualDurationMinutes:  duration,
		Notes:                  notes,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /occurrences/:id
func (h *OccurrenceHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var existing models.ClassOccurrence
	if err := database.DB.First(&existing, "id = ? AND school_id = ?", id, middlewares.SchoolID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p occurrencePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if err := p.applyTo(&existing); err != nil {
		return domainError(c, err)
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, existing)
}

// POST /occurrences/:id/cancel
func (h *OccurrenceHandler) Cancel(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	res := database.DB.Model(&models.ClassOccurrence{}).
		Where("id = ? AND school_id = ?", id, middlewares.SchoolID(c)).
		Update("is_cancelled", true)
	if res.Error != nil {
		return domainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Occurrence cancelled"})
}

// DELETE /occurrences/:id. Attendance rows keep their snapshots.
func (h *OccurrenceHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	schoolID := middlewares.SchoolID(c)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Attendance{}).
			Where("school_id = ? AND occurrence_id = ?", schoolID, id).
			Update("occurrence_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("school_id = ?", schoolID).Delete(&models.ClassOccurrence{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NotFoundError{Resource: "class occurrence", ID: id}
		}
		return nil
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /occurrences/available_ranges?date=&durationMinutes=
//
// For each free gap on the date that fits the duration, the inclusive range
// of valid start times. Cancelled occurrences do not block time.
func (h *OccurrenceHandler) AvailableRanges(c echo.Context) error {
	date := c.QueryParam("date")
	duration := atoiOr(c.QueryParam("durationMinutes"), 0)
	if date == "" || duration <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	if !isDateYYYYMMDD(date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid date format"})
	}

	var items []models.ClassOccurrence
	err := database.DB.
		Where("school_id = ? AND actual_date = ? AND NOT is_cancelled", middlewares.SchoolID(c), date).
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	busy := make([]scheduling.Interval, 0, len(items))
	for i := range items {
		start, err := scheduling.ParseTimeOfDay(items[i].ActualStartTime)
		if err != nil {
			return domainError(c, err)
		}
		length := items[i].ActualDurationMinutes
		if length <= 0 {
			length = items[i].PlannedDurationMinutes
		}
		busy = append(busy, scheduling.Busy(start, length))
	}

	dayStart, err := scheduling.ParseTimeOfDay(h.cfg.DayStart)
	if err != nil {
		return domainError(c, err)
	}
	dayEnd, err := scheduling.ParseTimeOfDay(h.cfg.DayEnd)
	if err != nil {
		return domainError(c, err)
	}

	ranges := scheduling.StartRanges(busy, duration, dayStart, dayEnd)
	return c.JSON(http.StatusOK, map[string]any{"response": scheduling.FormatRanges(ranges)})
}
