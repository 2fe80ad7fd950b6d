package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/config"
	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
	"github.com/mbliznikova/check-in-backend/scheduling"
)

type ScheduleHandler struct {
	cfg *config.Config
}

func NewScheduleHandler(cfg *config.Config) *ScheduleHandler { return &ScheduleHandler{cfg: cfg} }

type schedulePayload struct {
	ClassID   uint   `json:"classId"`
	DayID     uint   `json:"dayId"`
	StartTime string `json:"startTime"` // HH:MM
}

// GET /schedules?dayId=
func (h *ScheduleHandler) List(c echo.Context) error {
	tx := database.DB.
		Preload("Class").
		Preload("Day").
		Where("school_id = ?", middlewares.SchoolID(c))
	if dayID := atoiOr(c.QueryParam("dayId"), 0); dayID > 0 {
		tx = tx.Where("day_id = ?", dayID)
	}
	var items []models.Schedule
	if err := tx.Order("day_id ASC, start_time ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": items})
}

// validatePayload returns a typed error; it never writes the response. The
// callers map the error through domainError exactly once.
func (h *ScheduleHandler) validatePayload(c echo.Context, p *schedulePayload) error {
	if p.ClassID == 0 || p.DayID == 0 || p.StartTime == "" {
		return models.NewValidationError("Missing required fields")
	}
	if !reHHMM.MatchString(p.StartTime) {
		return models.NewValidationError("Invalid time format")
	}
	var class models.ClassModel
	if err := database.DB.First(&class, "id = ? AND school_id = ?", p.ClassID, middlewares.SchoolID(c)).Error; err != nil {
		return &models.NotFoundError{Resource: "class", ID: p.ClassID}
	}
	var day models.Day
	if err := database.DB.First(&day, "id = ?", p.DayID).Error; err != nil {
		return &models.NotFoundError{Resource: "day", ID: p.DayID}
	}
	return nil
}

// POST /schedules. A weekly slot is unique per school, duplicates are 409.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var p schedulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if err := h.validatePayload(c, &p); err != nil {
		return domainError(c, err)
	}
	item := models.Schedule{
		SchoolID:  middlewares.SchoolID(c),
		ClassID:   p.ClassID,
		DayID:     p.DayID,
		StartTime: p.StartTime,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /schedules/:id
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var existing models.Schedule
	if err := database.DB.First(&existing, "id = ? AND school_id = ?", id, middlewares.SchoolID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p schedulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if err := h.validatePayload(c, &p); err != nil {
		return domainError(c, err)
	}
	existing.ClassID = p.ClassID
	existing.DayID = p.DayID
	existing.StartTime = p.StartTime
	if err := database.DB.Save(&existing).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /schedules/:id
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	res := database.DB.Where("school_id = ?", middlewares.SchoolID(c)).Delete(&models.Schedule{}, id)
	if res.Error != nil {
		return domainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /schedules/available_times?dayId=&durationMinutes=&stepMinutes=
//
// Start times at which a new weekly class of the given duration would fit
// between the day's existing slots, quantized to the step.
func (h *ScheduleHandler) AvailableTimes(c echo.Context) error {
	dayID := atoiOr(c.QueryParam("dayId"), 0)
	duration := atoiOr(c.QueryParam("durationMinutes"), 0)
	if dayID <= 0 || duration <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	step := atoiOr(c.QueryParam("stepMinutes"), h.cfg.SlotStepMinutes)
	if step <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid step"})
	}

	var day models.Day
	if err := database.DB.First(&day, "id = ?", dayID).Error; err != nil {
		return domainError(c, &models.NotFoundError{Resource: "day", ID: uint(dayID)})
	}

	var slots []models.Schedule
	err := database.DB.
		Preload("Class").
		Where("school_id = ? AND day_id = ?", middlewares.SchoolID(c), day.ID).
		Find(&slots).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	busy, err := h.busyFromSchedules(slots)
	if err != nil {
		return domainError(c, err)
	}
	dayStart, dayEnd, err := h.dayBounds()
	if err != nil {
		return domainError(c, err)
	}

	times := scheduling.StartTimes(busy, duration, step, dayStart, dayEnd)
	return c.JSON(http.StatusOK, map[string]any{"response": scheduling.FormatTimes(times)})
}

func (h *ScheduleHandler) busyFromSchedules(slots []models.Schedule) ([]scheduling.Interval, error) {
	busy := make([]scheduling.Interval, 0, len(slots))
	for i := range slots {
		start, err := scheduling.ParseTimeOfDay(slots[i].StartTime)
		if err != nil {
			return nil, err
		}
		duration := 60
		if slots[i].Class != nil && slots[i].Class.DurationMinutes > 0 {
			duration = slots[i].Class.DurationMinutes
		}
		busy = append(busy, scheduling.Busy(start, duration))
	}
	return busy, nil
}

func (h *ScheduleHandler) dayBounds() (scheduling.TimeOfDay, scheduling.TimeOfDay, error) {
	dayStart, err := scheduling.ParseTimeOfDay(h.cfg.DayStart)
	if err != nil {
		return 0, 0, err
	}
	dayEnd, err := scheduling.ParseTimeOfDay(h.cfg.DayEnd)
	if err != nil {
		return 0, 0, err
	}
	return dayStart, dayEnd, nil
}
