package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
)

type ClassHandler struct{}

func NewClassHandler() *ClassHandler { return &ClassHandler{} }

type classPayload struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	IsRecurring     *bool  `json:"isRecurring"`
}

// GET /classes
func (h *ClassHandler) List(c echo.Context) error {
	var items []models.ClassModel
	if err := database.DB.
		Where("school_id = ?", middlewares.SchoolID(c)).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": items})
}

// GET /classes_list returns classes with a weekly slot on today's weekday.
func (h *ClassHandler) ListToday(c echo.Context) error {
	weekday := time.Now().Weekday().String()

	var day models.Day
	if err := database.DB.First(&day, "name = ?", weekday).Error; err != nil {
		return c.JSON(http.StatusOK, map[string]any{"response": []models.ClassModel{}})
	}

	var classIDs []uint
	if err := database.DB.Model(&models.Schedule{}).
		Where("school_id = ? AND day_id = ?", middlewares.SchoolID(c), day.ID).
		Distinct().
		Pluck("class_id", &classIDs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	items := []models.ClassModel{}
	if len(classIDs) > 0 {
		if err := database.DB.
			Where("school_id = ? AND id IN ?", middlewares.SchoolID(c), classIDs).
			Order("name ASC").
			Find(&items).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"response": items})
}

// POST /classes
func (h *ClassHandler) Create(c echo.Context) error {
	var p classPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	if p.DurationMinutes <= 0 {
		p.DurationMinutes = 60
	}
	item := models.ClassModel{
		SchoolID:        middlewares.SchoolID(c),
		Name:            p.Name,
		DurationMinutes: p.DurationMinutes,
		IsRecurring:     true,
	}
	if p.IsRecurring != nil {
		item.IsRecurring = *p.IsRecurring
	}
	if err := database.DB.Create(&item).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /classes/:id
func (h *ClassHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var existing models.ClassModel
	if err := database.DB.First(&existing, "id = ? AND school_id = ?", id, middlewares.SchoolID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p classPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		existing.Name = name
	}
	if p.DurationMinutes > 0 {
		existing.DurationMinutes = p.DurationMinutes
	}
	if p.IsRecurring != nil {
		existing.IsRecurring = *p.IsRecurring
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /classes/:id. Occurrences and attendance keep their snapshots.
func (h *ClassHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	schoolID := middlewares.SchoolID(c)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ClassOccurrence{}).
			Where("school_id = ? AND class_id = ?", schoolID, id).
			Update("class_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{}).
			Where("school_id = ? AND class_id = ?", schoolID, id).
			Update("class_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("school_id = ? AND class_id = ?", schoolID, id).
			Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("school_id = ? AND class_id = ?", schoolID, id).
			Delete(&models.Price{}).Error; err != nil {
			return err
		}
		res := tx.Where("school_id = ?", schoolID).Delete(&models.ClassModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NotFoundError{Resource: "class", ID: id}
		}
		return nil
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
