package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (p *studentPayload) normalize() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
}

// GET /students
func (h *StudentHandler) List(c echo.Context) error {
	var items []models.Student
	tx := database.DB.Where("school_id = ?", middlewares.SchoolID(c))
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ?", like, like)
	}
	if err := tx.Order("last_name ASC, first_name ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": items})
}

// POST /students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	p.normalize()
	if p.FirstName == "" || p.LastName == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	s := models.Student{
		SchoolID:  middlewares.SchoolID(c),
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var existing models.Student
	if err := database.DB.First(&existing, "id = ? AND school_id = ?", id, middlewares.SchoolID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	p.normalize()
	if p.FirstName == "" || p.LastName == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	if err := database.DB.Save(&existing).Error; err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /students/:id
//
// Attendance and payment facts survive: their student reference goes NULL
// and the snapshot fields keep the history readable.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	schoolID := middlewares.SchoolID(c)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Attendance{}).
			Where("school_id = ? AND student_id = ?", schoolID, id).
			Update("student_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{}).
			Where("school_id = ? AND student_id = ?", schoolID, id).
			Update("student_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("school_id = ?", schoolID).Delete(&models.Student{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NotFoundError{Resource: "student", ID: id}
		}
		return nil
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
