package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/models"
)

type SchoolHandler struct{}

func NewSchoolHandler() *SchoolHandler { return &SchoolHandler{} }

// GET /schools returns the schools the authenticated user belongs to.
func (h *SchoolHandler) ListMine(c echo.Context) error {
	userID, _ := c.Get("user_id").(uint)

	var memberships []models.SchoolMembership
	if err := database.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := []map[string]any{}
	for _, m := range memberships {
		var school models.School
		if err := database.DB.First(&school, m.SchoolID).Error; err != nil {
			continue
		}
		out = append(out, map[string]any{
			"id":       school.ID,
			"name":     school.Name,
			"timezone": school.Timezone,
			"role":     m.Role,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": out})
}

// POST /schools. The creator becomes the school's owner.
func (h *SchoolHandler) Create(c echo.Context) error {
	var p struct {
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
	}
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}

	userID, _ := c.Get("user_id").(uint)
	school := models.School{Name: p.Name, Timezone: p.Timezone}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&school).Error; err != nil {
			return err
		}
		return tx.Create(&models.SchoolMembership{
			UserID:   userID,
			SchoolID: school.ID,
			Role:     "owner",
		}).Error
	})
	if err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, school)
}

// POST /schools/:id/members lets an owner or admin add a member by email.
func (h *SchoolHandler) AddMember(c echo.Context) error {
	schoolID, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var p struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	email := strings.TrimSpace(strings.ToLower(p.Email))
	role := strings.TrimSpace(strings.ToLower(p.Role))
	if email == "" || role == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	switch role {
	case "kiosk", "teacher", "admin", "owner":
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid role"})
	}

	// The caller must themselves be an admin or owner of this school.
	callerID, _ := c.Get("user_id").(uint)
	var caller models.SchoolMembership
	if err := database.DB.
		Where("user_id = ? AND school_id = ? AND role IN ?", callerID, schoolID, []string{"admin", "owner"}).
		First(&caller).Error; err != nil {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return domainError(c, &models.NotFoundError{Resource: "user"})
	}

	membership := models.SchoolMembership{UserID: user.ID, SchoolID: schoolID, Role: role}
	if err := database.DB.Create(&membership).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, membership)
}
