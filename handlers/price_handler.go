package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
)

type PriceHandler struct{}

func NewPriceHandler() *PriceHandler { return &PriceHandler{} }

type pricePayload struct {
	ClassID uint    `json:"classId"`
	Amount  float64 `json:"amount"`
}

// GET /prices
func (h *PriceHandler) List(c echo.Context) error {
	var items []models.Price
	if err := database.DB.
		Preload("Class").
		Where("school_id = ?", middlewares.SchoolID(c)).
		Order("class_id ASC").
		Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": items})
}

// POST /prices
func (h *PriceHandler) Create(c echo.Context) error {
	var p pricePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if p.ClassID == 0 || p.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	var class models.ClassModel
	if err := database.DB.First(&class, "id = ? AND school_id = ?", p.ClassID, middlewares.SchoolID(c)).Error; err != nil {
		return domainError(c, &models.NotFoundError{Resource: "class", ID: p.ClassID})
	}
	item := models.Price{
		SchoolID: middlewares.SchoolID(c),
		ClassID:  p.ClassID,
		Amount:   p.Amount,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		if conflict := models.IsUniqueViolation(err); conflict != nil {
			return domainError(c, conflict)
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// PUT /prices/:id
func (h *PriceHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	var existing models.Price
	if err := database.DB.First(&existing, "id = ? AND school_id = ?", id, middlewares.SchoolID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p pricePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	if p.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}
	existing.Amount = p.Amount
	if err := database.DB.Save(&existing).Error; err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /prices/:id
func (h *PriceHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	res := database.DB.Where("school_id = ?", middlewares.SchoolID(c)).Delete(&models.Price{}, id)
	if res.Error != nil {
		return domainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
