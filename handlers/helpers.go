package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbliznikova/check-in-backend/models"
)

var reHHMM = regexp.MustCompile(`^\d{2}:\d{2}$`)

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func isDateYYYYMMDD(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func mustID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// domainError maps the typed errors raised by the core packages and stores
// onto HTTP statuses. Anything untyped is a 500.
func domainError(c echo.Context, err error) error {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": validation.Message})
	}
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": notFound.Error()})
	}
	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, map[string]any{"error": conflict.Message})
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
}
