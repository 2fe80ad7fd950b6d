package middlewares

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/models"
)

// RequireSchool resolves the tenant for the request: the X-School-ID header
// must name a school the authenticated user is a member of. The school id
// and the membership role end up in the context; handlers scope every query
// by the school id.
func RequireSchool() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-School-ID")
			if raw == "" {
				return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_SCHOOL_HEADER"})
			}
			schoolID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || schoolID == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_SCHOOL_HEADER"})
			}

			userID, _ := c.Get("user_id").(uint)
			var membership models.SchoolMembership
			err = database.DB.
				Where("user_id = ? AND school_id = ?", userID, schoolID).
				First(&membership).Error
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "NOT_A_MEMBER"})
			}

			c.Set("school_id", uint(schoolID))
			c.Set("school_role", membership.Role)
			return next(c)
		}
	}
}

// SchoolID returns the tenant id resolved by RequireSchool.
func SchoolID(c echo.Context) uint {
	id, _ := c.Get("school_id").(uint)
	return id
}
