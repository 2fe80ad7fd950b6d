// Package scheduling computes bookable start times for a day from the busy
// intervals already taken by weekly schedule slots or class occurrences.
// Everything here is pure interval arithmetic over caller-supplied data.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mbliznikova/check-in-backend/models"
)

// TimeOfDay is minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, models.NewValidationError("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, models.NewValidationError("invalid time %q, expected HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, models.NewValidationError("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}
