package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mbliznikova/check-in-backend/models"
)

func decodeOccurrencePayload(t *testing.T, body string) *occurrencePayload {
	t.Helper()
	var p occurrencePayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return &p
}

func TestOccurrencePayloadApplyTo(t *testing.T) {
	base := func() models.ClassOccurrence {
		return models.ClassOccurrence{
			PlannedDate:            "2025-05-12",
			ActualDate:             "2025-05-12",
			PlannedStartTime:       "10:00",
			ActualStartTime:        "10:00",
			PlannedDurationMinutes: 60,
			ActualDurationMinutes:  60,
			Notes:                  "bring spare blades",
		}
	}

	t.Run("absent notes field leaves notes alone", func(t *testing.T) {
		o := base()
		if err := decodeOccurrencePayload(t, `{"date": "2025-05-13"}`).applyTo(&o); err != nil {
			t.Fatalf("applyTo() error = %v", err)
		}
		if o.Notes != "bring spare blades" {
			t.Errorf("Notes = %q, want unchanged", o.Notes)
		}
		if o.ActualDate != "2025-05-13" {
			t.Errorf("ActualDate = %q, want %q", o.ActualDate, "2025-05-13")
		}
	})

	t.Run("explicit empty notes clears them", func(t *testing.T) {
		o := base()
		if err := decodeOccurrencePayload(t, `{"notes": ""}`).applyTo(&o); err != nil {
			t.Fatalf("applyTo() error = %v", err)
		}
		if o.Notes != "" {
			t.Errorf("Notes = %q, want cleared", o.Notes)
		}
	})

	t.Run("planned fields never move", func(t *testing.T) {
		o := base()
		p := decodeOccurrencePayload(t, `{"date": "2025-05-14", "startTime": "11:30", "durationMinutes": 90}`)
		if err := p.applyTo(&o); err != nil {
			t.Fatalf("applyTo() error = %v", err)
		}
		if o.PlannedDate != "2025-05-12" || o.PlannedStartTime != "10:00" || o.PlannedDurationMinutes != 60 {
			t.Errorf("planned fields changed: %+v", o)
		}
		if o.ActualDate != "2025-05-14" || o.ActualStartTime != "11:30" || o.ActualDurationMinutes != 90 {
			t.Errorf("actual fields = %+v, want the update applied", o)
		}
	})

	t.Run("bad date is rejected before any field moves", func(t *testing.T) {
		o := base()
		err := decodeOccurrencePayload(t, `{"date": "13-05-2025"}`).applyTo(&o)
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
		if o.ActualDate != "2025-05-12" {
			t.Errorf("ActualDate = %q, want unchanged", o.ActualDate)
		}
	})

	t.Run("bad start time is rejected", func(t *testing.T) {
		o := base()
		err := decodeOccurrencePayload(t, `{"startTime": "9am"}`).applyTo(&o)
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	})
}
