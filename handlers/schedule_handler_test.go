package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mbliznikova/check-in-backend/models"
)

func newScheduleContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// The invalid branches must reject before any storage access, so these run
// without a database.
func TestScheduleCreateRejectsInvalidPayload(t *testing.T) {
	h := NewScheduleHandler(nil)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty payload", body: `{}`, wantMsg: "Missing required fields"},
		{name: "missing start time", body: `{"classId": 1, "dayId": 2}`, wantMsg: "Missing required fields"},
		{name: "malformed start time", body: `{"classId": 1, "dayId": 2, "startTime": "9am"}`, wantMsg: "Invalid time format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newScheduleContext(t, tt.body)

			if err := h.Create(c); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad response body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %v, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

// validatePayload reports failure through its return value and leaves the
// response untouched; writing the 400 inside the helper would hand the caller
// a nil error and let the create fall through.
func TestScheduleValidatePayloadReturnsError(t *testing.T) {
	h := NewScheduleHandler(nil)
	c, rec := newScheduleContext(t, `{}`)

	err := h.validatePayload(c, &schedulePayload{})
	var validation *models.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if validation.Message != "Missing required fields" {
		t.Errorf("message = %q, want %q", validation.Message, "Missing required fields")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("response body written by validatePayload: %q", rec.Body.String())
	}

	err = h.validatePayload(c, &schedulePayload{ClassID: 1, DayID: 2, StartTime: "9am"})
	if !errors.As(err, &validation) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if validation.Message != "Invalid time format" {
		t.Errorf("message = %q, want %q", validation.Message, "Invalid time format")
	}
}
