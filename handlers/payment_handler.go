package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/middlewares"
	"github.com/mbliznikova/check-in-backend/models"
)

type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type paymentPayload struct {
	StudentID   *uint   `json:"studentId"`
	ClassID     *uint   `json:"classId"`
	StudentName string  `json:"studentName"`
	ClassName   string  `json:"className"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"paymentDate"` // RFC 3339, optional
}

// firstOfMonth truncates a timestamp to the first instant of its month, so
// payments group naturally by paid month.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// POST /payments
func (h *PaymentHandler) Create(c echo.Context) error {
	var req struct {
		PaymentData *paymentPayload `json:"paymentData"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
	}
	p := req.PaymentData
	if p == nil || p.StudentID == nil || *p.StudentID == 0 || p.ClassID == nil || *p.ClassID == 0 || p.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
	}

	paidAt := time.Now()
	if p.PaymentDate != "" {
		parsed, err := time.Parse(time.RFC3339, p.PaymentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid datetime format"})
		}
		paidAt = parsed
	}

	schoolID := middlewares.SchoolID(c)
	var student models.Student
	if err := database.DB.First(&student, "id = ? AND school_id = ?", *p.StudentID, schoolID).Error; err != nil {
		return domainError(c, &models.NotFoundError{Resource: "student", ID: *p.StudentID})
	}
	var class models.ClassModel
	if err := database.DB.First(&class, "id = ? AND school_id = ?", *p.ClassID, schoolID).Error; err != nil {
		return domainError(c, &models.NotFoundError{Resource: "class", ID: *p.ClassID})
	}

	// The payload may snapshot names, but the live rows win when present.
	studentName := strings.TrimSpace(p.StudentName)
	if studentName == "" {
		studentName = student.FullName()
	}
	className := strings.TrimSpace(p.ClassName)
	if className == "" {
		className = class.Name
	}

	rec := models.Payment{
		SchoolID:            schoolID,
		StudentID:           &student.ID,
		FallbackStudentID:   student.ID,
		FallbackStudentName: studentName,
		ClassID:             &class.ID,
		FallbackClassName:   className,
		Amount:              p.Amount,
		PaymentDate:         firstOfMonth(paidAt),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Payment was successfully created",
		"paymentId":   rec.ID,
		"studentId":   student.ID,
		"classId":     class.ID,
		"studentName": rec.StudentName(),
		"className":   rec.ClassName(),
		"amount":      rec.Amount,
		"paymentDate": rec.PaymentDate.Format(time.RFC3339),
	})
}

// GET /payments?month=&year=
func (h *PaymentHandler) List(c echo.Context) error {
	tx := database.DB.
		Preload("Student").
		Preload("Class").
		Where("school_id = ?", middlewares.SchoolID(c))

	if c.QueryParam("month") != "" || c.QueryParam("year") != "" {
		from, to, err := monthWindow(c.QueryParam("month"), c.QueryParam("year"))
		if err != nil {
			return domainError(c, err)
		}
		tx = tx.Where("payment_date >= ? AND payment_date < ?", from, to)
	}

	var rows []models.Payment
	if err := tx.Order("payment_date DESC, id DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]map[string]any, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, map[string]any{
			"paymentId":   r.ID,
			"studentId":   r.FallbackStudentID,
			"studentName": r.StudentName(),
			"className":   r.ClassName(),
			"amount":      r.Amount,
			"paymentDate": r.PaymentDate.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"response": out})
}

// GET /payment_summary?month=&year= returns per student per class totals for the
// month.
func (h *PaymentHandler) Summary(c echo.Context) error {
	from, to, err := monthWindow(c.QueryParam("month"), c.QueryParam("year"))
	if err != nil {
		return domainError(c, err)
	}

	var rows []models.Payment
	dbErr := database.DB.
		Preload("Student").
		Preload("Class").
		Where("school_id = ? AND payment_date >= ? AND payment_date < ?", middlewares.SchoolID(c), from, to).
		Find(&rows).Error
	if dbErr != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	type key struct {
		studentID uint
		className string
	}
	totals := map[key]float64{}
	names := map[uint]string{}
	for i := range rows {
		k := key{studentID: rows[i].FallbackStudentID, className: rows[i].ClassName()}
		totals[k] += rows[i].Amount
		names[k.studentID] = rows[i].StudentName()
	}

	out := make([]map[string]any, 0, len(totals))
	for k, amount := range totals {
		out = append(out, map[string]any{
			"studentId":   k.studentID,
			"studentName": names[k.studentID],
			"className":   k.className,
			"total":       amount,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"response": out,
		"month":    int(from.Month()),
		"year":     from.Year(),
	})
}

// monthWindow validates month/year query params and returns the half-open
// [first of month, first of next month) UTC window.
func monthWindow(monthStr, yearStr string) (time.Time, time.Time, error) {
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, time.Time{}, models.NewValidationError("Invalid month")
	}
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, models.NewValidationError("Invalid month")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, time.Time{}, models.NewValidationError("Invalid year")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
