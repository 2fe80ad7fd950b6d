package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/mbliznikova/check-in-backend/config"
	"github.com/mbliznikova/check-in-backend/handlers"
	"github.com/mbliznikova/check-in-backend/middlewares"
)

// Register wires all HTTP routes. Everything except login and health runs
// behind token verification plus school membership, with role gates
// mirroring who may do what: the check-in kiosk only checks students in,
// teachers confirm and manage day-to-day data, admins own money and setup.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg)
	school := handlers.NewSchoolHandler()
	std := handlers.NewStudentHandler()
	cls := handlers.NewClassHandler()
	sch := handlers.NewScheduleHandler(cfg)
	occ := handlers.NewOccurrenceHandler(cfg)
	chk := handlers.NewCheckInHandler()
	att := handlers.NewAttendanceHandler()
	price := handlers.NewPriceHandler()
	pay := handlers.NewPaymentHandler()

	e.GET("/healthz", handlers.Health)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret, cfg.JWTIssuer)

	// School management needs a user but no tenant yet.
	e.GET("/schools", school.ListMine, authMW)
	e.POST("/schools", school.Create, authMW)
	e.POST("/schools/:id/members", school.AddMember, authMW)

	scoped := e.Group("", authMW, middlewares.RequireSchool())

	kiosk := middlewares.RequireRole("kiosk", "teacher", "admin", "owner")
	teacher := middlewares.RequireRole("teacher", "admin", "owner")
	admin := middlewares.RequireRole("admin", "owner")

	// Attendance core.
	scoped.POST("/check_in", chk.CheckIn, kiosk)
	scoped.PUT("/confirm", chk.Confirm, teacher)
	scoped.GET("/attendances", att.List, teacher)
	scoped.GET("/attended_students", att.AttendedStudents, kiosk)

	// Students.
	scoped.GET("/students", std.List, kiosk)
	scoped.POST("/students", std.Create, teacher)
	scoped.PUT("/students/:id", std.Update, teacher)
	scoped.DELETE("/students/:id", std.Delete, admin)

	// Classes.
	scoped.GET("/classes", cls.List, kiosk)
	scoped.GET("/classes_list", cls.ListToday, kiosk)
	scoped.POST("/classes", cls.Create, teacher)
	scoped.PUT("/classes/:id", cls.Update, teacher)
	scoped.DELETE("/classes/:id", cls.Delete, admin)

	// Weekly schedule templates and slot availability.
	scoped.GET("/schedules", sch.List, teacher)
	scoped.GET("/schedules/available_times", sch.AvailableTimes, teacher)
	scoped.POST("/schedules", sch.Create, teacher)
	scoped.PUT("/schedules/:id", sch.Update, teacher)
	scoped.DELETE("/schedules/:id", sch.Delete, teacher)

	// Concrete occurrences and range availability.
	scoped.GET("/occurrences", occ.List, kiosk)
	scoped.GET("/occurrences/available_ranges", occ.AvailableRanges, teacher)
	scoped.POST("/occurrences", occ.Create, teacher)
	scoped.PUT("/occurrences/:id", occ.Update, teacher)
	scoped.POST("/occurrences/:id/cancel", occ.Cancel, teacher)
	scoped.DELETE("/occurrences/:id", occ.Delete, admin)

	// Money.
	scoped.GET("/prices", price.List, teacher)
	scoped.POST("/prices", price.Create, admin)
	scoped.PUT("/prices/:id", price.Update, admin)
	scoped.DELETE("/prices/:id", price.Delete, admin)

	scoped.POST("/payments", pay.Create, teacher)
	scoped.GET("/payments", pay.List, teacher)
	scoped.GET("/payment_summary", pay.Summary, admin)
}
