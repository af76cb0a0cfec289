package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "acadattend_backend/internals/databases"
	attendanceroute "acadattend_backend/internals/features/academics/attendance/route"
	auditroute "acadattend_backend/internals/features/academics/audit/route"
	classesroute "acadattend_backend/internals/features/academics/classes/route"
	studentsroute "acadattend_backend/internals/features/academics/students/route"
	authmw "acadattend_backend/internals/middlewares/auth"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		status := fiber.StatusOK
		if err := database.Ping(); err != nil {
			dbStatus = "unreachable"
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":         "ok",
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})

	api := app.Group("/api/a", authmw.AuthMiddleware())

	studentsroute.RosterRoutes(api, db)
	attendanceroute.AttendanceRoutes(api, db)
	classesroute.ClassGroupRoutes(api, db)
	auditroute.AuditRoutes(api, db)
}
