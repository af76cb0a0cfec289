package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "acadattend_backend/internals/features/academics/attendance/controller"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attCtrl.NewAttendanceController(db)

	group := r.Group("/attendance")
	group.Post("/", ctrl.MarkAttendance)
	group.Put("/", ctrl.EditAttendance)
	group.Get("/report", ctrl.GetReport)
}
