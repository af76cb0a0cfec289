package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rosterCtrl "acadattend_backend/internals/features/academics/students/controller"
)

func RosterRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := rosterCtrl.NewRosterController(db)

	group := r.Group("/roster")
	group.Get("/resolve", ctrl.ResolveRoster)
}
