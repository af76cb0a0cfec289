package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtrl "acadattend_backend/internals/features/academics/classes/controller"
)

func ClassGroupRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classCtrl.NewClassGroupController(db)

	group := r.Group("/classes")
	group.Post("/", ctrl.CreateClassGroup)
	group.Post("/supersede", ctrl.Supersede)
	group.Get("/authorize", ctrl.Authorize)
}
