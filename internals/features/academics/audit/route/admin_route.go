package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditCtrl "acadattend_backend/internals/features/academics/audit/controller"
)

func AuditRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := auditCtrl.NewAuditController(db)

	group := r.Group("/audit")
	group.Get("/", ctrl.List)
}
