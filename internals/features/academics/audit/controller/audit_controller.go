package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"acadattend_backend/internals/features/academics/audit/service"
	helper "acadattend_backend/internals/helpers"
)

type AuditController struct {
	DB      *gorm.DB
	service *service.Service
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db, service: service.New(db)}
}

// GET /api/a/audit?composite_key=...  or  ?actor_id=...
func (ctrl *AuditController) List(c *fiber.Ctx) error {
	page := helper.ParsePage(c)

	if key := c.Query("composite_key"); key != "" {
		entries, total, err := ctrl.service.ListByCompositeKey(c.UserContext(), key, page.PerPage, page.Offset())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return helper.Success(c, "Audit feed", fiber.Map{
			"total":   total,
			"entries": entries,
		})
	}

	if actor := c.Query("actor_id"); actor != "" {
		actorID, err := uuid.Parse(actor)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid actor_id")
		}
		entries, total, err := ctrl.service.ListByActor(c.UserContext(), actorID, page.PerPage, page.Offset())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return helper.Success(c, "Audit feed", fiber.Map{
			"total":   total,
			"entries": entries,
		})
	}

	return fiber.NewError(fiber.StatusBadRequest, "composite_key or actor_id is required")
}
