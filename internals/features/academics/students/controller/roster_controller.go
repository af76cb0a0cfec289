package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/faults"
	"acadattend_backend/internals/features/academics/students/dto"
	"acadattend_backend/internals/features/academics/students/service"
	helper "acadattend_backend/internals/helpers"
)

type RosterController struct {
	DB       *gorm.DB
	resolver *service.RosterResolver
	validate *validator.Validate
}

func NewRosterController(db *gorm.DB) *RosterController {
	return &RosterController{
		DB:       db,
		resolver: service.NewRosterResolver(db),
		validate: validator.New(),
	}
}

// GET /api/a/roster/resolve
func (ctrl *RosterController) ResolveRoster(c *fiber.Ctx) error {
	facultyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ResolveRosterRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cc, err := classctx.Normalize(req.ToRaw())
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	res, err := ctrl.resolver.Resolve(c.UserContext(), facultyID, cc, req.AuthorizeCorrections)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.Success(c, "Roster resolved", dto.NewRosterResponse(cc, res))
}
