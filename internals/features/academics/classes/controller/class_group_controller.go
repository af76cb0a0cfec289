package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/classes/service"
	"acadattend_backend/internals/features/academics/faults"
	helper "acadattend_backend/internals/helpers"
)

type ClassGroupController struct {
	DB       *gorm.DB
	binding  *service.BindingValidator
	validate *validator.Validate
}

func NewClassGroupController(db *gorm.DB) *ClassGroupController {
	return &ClassGroupController{
		DB:       db,
		binding:  service.NewBindingValidator(db),
		validate: validator.New(),
	}
}

type createClassGroupRequest struct {
	Year       string `json:"year" validate:"required,max=20"`
	Semester   string `json:"semester" validate:"required,max=20"`
	Section    string `json:"section" validate:"required,max=3"`
	Batch      string `json:"batch" validate:"required,max=12"`
	Department string `json:"department" validate:"required,max=30"`
}

type supersedeRequest struct {
	CompositeKey string    `json:"composite_key" validate:"required"`
	NewFacultyID uuid.UUID `json:"new_faculty_id" validate:"required"`
}

// POST /api/a/classes
func (ctrl *ClassGroupController) CreateClassGroup(c *fiber.Ctx) error {
	creator, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req createClassGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cc, err := classctx.Normalize(classctx.Raw{
		Year:       req.Year,
		Semester:   req.Semester,
		Section:    req.Section,
		Batch:      req.Batch,
		Department: req.Department,
	})
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	group, err := ctrl.binding.EnsureClassGroup(c.UserContext(), cc, creator)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Class registered", group)
}

// POST /api/a/classes/supersede
func (ctrl *ClassGroupController) Supersede(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req supersedeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	meta := service.CallerMeta{
		Role:       helper.GetRoleFromToken(c),
		Department: helper.GetDepartmentFromToken(c),
	}
	group, err := ctrl.binding.Supersede(c.UserContext(), req.CompositeKey, req.NewFacultyID, actor, meta)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.Success(c, "Class ownership superseded", group)
}

// GET /api/a/classes/authorize
func (ctrl *ClassGroupController) Authorize(c *fiber.Ctx) error {
	facultyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	key := c.Query("composite_key")
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "composite_key is required")
	}

	meta := service.CallerMeta{
		Role:       helper.GetRoleFromToken(c),
		Department: helper.GetDepartmentFromToken(c),
	}
	decision, err := ctrl.binding.Authorize(c.UserContext(), facultyID, key, meta)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.Success(c, "Authorization evaluated", decision)
}
