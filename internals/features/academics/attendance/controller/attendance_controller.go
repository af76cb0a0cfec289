package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"acadattend_backend/internals/features/academics/attendance/dto"
	"acadattend_backend/internals/features/academics/attendance/service"
	bindingservice "acadattend_backend/internals/features/academics/classes/service"
	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/faults"
	rosterservice "acadattend_backend/internals/features/academics/students/service"
	helper "acadattend_backend/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	ledger    *service.LedgerService
	resolver  *rosterservice.RosterResolver
	validator *bindingservice.BindingValidator
	validate  *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		ledger:    service.NewLedgerService(db),
		resolver:  rosterservice.NewRosterResolver(db),
		validator: bindingservice.NewBindingValidator(db),
		validate:  validator.New(),
	}
}

// POST /api/a/attendance
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	facultyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cc, roster, err := ctrl.resolveAndAuthorize(c, facultyID, req.Year, req.Semester, req.Section, req.Batch, req.Department)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	entry, err := ctrl.ledger.Mark(c.UserContext(), service.MarkInput{
		FacultyID:    facultyID,
		CompositeKey: cc.CompositeKey(),
		Date:         req.Date,
		AbsentRolls:  req.AbsentRollNumbers,
		Roster:       roster,
		Draft:        req.Draft,
	})
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attendance recorded", dto.NewLedgerEntryResponse(entry))
}

// PUT /api/a/attendance
func (ctrl *AttendanceController) EditAttendance(c *fiber.Ctx) error {
	facultyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EditAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cc, roster, err := ctrl.resolveAndAuthorize(c, facultyID, req.Year, req.Semester, req.Section, req.Batch, req.Department)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	entry, err := ctrl.ledger.Edit(c.UserContext(), service.EditInput{
		FacultyID:    facultyID,
		CompositeKey: cc.CompositeKey(),
		Date:         req.Date,
		AbsentRolls:  req.AbsentRollNumbers,
		Roster:       roster,
		Draft:        req.Draft,
	})
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.Success(c, "Attendance updated", dto.NewLedgerEntryResponse(entry))
}

// GET /api/a/attendance/report
func (ctrl *AttendanceController) GetReport(c *fiber.Ctx) error {
	var req dto.ReportQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := ctrl.ledger.Report(c.UserContext(), req.CompositeKey, req.FromDate, req.ToDate)
	if err != nil {
		return helper.Error(c, faults.HTTPStatus(err), err.Error())
	}

	return helper.Success(c, "Report generated", report)
}

// resolveAndAuthorize normalizes the raw class identity, resolves the
// authoritative roster with corrections deferred, and gates the
// mutation behind the binding validator. Corrective roster writes run
// only after the validator clears the caller; a denied caller leaves
// the roster exactly as found. Errors come back untranslated; the
// caller maps them to HTTP via the taxonomy.
func (ctrl *AttendanceController) resolveAndAuthorize(c *fiber.Ctx, facultyID uuid.UUID, year, semester, section, batch, department string) (classctx.Context, []string, error) {
	cc, err := classctx.Normalize(classctx.Raw{
		Year:       year,
		Semester:   semester,
		Section:    section,
		Batch:      batch,
		Department: department,
	})
	if err != nil {
		return classctx.Context{}, nil, err
	}

	res, err := ctrl.resolver.Resolve(c.UserContext(), facultyID, cc, false)
	if err != nil {
		return classctx.Context{}, nil, err
	}

	meta := bindingservice.CallerMeta{
		Role:       helper.GetRoleFromToken(c),
		Department: helper.GetDepartmentFromToken(c),
	}
	if err := ctrl.validator.RequireAuthorized(c.UserContext(), facultyID, cc.CompositeKey(), meta); err != nil {
		return classctx.Context{}, nil, err
	}

	if err := ctrl.resolver.ApplyCorrections(c.UserContext(), res, facultyID, cc); err != nil {
		return classctx.Context{}, nil, err
	}

	return cc, res.RollNumbers(), nil
}
