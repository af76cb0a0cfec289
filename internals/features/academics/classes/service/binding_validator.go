package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"acadattend_backend/internals/constants"
	auditmodel "acadattend_backend/internals/features/academics/audit/model"
	auditservice "acadattend_backend/internals/features/academics/audit/service"
	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/classes/model"
	"acadattend_backend/internals/features/academics/faults"
	studentmodel "acadattend_backend/internals/features/academics/students/model"
)

// CallerMeta is the opaque identity the auth collaborator supplies.
type CallerMeta struct {
	Role       string
	Department string
}

type Decision struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason"`
}

// BindingValidator decides whether a faculty may operate on a class.
// It is consulted before every mutating roster or ledger operation and
// never mutates state itself.
type BindingValidator struct {
	DB    *gorm.DB
	audit *auditservice.Service
}

func NewBindingValidator(db *gorm.DB) *BindingValidator {
	return &BindingValidator{DB: db, audit: auditservice.New(db)}
}

// Authorize grants when the faculty created the class group, currently
// owns it, carries at least one matching active enrollment, or holds an
// administrative role in the same department. A department mismatch
// denies regardless of everything else.
func (v *BindingValidator) Authorize(ctx context.Context, facultyID uuid.UUID, compositeKey string, meta CallerMeta) (Decision, error) {
	group, err := v.findGroup(ctx, compositeKey)
	if err != nil {
		return Decision{}, err
	}

	var hasEnrollment bool
	var enrollmentDept string
	{
		var enr studentmodel.SemesterEnrollmentModel
		err := v.DB.WithContext(ctx).
			Where("enrollment_composite_key = ?", compositeKey).
			Where("enrollment_faculty_id = ?", facultyID).
			Where("enrollment_status = ?", studentmodel.EnrollmentStatusActive).
			Limit(1).Take(&enr).Error
		switch {
		case err == nil:
			hasEnrollment = true
			enrollmentDept = enr.EnrollmentDepartment
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no binding via enrollments
		default:
			return Decision{}, err
		}
	}

	return decide(group, facultyID, meta, hasEnrollment, enrollmentDept), nil
}

func (v *BindingValidator) findGroup(ctx context.Context, compositeKey string) (*model.ClassGroupModel, error) {
	var group model.ClassGroupModel
	err := v.DB.WithContext(ctx).
		Where("class_group_composite_key = ?", compositeKey).
		Take(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// decide is the pure authorization rule over already-loaded state.
func decide(group *model.ClassGroupModel, facultyID uuid.UUID, meta CallerMeta, hasEnrollment bool, enrollmentDept string) Decision {
	// Department mismatch is an automatic denial, before any grant path.
	classDept := enrollmentDept
	if group != nil {
		classDept = group.ClassGroupDepartment
	}
	if classDept != "" && meta.Department != classDept {
		return Decision{Authorized: false, Reason: "department mismatch"}
	}

	if group != nil {
		if group.ClassGroupCreatedBy == facultyID {
			return Decision{Authorized: true, Reason: "class creator"}
		}
		if group.ClassGroupFacultyID != nil && *group.ClassGroupFacultyID == facultyID {
			return Decision{Authorized: true, Reason: "current class owner"}
		}
	}

	if hasEnrollment {
		return Decision{Authorized: true, Reason: "faculty bound via enrollment"}
	}

	if constants.IsAdministrative(meta.Role) {
		return Decision{Authorized: true, Reason: "administrative role in department"}
	}

	return Decision{Authorized: false, Reason: "no active binding for faculty"}
}

// EnsureClassGroup registers a class offering idempotently: a concurrent
// duplicate insert loses to the unique index and falls back to the
// existing row.
func (v *BindingValidator) EnsureClassGroup(ctx context.Context, cc classctx.Context, creator uuid.UUID) (*model.ClassGroupModel, error) {
	key := cc.CompositeKey()
	group := model.ClassGroupModel{
		ClassGroupCompositeKey:  key,
		ClassGroupBatchYear:     cc.BatchYear,
		ClassGroupYearLabel:     cc.YearLabel,
		ClassGroupSemesterLabel: cc.SemesterLabel,
		ClassGroupSection:       cc.Section,
		ClassGroupDepartment:    cc.Department,
		ClassGroupFacultyID:     &creator,
		ClassGroupCreatedBy:     creator,
	}

	err := v.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&group)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already registered; return the existing offering.
			return tx.Where("class_group_composite_key = ?", key).Take(&group).Error
		}
		entry, err := auditservice.Entry(
			auditmodel.OpClassGroupCreated, key, nil, creator, nil, nil, group,
		)
		if err != nil {
			return err
		}
		return v.audit.Append(tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Supersede retires the current owner of a class group and installs a
// new one. This is the only reassignment path; a plain second
// assignment is rejected so an existing binding is never silently
// overwritten.
func (v *BindingValidator) Supersede(ctx context.Context, compositeKey string, newFacultyID, actor uuid.UUID, meta CallerMeta) (*model.ClassGroupModel, error) {
	var group model.ClassGroupModel

	err := v.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("class_group_composite_key = ?", compositeKey).
			Take(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return faults.NotFoundf("class group %q", compositeKey)
			}
			return err
		}

		if meta.Department != group.ClassGroupDepartment {
			return faults.Unauthorizedf("department mismatch for %q", compositeKey)
		}
		if !constants.IsAdministrative(meta.Role) && group.ClassGroupCreatedBy != actor {
			return faults.Unauthorizedf("only the creator or an administrative role may supersede")
		}

		before := map[string]interface{}{"faculty_id": group.ClassGroupFacultyID}
		after := map[string]interface{}{"faculty_id": newFacultyID}

		if err := tx.Model(&model.ClassGroupModel{}).
			Where("class_group_id = ?", group.ClassGroupID).
			Update("class_group_faculty_id", newFacultyID).Error; err != nil {
			return err
		}
		group.ClassGroupFacultyID = &newFacultyID

		entry, err := auditservice.Entry(
			auditmodel.OpBindingSuperseded, compositeKey, nil, actor, nil, before, after,
		)
		if err != nil {
			return err
		}
		return v.audit.Append(tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// RequireAuthorized is the gate mutating operations call: it collapses
// the decision into the error taxonomy.
func (v *BindingValidator) RequireAuthorized(ctx context.Context, facultyID uuid.UUID, compositeKey string, meta CallerMeta) error {
	d, err := v.Authorize(ctx, facultyID, compositeKey, meta)
	if err != nil {
		return err
	}
	if !d.Authorized {
		return fmt.Errorf("%w: %s", faults.ErrUnauthorized, d.Reason)
	}
	return nil
}
