package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/faults"
	"acadattend_backend/internals/features/academics/students/model"
)

// Strategy identifies which identity scheme answered a roster lookup.
type Strategy string

const (
	// StrategyCanonical matches active enrollment rows on the exact
	// composite key. The strongest signal.
	StrategyCanonical Strategy = "canonical"
	// StrategyCompositeString matches the legacy composite identity
	// string on the student record itself.
	StrategyCompositeString Strategy = "composite_string"
	// StrategyDecomposedFields matches the legacy decomposed mirrors
	// where the composite string was never populated.
	StrategyDecomposedFields Strategy = "decomposed_fields"
	// StrategyDepartmentBroad drops the batch constraint and leans on
	// the department scope. The weakest signal, last resort only.
	StrategyDepartmentBroad Strategy = "department_broad"
)

// strategyOrder is strict precedence. The resolver stops at the first
// non-empty result; results are never merged across strategies.
var strategyOrder = []Strategy{
	StrategyCanonical,
	StrategyCompositeString,
	StrategyDecomposedFields,
	StrategyDepartmentBroad,
}

type RosterResult struct {
	Students     []model.StudentModel
	StrategyUsed Strategy
	Corrected    int
}

// RollNumbers extracts the roster as roll numbers for the ledger.
func (r *RosterResult) RollNumbers() []string {
	rolls := make([]string, 0, len(r.Students))
	for i := range r.Students {
		rolls = append(rolls, r.Students[i].StudentRollNumber)
	}
	return rolls
}

type RosterResolver struct {
	DB         *gorm.DB
	reconciler *Reconciler
	fetch      func(ctx context.Context, st Strategy, cc classctx.Context) ([]model.StudentModel, error)
}

func NewRosterResolver(db *gorm.DB) *RosterResolver {
	r := &RosterResolver{DB: db, reconciler: NewReconciler(db)}
	r.fetch = r.query
	return r
}

// Resolve walks the strategy chain for the canonical context and
// returns the first non-empty roster. Every call re-reads the store;
// there is no in-process cache. When a non-canonical strategy wins and
// corrections are authorized, the reconciler rewrites the drifted
// identity fields before the result returns.
func (r *RosterResolver) Resolve(ctx context.Context, facultyID uuid.UUID, cc classctx.Context, authorizeCorrections bool) (*RosterResult, error) {
	for _, st := range strategyOrder {
		students, err := r.fetch(ctx, st, cc)
		if err != nil {
			return nil, err
		}
		students = dedupeByID(students)
		if len(students) == 0 {
			continue
		}

		res := &RosterResult{Students: students, StrategyUsed: st}
		if shouldReconcile(st, authorizeCorrections) {
			corrected, err := r.reconciler.Reconcile(ctx, students, facultyID, cc, string(st))
			if err != nil {
				return nil, err
			}
			res.Corrected = corrected
		}
		return res, nil
	}
	return nil, faults.NotFoundf("no roster for composite key %q", cc.CompositeKey())
}

// ApplyCorrections runs the corrective pass for a roster that was
// resolved with corrections deferred. Mutating callers resolve without
// corrections, clear the binding validator, then call this; a roster
// must never be rewritten on behalf of a caller who is not authorized
// to touch the class. Canonical wins stay untouched either way.
func (r *RosterResolver) ApplyCorrections(ctx context.Context, res *RosterResult, facultyID uuid.UUID, cc classctx.Context) error {
	if !shouldReconcile(res.StrategyUsed, true) {
		return nil
	}
	corrected, err := r.reconciler.Reconcile(ctx, res.Students, facultyID, cc, string(res.StrategyUsed))
	if err != nil {
		return err
	}
	res.Corrected = corrected
	return nil
}

func (r *RosterResolver) query(ctx context.Context, st Strategy, cc classctx.Context) ([]model.StudentModel, error) {
	key := cc.CompositeKey()

	// All strategies exclude deleted/inactive students and scope by
	// department; they differ only in which identity scheme they read.
	base := r.DB.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_status = ?", model.StudentStatusActive).
		Where("student_department = ?", cc.Department).
		Preload("Enrollments", "enrollment_status = ?", model.EnrollmentStatusActive)

	var students []model.StudentModel
	var err error

	switch st {
	case StrategyCanonical:
		err = base.
			Joins("JOIN semester_enrollments ON semester_enrollments.enrollment_student_id = students.student_id").
			Where("semester_enrollments.enrollment_composite_key = ?", key).
			Where("semester_enrollments.enrollment_status = ?", model.EnrollmentStatusActive).
			Distinct("students.*").
			Find(&students).Error

	case StrategyCompositeString:
		err = base.
			Where("student_composite_key = ?", key).
			Find(&students).Error

	case StrategyDecomposedFields:
		err = base.
			Where("(student_composite_key IS NULL OR student_composite_key = '')").
			Where("student_batch_year = ?", cc.BatchYear).
			Where("student_year_label = ?", cc.YearLabel).
			Where("student_semester_label = ?", cc.SemesterLabel).
			Where("student_section = ?", cc.Section).
			Find(&students).Error

	case StrategyDepartmentBroad:
		err = base.
			Where("student_year_label = ?", cc.YearLabel).
			Where("student_semester_label = ?", cc.SemesterLabel).
			Where("student_section = ?", cc.Section).
			Find(&students).Error
	}

	if err != nil {
		return nil, err
	}
	return students, nil
}

// shouldReconcile limits corrective writes to non-canonical wins with
// the caller's explicit opt-in. A canonical win never rewrites
// facultyId: facultyId is not part of composite-key matching, so a
// canonical hit with a foreign facultyId is left exactly as found.
func shouldReconcile(st Strategy, authorizeCorrections bool) bool {
	return authorizeCorrections && st != StrategyCanonical
}

func dedupeByID(students []model.StudentModel) []model.StudentModel {
	seen := make(map[uuid.UUID]struct{}, len(students))
	out := students[:0]
	for _, s := range students {
		if _, ok := seen[s.StudentID]; ok {
			continue
		}
		seen[s.StudentID] = struct{}{}
		out = append(out, s)
	}
	return out
}
