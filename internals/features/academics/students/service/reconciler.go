package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditmodel "acadattend_backend/internals/features/academics/audit/model"
	auditservice "acadattend_backend/internals/features/academics/audit/service"
	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/students/model"
)

// Reconciler is the only component allowed to write corrective class
// identity fields. Every correction commits together with its audit
// entry; one cannot land without the other.
type Reconciler struct {
	DB    *gorm.DB
	audit *auditservice.Service
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{DB: db, audit: auditservice.New(db)}
}

// identitySnapshot is the before/after payload recorded for each
// correction.
type identitySnapshot struct {
	FacultyID     *uuid.UUID `json:"faculty_id"`
	CompositeKey  string     `json:"composite_key"`
	BatchYear     string     `json:"batch_year"`
	YearLabel     string     `json:"year_label"`
	SemesterLabel string     `json:"semester_label"`
	Section       string     `json:"section"`
	Department    string     `json:"department"`
}

func snapshotEnrollment(e *model.SemesterEnrollmentModel) identitySnapshot {
	return identitySnapshot{
		FacultyID:     e.EnrollmentFacultyID,
		CompositeKey:  e.EnrollmentCompositeKey,
		BatchYear:     e.EnrollmentBatchYear,
		YearLabel:     e.EnrollmentYearLabel,
		SemesterLabel: e.EnrollmentSemesterLabel,
		Section:       e.EnrollmentSection,
		Department:    e.EnrollmentDepartment,
	}
}

// Reconcile converges each resolved student onto the canonical context.
// Idempotent: an already-correct student is a no-op, and concurrent
// application of the same drift converges because every write is
// last-write-wins on a single enrollment row.
func (rc *Reconciler) Reconcile(ctx context.Context, students []model.StudentModel, facultyID uuid.UUID, cc classctx.Context, strategy string) (int, error) {
	corrected := 0
	for i := range students {
		changed, err := rc.reconcileOne(ctx, &students[i], facultyID, cc, strategy)
		if err != nil {
			return corrected, err
		}
		if changed {
			corrected++
		}
	}
	return corrected, nil
}

func (rc *Reconciler) reconcileOne(ctx context.Context, s *model.StudentModel, facultyID uuid.UUID, cc classctx.Context, strategy string) (bool, error) {
	key := cc.CompositeKey()
	target := s.ActiveEnrollment(key)

	if target == nil {
		// Legacy record never migrated to the enrollment scheme: the
		// correction is creating its canonical enrollment.
		return true, rc.migrateLegacy(ctx, s, facultyID, cc, strategy)
	}

	enrUpdates := enrollmentCorrection(target, facultyID, cc)
	mirrorUpdates := mirrorCorrection(s, facultyID, cc)
	if len(enrUpdates) == 0 && len(mirrorUpdates) == 0 {
		return false, nil
	}

	before := snapshotEnrollment(target)

	err := rc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(enrUpdates) > 0 {
			// Conditional single-row update: scoped to the matched
			// enrollment, never a whole-document overwrite.
			if err := tx.Model(&model.SemesterEnrollmentModel{}).
				Where("enrollment_id = ? AND enrollment_status = ?", target.EnrollmentID, model.EnrollmentStatusActive).
				Updates(enrUpdates).Error; err != nil {
				return err
			}
		}
		if len(mirrorUpdates) > 0 {
			if err := tx.Model(&model.StudentModel{}).
				Where("student_id = ?", s.StudentID).
				Updates(mirrorUpdates).Error; err != nil {
				return err
			}
		}

		after := before
		applyCorrectionToSnapshot(&after, enrUpdates, facultyID)

		entry, err := auditservice.Entry(
			auditmodel.OpRosterReconciled, key, &strategy,
			facultyID, &s.StudentID, before, after,
		)
		if err != nil {
			return err
		}
		return rc.audit.Append(tx, entry)
	})
	return err == nil, err
}

func (rc *Reconciler) migrateLegacy(ctx context.Context, s *model.StudentModel, facultyID uuid.UUID, cc classctx.Context, strategy string) error {
	key := cc.CompositeKey()
	enrollment := model.SemesterEnrollmentModel{
		EnrollmentStudentID:     s.StudentID,
		EnrollmentBatchYear:     cc.BatchYear,
		EnrollmentYearLabel:     cc.YearLabel,
		EnrollmentSemesterLabel: cc.SemesterLabel,
		EnrollmentSection:       cc.Section,
		EnrollmentDepartment:    cc.Department,
		EnrollmentFacultyID:     &facultyID,
		EnrollmentCompositeKey:  key,
		EnrollmentStatus:        model.EnrollmentStatusActive,
	}

	return rc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		if updates := mirrorCorrection(s, facultyID, cc); len(updates) > 0 {
			if err := tx.Model(&model.StudentModel{}).
				Where("student_id = ?", s.StudentID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		entry, err := auditservice.Entry(
			auditmodel.OpLegacyMigrated, key, &strategy,
			facultyID, &s.StudentID, nil, snapshotEnrollment(&enrollment),
		)
		if err != nil {
			return err
		}
		return rc.audit.Append(tx, entry)
	})
}

// enrollmentCorrection computes the fields to rewrite on the matched
// enrollment: the owning faculty when it differs, and any composite
// identity field that was never populated. It never touches roll
// number, name, email, or other enrollments.
func enrollmentCorrection(e *model.SemesterEnrollmentModel, facultyID uuid.UUID, cc classctx.Context) map[string]interface{} {
	updates := map[string]interface{}{}
	if e.EnrollmentFacultyID == nil || *e.EnrollmentFacultyID != facultyID {
		updates["enrollment_faculty_id"] = facultyID
	}
	if e.EnrollmentCompositeKey == "" {
		updates["enrollment_composite_key"] = cc.CompositeKey()
	}
	if e.EnrollmentBatchYear == "" {
		updates["enrollment_batch_year"] = cc.BatchYear
	}
	if e.EnrollmentYearLabel == "" {
		updates["enrollment_year_label"] = cc.YearLabel
	}
	if e.EnrollmentSemesterLabel == "" {
		updates["enrollment_semester_label"] = cc.SemesterLabel
	}
	if e.EnrollmentSection == "" {
		updates["enrollment_section"] = cc.Section
	}
	if e.EnrollmentDepartment == "" {
		updates["enrollment_department"] = cc.Department
	}
	return updates
}

// mirrorCorrection refreshes the student's legacy scalar mirrors so
// they describe the canonical enrollment again.
func mirrorCorrection(s *model.StudentModel, facultyID uuid.UUID, cc classctx.Context) map[string]interface{} {
	key := cc.CompositeKey()
	updates := map[string]interface{}{}
	if s.StudentCompositeKey == nil || *s.StudentCompositeKey != key {
		updates["student_composite_key"] = key
	}
	if s.StudentBatchYear == nil || *s.StudentBatchYear != cc.BatchYear {
		updates["student_batch_year"] = cc.BatchYear
	}
	if s.StudentYearLabel == nil || *s.StudentYearLabel != cc.YearLabel {
		updates["student_year_label"] = cc.YearLabel
	}
	if s.StudentSemesterLabel == nil || *s.StudentSemesterLabel != cc.SemesterLabel {
		updates["student_semester_label"] = cc.SemesterLabel
	}
	if s.StudentSection == nil || *s.StudentSection != cc.Section {
		updates["student_section"] = cc.Section
	}
	if s.StudentFacultyID == nil || *s.StudentFacultyID != facultyID {
		updates["student_faculty_id"] = facultyID
	}
	return updates
}

func applyCorrectionToSnapshot(snap *identitySnapshot, updates map[string]interface{}, facultyID uuid.UUID) {
	if _, ok := updates["enrollment_faculty_id"]; ok {
		snap.FacultyID = &facultyID
	}
	if v, ok := updates["enrollment_composite_key"].(string); ok {
		snap.CompositeKey = v
	}
	if v, ok := updates["enrollment_batch_year"].(string); ok {
		snap.BatchYear = v
	}
	if v, ok := updates["enrollment_year_label"].(string); ok {
		snap.YearLabel = v
	}
	if v, ok := updates["enrollment_semester_label"].(string); ok {
		snap.SemesterLabel = v
	}
	if v, ok := updates["enrollment_section"].(string); ok {
		snap.Section = v
	}
	if v, ok := updates["enrollment_department"].(string); ok {
		snap.Department = v
	}
}
