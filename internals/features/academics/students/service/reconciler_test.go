package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/students/model"
)

func testContext(t *testing.T) classctx.Context {
	t.Helper()
	cc, err := classctx.Normalize(classctx.Raw{
		Year: "2", Semester: "3", Section: "A", Batch: "2022-2026", Department: "CSE",
	})
	assert.NoError(t, err)
	return cc
}

func TestEnrollmentCorrection(t *testing.T) {
	cc := testContext(t)
	owner := uuid.New()
	other := uuid.New()

	t.Run("drifted faculty id is corrected", func(t *testing.T) {
		e := &model.SemesterEnrollmentModel{
			EnrollmentFacultyID:     &other,
			EnrollmentCompositeKey:  cc.CompositeKey(),
			EnrollmentBatchYear:     cc.BatchYear,
			EnrollmentYearLabel:     cc.YearLabel,
			EnrollmentSemesterLabel: cc.SemesterLabel,
			EnrollmentSection:       cc.Section,
			EnrollmentDepartment:    cc.Department,
		}
		updates := enrollmentCorrection(e, owner, cc)
		assert.Equal(t, map[string]interface{}{"enrollment_faculty_id": owner}, updates)
	})

	t.Run("blank identity fields are filled", func(t *testing.T) {
		e := &model.SemesterEnrollmentModel{EnrollmentFacultyID: &owner}
		updates := enrollmentCorrection(e, owner, cc)
		assert.Equal(t, cc.CompositeKey(), updates["enrollment_composite_key"])
		assert.Equal(t, cc.BatchYear, updates["enrollment_batch_year"])
		assert.Equal(t, cc.Department, updates["enrollment_department"])
	})

	t.Run("populated but mismatched key is left alone", func(t *testing.T) {
		e := &model.SemesterEnrollmentModel{
			EnrollmentFacultyID:     &owner,
			EnrollmentCompositeKey:  "2021-2025|1st Year|Sem 1|B",
			EnrollmentBatchYear:     "2021-2025",
			EnrollmentYearLabel:     "1st Year",
			EnrollmentSemesterLabel: "Sem 1",
			EnrollmentSection:       "B",
			EnrollmentDepartment:    "CSE",
		}
		updates := enrollmentCorrection(e, owner, cc)
		assert.Empty(t, updates)
	})

	t.Run("idempotent on an already-correct enrollment", func(t *testing.T) {
		e := &model.SemesterEnrollmentModel{
			EnrollmentFacultyID:     &owner,
			EnrollmentCompositeKey:  cc.CompositeKey(),
			EnrollmentBatchYear:     cc.BatchYear,
			EnrollmentYearLabel:     cc.YearLabel,
			EnrollmentSemesterLabel: cc.SemesterLabel,
			EnrollmentSection:       cc.Section,
			EnrollmentDepartment:    cc.Department,
		}
		assert.Empty(t, enrollmentCorrection(e, owner, cc))
		// Applying the computed correction and recomputing yields nothing.
		assert.Empty(t, enrollmentCorrection(e, owner, cc))
	})
}

func TestMirrorCorrection(t *testing.T) {
	cc := testContext(t)
	owner := uuid.New()
	key := cc.CompositeKey()

	t.Run("stale mirrors are rewritten", func(t *testing.T) {
		old := "2020-2024|1st Year|Sem 2|B"
		s := &model.StudentModel{StudentCompositeKey: &old}
		updates := mirrorCorrection(s, owner, cc)
		assert.Equal(t, key, updates["student_composite_key"])
		assert.Equal(t, cc.BatchYear, updates["student_batch_year"])
		assert.Equal(t, owner, updates["student_faculty_id"])
	})

	t.Run("no-op when mirrors already canonical", func(t *testing.T) {
		s := &model.StudentModel{
			StudentCompositeKey:  &key,
			StudentBatchYear:     &cc.BatchYear,
			StudentYearLabel:     &cc.YearLabel,
			StudentSemesterLabel: &cc.SemesterLabel,
			StudentSection:       &cc.Section,
			StudentFacultyID:     &owner,
		}
		assert.Empty(t, mirrorCorrection(s, owner, cc))
	})
}

func TestActiveEnrollmentPrefersExactKey(t *testing.T) {
	cc := testContext(t)
	key := cc.CompositeKey()

	s := &model.StudentModel{Enrollments: []model.SemesterEnrollmentModel{
		{EnrollmentCompositeKey: "other", EnrollmentStatus: model.EnrollmentStatusActive},
		{EnrollmentCompositeKey: key, EnrollmentStatus: model.EnrollmentStatusCompleted},
		{EnrollmentCompositeKey: key, EnrollmentStatus: model.EnrollmentStatusActive},
	}}

	got := s.ActiveEnrollment(key)
	assert.NotNil(t, got)
	assert.Equal(t, key, got.EnrollmentCompositeKey)
	assert.Equal(t, model.EnrollmentStatusActive, got.EnrollmentStatus)
}

func TestApplyCorrectionToSnapshot(t *testing.T) {
	cc := testContext(t)
	owner := uuid.New()
	e := &model.SemesterEnrollmentModel{}

	before := snapshotEnrollment(e)
	after := before
	applyCorrectionToSnapshot(&after, enrollmentCorrection(e, owner, cc), owner)

	assert.Empty(t, before.CompositeKey)
	assert.Equal(t, cc.CompositeKey(), after.CompositeKey)
	assert.Equal(t, &owner, after.FacultyID)
}
