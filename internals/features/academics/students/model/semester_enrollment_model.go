package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
)

// SemesterEnrollmentModel is one student's membership in one class
// offering for one term. The enrollment rows are the authoritative
// identity scheme; the student-level mirrors merely shadow the current
// one.
type SemesterEnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_id" json:"enrollment_id"`

	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;column:enrollment_student_id;index:idx_enrollments_student" json:"enrollment_student_id"`

	EnrollmentBatchYear     string `gorm:"not null;column:enrollment_batch_year" json:"enrollment_batch_year"`
	EnrollmentYearLabel     string `gorm:"not null;column:enrollment_year_label" json:"enrollment_year_label"`
	EnrollmentSemesterLabel string `gorm:"not null;column:enrollment_semester_label" json:"enrollment_semester_label"`
	EnrollmentSection       string `gorm:"not null;column:enrollment_section" json:"enrollment_section"`
	EnrollmentDepartment    string `gorm:"not null;column:enrollment_department" json:"enrollment_department"`

	EnrollmentFacultyID    *uuid.UUID `gorm:"type:uuid;column:enrollment_faculty_id;index:idx_enrollments_faculty" json:"enrollment_faculty_id,omitempty"`
	EnrollmentCompositeKey string     `gorm:"not null;column:enrollment_composite_key;index:idx_enrollments_composite_key" json:"enrollment_composite_key"`

	EnrollmentStatus string `gorm:"not null;default:active;column:enrollment_status" json:"enrollment_status"`

	EnrollmentCreatedAt time.Time  `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt *time.Time `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at,omitempty"`
}

func (SemesterEnrollmentModel) TableName() string { return "semester_enrollments" }
