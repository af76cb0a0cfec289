package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"
)

// StudentModel carries two generations of class identity: the legacy
// scalar mirrors below (composite key string plus decomposed fields)
// and the SemesterEnrollments relation. When they diverge, the
// enrollment rows are authoritative; the mirrors exist only for
// backward compatibility and are refreshed by the reconciler.
type StudentModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	StudentUserID *uuid.UUID `gorm:"type:uuid;column:student_user_id" json:"student_user_id,omitempty"`

	StudentName       string `gorm:"not null;column:student_name" json:"student_name"`
	StudentEmail      string `gorm:"not null;uniqueIndex:uq_students_email;column:student_email" json:"student_email"`
	StudentRollNumber string `gorm:"not null;column:student_roll_number;uniqueIndex:uq_students_roll_per_batch_section,priority:3" json:"student_roll_number"`
	StudentDepartment string `gorm:"not null;column:student_department;index:idx_students_department" json:"student_department"`
	StudentStatus     string `gorm:"not null;default:active;column:student_status" json:"student_status"`

	// Legacy mirrors of the "current" enrollment. Nullable on purpose:
	// old records may carry only some of them.
	StudentBatchYear     *string    `gorm:"column:student_batch_year;uniqueIndex:uq_students_roll_per_batch_section,priority:1" json:"student_batch_year,omitempty"`
	StudentYearLabel     *string    `gorm:"column:student_year_label" json:"student_year_label,omitempty"`
	StudentSemesterLabel *string    `gorm:"column:student_semester_label" json:"student_semester_label,omitempty"`
	StudentSection       *string    `gorm:"column:student_section;uniqueIndex:uq_students_roll_per_batch_section,priority:2" json:"student_section,omitempty"`
	StudentCompositeKey  *string    `gorm:"column:student_composite_key;index:idx_students_composite_key" json:"student_composite_key,omitempty"`
	StudentFacultyID     *uuid.UUID `gorm:"type:uuid;column:student_faculty_id" json:"student_faculty_id,omitempty"`

	Enrollments []SemesterEnrollmentModel `gorm:"foreignKey:EnrollmentStudentID;references:StudentID" json:"enrollments,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

// ActiveEnrollment returns the student's active enrollment, preferring
// an exact composite-key match when one exists.
func (s *StudentModel) ActiveEnrollment(compositeKey string) *SemesterEnrollmentModel {
	var fallback *SemesterEnrollmentModel
	for i := range s.Enrollments {
		e := &s.Enrollments[i]
		if e.EnrollmentStatus != EnrollmentStatusActive {
			continue
		}
		if e.EnrollmentCompositeKey == compositeKey {
			return e
		}
		if fallback == nil {
			fallback = e
		}
	}
	return fallback
}
