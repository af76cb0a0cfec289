package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassGroupModel registers one class offering. The unique index over
// the composite key among alive rows is what makes "at most one active
// faculty binding per class" a store-level invariant instead of an
// application-level check.
type ClassGroupModel struct {
	ClassGroupID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_group_id" json:"class_group_id"`

	ClassGroupCompositeKey string `gorm:"not null;uniqueIndex:uq_class_groups_composite_key;column:class_group_composite_key" json:"class_group_composite_key"`

	ClassGroupBatchYear     string `gorm:"not null;column:class_group_batch_year" json:"class_group_batch_year"`
	ClassGroupYearLabel     string `gorm:"not null;column:class_group_year_label" json:"class_group_year_label"`
	ClassGroupSemesterLabel string `gorm:"not null;column:class_group_semester_label" json:"class_group_semester_label"`
	ClassGroupSection       string `gorm:"not null;column:class_group_section" json:"class_group_section"`
	ClassGroupDepartment    string `gorm:"not null;column:class_group_department;index:idx_class_groups_department" json:"class_group_department"`

	// Current owner. Reassignment only via explicit supersede.
	ClassGroupFacultyID *uuid.UUID `gorm:"type:uuid;column:class_group_faculty_id" json:"class_group_faculty_id,omitempty"`
	ClassGroupCreatedBy uuid.UUID  `gorm:"type:uuid;not null;column:class_group_created_by" json:"class_group_created_by"`

	ClassGroupCreatedAt time.Time      `gorm:"column:class_group_created_at;autoCreateTime" json:"class_group_created_at"`
	ClassGroupUpdatedAt *time.Time     `gorm:"column:class_group_updated_at;autoUpdateTime" json:"class_group_updated_at,omitempty"`
	ClassGroupDeletedAt gorm.DeletedAt `gorm:"column:class_group_deleted_at;index" json:"class_group_deleted_at,omitempty"`
}

func (ClassGroupModel) TableName() string { return "class_groups" }
