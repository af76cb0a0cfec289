package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Operation kinds recorded in the audit feed.
const (
	OpRosterReconciled  = "roster_reconciled"
	OpLegacyMigrated    = "legacy_enrollment_migrated"
	OpAttendanceMarked  = "attendance_marked"
	OpAttendanceUpdated = "attendance_updated"
	OpBindingSuperseded = "binding_superseded"
	OpClassGroupCreated = "class_group_created"
)

// AuditLogEntryModel is append-only: no update or delete path exists
// anywhere in the codebase, and none may be added.
type AuditLogEntryModel struct {
	AuditID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_id" json:"audit_id"`

	AuditOperation    string  `gorm:"not null;column:audit_operation;index:idx_audit_operation" json:"audit_operation"`
	AuditCompositeKey string  `gorm:"not null;column:audit_composite_key;index:idx_audit_composite_key" json:"audit_composite_key"`
	AuditStrategy     *string `gorm:"column:audit_strategy" json:"audit_strategy,omitempty"`

	AuditActorID   uuid.UUID  `gorm:"type:uuid;not null;column:audit_actor_id;index:idx_audit_actor" json:"audit_actor_id"`
	AuditStudentID *uuid.UUID `gorm:"type:uuid;column:audit_student_id" json:"audit_student_id,omitempty"`

	AuditBefore datatypes.JSON `gorm:"column:audit_before" json:"audit_before,omitempty"`
	AuditAfter  datatypes.JSON `gorm:"column:audit_after" json:"audit_after,omitempty"`

	AuditCreatedAt time.Time `gorm:"column:audit_created_at;autoCreateTime" json:"audit_created_at"`
}

func (AuditLogEntryModel) TableName() string { return "audit_log_entries" }
