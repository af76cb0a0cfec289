package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Entry lifecycle. finalized and modified are both settled; they are
// distinguished only for audit display.
const (
	LedgerStatusDraft     = "draft"
	LedgerStatusFinalized = "finalized"
	LedgerStatusModified  = "modified"
)

// AttendanceLedgerEntryModel is one day's attendance for one class,
// owned by one faculty. The unique index over owner+class+date is the
// at-most-once-marking guarantee; two concurrent marks race on the
// index, and the loser is converted into an update.
type AttendanceLedgerEntryModel struct {
	LedgerID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:ledger_id" json:"ledger_id"`

	LedgerFacultyID    uuid.UUID `gorm:"type:uuid;not null;column:ledger_faculty_id;uniqueIndex:uq_ledger_owner_class_date,priority:1" json:"ledger_faculty_id"`
	LedgerCompositeKey string    `gorm:"not null;column:ledger_composite_key;uniqueIndex:uq_ledger_owner_class_date,priority:2;index:idx_ledger_composite_key" json:"ledger_composite_key"`

	// Calendar day in the campus timezone, always "YYYY-MM-DD". Stored
	// and compared as a string so day boundaries cannot drift across
	// client timezones.
	LedgerDate string `gorm:"type:varchar(10);not null;column:ledger_date;uniqueIndex:uq_ledger_owner_class_date,priority:3" json:"ledger_date"`

	LedgerPresentRolls pq.StringArray `gorm:"type:text[];column:ledger_present_rolls" json:"ledger_present_rolls"`
	LedgerAbsentRolls  pq.StringArray `gorm:"type:text[];column:ledger_absent_rolls" json:"ledger_absent_rolls"`

	// Always |present| + |absent|, recomputed on every mutation and
	// never accepted from input.
	LedgerTotalStudents int `gorm:"not null;column:ledger_total_students" json:"ledger_total_students"`

	LedgerStatus string `gorm:"not null;default:draft;column:ledger_status" json:"ledger_status"`

	// Edit-window anchor.
	LedgerCreatedAt time.Time  `gorm:"column:ledger_created_at;autoCreateTime" json:"ledger_created_at"`
	LedgerUpdatedAt *time.Time `gorm:"column:ledger_updated_at;autoUpdateTime" json:"ledger_updated_at,omitempty"`
}

func (AttendanceLedgerEntryModel) TableName() string { return "attendance_ledger_entries" }

func (m *AttendanceLedgerEntryModel) Settled() bool {
	return m.LedgerStatus == LedgerStatusFinalized || m.LedgerStatus == LedgerStatusModified
}
