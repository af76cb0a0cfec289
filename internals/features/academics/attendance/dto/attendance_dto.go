package dto

import (
	"time"

	"github.com/google/uuid"

	m "acadattend_backend/internals/features/academics/attendance/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// MarkAttendanceRequest carries raw class identity plus the day's
// absentees. Class identity is normalized server-side; nothing here is
// trusted as canonical.
type MarkAttendanceRequest struct {
	Year       string `json:"year" validate:"required,max=20"`
	Semester   string `json:"semester" validate:"required,max=20"`
	Section    string `json:"section" validate:"required,max=3"`
	Batch      string `json:"batch" validate:"required,max=12"`
	Department string `json:"department" validate:"required,max=30"`

	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	AbsentRollNumbers []string `json:"absent_roll_numbers" validate:"dive,max=30"`
	Draft             bool     `json:"draft"`
}

// EditAttendanceRequest mirrors the mark payload; the target entry is
// addressed by class+date, same as marking.
type EditAttendanceRequest struct {
	Year       string `json:"year" validate:"required,max=20"`
	Semester   string `json:"semester" validate:"required,max=20"`
	Section    string `json:"section" validate:"required,max=3"`
	Batch      string `json:"batch" validate:"required,max=12"`
	Department string `json:"department" validate:"required,max=30"`

	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	AbsentRollNumbers []string `json:"absent_roll_numbers" validate:"dive,max=30"`
	Draft             bool     `json:"draft"`
}

type ReportQueryRequest struct {
	CompositeKey string `query:"composite_key" validate:"required"`
	FromDate     string `query:"from" validate:"required,datetime=2006-01-02"`
	ToDate       string `query:"to" validate:"required,datetime=2006-01-02"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type LedgerEntryResponse struct {
	LedgerID            uuid.UUID  `json:"ledger_id"`
	LedgerFacultyID     uuid.UUID  `json:"ledger_faculty_id"`
	LedgerCompositeKey  string     `json:"ledger_composite_key"`
	LedgerDate          string     `json:"ledger_date"`
	LedgerPresentRolls  []string   `json:"ledger_present_rolls"`
	LedgerAbsentRolls   []string   `json:"ledger_absent_rolls"`
	LedgerTotalStudents int        `json:"ledger_total_students"`
	LedgerStatus        string     `json:"ledger_status"`
	LedgerCreatedAt     time.Time  `json:"ledger_created_at"`
	LedgerUpdatedAt     *time.Time `json:"ledger_updated_at,omitempty"`
}

func NewLedgerEntryResponse(mdl *m.AttendanceLedgerEntryModel) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerID:            mdl.LedgerID,
		LedgerFacultyID:     mdl.LedgerFacultyID,
		LedgerCompositeKey:  mdl.LedgerCompositeKey,
		LedgerDate:          mdl.LedgerDate,
		LedgerPresentRolls:  mdl.LedgerPresentRolls,
		LedgerAbsentRolls:   mdl.LedgerAbsentRolls,
		LedgerTotalStudents: mdl.LedgerTotalStudents,
		LedgerStatus:        mdl.LedgerStatus,
		LedgerCreatedAt:     mdl.LedgerCreatedAt,
		LedgerUpdatedAt:     mdl.LedgerUpdatedAt,
	}
}

// StudentAttendanceSummary is recomputed from the stored sets on every
// report; there is no cached per-student counter anywhere.
type StudentAttendanceSummary struct {
	RollNumber      string  `json:"roll_number"`
	SessionsPresent int     `json:"sessions_present"`
	SessionsAbsent  int     `json:"sessions_absent"`
	Percentage      float64 `json:"percentage"`
}

type AggregateReport struct {
	CompositeKey      string                     `json:"composite_key"`
	FromDate          string                     `json:"from_date"`
	ToDate            string                     `json:"to_date"`
	TotalSessions     int                        `json:"total_sessions"`
	AverageAttendance float64                    `json:"average_attendance"`
	Students          []StudentAttendanceSummary `json:"students"`
}
