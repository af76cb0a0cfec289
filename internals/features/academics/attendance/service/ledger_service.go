package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"acadattend_backend/internals/configs"
	"acadattend_backend/internals/features/academics/attendance/model"
	auditmodel "acadattend_backend/internals/features/academics/audit/model"
	auditservice "acadattend_backend/internals/features/academics/audit/service"
	"acadattend_backend/internals/features/academics/faults"
)

const dateLayout = "2006-01-02"

type LedgerService struct {
	DB         *gorm.DB
	audit      *auditservice.Service
	editWindow time.Duration
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{
		DB:         db,
		audit:      auditservice.New(db),
		editWindow: configs.AttendanceEditWindow(),
	}
}

type MarkInput struct {
	FacultyID    uuid.UUID
	CompositeKey string
	Date         string
	AbsentRolls  []string
	Roster       []string
	Draft        bool
}

// ledgerSnapshot is the audit before/after payload for ledger writes.
type ledgerSnapshot struct {
	PresentRolls  []string `json:"present_rolls"`
	AbsentRolls   []string `json:"absent_rolls"`
	TotalStudents int      `json:"total_students"`
	Status        string   `json:"status"`
}

func snapshot(m *model.AttendanceLedgerEntryModel) ledgerSnapshot {
	return ledgerSnapshot{
		PresentRolls:  m.LedgerPresentRolls,
		AbsentRolls:   m.LedgerAbsentRolls,
		TotalStudents: m.LedgerTotalStudents,
		Status:        m.LedgerStatus,
	}
}

// Mark records one day's attendance for one class. The unique index on
// (owner, composite key, date) is the race arbiter: the loser of a
// concurrent double-mark sees gorm.ErrDuplicatedKey and becomes an
// update of the winner's row, subject to the edit window.
func (s *LedgerService) Mark(ctx context.Context, in MarkInput) (*model.AttendanceLedgerEntryModel, error) {
	if err := validDate(in.Date); err != nil {
		return nil, err
	}
	present, absent, err := computeSets(in.Roster, in.AbsentRolls)
	if err != nil {
		return nil, err
	}

	entry := &model.AttendanceLedgerEntryModel{
		LedgerFacultyID:     in.FacultyID,
		LedgerCompositeKey:  in.CompositeKey,
		LedgerDate:          in.Date,
		LedgerPresentRolls:  present,
		LedgerAbsentRolls:   absent,
		LedgerTotalStudents: len(present) + len(absent),
		LedgerStatus:        createStatus(in.Draft),
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		auditEntry, err := auditservice.Entry(
			auditmodel.OpAttendanceMarked, in.CompositeKey, nil,
			in.FacultyID, nil, nil, snapshot(entry),
		)
		if err != nil {
			return err
		}
		return s.audit.Append(tx, auditEntry)
	})
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// DuplicateEntry recovery: update the existing row instead.
	return s.update(ctx, in.FacultyID, in.CompositeKey, in.Date, present, absent, in.Draft)
}

type EditInput struct {
	FacultyID    uuid.UUID
	CompositeKey string
	Date         string
	AbsentRolls  []string
	Roster       []string
	Draft        bool
}

// Edit amends an existing entry with the same computation as Mark.
// Outside the edit window it fails whole; no partial change is applied.
func (s *LedgerService) Edit(ctx context.Context, in EditInput) (*model.AttendanceLedgerEntryModel, error) {
	if err := validDate(in.Date); err != nil {
		return nil, err
	}
	present, absent, err := computeSets(in.Roster, in.AbsentRolls)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, in.FacultyID, in.CompositeKey, in.Date, present, absent, in.Draft)
}

func (s *LedgerService) update(ctx context.Context, facultyID uuid.UUID, compositeKey, date string, present, absent []string, draft bool) (*model.AttendanceLedgerEntryModel, error) {
	var entry model.AttendanceLedgerEntryModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("ledger_faculty_id = ?", facultyID).
			Where("ledger_composite_key = ?", compositeKey).
			Where("ledger_date = ?", date).
			Take(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return faults.NotFoundf("ledger entry for %q on %s", compositeKey, date)
			}
			return err
		}

		if !withinEditWindow(entry.LedgerCreatedAt, time.Now(), s.editWindow) {
			return fmt.Errorf("%w: entry created %s", faults.ErrEditWindowExpired, entry.LedgerCreatedAt.Format(time.RFC3339))
		}

		before := snapshot(&entry)

		entry.LedgerPresentRolls = present
		entry.LedgerAbsentRolls = absent
		entry.LedgerTotalStudents = len(present) + len(absent)
		entry.LedgerStatus = nextStatus(entry.LedgerStatus, draft)

		if err := tx.Model(&model.AttendanceLedgerEntryModel{}).
			Where("ledger_id = ?", entry.LedgerID).
			Updates(map[string]interface{}{
				"ledger_present_rolls":  entry.LedgerPresentRolls,
				"ledger_absent_rolls":   entry.LedgerAbsentRolls,
				"ledger_total_students": entry.LedgerTotalStudents,
				"ledger_status":         entry.LedgerStatus,
			}).Error; err != nil {
			return err
		}

		auditEntry, err := auditservice.Entry(
			auditmodel.OpAttendanceUpdated, compositeKey, nil,
			facultyID, nil, before, snapshot(&entry),
		)
		if err != nil {
			return err
		}
		return s.audit.Append(tx, auditEntry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Entries returns ledger rows for one class in a closed date range.
func (s *LedgerService) Entries(ctx context.Context, compositeKey, from, to string) ([]model.AttendanceLedgerEntryModel, error) {
	if err := validDate(from); err != nil {
		return nil, err
	}
	if err := validDate(to); err != nil {
		return nil, err
	}
	if from > to {
		return nil, faults.Malformedf("date range %s..%s is inverted", from, to)
	}

	var entries []model.AttendanceLedgerEntryModel
	// ISO calendar-day strings order lexicographically, so a string
	// range is an exact day range with no boundary ambiguity.
	err := s.DB.WithContext(ctx).
		Where("ledger_composite_key = ?", compositeKey).
		Where("ledger_date >= ? AND ledger_date <= ?", from, to).
		Order("ledger_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// createStatus: a fresh mark settles immediately unless saved as draft.
func createStatus(draft bool) string {
	if draft {
		return model.LedgerStatusDraft
	}
	return model.LedgerStatusFinalized
}

// nextStatus: draft → finalized on first settle; any edit of a settled
// entry → modified. finalized and modified are both terminal.
func nextStatus(current string, draft bool) string {
	switch current {
	case model.LedgerStatusDraft:
		if draft {
			return model.LedgerStatusDraft
		}
		return model.LedgerStatusFinalized
	default:
		return model.LedgerStatusModified
	}
}

// computeSets derives present = roster minus absentees, absent =
// absentees within the roster. A roll number outside the roster is
// rejected, never dropped.
func computeSets(roster, absentRolls []string) (present, absent []string, err error) {
	inRoster := make(map[string]struct{}, len(roster))
	for _, r := range roster {
		inRoster[r] = struct{}{}
	}

	markedAbsent := make(map[string]struct{}, len(absentRolls))
	for _, r := range absentRolls {
		if _, ok := inRoster[r]; !ok {
			return nil, nil, faults.Invariantf("roll number %q is not in the roster", r)
		}
		markedAbsent[r] = struct{}{}
	}

	present = make([]string, 0, len(roster)-len(markedAbsent))
	absent = make([]string, 0, len(markedAbsent))
	for _, r := range roster {
		if _, ok := markedAbsent[r]; ok {
			absent = append(absent, r)
		} else {
			present = append(present, r)
		}
	}
	sort.Strings(present)
	sort.Strings(absent)
	return present, absent, nil
}

func withinEditWindow(createdAt, now time.Time, window time.Duration) bool {
	return now.Sub(createdAt) <= window
}

func validDate(s string) error {
	loc := configs.TimeLocation
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil || t.Format(dateLayout) != s {
		return faults.Malformedf("date must be YYYY-MM-DD, got %q", s)
	}
	return nil
}
