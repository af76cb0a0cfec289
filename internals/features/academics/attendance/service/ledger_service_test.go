package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acadattend_backend/internals/features/academics/attendance/model"
	"acadattend_backend/internals/features/academics/faults"
)

func TestComputeSets(t *testing.T) {
	roster := []string{"R1", "R2", "R3", "R4", "R5"}

	t.Run("present is roster minus absent", func(t *testing.T) {
		present, absent, err := computeSets(roster, []string{"R1", "R5"})
		require.NoError(t, err)
		assert.Equal(t, []string{"R2", "R3", "R4"}, present)
		assert.Equal(t, []string{"R1", "R5"}, absent)
		assert.Equal(t, 5, len(present)+len(absent))
	})

	t.Run("unknown roll number is rejected, not dropped", func(t *testing.T) {
		_, _, err := computeSets(roster, []string{"R1", "R9"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, faults.ErrInvariantViolation))
	})

	t.Run("duplicate absentees collapse", func(t *testing.T) {
		present, absent, err := computeSets(roster, []string{"R2", "R2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"R2"}, absent)
		assert.Equal(t, []string{"R1", "R3", "R4", "R5"}, present)
	})

	t.Run("nobody absent", func(t *testing.T) {
		present, absent, err := computeSets(roster, nil)
		require.NoError(t, err)
		assert.Len(t, present, 5)
		assert.Empty(t, absent)
	})

	t.Run("sets stay disjoint", func(t *testing.T) {
		present, absent, err := computeSets(roster, []string{"R3"})
		require.NoError(t, err)
		seen := map[string]struct{}{}
		for _, r := range present {
			seen[r] = struct{}{}
		}
		for _, r := range absent {
			_, dup := seen[r]
			assert.False(t, dup, "roll %s in both sets", r)
		}
	})
}

func TestWithinEditWindow(t *testing.T) {
	window := 7 * 24 * time.Hour
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, withinEditWindow(created, created.Add(window), window))
	// One second past the window boundary must expire.
	assert.False(t, withinEditWindow(created, created.Add(window+time.Second), window))
	assert.True(t, withinEditWindow(created, created.Add(time.Hour), window))
}

func TestStatusTransitions(t *testing.T) {
	assert.Equal(t, model.LedgerStatusFinalized, createStatus(false))
	assert.Equal(t, model.LedgerStatusDraft, createStatus(true))

	tests := []struct {
		current string
		draft   bool
		want    string
	}{
		{model.LedgerStatusDraft, true, model.LedgerStatusDraft},
		{model.LedgerStatusDraft, false, model.LedgerStatusFinalized},
		{model.LedgerStatusFinalized, false, model.LedgerStatusModified},
		{model.LedgerStatusFinalized, true, model.LedgerStatusModified},
		{model.LedgerStatusModified, false, model.LedgerStatusModified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextStatus(tt.current, tt.draft))
	}
}

func TestValidDate(t *testing.T) {
	assert.NoError(t, validDate("2025-03-10"))

	for _, bad := range []string{"2025-3-10", "10-03-2025", "2025-03-10T00:00:00Z", "yesterday", ""} {
		err := validDate(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, faults.ErrMalformedContext))
	}
}

func TestBuildReport(t *testing.T) {
	key := "2022-2026|2nd Year|Sem 3|A"
	entries := []model.AttendanceLedgerEntryModel{
		{
			LedgerPresentRolls: []string{"R2", "R3"},
			LedgerAbsentRolls:  []string{"R1"},
		},
		{
			LedgerPresentRolls: []string{"R1", "R2"},
			LedgerAbsentRolls:  []string{"R3"},
		},
		{
			LedgerPresentRolls: []string{"R1", "R2", "R3"},
			LedgerAbsentRolls:  nil,
		},
	}

	report := buildReport(key, "2025-03-01", "2025-03-31", entries)

	assert.Equal(t, 3, report.TotalSessions)
	require.Len(t, report.Students, 3)

	byRoll := map[string]int{}
	for i, s := range report.Students {
		byRoll[s.RollNumber] = i
	}

	r1 := report.Students[byRoll["R1"]]
	assert.Equal(t, 2, r1.SessionsPresent)
	assert.Equal(t, 1, r1.SessionsAbsent)
	assert.InDelta(t, 66.67, r1.Percentage, 0.01)

	r2 := report.Students[byRoll["R2"]]
	assert.Equal(t, 3, r2.SessionsPresent)
	assert.Equal(t, 0, r2.SessionsAbsent)
	assert.InDelta(t, 100.0, r2.Percentage, 0.01)

	// Deterministic ordering by roll number.
	assert.Equal(t, "R1", report.Students[0].RollNumber)
	assert.Equal(t, "R3", report.Students[2].RollNumber)
}

func TestBuildReportEmptyRange(t *testing.T) {
	report := buildReport("k", "2025-01-01", "2025-01-31", nil)
	assert.Equal(t, 0, report.TotalSessions)
	assert.Empty(t, report.Students)
	assert.Zero(t, report.AverageAttendance)
}
