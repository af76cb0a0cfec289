package service

import (
	"context"
	"math"
	"sort"

	"acadattend_backend/internals/features/academics/attendance/dto"
	"acadattend_backend/internals/features/academics/attendance/model"
)

// Report aggregates ledger entries for a class over a closed date
// range. Everything is derived from the stored present/absent sets, so
// the report is a pure function of ledger state.
func (s *LedgerService) Report(ctx context.Context, compositeKey, from, to string) (*dto.AggregateReport, error) {
	entries, err := s.Entries(ctx, compositeKey, from, to)
	if err != nil {
		return nil, err
	}
	return buildReport(compositeKey, from, to, entries), nil
}

func buildReport(compositeKey, from, to string, entries []model.AttendanceLedgerEntryModel) *dto.AggregateReport {
	type tally struct{ present, absent int }
	tallies := make(map[string]*tally)

	count := func(rolls []string, absent bool) {
		for _, r := range rolls {
			t, ok := tallies[r]
			if !ok {
				t = &tally{}
				tallies[r] = t
			}
			if absent {
				t.absent++
			} else {
				t.present++
			}
		}
	}
	for i := range entries {
		count(entries[i].LedgerPresentRolls, false)
		count(entries[i].LedgerAbsentRolls, true)
	}

	rolls := make([]string, 0, len(tallies))
	for r := range tallies {
		rolls = append(rolls, r)
	}
	sort.Strings(rolls)

	report := &dto.AggregateReport{
		CompositeKey:  compositeKey,
		FromDate:      from,
		ToDate:        to,
		TotalSessions: len(entries),
		Students:      make([]dto.StudentAttendanceSummary, 0, len(rolls)),
	}

	var pctSum float64
	for _, r := range rolls {
		t := tallies[r]
		total := t.present + t.absent
		pct := 0.0
		if total > 0 {
			pct = round2(float64(t.present) / float64(total) * 100)
		}
		pctSum += pct
		report.Students = append(report.Students, dto.StudentAttendanceSummary{
			RollNumber:      r,
			SessionsPresent: t.present,
			SessionsAbsent:  t.absent,
			Percentage:      pct,
		})
	}
	if len(report.Students) > 0 {
		report.AverageAttendance = round2(pctSum / float64(len(report.Students)))
	}
	return report
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
