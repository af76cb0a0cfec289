// Package classctx canonicalizes the heterogeneous year/semester/
// section/batch inputs that reach the system into one identity tuple.
// Every entry point must normalize through here so that composite-key
// equality is a reliable identity test.
package classctx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"acadattend_backend/internals/features/academics/faults"
)

// KeySeparator joins the composite key parts. Department is excluded
// from the key: it is an authorization dimension, not class identity.
const KeySeparator = "|"

var batchRe = regexp.MustCompile(`^\d{4}-\d{4}$`)

// yearOfSemester is the fixed 2-semesters-per-year pairing.
var yearOfSemester = map[int]int{
	1: 1, 2: 1,
	3: 2, 4: 2,
	5: 3, 6: 3,
	7: 4, 8: 4,
}

// Raw carries class identity exactly as it arrived: numeric strings,
// ordinal labels, mixed case. Nothing here is trusted.
type Raw struct {
	Year       string
	Semester   string
	Section    string
	Batch      string
	Department string
}

// Context is the canonical class identity. Treat it as immutable once
// returned by Normalize.
type Context struct {
	BatchYear     string // "2022-2026"
	YearLabel     string // "2nd Year"
	SemesterLabel string // "Sem 3"
	Section       string // "A"
	Department    string // "CSE"
}

// CompositeKey derives the class identity key:
// batch|year|semester|section.
func (c Context) CompositeKey() string {
	return strings.Join([]string{c.BatchYear, c.YearLabel, c.SemesterLabel, c.Section}, KeySeparator)
}

// Normalize validates and canonicalizes raw class parameters. It is a
// pure function: no lookups, no side effects. A year/semester pairing
// that violates the fixed mapping is rejected, never coerced.
func Normalize(raw Raw) (Context, error) {
	year, err := parseYear(raw.Year)
	if err != nil {
		return Context{}, err
	}
	sem, err := parseSemester(raw.Semester)
	if err != nil {
		return Context{}, err
	}
	if yearOfSemester[sem] != year {
		return Context{}, faults.Malformedf("semester %d does not belong to year %d", sem, year)
	}

	section := strings.ToUpper(strings.TrimSpace(raw.Section))
	if len(section) != 1 || section[0] < 'A' || section[0] > 'Z' {
		return Context{}, faults.Malformedf("section must be a single letter, got %q", raw.Section)
	}

	batch := strings.TrimSpace(raw.Batch)
	if !batchRe.MatchString(batch) {
		return Context{}, faults.Malformedf("batch must match YYYY-YYYY, got %q", raw.Batch)
	}

	dept := strings.ToUpper(strings.TrimSpace(raw.Department))
	if dept == "" {
		return Context{}, faults.Malformedf("department is required")
	}

	return Context{
		BatchYear:     batch,
		YearLabel:     YearLabel(year),
		SemesterLabel: SemesterLabel(sem),
		Section:       section,
		Department:    dept,
	}, nil
}

// YearLabel renders the canonical ordinal label for a study year.
func YearLabel(year int) string {
	switch year {
	case 1:
		return "1st Year"
	case 2:
		return "2nd Year"
	case 3:
		return "3rd Year"
	default:
		return fmt.Sprintf("%dth Year", year)
	}
}

// SemesterLabel renders the canonical semester label.
func SemesterLabel(sem int) string {
	return fmt.Sprintf("Sem %d", sem)
}

func parseYear(s string) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, faults.Malformedf("year is required")
	}
	// "2" or "2nd Year"
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 4 {
			return 0, faults.Malformedf("year must be 1-4, got %d", n)
		}
		return n, nil
	}
	for n := 1; n <= 4; n++ {
		if strings.EqualFold(v, YearLabel(n)) {
			return n, nil
		}
	}
	return 0, faults.Malformedf("unrecognized year %q", s)
}

func parseSemester(s string) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, faults.Malformedf("semester is required")
	}
	// "3" or "Sem 3"
	rest := v
	if strings.HasPrefix(strings.ToLower(v), "sem ") {
		rest = strings.TrimSpace(v[4:])
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, faults.Malformedf("unrecognized semester %q", s)
	}
	if n < 1 || n > 8 {
		return 0, faults.Malformedf("semester must be 1-8, got %d", n)
	}
	return n, nil
}
