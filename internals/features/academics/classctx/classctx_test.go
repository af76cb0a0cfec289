package classctx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acadattend_backend/internals/features/academics/faults"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     Raw
		want    Context
		wantErr bool
	}{
		{
			name: "numeric year and semester",
			raw:  Raw{Year: "2", Semester: "3", Section: "a", Batch: "2022-2026", Department: "cse"},
			want: Context{
				BatchYear:     "2022-2026",
				YearLabel:     "2nd Year",
				SemesterLabel: "Sem 3",
				Section:       "A",
				Department:    "CSE",
			},
		},
		{
			name: "ordinal year and labelled semester",
			raw:  Raw{Year: "3rd Year", Semester: "Sem 5", Section: "B", Batch: "2021-2025", Department: "ECE"},
			want: Context{
				BatchYear:     "2021-2025",
				YearLabel:     "3rd Year",
				SemesterLabel: "Sem 5",
				Section:       "B",
				Department:    "ECE",
			},
		},
		{
			name: "fourth year",
			raw:  Raw{Year: "4", Semester: "8", Section: "C", Batch: "2020-2024", Department: "MECH"},
			want: Context{
				BatchYear:     "2020-2024",
				YearLabel:     "4th Year",
				SemesterLabel: "Sem 8",
				Section:       "C",
				Department:    "MECH",
			},
		},
		{
			name:    "semester not in year",
			raw:     Raw{Year: "2", Semester: "5", Section: "A", Batch: "2022-2026", Department: "CSE"},
			wantErr: true,
		},
		{
			name:    "bad batch format",
			raw:     Raw{Year: "1", Semester: "1", Section: "A", Batch: "2022", Department: "CSE"},
			wantErr: true,
		},
		{
			name:    "multi letter section",
			raw:     Raw{Year: "1", Semester: "2", Section: "AB", Batch: "2022-2026", Department: "CSE"},
			wantErr: true,
		},
		{
			name:    "year out of range",
			raw:     Raw{Year: "5", Semester: "9", Section: "A", Batch: "2022-2026", Department: "CSE"},
			wantErr: true,
		},
		{
			name:    "missing department",
			raw:     Raw{Year: "1", Semester: "1", Section: "A", Batch: "2022-2026"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, faults.ErrMalformedContext))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompositeKeyExcludesDepartment(t *testing.T) {
	a, err := Normalize(Raw{Year: "2", Semester: "3", Section: "A", Batch: "2022-2026", Department: "CSE"})
	require.NoError(t, err)
	b, err := Normalize(Raw{Year: "2", Semester: "3", Section: "A", Batch: "2022-2026", Department: "ECE"})
	require.NoError(t, err)

	assert.Equal(t, "2022-2026|2nd Year|Sem 3|A", a.CompositeKey())
	assert.Equal(t, a.CompositeKey(), b.CompositeKey())
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := Raw{Year: "2nd year", Semester: "sem 3", Section: " a ", Batch: "2022-2026", Department: " cse "}
	first, err := Normalize(raw)
	require.NoError(t, err)
	second, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
