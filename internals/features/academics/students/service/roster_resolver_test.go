package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acadattend_backend/internals/features/academics/classctx"
	"acadattend_backend/internals/features/academics/faults"
	"acadattend_backend/internals/features/academics/students/model"
)

// stubResolver answers lookups from a canned per-strategy roster map
// and records the strategies queried, in order. The reconciler is left
// nil so any corrective write during Resolve would panic the test.
func stubResolver(rosters map[Strategy][]model.StudentModel, calls *[]Strategy) *RosterResolver {
	r := &RosterResolver{}
	r.fetch = func(_ context.Context, st Strategy, _ classctx.Context) ([]model.StudentModel, error) {
		*calls = append(*calls, st)
		return rosters[st], nil
	}
	return r
}

func TestResolveStopsAtFirstNonEmptyStrategy(t *testing.T) {
	roster := []model.StudentModel{{StudentID: uuid.New(), StudentRollNumber: "R1"}}

	tests := []struct {
		name      string
		rosters   map[Strategy][]model.StudentModel
		wantUsed  Strategy
		wantCalls []Strategy
	}{
		{
			name:      "canonical answers without touching legacy schemes",
			rosters:   map[Strategy][]model.StudentModel{StrategyCanonical: roster, StrategyCompositeString: roster},
			wantUsed:  StrategyCanonical,
			wantCalls: []Strategy{StrategyCanonical},
		},
		{
			name:      "falls through empty strategies in strict order",
			rosters:   map[Strategy][]model.StudentModel{StrategyDecomposedFields: roster, StrategyDepartmentBroad: roster},
			wantUsed:  StrategyDecomposedFields,
			wantCalls: []Strategy{StrategyCanonical, StrategyCompositeString, StrategyDecomposedFields},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []Strategy
			r := stubResolver(tt.rosters, &calls)

			res, err := r.Resolve(context.Background(), uuid.New(), classctx.Context{}, false)

			require.NoError(t, err)
			assert.Equal(t, tt.wantUsed, res.StrategyUsed)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestResolveExhaustedReturnsNotFound(t *testing.T) {
	var calls []Strategy
	r := stubResolver(nil, &calls)

	_, err := r.Resolve(context.Background(), uuid.New(), classctx.Context{}, false)

	assert.True(t, errors.Is(err, faults.ErrNotFound))
	assert.Len(t, calls, 4)
}

func TestResolveDefersCorrectionsUntilApplied(t *testing.T) {
	// A non-canonical win resolved without the opt-in must not reach
	// the reconciler: the stub's reconciler is nil, so a corrective
	// write here would panic. Mutating callers clear the binding
	// validator first and only then call ApplyCorrections.
	var calls []Strategy
	roster := []model.StudentModel{{StudentID: uuid.New(), StudentRollNumber: "R1"}}
	r := stubResolver(map[Strategy][]model.StudentModel{StrategyCompositeString: roster}, &calls)

	res, err := r.Resolve(context.Background(), uuid.New(), classctx.Context{}, false)

	require.NoError(t, err)
	assert.Equal(t, StrategyCompositeString, res.StrategyUsed)
	assert.Zero(t, res.Corrected)
}

func TestApplyCorrectionsSkipsCanonical(t *testing.T) {
	r := &RosterResolver{}
	res := &RosterResult{StrategyUsed: StrategyCanonical}

	err := r.ApplyCorrections(context.Background(), res, uuid.New(), classctx.Context{})

	require.NoError(t, err)
	assert.Zero(t, res.Corrected)
}

func TestShouldReconcile(t *testing.T) {
	tests := []struct {
		name       string
		strategy   Strategy
		authorized bool
		want       bool
	}{
		{"canonical win never reconciles", StrategyCanonical, true, false},
		{"composite string win with opt-in", StrategyCompositeString, true, true},
		{"decomposed win with opt-in", StrategyDecomposedFields, true, true},
		{"broad win with opt-in", StrategyDepartmentBroad, true, true},
		{"no opt-in means no corrections", StrategyDecomposedFields, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldReconcile(tt.strategy, tt.authorized))
		})
	}
}

func TestDedupeByID(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	students := []model.StudentModel{
		{StudentID: a, StudentRollNumber: "R1"},
		{StudentID: b, StudentRollNumber: "R2"},
		{StudentID: a, StudentRollNumber: "R1"},
	}

	got := dedupeByID(students)

	assert.Len(t, got, 2)
	assert.Equal(t, a, got[0].StudentID)
	assert.Equal(t, b, got[1].StudentID)
}

func TestRollNumbers(t *testing.T) {
	res := RosterResult{Students: []model.StudentModel{
		{StudentRollNumber: "R1"},
		{StudentRollNumber: "R2"},
	}}
	assert.Equal(t, []string{"R1", "R2"}, res.RollNumbers())
}
