package autoinsert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

func ic(minutes int, cost uint64) domain.InsertionCost {
	t, err := timeutil.FromTotalMinutes(minutes)
	if err != nil {
		panic(err)
	}
	return domain.InsertionCost{Beginning: t, Cost: cost}
}

func TestSearch_EmptyInputIsImmediatelySolved(t *testing.T) {
	res := Search(Input{}, nil)
	assert.True(t, res.Solved)
	assert.Empty(t, res.Beginnings)
}

func TestSearch_TwoIncompatibleActivitiesPickNonOverlapping(t *testing.T) {
	input := Input{Items: []ActivityInput{
		{
			ActivityID:              0,
			DurationMinutes:         60,
			IncompatibleItemIndexes: []int{1},
			Candidates:              []domain.InsertionCost{ic(10*60, 0), ic(11*60, 0)},
		},
		{
			ActivityID:              1,
			DurationMinutes:         60,
			IncompatibleItemIndexes: []int{0},
			Candidates:              []domain.InsertionCost{ic(10*60, 0), ic(11*60, 0)},
		},
	}}

	res := Search(input, nil)
	require.True(t, res.Solved)
	require.Len(t, res.Beginnings, 2)
	assert.NotEqual(t, res.Beginnings[0], res.Beginnings[1])
}

func TestSearch_PrefersLowerCost(t *testing.T) {
	input := Input{Items: []ActivityInput{
		{
			ActivityID: 0,
			Candidates: []domain.InsertionCost{ic(10*60, 100), ic(9*60, 0)},
		},
	}}

	res := Search(input, nil)
	require.True(t, res.Solved)
	require.Len(t, res.Beginnings, 1)
	assert.Equal(t, 9*60, res.Beginnings[0])
}

func TestSearch_NoSolutionWhenEveryCandidateConflicts(t *testing.T) {
	input := Input{Items: []ActivityInput{
		{
			ActivityID:              0,
			DurationMinutes:         60,
			IncompatibleItemIndexes: []int{1},
			Candidates:              []domain.InsertionCost{ic(10 * 60, 0)},
		},
		{
			ActivityID:              1,
			DurationMinutes:         60,
			IncompatibleItemIndexes: []int{0},
			Candidates:              []domain.InsertionCost{ic(10 * 60, 0)},
		},
	}}

	res := Search(input, nil)
	assert.False(t, res.Solved)
}

func TestSearch_Cancellation(t *testing.T) {
	input := Input{Items: []ActivityInput{
		{ActivityID: 0, Candidates: []domain.InsertionCost{ic(0, 0)}},
	}}
	cancel := make(chan struct{})
	close(cancel)

	res := Search(input, cancel)
	assert.True(t, res.Cancelled)
}

func TestReorder_AscendingFreedom(t *testing.T) {
	items := []FreedomInput{
		{ActivityID: 0, CandidateCount: 10, IncompatibilityDegree: 0},
		{ActivityID: 1, CandidateCount: 2, IncompatibilityDegree: 1},
	}
	ordered := Reorder(items)
	require.Len(t, ordered, 2)
	assert.Equal(t, domain.ActivityID(1), ordered[0])
	assert.Equal(t, domain.ActivityID(0), ordered[1])
}

func TestHandle_WaitReturnsSearchResult(t *testing.T) {
	input := Input{Items: []ActivityInput{
		{ActivityID: 0, Candidates: []domain.InsertionCost{ic(0, 0)}},
	}}
	h := Start(input)
	res := h.Wait()
	assert.True(t, res.Solved)
	assert.Equal(t, []int{0}, res.Beginnings)
}

func TestHandle_Stop(t *testing.T) {
	input := Input{}
	h := Start(input)
	h.Stop()
	h.Stop() // must not panic when called twice
	res := h.Wait()
	assert.True(t, res.Solved)
}
