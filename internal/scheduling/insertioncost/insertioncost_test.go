package insertioncost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S2: global work hours [10:00, 13:00); X and Y both 1:00, both candidate
// sets {10:00, ..., 12:00} before anything is inserted, both incompatible
// (share Paul). Insert X at 11:00: Y's legal beginnings must shrink to
// {10:00, 12:00} -- everything in (10:00, 12:00) now overlaps X's
// [11:00, 12:00) under the duration-offset rule.
func TestCompute_S2_ConflictFilteringAfterInsertion(t *testing.T) {
	candidates := minuteRange(10*60, 12*60, 5)

	static := []StaticData{
		{BeginningsMinutesSorted: candidates, IncompatibleIndexes: []int{1}, DurationMinutes: 60}, // X, index 0
		{BeginningsMinutesSorted: candidates, IncompatibleIndexes: []int{0}, DurationMinutes: 60}, // Y, index 1
	}
	inserted := []int{11 * 60} // X inserted at 11:00

	results := Compute(static, inserted, 1, 5)
	got := make([]int, 0, len(results))
	for _, r := range results {
		got = append(got, r.Beginning.TotalMinutes())
	}
	assert.ElementsMatch(t, []int{10 * 60, 12 * 60}, got)
}

func TestCompute_SortedByCostThenBeginning(t *testing.T) {
	// Two non-inserted, mutually incompatible activities; activity 0 is the
	// subject, activity 1 has very few legal beginnings so choosing some of
	// activity 0's candidates blocks it entirely.
	staticA := StaticData{BeginningsMinutesSorted: []int{0, 5, 10, 60}, IncompatibleIndexes: []int{1}, DurationMinutes: 10}
	staticB := StaticData{BeginningsMinutesSorted: []int{0}, IncompatibleIndexes: []int{0}, DurationMinutes: 10}
	static := []StaticData{staticA, staticB}

	results := Compute(static, nil, 0, 5)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if prev.Cost == cur.Cost {
			assert.True(t, prev.Beginning.TotalMinutes() <= cur.Beginning.TotalMinutes())
		} else {
			assert.True(t, prev.Cost < cur.Cost)
		}
	}
	// Beginning 0 blocks activity B's only candidate entirely (B's
	// remaining == 0), so it must be rejected outright.
	for _, r := range results {
		assert.NotEqual(t, 0, r.Beginning.TotalMinutes())
	}
}

func TestComputeAll_MatchesPerActivityCompute(t *testing.T) {
	candidates := minuteRange(10*60, 12*60, 5)
	static := []StaticData{
		{BeginningsMinutesSorted: candidates, IncompatibleIndexes: []int{1}, DurationMinutes: 60},
		{BeginningsMinutesSorted: candidates, IncompatibleIndexes: []int{0}, DurationMinutes: 60},
	}
	inserted := []int{11 * 60}

	all := ComputeAll(static, inserted, 5)
	require.Len(t, all, 1)
	single := Compute(static, inserted, 1, 5)
	assert.Equal(t, single, all[0])
}

func minuteRange(from, to, step int) []int {
	out := make([]int, 0)
	for m := from; m <= to; m += step {
		out = append(out, m)
	}
	return out
}
