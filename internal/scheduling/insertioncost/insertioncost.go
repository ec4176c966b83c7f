// Package insertioncost implements the insertion-cost kernel (§4.6):
// given the static per-activity data and the beginnings already fixed for
// inserted activities, it returns, for one non-inserted activity, every
// legal (conflict-free) beginning together with a cost that reflects how
// much choosing it would constrain other, still-unplaced activities.
//
// Ported from the original's
// felix-data/felix-computation-api/src/compute_insertion_costs.rs, using
// parallel arrays where inserted activities are always stored first.
package insertioncost

import (
	"sort"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// CostScale is the fixed-point multiplier applied to costs so the ordering
// of candidates never depends on floating point (§4.6 step 2, §9).
const CostScale = 10_000

// StaticData is one activity's immutable scheduling input: its conflict-free
// candidate beginnings (in minutes, sorted ascending), the indexes (into
// this same parallel array) of every incompatible activity, and its
// duration in minutes.
type StaticData struct {
	BeginningsMinutesSorted []int
	IncompatibleIndexes     []int
	DurationMinutes         int
}

// Compute returns, for static[indexOfActivity] (which must satisfy
// indexOfActivity >= len(insertedBeginningsMinutes), i.e. be a non-inserted
// activity), the legal beginnings with their cost, sorted by (cost,
// beginning) ascending.
func Compute(static []StaticData, insertedBeginningsMinutes []int, indexOfActivity, stepMinutes int) []domain.InsertionCost {
	filtered := conflictFilteredBeginnings(static, insertedBeginningsMinutes, stepMinutes)
	return costForActivity(static, insertedBeginningsMinutes, filtered, indexOfActivity, stepMinutes)
}

// ComputeAll runs Compute for every non-inserted activity in static, in
// parallel-array order; position i of the result corresponds to
// static[len(insertedBeginningsMinutes)+i].
func ComputeAll(static []StaticData, insertedBeginningsMinutes []int, stepMinutes int) [][]domain.InsertionCost {
	filtered := conflictFilteredBeginnings(static, insertedBeginningsMinutes, stepMinutes)
	out := make([][]domain.InsertionCost, len(static)-len(insertedBeginningsMinutes))
	for i := range out {
		out[i] = costForActivity(static, insertedBeginningsMinutes, filtered, len(insertedBeginningsMinutes)+i, stepMinutes)
	}
	return out
}

// conflictFilteredBeginnings removes, from every non-inserted activity's
// static candidate set, every beginning that would overlap an
// already-inserted incompatible activity (§4.6 step 1), using the
// "duration offset" trick: b overlaps [j.beg, j.end) iff
// b in [j.beg - duration + step, j.end).
func conflictFilteredBeginnings(static []StaticData, inserted []int, stepMinutes int) [][]int {
	nInserted := len(inserted)
	out := make([][]int, len(static)-nInserted)
	for i := nInserted; i < len(static); i++ {
		sd := static[i]
		remaining := make(map[int]struct{}, len(sd.BeginningsMinutesSorted))
		for _, b := range sd.BeginningsMinutesSorted {
			remaining[b] = struct{}{}
		}
		offsetCheckBeforeActivity := sd.DurationMinutes - stepMinutes

		for _, idx := range sd.IncompatibleIndexes {
			if idx >= nInserted {
				continue // only already-inserted incompatibles constrain this step
			}
			incompatibleBeginning := inserted[idx]
			incompatibleEnd := incompatibleBeginning + static[idx].DurationMinutes

			lo := incompatibleBeginning - offsetCheckBeforeActivity
			if lo < 0 {
				lo = 0
			}
			for _, b := range sd.BeginningsMinutesSorted {
				if b >= lo && b < incompatibleEnd {
					delete(remaining, b)
				}
			}
		}

		sorted := make([]int, 0, len(remaining))
		for b := range remaining {
			sorted = append(sorted, b)
		}
		sort.Ints(sorted)
		out[i-nInserted] = sorted
	}
	return out
}

// countInRange returns the number of elements of the ascending-sorted slice
// sorted that lie in [lo, hi).
func countInRange(sorted []int, lo, hi int) int {
	if hi <= lo {
		return 0
	}
	from := sort.SearchInts(sorted, lo)
	to := sort.SearchInts(sorted, hi)
	if to < from {
		return 0
	}
	return to - from
}

// mustTimeFromMinutes converts a minute offset known to be canonical (it
// came from the possible-beginnings kernel, which only ever produces
// step-aligned, in-range offsets) into a timeutil.Time.
func mustTimeFromMinutes(totalMinutes int) timeutil.Time {
	t, err := timeutil.FromTotalMinutes(totalMinutes)
	if err != nil {
		panic(err)
	}
	return t
}

func costForActivity(static []StaticData, inserted []int, filtered [][]int, indexOfActivity, stepMinutes int) []domain.InsertionCost {
	nInserted := len(inserted)
	sd := static[indexOfActivity]
	legal := filtered[indexOfActivity-nInserted]

	results := make([]domain.InsertionCost, 0, len(legal))

	for _, beginning := range legal {
		end := beginning + sd.DurationMinutes
		var cost uint64
		blocked := false

		for _, k := range sd.IncompatibleIndexes {
			if k < nInserted {
				continue // only non-inserted incompatibles accrue a cost here
			}
			kStatic := static[k]
			kFiltered := filtered[k-nInserted]
			offsetCheckBeforeK := kStatic.DurationMinutes - stepMinutes

			lo := beginning - offsetCheckBeforeK
			if lo < 0 {
				lo = 0
			}
			blockedCount := countInRange(kFiltered, lo, end)
			remainingForK := len(kFiltered) - blockedCount
			if remainingForK == 0 {
				blocked = true
				break
			}
			degreeK := uint64(len(kStatic.IncompatibleIndexes))
			cost += CostScale * uint64(blockedCount) * degreeK / uint64(remainingForK)
		}

		if !blocked {
			results = append(results, domain.InsertionCost{Cost: cost, Beginning: mustTimeFromMinutes(beginning)})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Cost != results[j].Cost {
			return results[i].Cost < results[j].Cost
		}
		return results[i].Beginning.Before(results[j].Beginning)
	})
	return results
}
