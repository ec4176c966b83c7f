// Package beginnings implements the possible-beginnings kernel (§4.5):
// given one participant's sorted work intervals and the durations of every
// activity they take part in, it returns, per distinct duration, the set of
// offsets at which an activity of that duration could start while every
// other duration still fits somewhere in the remaining work-hour pieces.
//
// Ported from the original's felix-computation-api/src/find_possible_beginnings.rs:
// subset-sum enumeration over duration indexes, slack-budget pruning, and
// midpoint symmetry per work interval.
package beginnings

import (
	"fmt"
	"sort"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// MaxDurations is the default safety bound on the number of activity
// durations one participant may have before the 2^n subset enumeration is
// refused (ErrTooManyActivities), used when a caller passes maxDurations <= 0.
// 20 activities is already generous for a single person's schedule and
// yields at most ~1M subsets. config.MaxDurationsPerParticipant overrides
// this at the Worker boundary.
const MaxDurations = 20

// WorkInterval is a work-hour interval expressed in minutes, decoupled from
// timeutil.Time so the kernel stays a pure function of integers.
type WorkInterval struct {
	BeginningMinutes int
	EndMinutes       int
}

func (w WorkInterval) durationMinutes() int { return w.EndMinutes - w.BeginningMinutes }

// FromIntervals converts TimeIntervals into minute-based WorkIntervals.
func FromIntervals(intervals []timeutil.TimeInterval) []WorkInterval {
	out := make([]WorkInterval, len(intervals))
	for i, iv := range intervals {
		out[i] = WorkInterval{BeginningMinutes: iv.Beginning().TotalMinutes(), EndMinutes: iv.End().TotalMinutes()}
	}
	return out
}

// sumAndIndexes is one subset's total duration and the set of duration
// indexes it is made of (ported from SumAndDurationIndexes).
type sumAndIndexes struct {
	sumMinutes int
	indexes    map[int]struct{}
}

// Compute returns, for each distinct value in durationsMinutes, the set of
// minute offsets (relative to midnight) at which an activity of that
// duration can start inside workIntervals while the remaining durations
// still fit. stepMinutes is the quantum (timeutil.StepMinutes in practice).
// maxDurations bounds the 2^n subset enumeration (ErrTooManyActivities); a
// value <= 0 falls back to MaxDurations.
func Compute(workIntervals []WorkInterval, durationsMinutes []int, stepMinutes, maxDurations int) (map[int]map[int]struct{}, error) {
	if maxDurations <= 0 {
		maxDurations = MaxDurations
	}
	if len(durationsMinutes) > maxDurations {
		return nil, fmt.Errorf("%w: %d durations exceeds the safety bound of %d", domain.ErrTooManyActivities, len(durationsMinutes), maxDurations)
	}

	result := make(map[int]map[int]struct{})
	if len(durationsMinutes) == 0 {
		return result, nil
	}

	sorted := append([]int(nil), durationsMinutes...)
	sort.Ints(sorted)

	allSums := computeAllSums(sorted)

	totalWork := 0
	for _, w := range workIntervals {
		totalWork += w.durationMinutes()
	}
	totalDurations := 0
	for _, d := range sorted {
		totalDurations += d
	}
	slackBudget := totalWork - totalDurations
	if slackBudget < 0 {
		// Infeasible: every duration's result set is empty.
		for _, d := range sorted {
			result[d] = map[int]struct{}{}
		}
		return result, nil
	}

	checked := make(map[int]struct{})
	for durationIndex, duration := range sorted {
		if _, done := checked[duration]; done {
			continue
		}
		checked[duration] = struct{}{}

		possible := make(map[int]struct{})
		for wi, w := range workIntervals {
			if duration > w.durationMinutes() {
				// The activity cannot physically fit inside this interval at
				// any offset, regardless of how the remaining durations
				// distribute; skip it rather than let the subset-sum check
				// below short-circuit on this duration's own index.
				continue
			}
			lastOffsetToCheck := (w.durationMinutes() - duration) / 2
			for offset := 0; offset <= lastOffsetToCheck; offset += stepMinutes {
				pieces := piecesAfterRemoving(workIntervals, wi, duration, offset)
				if canFit(len(sorted), allSums, pieces, slackBudget, map[int]struct{}{durationIndex: {}}) {
					possible[w.BeginningMinutes+offset] = struct{}{}
					possible[w.EndMinutes-offset-duration] = struct{}{}
				}
			}
		}
		result[duration] = possible
	}
	return result, nil
}

// piecesAfterRemoving returns the durations of every work-interval piece
// that remains once an activity of the given duration is placed at offset
// minutes into work interval wi (splitting it into a before-piece, if any,
// and an after-piece), sorted ascending (can_fit_in_schedule pops from the
// end, i.e. biggest first).
func piecesAfterRemoving(workIntervals []WorkInterval, wi int, duration, offset int) []int {
	pieces := make([]int, 0, len(workIntervals)+1)
	for i, w := range workIntervals {
		if i == wi {
			remaining := w.durationMinutes() - duration - offset
			if remaining > 0 {
				pieces = append(pieces, remaining)
			}
			if offset != 0 {
				pieces = append(pieces, offset)
			}
			continue
		}
		pieces = append(pieces, w.durationMinutes())
	}
	sort.Ints(pieces)
	return pieces
}

// computeAllSums enumerates every subset of durations (2^n of them) and its
// sum, ported from compute_all_sums. The result is sorted descending by sum,
// the invariant canFit relies on for early-stop pruning.
func computeAllSums(durations []int) []sumAndIndexes {
	setSize := 1 << len(durations)
	res := make([]sumAndIndexes, setSize)
	for counter := 0; counter < setSize; counter++ {
		indexes := make(map[int]struct{})
		sum := 0
		for durationIndex, d := range durations {
			if counter&(1<<uint(durationIndex)) == 0 {
				indexes[durationIndex] = struct{}{}
				sum += d
			}
		}
		res[counter] = sumAndIndexes{sumMinutes: sum, indexes: indexes}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].sumMinutes > res[j].sumMinutes })
	return res
}

// canFit reports whether the given work-interval piece durations can
// accommodate every duration index not already in usedIndexes, ported from
// can_fit_in_schedule. pieces is consumed from the end (largest first,
// since piecesAfterRemoving sorts ascending).
func canFit(nDurations int, allSums []sumAndIndexes, pieces []int, slackBudget int, usedIndexes map[int]struct{}) bool {
	if len(usedIndexes) == nDurations {
		return true
	}
	if len(pieces) == 0 {
		return false
	}

	pieceDuration := pieces[len(pieces)-1]
	rest := pieces[:len(pieces)-1]

	minAcceptableSum := pieceDuration - slackBudget

	for _, candidate := range allSums {
		if candidate.sumMinutes > pieceDuration {
			continue
		}
		if candidate.sumMinutes < minAcceptableSum {
			// Sums are visited in descending order (computeAllSums sorts
			// them); once we drop below the acceptable floor, every
			// remaining candidate wastes too much slack.
			break
		}
		if intersects(candidate.indexes, usedIndexes) {
			continue
		}

		newUsed := unionIndexes(usedIndexes, candidate.indexes)
		newSlack := slackBudget - (pieceDuration - candidate.sumMinutes)
		if canFit(nDurations, allSums, rest, newSlack, newUsed) {
			return true
		}
	}
	return false
}

func intersects(a, b map[int]struct{}) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return true
		}
	}
	return false
}

func unionIndexes(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// SortedOffsets returns offsets as an ascending sorted slice.
func SortedOffsets(offsets map[int]struct{}) []int {
	out := make([]int, 0, len(offsets))
	for o := range offsets {
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}
