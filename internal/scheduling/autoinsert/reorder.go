// Package autoinsert implements the whole-schedule auto-insertion search of
// §4.8: a best-first branch-and-bound search, keyed by accumulated
// cost, that assigns one legal beginning to every not-yet-inserted activity.
//
// The freedom-based reordering heuristic is ported from the original
// frontend's activity ordering (§4 "Representation"): activities
// are visited in ascending order of |insertion_costs| / incompatibility
// degree, so the most-constrained activities are decided first and prune the
// search tree earliest.
package autoinsert

import (
	"sort"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
)

// FreedomInput is one not-yet-inserted activity's data for Reorder.
type FreedomInput struct {
	ActivityID            domain.ActivityID
	CandidateCount        int
	IncompatibilityDegree int
}

// Reorder returns activity ids sorted by ascending freedom
// (CandidateCount / (IncompatibilityDegree+1)), ties broken by id for a
// deterministic search order.
func Reorder(items []FreedomInput) []domain.ActivityID {
	sorted := append([]FreedomInput(nil), items...)
	sort.Slice(sorted, func(i, j int) bool {
		fi, fj := freedom(sorted[i]), freedom(sorted[j])
		if fi != fj {
			return fi < fj
		}
		return sorted[i].ActivityID < sorted[j].ActivityID
	})
	out := make([]domain.ActivityID, len(sorted))
	for i, s := range sorted {
		out[i] = s.ActivityID
	}
	return out
}

func freedom(f FreedomInput) float64 {
	return float64(f.CandidateCount) / float64(f.IncompatibilityDegree+1)
}
