package collection

import "github.com/adrienmarchand/schedcore/internal/scheduling/domain"

// recomputeIncompatibilities rebuilds every activity's incompatibility set
// from scratch (§4.4 "Incompatibility graph"): O(n^2) set-intersection
// over participant-entity sets, acceptable at the scale this engine targets
// (tens to low hundreds of activities). Callers must already hold c.mu.
func (c *Collection) recomputeIncompatibilities() {
	participants := make(map[domain.ActivityID]map[string]struct{}, len(c.activities))
	for id, a := range c.activities {
		participants[id] = c.effectiveParticipants(a)
	}

	for idA, a := range c.activities {
		next := make(map[domain.ActivityID]struct{})
		for idB, b := range c.activities {
			if idA == idB {
				continue
			}
			if intersects(participants[idA], participants[idB]) {
				next[idB] = struct{}{}
			}
			_ = b
		}
		a.Compute.Incompatibles = next
	}
}

func intersects(a, b map[string]struct{}) bool {
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
