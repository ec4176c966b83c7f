package collection

import (
	"sort"

	"github.com/adrienmarchand/schedcore/internal/scheduling/autoinsert"
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
)

// AutoInsertSnapshot builds the best-first search input of §4.8: every
// not-yet-inserted activity must already have its insertion costs computed,
// else ErrNotComputedYet. The returned orderedIDs gives the ActivityID for
// each position in the search input's Items, for translating a Result back
// into insert(id, beginning) calls.
func (c *Collection) AutoInsertSnapshot() (input autoinsert.Input, orderedIDs []domain.ActivityID, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	notInserted := make([]domain.ActivityID, 0)
	for id, a := range c.activities {
		if a.IsInserted() {
			continue
		}
		if a.Compute.InsertionCosts == nil {
			return autoinsert.Input{}, nil, domain.ErrNotComputedYet
		}
		notInserted = append(notInserted, id)
	}
	sort.Slice(notInserted, func(i, j int) bool { return notInserted[i] < notInserted[j] })

	freedomInputs := make([]autoinsert.FreedomInput, 0, len(notInserted))
	for _, id := range notInserted {
		a := c.activities[id]
		freedomInputs = append(freedomInputs, autoinsert.FreedomInput{
			ActivityID:            id,
			CandidateCount:        len(a.Compute.InsertionCosts),
			IncompatibilityDegree: len(a.Compute.Incompatibles),
		})
	}
	orderedIDs = autoinsert.Reorder(freedomInputs)

	position := make(map[domain.ActivityID]int, len(orderedIDs))
	for i, id := range orderedIDs {
		position[id] = i
	}

	items := make([]autoinsert.ActivityInput, len(orderedIDs))
	for i, id := range orderedIDs {
		a := c.activities[id]
		incompatibleItemIndexes := make([]int, 0)
		for other := range a.Compute.Incompatibles {
			if pos, ok := position[other]; ok {
				incompatibleItemIndexes = append(incompatibleItemIndexes, pos)
			}
		}
		sort.Ints(incompatibleItemIndexes)
		candidates := append([]domain.InsertionCost(nil), a.Compute.InsertionCosts...)
		items[i] = autoinsert.ActivityInput{
			ActivityID:              id,
			DurationMinutes:         a.Compute.DurationMinutes,
			IncompatibleItemIndexes: incompatibleItemIndexes,
			Candidates:              candidates,
		}
	}

	return autoinsert.Input{Items: items}, orderedIDs, nil
}

// ApplyAutoInsertResult inserts each activity in orderedIDs at the matching
// beginning in beginningsMinutes (§4.8 "Applying the result"). It stops
// and returns the first error encountered, leaving earlier insertions in
// place.
func (c *Collection) ApplyAutoInsertResult(orderedIDs []domain.ActivityID, beginningsMinutes []int) error {
	n := len(beginningsMinutes)
	if len(orderedIDs) < n {
		n = len(orderedIDs)
	}
	// Each Insert clears its incompatibles' insertion costs, so keep the
	// costs every activity had before the first insertion and restore them
	// where they have not been recomputed yet.
	c.mu.Lock()
	saved := make([][]domain.InsertionCost, n)
	for i := 0; i < n; i++ {
		if a, ok := c.activities[orderedIDs[i]]; ok {
			saved[i] = a.Compute.InsertionCosts
		}
	}
	c.mu.Unlock()
	for i := 0; i < n; i++ {
		c.mu.Lock()
		if a, ok := c.activities[orderedIDs[i]]; ok && a.Compute.InsertionCosts == nil {
			a.Compute.InsertionCosts = saved[i]
		}
		c.mu.Unlock()
		b := beginningsMinutes[i]
		if err := c.Insert(orderedIDs[i], &b); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.publish(domain.NewAutoInsertionDoneEvent(n == len(orderedIDs)))
	c.mu.Unlock()
	return nil
}
