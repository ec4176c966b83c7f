package collection

import (
	"sort"

	"github.com/adrienmarchand/schedcore/internal/scheduling/beginnings"
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/scheduling/insertioncost"
)

// ParticipantDurations returns the durations, in minutes, of every activity
// that effectively contains name (§4.5's per-participant input).
func (c *Collection) ParticipantDurations(name string) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, 0)
	for _, a := range c.activities {
		if c.isEffectiveParticipant(a, name) {
			out = append(out, a.Compute.DurationMinutes)
		}
	}
	return out
}

// ParticipantWorkIntervals returns name's effective work-hour intervals in
// beginnings-kernel form.
func (c *Collection) ParticipantWorkIntervals(name string) ([]beginnings.WorkInterval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	intervals, err := c.entities.EffectiveIntervals(name, c.globalHours)
	if err != nil {
		return nil, err
	}
	return beginnings.FromIntervals(intervals), nil
}

// RecomputeInput is the snapshot a worker tick needs to recompute one
// activity's possible beginnings (§4.7).
type RecomputeInput struct {
	ID              domain.ActivityID
	Generation      uint64
	DurationMinutes int
	Participants    []string
}

// RecomputeInputFor snapshots what the worker needs to recompute id, along
// with the generation current at the time of the snapshot.
func (c *Collection) RecomputeInputFor(id domain.ActivityID) (RecomputeInput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.activities[id]
	if !ok {
		return RecomputeInput{}, domain.ErrNotFound
	}
	participants := make([]string, 0)
	for name := range c.effectiveParticipants(a) {
		participants = append(participants, name)
	}
	sort.Strings(participants)
	return RecomputeInput{
		ID:              id,
		Generation:      c.generation[id],
		DurationMinutes: a.Compute.DurationMinutes,
		Participants:    participants,
	}, nil
}

// SetPossibleBeginnings records offsets as id's conflict-free candidate
// beginnings, provided id's generation has not moved since snapshotGeneration
// was captured (§4.7 step 6 staleness rule). Returns false if the write
// was discarded as stale or id no longer exists.
func (c *Collection) SetPossibleBeginnings(id domain.ActivityID, snapshotGeneration uint64, offsets []int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation[id] != snapshotGeneration {
		return false
	}
	a, ok := c.activities[id]
	if !ok {
		return false
	}
	a.Compute.PossibleBeginningsIfNoConflict = offsets
	return true
}

// InsertionCostStaticData builds the insertioncost package's parallel-array
// input across every activity (inserted ones first, §4.6), the index of
// id within that array, and the generation current at snapshot time so the
// caller can detect a stale write-back. ok is false if id no longer exists.
func (c *Collection) InsertionCostStaticData(id domain.ActivityID) (static []insertioncost.StaticData, insertedBeginningsMinutes []int, indexOfActivity int, generation uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.activities[id]; !exists {
		return nil, nil, 0, 0, false
	}

	ids := make([]domain.ActivityID, 0, len(c.activities))
	for aid := range c.activities {
		ids = append(ids, aid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	inserted := make([]domain.ActivityID, 0)
	notInserted := make([]domain.ActivityID, 0)
	for _, aid := range ids {
		if c.activities[aid].IsInserted() {
			inserted = append(inserted, aid)
		} else {
			notInserted = append(notInserted, aid)
		}
	}
	ordered := append(inserted, notInserted...)

	index := make(map[domain.ActivityID]int, len(ordered))
	for i, aid := range ordered {
		index[aid] = i
	}

	static = make([]insertioncost.StaticData, len(ordered))
	insertedBeginningsMinutes = make([]int, len(inserted))
	for i, aid := range ordered {
		a := c.activities[aid]
		incompatibleIndexes := make([]int, 0, len(a.Compute.Incompatibles))
		for other := range a.Compute.Incompatibles {
			if idx, ok := index[other]; ok {
				incompatibleIndexes = append(incompatibleIndexes, idx)
			}
		}
		sort.Ints(incompatibleIndexes)
		beginningsSorted := append([]int(nil), a.Compute.PossibleBeginningsIfNoConflict...)
		sort.Ints(beginningsSorted)
		static[i] = insertioncost.StaticData{
			BeginningsMinutesSorted: beginningsSorted,
			IncompatibleIndexes:     incompatibleIndexes,
			DurationMinutes:         a.Compute.DurationMinutes,
		}
		if i < len(inserted) {
			insertedBeginningsMinutes[i] = a.Compute.InsertionInterval.Beginning().TotalMinutes()
		}
	}

	return static, insertedBeginningsMinutes, index[id], c.generation[id], true
}

// ApplyInsertionCosts writes back the insertion costs computed for id,
// provided its generation has not moved since snapshotGeneration was
// captured. Returns false if discarded as stale or id no longer exists.
func (c *Collection) ApplyInsertionCosts(id domain.ActivityID, snapshotGeneration uint64, costs []domain.InsertionCost) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation[id] != snapshotGeneration {
		return false
	}
	a, ok := c.activities[id]
	if !ok {
		return false
	}
	if costs == nil {
		costs = []domain.InsertionCost{}
	}
	a.Compute.InsertionCosts = costs
	return true
}
