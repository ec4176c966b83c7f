package collection

import (
	"fmt"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// Add creates a new activity with a freshly assigned id (§4.4 "Identifier
// assignment"): the smallest non-negative integer not currently in use.
// A brand-new activity has zero duration and no participants, so I8/I9 make
// its insertion costs Some([]) from the start.
func (c *Collection) Add(name string) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.nextFreeID()
	if err != nil {
		return domain.Snapshot{}, err
	}
	a := domain.NewActivity(id, name)
	a.Compute.InsertionCosts = []domain.InsertionCost{}
	c.activities[id] = a
	a.AddDomainEvent(domain.NewActivityAddedEvent(id, name))
	return a.Snapshot(), nil
}

// nextFreeID returns the smallest non-negative integer not currently used
// as an ActivityID, failing ErrIDExhausted once all 65536 are taken.
// Callers must already hold c.mu.
func (c *Collection) nextFreeID() (domain.ActivityID, error) {
	if len(c.activities) >= 1<<16 {
		return 0, domain.ErrIDExhausted
	}
	used := make([]bool, len(c.activities)+1)
	for id := range c.activities {
		if int(id) < len(used) {
			used[id] = true
		}
	}
	for i, taken := range used {
		if !taken {
			return domain.ActivityID(i), nil
		}
	}
	return domain.ActivityID(len(c.activities)), nil
}

// Remove deletes an activity, recomputing the incompatibility graph and
// invalidating every activity that shared a participant with it.
func (c *Collection) Remove(id domain.ActivityID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	affected := make([]domain.ActivityID, 0, len(a.Compute.Incompatibles))
	for other := range a.Compute.Incompatibles {
		affected = append(affected, other)
	}
	delete(c.activities, id)
	delete(c.removedByDurationIncrease, id)
	delete(c.generation, id)

	c.recomputeIncompatibilities()
	for _, other := range affected {
		c.invalidateWithIncompatibles(other)
	}
	c.publish(domain.NewActivityRemovedEvent(id))
	return nil
}

// SetName renames an activity. Pure metadata: never invalidates caches.
func (c *Collection) SetName(id domain.ActivityID, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Meta.Name = name
	a.AddDomainEvent(domain.NewActivityRenamedEvent(id, name))
	return nil
}

// SetColor recolours an activity. Pure metadata: never invalidates caches.
func (c *Collection) SetColor(id domain.ActivityID, color domain.RGBA) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Meta.Color.Equals(color) {
		return nil
	}
	a.Meta.Color = color
	a.AddDomainEvent(domain.NewActivityRecoloredEvent(id, color))
	return nil
}

// checkFreeTime enforces I4 for a set of candidate new participants: each
// one's total committed duration (every activity that contains them,
// excluding `excludeID`, plus durationMinutes) must not exceed their
// effective work-hour capacity.
func (c *Collection) checkFreeTime(excludeID domain.ActivityID, durationMinutes int, candidates map[string]struct{}) error {
	for name := range candidates {
		intervals, err := c.entities.EffectiveIntervals(name, c.globalHours)
		if err != nil {
			return err
		}
		capacity := 0
		for _, iv := range intervals {
			capacity += iv.DurationMinutes()
		}
		used := durationMinutes
		for otherID, other := range c.activities {
			if otherID == excludeID {
				continue
			}
			if c.isEffectiveParticipant(other, name) {
				used += other.Compute.DurationMinutes
			}
		}
		if used > capacity {
			return fmt.Errorf("%w: %q would need %dmin but only has %dmin of effective work hours", domain.ErrNotEnoughTime, name, used, capacity)
		}
	}
	return nil
}

// AddEntityToActivity adds entity e as a direct participant of activity id (§4.4).
func (c *Collection) AddEntityToActivity(id domain.ActivityID, entityName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !c.entities.Has(entityName) {
		return domain.ErrNotFound
	}
	if _, ok := a.Meta.EntityNames[entityName]; ok {
		return domain.ErrAlreadyParticipating
	}
	if !c.isEffectiveParticipant(a, entityName) {
		if err := c.checkFreeTime(id, a.Compute.DurationMinutes, map[string]struct{}{entityName: {}}); err != nil {
			return err
		}
	}

	before := copyIDSet(a.Compute.Incompatibles)
	a.Meta.EntityNames[entityName] = struct{}{}
	c.recomputeIncompatibilities()
	c.invalidateUnion(id, before, a.Compute.Incompatibles)
	a.AddDomainEvent(domain.NewEntityAddedToActivityEvent(id, entityName))
	return nil
}

// RemoveEntityFromActivity removes entity e from activity id's direct participants.
func (c *Collection) RemoveEntityFromActivity(id domain.ActivityID, entityName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := a.Meta.EntityNames[entityName]; !ok {
		return domain.ErrNotParticipating
	}

	before := copyIDSet(a.Compute.Incompatibles)
	delete(a.Meta.EntityNames, entityName)
	c.recomputeIncompatibilities()
	c.invalidateUnion(id, before, a.Compute.Incompatibles)

	if !a.HasParticipants(c.groupHasMembers) {
		a.Compute.InsertionInterval = nil
		a.Compute.InsertionCosts = []domain.InsertionCost{}
	}
	return nil
}

// AddGroupToActivity adds group g as a participant group of activity id, bringing in
// every current member as an effective participant.
func (c *Collection) AddGroupToActivity(id domain.ActivityID, groupName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	g, err := c.groups.Get(groupName)
	if err != nil {
		return err
	}
	if _, ok := a.Meta.GroupNames[groupName]; ok {
		return domain.ErrAlreadyParticipating
	}

	newParticipants := make(map[string]struct{})
	for _, member := range g.Members() {
		if !c.isEffectiveParticipant(a, member) {
			newParticipants[member] = struct{}{}
		}
	}
	if err := c.checkFreeTime(id, a.Compute.DurationMinutes, newParticipants); err != nil {
		return err
	}

	before := copyIDSet(a.Compute.Incompatibles)
	a.Meta.GroupNames[groupName] = struct{}{}
	c.recomputeIncompatibilities()
	c.invalidateUnion(id, before, a.Compute.Incompatibles)
	for member := range newParticipants {
		a.AddDomainEvent(domain.NewEntityAddedToActivityEvent(id, member))
	}
	return nil
}

// RemoveGroupFromActivity removes group g from activity id's participant groups. Any
// entity that participated only through g stops being an effective
// participant (§4.3).
func (c *Collection) RemoveGroupFromActivity(id domain.ActivityID, groupName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := a.Meta.GroupNames[groupName]; !ok {
		return domain.ErrNotParticipating
	}

	before := copyIDSet(a.Compute.Incompatibles)
	delete(a.Meta.GroupNames, groupName)
	c.recomputeIncompatibilities()
	c.invalidateUnion(id, before, a.Compute.Incompatibles)

	if !a.HasParticipants(c.groupHasMembers) {
		a.Compute.InsertionInterval = nil
		a.Compute.InsertionCosts = []domain.InsertionCost{}
	}
	return nil
}

// SetDuration changes an activity's duration (§4.4). requireNonZero
// lets a caller (the façade, on the UI's behalf) reject duration 0; the
// collection itself always accepts it (policy note).
func (c *Collection) SetDuration(id domain.ActivityID, durationMinutes int, requireNonZero bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	if durationMinutes == 0 && requireNonZero {
		return domain.ErrDurationTooShort
	}

	oldDuration := a.Compute.DurationMinutes
	growing := durationMinutes > oldDuration
	if growing {
		if err := c.checkFreeTime(id, durationMinutes, c.effectiveParticipants(a)); err != nil {
			return err
		}
	}

	wasInserted := a.IsInserted()
	var oldBeginning timeutil.Time
	if wasInserted {
		oldBeginning = a.Compute.InsertionInterval.Beginning()
	}

	a.Compute.DurationMinutes = durationMinutes

	switch {
	case durationMinutes == 0:
		a.Compute.InsertionInterval = nil
		a.Compute.InsertionCosts = []domain.InsertionCost{}
	case growing && wasInserted:
		a.Compute.InsertionInterval = nil
		c.removedByDurationIncrease[id] = oldBeginning
	case !growing && wasInserted:
		newEnd, err := oldBeginning.AddMinutes(durationMinutes)
		if err != nil {
			return err
		}
		iv, err := timeutil.NewInterval(oldBeginning, newEnd)
		if err != nil {
			return err
		}
		a.Compute.InsertionInterval = &iv
	}

	c.invalidateWithIncompatibles(id)
	a.AddDomainEvent(domain.NewDurationChangedEvent(id, durationMinutes))
	return nil
}

// Insert places activity id at beginningMinutes, or clears its placement if
// nil (§4.4).
func (c *Collection) Insert(id domain.ActivityID, beginningMinutes *int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[id]
	if !ok {
		return domain.ErrNotFound
	}

	if beginningMinutes == nil {
		a.Compute.InsertionInterval = nil
		c.invalidateWithIncompatibles(id)
		a.AddDomainEvent(domain.NewActivityInsertedEvent(id, nil))
		return nil
	}

	if a.Compute.InsertionCosts == nil {
		return domain.ErrNotComputedYet
	}
	found := false
	for _, ic := range a.Compute.InsertionCosts {
		if ic.Beginning.TotalMinutes() == *beginningMinutes {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrInsertionNotAvailable
	}

	begin, err := timeutil.FromTotalMinutes(*beginningMinutes)
	if err != nil {
		return err
	}
	end, err := begin.AddMinutes(a.Compute.DurationMinutes)
	if err != nil {
		return err
	}
	iv, err := timeutil.NewInterval(begin, end)
	if err != nil {
		return err
	}
	a.Compute.InsertionInterval = &iv
	delete(c.removedByDurationIncrease, id)
	c.invalidateWithIncompatibles(id)

	minutes := *beginningMinutes
	a.AddDomainEvent(domain.NewActivityInsertedEvent(id, &minutes))
	return nil
}

// ReinsertClosestTo re-inserts an activity that was evicted by a duration
// increase (§4), picking whichever cached candidate beginning is
// closest to the beginning it had before eviction. It is a no-op, returning
// false, if the activity was not evicted or its cost cache is not ready.
func (c *Collection) ReinsertClosestTo(id domain.ActivityID) (bool, error) {
	c.mu.Lock()
	oldBeginning, evicted := c.removedByDurationIncrease[id]
	a, ok := c.activities[id]
	if !ok {
		c.mu.Unlock()
		return false, domain.ErrNotFound
	}
	if !evicted || a.Compute.InsertionCosts == nil {
		c.mu.Unlock()
		return false, nil
	}
	if len(a.Compute.InsertionCosts) == 0 {
		delete(c.removedByDurationIncrease, id)
		c.mu.Unlock()
		return false, nil
	}
	best := a.Compute.InsertionCosts[0].Beginning
	bestDistance := absMinutes(best.TotalMinutes() - oldBeginning.TotalMinutes())
	for _, ic := range a.Compute.InsertionCosts[1:] {
		d := absMinutes(ic.Beginning.TotalMinutes() - oldBeginning.TotalMinutes())
		if d < bestDistance {
			best = ic.Beginning
			bestDistance = d
		}
	}
	c.mu.Unlock()

	minutes := best.TotalMinutes()
	return true, c.Insert(id, &minutes)
}

func absMinutes(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func copyIDSet(m map[domain.ActivityID]struct{}) map[domain.ActivityID]struct{} {
	out := make(map[domain.ActivityID]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

// invalidateUnion invalidates id plus every id present in either before or
// after (§4.4: "every activity sharing a participant with it before or
// after the change").
func (c *Collection) invalidateUnion(id domain.ActivityID, before, after map[domain.ActivityID]struct{}) {
	c.invalidate(id)
	seen := map[domain.ActivityID]struct{}{id: {}}
	for other := range before {
		if _, done := seen[other]; !done {
			seen[other] = struct{}{}
			c.invalidate(other)
		}
	}
	for other := range after {
		if _, done := seen[other]; !done {
			seen[other] = struct{}{}
			c.invalidate(other)
		}
	}
}
