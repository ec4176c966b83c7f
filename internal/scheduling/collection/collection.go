// Package collection implements the activity collection of §4.4: the
// single writer of activity state, the entity and group stores it cascades
// mutations into, and the incompatibility graph.
package collection

import (
	"sort"
	"sync"

	sharedDomain "github.com/adrienmarchand/schedcore/internal/shared/domain"
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
	"github.com/adrienmarchand/schedcore/internal/workhours"
)

// Notifier is how the collection tells the computation worker that an
// activity's cache went stale and needs recomputing (§4.7 queueing
// rules). The worker package supplies the concrete implementation; the
// collection only depends on this narrow interface to avoid an import cycle.
type Notifier interface {
	Enqueue(id domain.ActivityID)
}

type noopNotifier struct{}

func (noopNotifier) Enqueue(domain.ActivityID) {}

// Collection owns every activity, the entity and group stores, and the
// global work-hours store. It is wrapped in a single mutex per §5: the
// control thread and the computation worker contend for short critical
// sections only.
type Collection struct {
	mu sync.Mutex

	entities    *domain.EntityStore
	groups      *domain.GroupStore
	globalHours *workhours.Store

	activities map[domain.ActivityID]*domain.Activity
	nextHint   domain.ActivityID

	// removedByDurationIncrease records the beginning an activity had
	// before a duration increase forced its removal (§4.4 policy note;
	// §4 "removed_by_duration_increase").
	removedByDurationIncrease map[domain.ActivityID]timeutil.Time

	// generation is bumped every time an activity's inputs change in a way
	// that could affect its insertion costs; the worker uses it to detect
	// staleness (§4.7 step 6).
	generation map[domain.ActivityID]uint64

	notifier Notifier

	// pendingEvents holds domain events not tied to a single Activity
	// aggregate (group/work-hours changes); activity-scoped events live on
	// the Activity itself via sharedDomain.AggregateRoot.
	pendingEvents []sharedDomain.DomainEvent
}

// New creates an empty Collection. notifier may be nil, in which case
// enqueueing is a no-op (useful for tests that only exercise the pure
// mutation logic).
func New(notifier Notifier) *Collection {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	c := &Collection{
		entities:                  domain.NewEntityStore(),
		groups:                    domain.NewGroupStore(),
		activities:                make(map[domain.ActivityID]*domain.Activity),
		removedByDurationIncrease: make(map[domain.ActivityID]timeutil.Time),
		generation:                make(map[domain.ActivityID]uint64),
		notifier:                  notifier,
	}
	c.globalHours = workhours.New(c.anyActivityInserted)
	return c
}

// anyActivityInserted backs the work-hours lock of §4.2. Callers must
// already hold c.mu.
func (c *Collection) anyActivityInserted() bool {
	for _, a := range c.activities {
		if a.IsInserted() {
			return true
		}
	}
	return false
}

// GlobalWorkHours returns the store backing the shared work hours.
func (c *Collection) GlobalWorkHours() *workhours.Store { return c.globalHours }

// Generation returns the current staleness generation of an activity's
// computation inputs (0 for unknown ids).
func (c *Collection) Generation(id domain.ActivityID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation[id]
}

func (c *Collection) bumpGeneration(id domain.ActivityID) {
	c.generation[id]++
}

// invalidate clears an activity's insertion-cost cache, bumps its
// generation, and enqueues it for recomputation (§4.7 queueing rules).
// Callers must already hold c.mu.
func (c *Collection) invalidate(id domain.ActivityID) {
	if a, ok := c.activities[id]; ok {
		a.Compute.InsertionCosts = nil
	}
	c.bumpGeneration(id)
	c.notifier.Enqueue(id)
}

// invalidateWithIncompatibles invalidates id and every activity currently
// incompatible with it.
func (c *Collection) invalidateWithIncompatibles(id domain.ActivityID) {
	c.invalidate(id)
	if a, ok := c.activities[id]; ok {
		for other := range a.Compute.Incompatibles {
			c.invalidate(other)
		}
	}
}

// DrainEvents returns and clears every pending non-activity-scoped domain
// event, plus every pending event recorded directly on an activity
// aggregate. Intended to be called by the façade right after a mutation, so
// it can publish a consistent batch to the event sink.
func (c *Collection) DrainEvents() []sharedDomain.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := c.pendingEvents
	c.pendingEvents = nil
	for _, a := range c.activities {
		events = append(events, a.DomainEvents()...)
		a.ClearDomainEvents()
	}
	return events
}

func (c *Collection) publish(e sharedDomain.DomainEvent) {
	c.pendingEvents = append(c.pendingEvents, e)
}

// ---- Entity & group read/write operations (§4.3) ----

// AddEntity registers a new entity.
func (c *Collection) AddEntity(name, mail string, sendMail bool) (*domain.Entity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entities.Add(name, mail, sendMail, c.groups.Has, c.anyActivityInserted)
}

// RemoveEntity deletes an entity, cascading the name out of every group and
// every activity's participant set, and clearing the insertion interval of
// any activity thereby left without participants (§4.3).
func (c *Collection) RemoveEntity(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.entities.Remove(name); err != nil {
		return err
	}

	touched := make([]domain.ActivityID, 0)
	for id, a := range c.activities {
		if c.isEffectiveParticipant(a, name) {
			touched = append(touched, id)
		}
	}
	c.groups.RemoveEntityEverywhere(name)
	for _, id := range touched {
		a := c.activities[id]
		delete(a.Meta.EntityNames, name)
		if !a.HasParticipants(c.groupHasMembers) {
			a.Compute.InsertionInterval = nil
			a.Compute.InsertionCosts = []domain.InsertionCost{}
		}
	}
	c.recomputeIncompatibilities()
	for _, id := range touched {
		c.invalidateWithIncompatibles(id)
	}
	return nil
}

// RenameEntity atomically renames an entity, cascading into every group and
// activity that references it.
func (c *Collection) RenameEntity(oldName, newName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.entities.Rename(oldName, newName, c.groups.Has); err != nil {
		return err
	}
	for _, g := range c.groupsByName() {
		if g.Has(oldName) {
			_ = c.groups.RemoveEntity(g.Name(), oldName)
			_ = c.groups.AddEntity(g.Name(), newName)
		}
	}
	for _, a := range c.activities {
		if _, ok := a.Meta.EntityNames[oldName]; ok {
			delete(a.Meta.EntityNames, oldName)
			a.Meta.EntityNames[newName] = struct{}{}
		}
	}
	return nil
}

func (c *Collection) groupsByName() []*domain.Group {
	out := make([]*domain.Group, 0)
	for _, name := range c.groups.SortedNames() {
		g, _ := c.groups.Get(name)
		out = append(out, g)
	}
	return out
}

// EntitiesSorted returns every entity name, ascending.
func (c *Collection) EntitiesSorted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entities.SortedNames()
}

// FreeTimeMinutes implements §6's free_time_of(name): effective work
// minutes minus the sum of durations of every activity containing name,
// floored at 0 (P6).
func (c *Collection) FreeTimeMinutes(name string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freeTimeMinutes(name)
}

func (c *Collection) freeTimeMinutes(name string) (int, error) {
	intervals, err := c.entities.EffectiveIntervals(name, c.globalHours)
	if err != nil {
		return 0, err
	}
	capacity := 0
	for _, iv := range intervals {
		capacity += iv.DurationMinutes()
	}
	used := 0
	for _, a := range c.activities {
		if c.isEffectiveParticipant(a, name) {
			used += a.Compute.DurationMinutes
		}
	}
	if used > capacity {
		return 0, nil
	}
	return capacity - used, nil
}

// WorkHoursOf returns the effective work-hour intervals of an entity.
func (c *Collection) WorkHoursOf(name string) ([]timeutil.TimeInterval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entities.EffectiveIntervals(name, c.globalHours)
}

// AddGroup registers a new group.
func (c *Collection) AddGroup(name string) (*domain.Group, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, err := c.groups.Add(name, c.entities.Has)
	if err != nil {
		return nil, err
	}
	c.publish(domain.NewGroupAddedEvent(name))
	return g, nil
}

// RemoveGroup deletes a group, removing it from every activity that lists
// it; any entity that participated in an activity only through this group
// is removed as an effective participant (§4.3).
func (c *Collection) RemoveGroup(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, err := c.groups.Get(name)
	if err != nil {
		return err
	}
	members := g.Members()
	if err := c.groups.Remove(name); err != nil {
		return err
	}

	touched := make(map[domain.ActivityID]struct{})
	for id, a := range c.activities {
		if _, ok := a.Meta.GroupNames[name]; !ok {
			continue
		}
		delete(a.Meta.GroupNames, name)
		touched[id] = struct{}{}
		for _, member := range members {
			if !c.participatesThroughOtherGroup(a, member, name) && !c.isDirectParticipant(a, member) {
				// nothing to remove: member was never a direct participant
				// and has no other group bringing it in; it simply stops
				// being effective, no map entry to delete.
				_ = member
			}
		}
		if !a.HasParticipants(c.groupHasMembers) {
			a.Compute.InsertionInterval = nil
			a.Compute.InsertionCosts = []domain.InsertionCost{}
		}
	}
	c.recomputeIncompatibilities()
	for id := range touched {
		c.invalidateWithIncompatibles(id)
	}
	c.publish(domain.NewGroupRemovedEvent(name))
	return nil
}

func (c *Collection) groupHasMembers(groupName string) bool {
	g, err := c.groups.Get(groupName)
	if err != nil {
		return false
	}
	return len(g.Members()) > 0
}

func (c *Collection) isDirectParticipant(a *domain.Activity, entityName string) bool {
	_, ok := a.Meta.EntityNames[entityName]
	return ok
}

func (c *Collection) participatesThroughOtherGroup(a *domain.Activity, entityName, excludingGroup string) bool {
	for groupName := range a.Meta.GroupNames {
		if groupName == excludingGroup {
			continue
		}
		g, err := c.groups.Get(groupName)
		if err != nil {
			continue
		}
		if g.Has(entityName) {
			return true
		}
	}
	return false
}

// GroupsSorted returns every group name, ascending.
func (c *Collection) GroupsSorted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groups.SortedNames()
}

// AddEntityToGroup adds an entity to a group's membership, and adds it as an
// effective participant of every activity that lists the group (§4.3).
func (c *Collection) AddEntityToGroup(groupName, entityName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.entities.Has(entityName) {
		return domain.ErrNotFound
	}
	if err := c.groups.AddEntity(groupName, entityName); err != nil {
		return err
	}

	touched := make([]domain.ActivityID, 0)
	for id, a := range c.activities {
		if _, ok := a.Meta.GroupNames[groupName]; ok {
			touched = append(touched, id)
			c.publish(domain.NewEntityAddedToActivityEvent(id, entityName))
		}
	}
	c.recomputeIncompatibilities()
	for _, id := range touched {
		c.invalidateWithIncompatibles(id)
	}
	return nil
}

// RemoveEntityFromGroup removes an entity from a group's membership. Any
// activity in which the entity participated only through this group loses
// it as an effective participant.
func (c *Collection) RemoveEntityFromGroup(groupName, entityName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.groups.RemoveEntity(groupName, entityName); err != nil {
		return err
	}

	touched := make([]domain.ActivityID, 0)
	for id, a := range c.activities {
		if _, ok := a.Meta.GroupNames[groupName]; !ok {
			continue
		}
		if c.isDirectParticipant(a, entityName) {
			continue
		}
		if c.participatesThroughOtherGroup(a, entityName, groupName) {
			continue
		}
		touched = append(touched, id)
		if !a.HasParticipants(c.groupHasMembers) {
			a.Compute.InsertionInterval = nil
			a.Compute.InsertionCosts = []domain.InsertionCost{}
		}
	}
	c.recomputeIncompatibilities()
	for _, id := range touched {
		c.invalidateWithIncompatibles(id)
	}
	return nil
}

// isEffectiveParticipant reports whether entityName participates in a,
// directly or via any of a's groups.
func (c *Collection) isEffectiveParticipant(a *domain.Activity, entityName string) bool {
	if c.isDirectParticipant(a, entityName) {
		return true
	}
	for groupName := range a.Meta.GroupNames {
		g, err := c.groups.Get(groupName)
		if err != nil {
			continue
		}
		if g.Has(entityName) {
			return true
		}
	}
	return false
}

// effectiveParticipants returns the union of a's direct entities and the
// members of every group it lists.
func (c *Collection) effectiveParticipants(a *domain.Activity) map[string]struct{} {
	out := make(map[string]struct{})
	for name := range a.Meta.EntityNames {
		out[name] = struct{}{}
	}
	for groupName := range a.Meta.GroupNames {
		g, err := c.groups.Get(groupName)
		if err != nil {
			continue
		}
		for _, member := range g.Members() {
			out[member] = struct{}{}
		}
	}
	return out
}

// ActivitiesSorted returns every activity's snapshot, sorted by name.
func (c *Collection) ActivitiesSorted() []domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Snapshot, 0, len(c.activities))
	for _, a := range c.activities {
		out = append(out, a.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Activity returns a detached snapshot of one activity.
func (c *Collection) Activity(id domain.ActivityID) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.activities[id]
	if !ok {
		return domain.Snapshot{}, domain.ErrNotFound
	}
	return a.Snapshot(), nil
}

// PossibleInsertionTimesWithCost implements §6's status query: nil means
// not yet computed, an empty slice means no legal beginning.
func (c *Collection) PossibleInsertionTimesWithCost(id domain.ActivityID) ([]domain.InsertionCost, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.activities[id]
	if !ok {
		return nil, false, domain.ErrNotFound
	}
	if a.Compute.InsertionCosts == nil {
		return nil, false, nil
	}
	out := make([]domain.InsertionCost, len(a.Compute.InsertionCosts))
	copy(out, a.Compute.InsertionCosts)
	return out, true, nil
}
