package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

type recordingNotifier struct {
	enqueued []domain.ActivityID
}

func (r *recordingNotifier) Enqueue(id domain.ActivityID) { r.enqueued = append(r.enqueued, id) }

func mustInterval(t *testing.T, bh, bm, eh, em int) timeutil.TimeInterval {
	t.Helper()
	b, err := timeutil.New(bh, bm)
	require.NoError(t, err)
	e, err := timeutil.New(eh, em)
	require.NoError(t, err)
	iv, err := timeutil.NewInterval(b, e)
	require.NoError(t, err)
	return iv
}

func newTestCollection(t *testing.T) *Collection {
	t.Helper()
	return New(&recordingNotifier{})
}

// TestAdd_AssignsSmallestFreeID covers §4.4 "Identifier assignment":
// the smallest non-negative integer not currently in use.
func TestAdd_AssignsSmallestFreeID(t *testing.T) {
	c := newTestCollection(t)

	a0, err := c.Add("A0")
	require.NoError(t, err)
	a1, err := c.Add("A1")
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityID(0), a0.ID)
	assert.Equal(t, domain.ActivityID(1), a1.ID)

	require.NoError(t, c.Remove(a0.ID))
	a2, err := c.Add("A2")
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityID(0), a2.ID, "the hole left by removing id 0 must be reused first")
}

// I8/I9: a freshly added activity has zero duration and no participants, so
// its insertion costs start as Some([]) and it has no insertion interval.
func TestAdd_FreshActivitySatisfiesI8AndI9(t *testing.T) {
	c := newTestCollection(t)
	snap, err := c.Add("A")
	require.NoError(t, err)
	assert.NotNil(t, snap.InsertionCosts)
	assert.Empty(t, snap.InsertionCosts)
	assert.Nil(t, snap.InsertionInterval)
}

// P4: two activities sharing a participant are mutually incompatible.
func TestAddEntity_BuildsIncompatibilityBothWays(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.AddEntity("Paul", "", false)
	require.NoError(t, err)

	a, err := c.Add("A")
	require.NoError(t, err)
	b, err := c.Add("B")
	require.NoError(t, err)

	require.NoError(t, c.AddEntityToActivity(a.ID, "Paul"))
	require.NoError(t, c.AddEntityToActivity(b.ID, "Paul"))

	snapA, err := c.Activity(a.ID)
	require.NoError(t, err)
	snapB, err := c.Activity(b.ID)
	require.NoError(t, err)

	assert.Contains(t, snapA.Incompatibles, b.ID)
	assert.Contains(t, snapB.Incompatibles, a.ID)
}

// P2: a mutation that returns an error leaves the model unchanged.
func TestAddEntity_AlreadyParticipating_LeavesStateUnchanged(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.AddEntity("Paul", "", false)
	require.NoError(t, err)
	a, err := c.Add("A")
	require.NoError(t, err)
	require.NoError(t, c.AddEntityToActivity(a.ID, "Paul"))

	before, err := c.Activity(a.ID)
	require.NoError(t, err)

	err = c.AddEntityToActivity(a.ID, "Paul")
	require.ErrorIs(t, err, domain.ErrAlreadyParticipating)

	after, err := c.Activity(a.ID)
	require.NoError(t, err)
	assert.Equal(t, before.EntityNames, after.EntityNames)
}

// S5: work hours [08:00, 10:30); activity "A" 1:00, "A2" 1:30 for Paul leave
// no room for a third activity of 0:30 (ErrNotEnoughTime, I4).
func TestAddEntity_NotEnoughTime(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.AddGlobalWorkHours(mustInterval(t, 8, 0, 10, 30)))
	_, err := c.AddEntity("Paul", "", false)
	require.NoError(t, err)

	a1, err := c.Add("A1")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(a1.ID, 60, false))
	require.NoError(t, c.AddEntityToActivity(a1.ID, "Paul"))

	a2, err := c.Add("A2")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(a2.ID, 90, false))
	require.NoError(t, c.AddEntityToActivity(a2.ID, "Paul"))

	a3, err := c.Add("A3")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(a3.ID, 30, false))

	err = c.AddEntityToActivity(a3.ID, "Paul")
	require.ErrorIs(t, err, domain.ErrNotEnoughTime)
}

// S6: group membership and cascade removal semantics.
func TestGroupCascades(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.AddEntity("e1", "", false)
	require.NoError(t, err)
	_, err = c.AddEntity("e2", "", false)
	require.NoError(t, err)
	_, err = c.AddGroup("G")
	require.NoError(t, err)
	require.NoError(t, c.AddEntityToGroup("G", "e1"))
	require.NoError(t, c.AddEntityToGroup("G", "e2"))

	act, err := c.Add("Meeting")
	require.NoError(t, err)
	require.NoError(t, c.AddGroupToActivity(act.ID, "G"))

	snap, err := c.Activity(act.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e1", "e2"}, effectiveNamesViaGroup(t, c, act.ID))
	_ = snap

	// Remove e1 from G: e1 drops out as an effective participant.
	require.NoError(t, c.RemoveEntityFromGroup("G", "e1"))
	assert.ElementsMatch(t, []string{"e2"}, effectiveNamesViaGroup(t, c, act.ID))

	// Re-add e1 directly, then remove G: e2 (only via G) drops out, e1 (direct) stays.
	require.NoError(t, c.AddEntityToActivity(act.ID, "e1"))
	require.NoError(t, c.RemoveGroupFromActivity(act.ID, "G"))
	snap, err = c.Activity(act.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, snap.EntityNames)

	// Removing an entity that is not a direct participant fails ErrNotParticipating.
	err = c.RemoveEntityFromActivity(act.ID, "e2")
	require.ErrorIs(t, err, domain.ErrNotParticipating)
}

func effectiveNamesViaGroup(t *testing.T, c *Collection, id domain.ActivityID) []string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.activities[id]
	out := make([]string, 0)
	for name := range c.effectiveParticipants(a) {
		out = append(out, name)
	}
	return out
}

// S4: growing an inserted activity's duration evicts it and remembers the
// old beginning; shrinking it preserves the insertion.
func TestSetDuration_GrowEvictsShrinkPreserves(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.AddGlobalWorkHours(mustInterval(t, 8, 0, 18, 0)))
	_, err := c.AddEntity("e", "", false)
	require.NoError(t, err)

	act, err := c.Add("A")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(act.ID, 60, false))
	require.NoError(t, c.AddEntityToActivity(act.ID, "e"))

	beginning := 8 * 60
	c.mu.Lock()
	c.activities[act.ID].Compute.InsertionCosts = []domain.InsertionCost{{Beginning: timeutilMustFromMinutes(t, beginning), Cost: 0}}
	c.mu.Unlock()
	require.NoError(t, c.Insert(act.ID, &beginning))

	// Shrink: insertion interval survives with the same beginning.
	require.NoError(t, c.SetDuration(act.ID, 45, false))
	snap, err := c.Activity(act.ID)
	require.NoError(t, err)
	require.NotNil(t, snap.InsertionInterval)
	assert.Equal(t, "08:00", snap.InsertionInterval.Beginning().String())

	// Grow: insertion is cleared and the old beginning is remembered.
	require.NoError(t, c.SetDuration(act.ID, 120, false))
	snap, err = c.Activity(act.ID)
	require.NoError(t, err)
	assert.Nil(t, snap.InsertionInterval)

	c.mu.Lock()
	oldBeginning, evicted := c.removedByDurationIncrease[act.ID]
	c.mu.Unlock()
	require.True(t, evicted)
	assert.Equal(t, "08:00", oldBeginning.String())
}

func timeutilMustFromMinutes(t *testing.T, m int) timeutil.Time {
	t.Helper()
	tm, err := timeutil.FromTotalMinutes(m)
	require.NoError(t, err)
	return tm
}

func TestInsert_FailsWhenNotComputedOrNotAvailable(t *testing.T) {
	c := newTestCollection(t)
	act, err := c.Add("A")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(act.ID, 30, false))

	beginning := 8 * 60
	err = c.Insert(act.ID, &beginning)
	require.ErrorIs(t, err, domain.ErrNotComputedYet)

	c.mu.Lock()
	c.activities[act.ID].Compute.InsertionCosts = []domain.InsertionCost{}
	c.mu.Unlock()

	err = c.Insert(act.ID, &beginning)
	require.ErrorIs(t, err, domain.ErrInsertionNotAvailable)
}

// P7: insert then un-insert round-trips the activity (minus caches).
func TestInsert_RoundTrip(t *testing.T) {
	c := newTestCollection(t)
	act, err := c.Add("A")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(act.ID, 30, false))

	beginning := 8 * 60
	c.mu.Lock()
	c.activities[act.ID].Compute.InsertionCosts = []domain.InsertionCost{{Beginning: timeutilMustFromMinutes(t, beginning), Cost: 0}}
	c.mu.Unlock()

	before, err := c.Activity(act.ID)
	require.NoError(t, err)

	require.NoError(t, c.Insert(act.ID, &beginning))
	require.NoError(t, c.Insert(act.ID, nil))

	after, err := c.Activity(act.ID)
	require.NoError(t, err)
	assert.Equal(t, before.InsertionInterval, after.InsertionInterval)
	assert.Equal(t, before.DurationMinutes, after.DurationMinutes)
	assert.Equal(t, before.EntityNames, after.EntityNames)
}

func TestWorkHours_LockedWhileInserted(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.AddGlobalWorkHours(mustInterval(t, 8, 0, 18, 0)))
	act, err := c.Add("A")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(act.ID, 30, false))

	beginning := 8 * 60
	c.mu.Lock()
	c.activities[act.ID].Compute.InsertionCosts = []domain.InsertionCost{{Beginning: timeutilMustFromMinutes(t, beginning), Cost: 0}}
	c.mu.Unlock()
	require.NoError(t, c.Insert(act.ID, &beginning))

	err = c.AddGlobalWorkHours(mustInterval(t, 18, 0, 20, 0))
	require.ErrorIs(t, err, domain.ErrLockedByInsertions)
}

func TestFreeTimeMinutes_ZeroWhenFullyBooked(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.AddGlobalWorkHours(mustInterval(t, 8, 0, 9, 0)))
	_, err := c.AddEntity("e", "", false)
	require.NoError(t, err)

	act, err := c.Add("A")
	require.NoError(t, err)
	require.NoError(t, c.SetDuration(act.ID, 60, false))
	require.NoError(t, c.AddEntityToActivity(act.ID, "e"))

	free, err := c.FreeTimeMinutes("e")
	require.NoError(t, err)
	assert.Equal(t, 0, free)
}
