package domain

import (
	"fmt"
	"sort"

	sharedDomain "github.com/adrienmarchand/schedcore/internal/shared/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// ActivityID uniquely identifies a live activity. Assignment is the
// collection's job (§4.4): the smallest non-negative integer not currently
// in use.
type ActivityID uint16

// String renders the id in base 10, used as the aggregate id string and as
// the map key format for anything keyed by name elsewhere.
func (id ActivityID) String() string { return fmt.Sprintf("%d", uint16(id)) }

// MaxActivityID is the largest representable id; exceeding it fails
// ErrIDExhausted.
const MaxActivityID = ActivityID(^uint16(0))

// RGBA is a colour with components in [0, 1], matching the source's
// floating-point colour representation (§3). It is a sharedDomain.ValueObject:
// two colours are interchangeable whenever their components match.
type RGBA struct {
	R, G, B, A float64
}

// Equals implements sharedDomain.ValueObject.
func (c RGBA) Equals(other sharedDomain.ValueObject) bool {
	o, ok := other.(RGBA)
	return ok && c == o
}

// InsertionCost ranks a candidate beginning: lower cost is better (§4.6).
type InsertionCost struct {
	Beginning timeutil.Time
	Cost      uint64
}

// ActivityMeta is the metadata half of an activity: name, colour, and
// participants, direct or via group (§3).
type ActivityMeta struct {
	Name             string
	Color            RGBA
	EntityNames      map[string]struct{}
	GroupNames       map[string]struct{}
}

func newActivityMeta(name string) ActivityMeta {
	return ActivityMeta{
		Name:        name,
		EntityNames: make(map[string]struct{}),
		GroupNames:  make(map[string]struct{}),
	}
}

// SortedEntityNames returns the direct participant entity names, sorted.
func (m ActivityMeta) SortedEntityNames() []string {
	out := make([]string, 0, len(m.EntityNames))
	for n := range m.EntityNames {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SortedGroupNames returns the participant group names, sorted.
func (m ActivityMeta) SortedGroupNames() []string {
	out := make([]string, 0, len(m.GroupNames))
	for n := range m.GroupNames {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ActivityCompute is the computation half of an activity (§3): the data the
// scheduling kernels read and write.
type ActivityCompute struct {
	DurationMinutes int
	Incompatibles   map[ActivityID]struct{}

	// PossibleBeginningsIfNoConflict is the conflict-free candidate set
	// produced by intersecting every participant's possible-beginnings for
	// this duration (§4.5, §4.7 step 4). nil means not yet computed.
	PossibleBeginningsIfNoConflict []int

	// InsertionCosts is nil when stale/uncomputed; non-nil (possibly empty)
	// once the worker has published a result (§4.7 step 6, I7).
	InsertionCosts []InsertionCost

	// InsertionInterval is set once the activity has been placed (I6).
	InsertionInterval *timeutil.TimeInterval
}

func newActivityCompute() ActivityCompute {
	return ActivityCompute{Incompatibles: make(map[ActivityID]struct{})}
}

// SortedIncompatibleIDs returns the incompatibility set as a sorted slice.
func (c ActivityCompute) SortedIncompatibleIDs() []ActivityID {
	out := make([]ActivityID, 0, len(c.Incompatibles))
	for id := range c.Incompatibles {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Activity is the aggregate root of the scheduling core (§3): an
// ActivityID, its metadata, and the cached computation data the worker and
// auto-insertion read and write.
type Activity struct {
	sharedDomain.BaseAggregateRoot

	id      ActivityID
	Meta    ActivityMeta
	Compute ActivityCompute
}

// AggregateTypeActivity names the aggregate type for domain events (§6).
const AggregateTypeActivity = "activity"

// NewActivity creates a fresh, unscheduled activity with the given id and
// name. Duration defaults to 0 (I8: unschedulable until set).
func NewActivity(id ActivityID, name string) *Activity {
	return &Activity{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(id.String()),
		id:                id,
		Meta:              newActivityMeta(name),
		Compute:           newActivityCompute(),
	}
}

// ID returns the activity's identifier.
func (a *Activity) ID() ActivityID { return a.id }

// HasParticipants reports whether the activity has any direct entity or any
// non-empty participant group (I9 uses the negation of this).
func (a *Activity) HasParticipants(groupHasMembers func(groupName string) bool) bool {
	if len(a.Meta.EntityNames) > 0 {
		return true
	}
	for g := range a.Meta.GroupNames {
		if groupHasMembers(g) {
			return true
		}
	}
	return false
}

// IsInserted reports whether the activity currently has an insertion interval.
func (a *Activity) IsInserted() bool { return a.Compute.InsertionInterval != nil }

// Snapshot is an immutable, detached copy of an activity's observable state,
// returned by façade queries (§6: "activity(id) -> ActivitySnapshot").
type Snapshot struct {
	ID                ActivityID
	Name              string
	Color             RGBA
	EntityNames       []string
	GroupNames        []string
	DurationMinutes   int
	Incompatibles     []ActivityID
	InsertionInterval *timeutil.TimeInterval
	InsertionCosts    []InsertionCost
}

// Snapshot copies a's observable state.
func (a *Activity) Snapshot() Snapshot {
	var costs []InsertionCost
	if a.Compute.InsertionCosts != nil {
		costs = make([]InsertionCost, len(a.Compute.InsertionCosts))
		copy(costs, a.Compute.InsertionCosts)
	}
	var interval *timeutil.TimeInterval
	if a.Compute.InsertionInterval != nil {
		v := *a.Compute.InsertionInterval
		interval = &v
	}
	return Snapshot{
		ID:                a.id,
		Name:              a.Meta.Name,
		Color:             a.Meta.Color,
		EntityNames:       a.Meta.SortedEntityNames(),
		GroupNames:        a.Meta.SortedGroupNames(),
		DurationMinutes:   a.Compute.DurationMinutes,
		Incompatibles:     a.Compute.SortedIncompatibleIDs(),
		InsertionInterval: interval,
		InsertionCosts:    costs,
	}
}
