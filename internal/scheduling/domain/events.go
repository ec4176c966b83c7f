package domain

import (
	sharedDomain "github.com/adrienmarchand/schedcore/internal/shared/domain"
)

// Event routing keys, matching the observer notifications of §6.
const (
	RoutingKeyActivityAdded         = "activity.added"
	RoutingKeyActivityRemoved       = "activity.removed"
	RoutingKeyActivityRenamed       = "activity.renamed"
	RoutingKeyActivityRecolored     = "activity.recolored"
	RoutingKeyEntityAddedToActivity = "activity.entity_added"
	RoutingKeyGroupAdded            = "group.added"
	RoutingKeyGroupRemoved          = "group.removed"
	RoutingKeyDurationChanged       = "activity.duration_changed"
	RoutingKeyActivityInserted      = "activity.inserted"
	RoutingKeyAutoInsertionDone     = "autoinsertion.done"
	RoutingKeyWorkHoursChanged      = "workhours.changed"
)

// ActivityAddedEvent is published when a new activity is created.
type ActivityAddedEvent struct {
	sharedDomain.BaseEvent
	Name string `json:"name"`
}

// NewActivityAddedEvent creates an ActivityAddedEvent.
func NewActivityAddedEvent(id ActivityID, name string) ActivityAddedEvent {
	return ActivityAddedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyActivityAdded),
		Name:      name,
	}
}

// ActivityRemovedEvent is published when an activity is deleted.
type ActivityRemovedEvent struct {
	sharedDomain.BaseEvent
}

// NewActivityRemovedEvent creates an ActivityRemovedEvent.
func NewActivityRemovedEvent(id ActivityID) ActivityRemovedEvent {
	return ActivityRemovedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyActivityRemoved),
	}
}

// ActivityRenamedEvent is published when an activity's name changes.
type ActivityRenamedEvent struct {
	sharedDomain.BaseEvent
	NewName string `json:"new_name"`
}

// NewActivityRenamedEvent creates an ActivityRenamedEvent.
func NewActivityRenamedEvent(id ActivityID, newName string) ActivityRenamedEvent {
	return ActivityRenamedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyActivityRenamed),
		NewName:   newName,
	}
}

// ActivityRecoloredEvent is published when an activity's colour changes.
type ActivityRecoloredEvent struct {
	sharedDomain.BaseEvent
	Color RGBA `json:"color"`
}

// NewActivityRecoloredEvent creates an ActivityRecoloredEvent.
func NewActivityRecoloredEvent(id ActivityID, color RGBA) ActivityRecoloredEvent {
	return ActivityRecoloredEvent{
		BaseEvent: sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyActivityRecolored),
		Color:     color,
	}
}

// EntityAddedToActivityEvent is published when an entity becomes a
// participant of an activity (direct, or via a group change).
type EntityAddedToActivityEvent struct {
	sharedDomain.BaseEvent
	EntityName string `json:"entity_name"`
}

// NewEntityAddedToActivityEvent creates an EntityAddedToActivityEvent.
func NewEntityAddedToActivityEvent(id ActivityID, entityName string) EntityAddedToActivityEvent {
	return EntityAddedToActivityEvent{
		BaseEvent:  sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyEntityAddedToActivity),
		EntityName: entityName,
	}
}

// GroupAddedEvent is published when a group is created.
type GroupAddedEvent struct {
	sharedDomain.BaseEvent
}

// NewGroupAddedEvent creates a GroupAddedEvent.
func NewGroupAddedEvent(name string) GroupAddedEvent {
	return GroupAddedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(name, "group", RoutingKeyGroupAdded),
	}
}

// GroupRemovedEvent is published when a group is deleted.
type GroupRemovedEvent struct {
	sharedDomain.BaseEvent
}

// NewGroupRemovedEvent creates a GroupRemovedEvent.
func NewGroupRemovedEvent(name string) GroupRemovedEvent {
	return GroupRemovedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(name, "group", RoutingKeyGroupRemoved),
	}
}

// DurationChangedEvent is published when an activity's duration changes.
type DurationChangedEvent struct {
	sharedDomain.BaseEvent
	DurationMinutes int `json:"duration_minutes"`
}

// NewDurationChangedEvent creates a DurationChangedEvent.
func NewDurationChangedEvent(id ActivityID, durationMinutes int) DurationChangedEvent {
	return DurationChangedEvent{
		BaseEvent:       sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyDurationChanged),
		DurationMinutes: durationMinutes,
	}
}

// ActivityInsertedEvent is published when an activity is placed (or
// un-placed: BeginningMinutes is nil in that case).
type ActivityInsertedEvent struct {
	sharedDomain.BaseEvent
	BeginningMinutes *int `json:"beginning_minutes,omitempty"`
}

// NewActivityInsertedEvent creates an ActivityInsertedEvent.
func NewActivityInsertedEvent(id ActivityID, beginningMinutes *int) ActivityInsertedEvent {
	return ActivityInsertedEvent{
		BaseEvent:        sharedDomain.NewBaseEvent(id.String(), AggregateTypeActivity, RoutingKeyActivityInserted),
		BeginningMinutes: beginningMinutes,
	}
}

// AutoInsertionDoneEvent is published once an auto-insertion run finishes,
// successfully or not.
type AutoInsertionDoneEvent struct {
	sharedDomain.BaseEvent
	Solved bool `json:"solved"`
}

// NewAutoInsertionDoneEvent creates an AutoInsertionDoneEvent.
func NewAutoInsertionDoneEvent(solved bool) AutoInsertionDoneEvent {
	return AutoInsertionDoneEvent{
		BaseEvent: sharedDomain.NewBaseEvent("schedule", "schedule", RoutingKeyAutoInsertionDone),
		Solved:    solved,
	}
}

// WorkHoursChangedEvent is published when the global or a custom work-hours
// store is mutated.
type WorkHoursChangedEvent struct {
	sharedDomain.BaseEvent
	EntityName string `json:"entity_name,omitempty"`
}

// NewWorkHoursChangedEvent creates a WorkHoursChangedEvent. entityName is
// empty for a change to the global store.
func NewWorkHoursChangedEvent(entityName string) WorkHoursChangedEvent {
	aggID := entityName
	if aggID == "" {
		aggID = "global"
	}
	return WorkHoursChangedEvent{
		BaseEvent:  sharedDomain.NewBaseEvent(aggID, "workhours", RoutingKeyWorkHoursChanged),
		EntityName: entityName,
	}
}
