// Package facade implements the single public entry point of §6: the
// "data" object a front-end (CLI, GUI, API) talks to, wrapping the activity
// collection, its recomputation queue, and the event sink every mutation
// publishes to.
package facade

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/adrienmarchand/schedcore/internal/scheduling/autoinsert"
	"github.com/adrienmarchand/schedcore/internal/scheduling/collection"
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/scheduling/worker"
	"github.com/adrienmarchand/schedcore/internal/shared/application"
	"github.com/adrienmarchand/schedcore/internal/shared/infrastructure/eventbus"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// Data is the façade of §6.
type Data struct {
	col       *collection.Collection
	queue     worker.Queue
	publisher eventbus.Publisher
	logger    *slog.Logger

	requireNonZeroDuration bool
}

// Option configures a Data façade at construction time.
type Option func(*Data)

// WithRequireNonZeroDuration makes SetDuration reject duration 0
// (§4.4's policy note: "the UI layer may additionally reject it").
func WithRequireNonZeroDuration() Option {
	return func(d *Data) { d.requireNonZeroDuration = true }
}

// New wires a façade over the default local-mode stack: an in-process event
// sink (InProcessEventBus) and an in-process recomputation queue. logger may
// be nil.
func New(logger *slog.Logger, opts ...Option) *Data {
	if logger == nil {
		logger = slog.Default()
	}
	bus := eventbus.NewInProcessEventBus(logger)
	q := worker.NewInProcessQueue()
	col := collection.New(q)
	return newData(col, q, bus, logger, opts)
}

// NewWithDependencies wires a façade over caller-supplied collection, queue,
// and event sink, letting the distributed alternatives of §3
// (RedisQueue, RabbitMQPublisher) replace the local-mode defaults.
func NewWithDependencies(col *collection.Collection, queue worker.Queue, publisher eventbus.Publisher, logger *slog.Logger, opts ...Option) *Data {
	if logger == nil {
		logger = slog.Default()
	}
	return newData(col, queue, publisher, logger, opts)
}

func newData(col *collection.Collection, queue worker.Queue, publisher eventbus.Publisher, logger *slog.Logger, opts []Option) *Data {
	d := &Data{col: col, queue: queue, publisher: publisher, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Collection exposes the underlying collection, e.g. to construct a
// worker.Worker over the same state.
func (d *Data) Collection() *collection.Collection { return d.col }

// Queue exposes the recomputation queue a worker.Worker should drain.
func (d *Data) Queue() worker.Queue { return d.queue }

// publishPending drains and publishes every domain event recorded by the
// mutation that just ran, logging (but not failing the caller on) publish
// errors -- a mutation that already committed to the collection must not be
// rolled back because notifying observers failed. Every drained event is
// stamped with the calling command's causation id (adapter/cli's per-command
// correlation id, propagated via ctx), so every event a command's mutations
// raised, even across several Collection calls, carries the same causation.
func (d *Data) publishPending(ctx context.Context) {
	events := d.col.DrainEvents()
	metadata := application.NewEventMetadata(application.CausationIDFromContext(ctx))
	application.ApplyEventMetadata(events, metadata)
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			d.logger.Error("failed to marshal domain event", "routing_key", event.RoutingKey(), "error", err)
			continue
		}
		// event's own exported fields only cover its payload (name, colour,
		// ...): BaseEvent's id/routing-key/metadata are unexported so they
		// don't survive json.Marshal(event) on their own, so wrap them in an
		// envelope a Consumer can read back without the publisher's side
		// channel.
		envelope := eventbus.ConsumedEvent{
			EventID:       event.EventID(),
			AggregateID:   event.AggregateID(),
			AggregateType: event.AggregateType(),
			RoutingKey:    event.RoutingKey(),
			OccurredAt:    event.OccurredAt(),
			Payload:       body,
			Metadata: eventbus.EventMetadata{
				CorrelationID: metadata.CorrelationID.String(),
				CausationID:   metadata.CausationID.String(),
			},
		}
		payload, err := json.Marshal(envelope)
		if err != nil {
			d.logger.Error("failed to marshal event envelope", "routing_key", event.RoutingKey(), "error", err)
			continue
		}
		if err := d.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
			d.logger.Error("failed to publish domain event", "routing_key", event.RoutingKey(), "error", err)
		}
	}
}

// ---- Entity operations (§4.3) ----

// AddEntity registers a new entity.
func (d *Data) AddEntity(ctx context.Context, name, mail string, sendMail bool) (*domain.Entity, error) {
	e, err := d.col.AddEntity(name, mail, sendMail)
	if err != nil {
		return nil, err
	}
	d.publishPending(ctx)
	return e, nil
}

// RemoveEntity deletes an entity, cascading into groups and activities.
func (d *Data) RemoveEntity(ctx context.Context, name string) error {
	if err := d.col.RemoveEntity(name); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// RenameEntity atomically renames an entity, cascading into groups and
// activities.
func (d *Data) RenameEntity(ctx context.Context, oldName, newName string) error {
	if err := d.col.RenameEntity(oldName, newName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// EntitiesSorted returns every entity name, ascending.
func (d *Data) EntitiesSorted() []string {
	return d.col.EntitiesSorted()
}

// FreeTimeOf implements §6's free_time_of(name).
func (d *Data) FreeTimeOf(name string) (int, error) {
	return d.col.FreeTimeMinutes(name)
}

// WorkHoursOf returns the effective work-hour intervals of an entity.
func (d *Data) WorkHoursOf(name string) ([]timeutil.TimeInterval, error) {
	return d.col.WorkHoursOf(name)
}

// ---- Work-hours operations (§4.2) ----

// AddGlobalWorkHours adds an interval to the shared work-hours store.
func (d *Data) AddGlobalWorkHours(ctx context.Context, iv timeutil.TimeInterval) error {
	if err := d.col.AddGlobalWorkHours(iv); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// RemoveGlobalWorkHours removes an interval from the shared work-hours store.
func (d *Data) RemoveGlobalWorkHours(ctx context.Context, iv timeutil.TimeInterval) error {
	if err := d.col.RemoveGlobalWorkHours(iv); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// UpdateGlobalWorkHours atomically replaces one global interval with another.
func (d *Data) UpdateGlobalWorkHours(ctx context.Context, oldIv, newIv timeutil.TimeInterval) error {
	if err := d.col.UpdateGlobalWorkHours(oldIv, newIv); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// AddEntityWorkHours adds a custom work-hours interval overriding the global
// store for one entity.
func (d *Data) AddEntityWorkHours(ctx context.Context, entityName string, iv timeutil.TimeInterval) error {
	if err := d.col.AddEntityWorkHours(entityName, iv); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// RemoveEntityWorkHours removes a custom work-hours interval from one entity.
func (d *Data) RemoveEntityWorkHours(ctx context.Context, entityName string, iv timeutil.TimeInterval) error {
	if err := d.col.RemoveEntityWorkHours(entityName, iv); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// UpdateEntityWorkHours atomically replaces one of an entity's custom
// intervals with another.
func (d *Data) UpdateEntityWorkHours(ctx context.Context, entityName string, oldIv, newIv timeutil.TimeInterval) error {
	if err := d.col.UpdateEntityWorkHours(entityName, oldIv, newIv); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// ---- Group operations (§4.3) ----

// AddGroup registers a new group.
func (d *Data) AddGroup(ctx context.Context, name string) (*domain.Group, error) {
	g, err := d.col.AddGroup(name)
	if err != nil {
		return nil, err
	}
	d.publishPending(ctx)
	return g, nil
}

// RemoveGroup deletes a group, cascading into every activity that lists it.
func (d *Data) RemoveGroup(ctx context.Context, name string) error {
	if err := d.col.RemoveGroup(name); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// GroupsSorted returns every group name, ascending.
func (d *Data) GroupsSorted() []string {
	return d.col.GroupsSorted()
}

// AddEntityToGroup adds an entity to a group's membership.
func (d *Data) AddEntityToGroup(ctx context.Context, groupName, entityName string) error {
	if err := d.col.AddEntityToGroup(groupName, entityName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// RemoveEntityFromGroup removes an entity from a group's membership.
func (d *Data) RemoveEntityFromGroup(ctx context.Context, groupName, entityName string) error {
	if err := d.col.RemoveEntityFromGroup(groupName, entityName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// ---- Activity operations (§4.4) ----

// AddActivity creates a new activity.
func (d *Data) AddActivity(ctx context.Context, name string) (domain.Snapshot, error) {
	snap, err := d.col.Add(name)
	if err != nil {
		return domain.Snapshot{}, err
	}
	d.publishPending(ctx)
	return snap, nil
}

// RemoveActivity deletes an activity.
func (d *Data) RemoveActivity(ctx context.Context, id domain.ActivityID) error {
	if err := d.col.Remove(id); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// SetActivityName renames an activity.
func (d *Data) SetActivityName(ctx context.Context, id domain.ActivityID, name string) error {
	if err := d.col.SetName(id, name); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// SetActivityColor recolours an activity.
func (d *Data) SetActivityColor(ctx context.Context, id domain.ActivityID, color domain.RGBA) error {
	if err := d.col.SetColor(id, color); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// AddEntityToActivity adds an entity as a direct participant of an activity.
func (d *Data) AddEntityToActivity(ctx context.Context, id domain.ActivityID, entityName string) error {
	if err := d.col.AddEntityToActivity(id, entityName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// RemoveEntityFromActivity removes an entity from an activity's direct
// participants.
func (d *Data) RemoveEntityFromActivity(ctx context.Context, id domain.ActivityID, entityName string) error {
	if err := d.col.RemoveEntityFromActivity(id, entityName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// AddGroupToActivity adds a group as a participant group of an activity.
func (d *Data) AddGroupToActivity(ctx context.Context, id domain.ActivityID, groupName string) error {
	if err := d.col.AddGroupToActivity(id, groupName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// RemoveGroupFromActivity removes a group from an activity's participant
// groups.
func (d *Data) RemoveGroupFromActivity(ctx context.Context, id domain.ActivityID, groupName string) error {
	if err := d.col.RemoveGroupFromActivity(id, groupName); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// SetDuration changes an activity's duration, applying the façade's
// requireNonZeroDuration policy (WithRequireNonZeroDuration).
func (d *Data) SetDuration(ctx context.Context, id domain.ActivityID, durationMinutes int) error {
	if err := d.col.SetDuration(id, durationMinutes, d.requireNonZeroDuration); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// Insert places an activity at beginningMinutes, or clears its placement if
// nil.
func (d *Data) Insert(ctx context.Context, id domain.ActivityID, beginningMinutes *int) error {
	if err := d.col.Insert(id, beginningMinutes); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}

// ReinsertClosestTo re-inserts an activity evicted by a duration increase,
// reporting whether a reinsertion happened.
func (d *Data) ReinsertClosestTo(ctx context.Context, id domain.ActivityID) (bool, error) {
	reinserted, err := d.col.ReinsertClosestTo(id)
	if err != nil {
		return false, err
	}
	if reinserted {
		d.publishPending(ctx)
	}
	return reinserted, nil
}

// ---- Status queries (§6) ----

// Activity returns a detached snapshot of one activity.
func (d *Data) Activity(id domain.ActivityID) (domain.Snapshot, error) {
	return d.col.Activity(id)
}

// ActivitiesSorted returns every activity's snapshot, sorted by name.
func (d *Data) ActivitiesSorted() []domain.Snapshot {
	return d.col.ActivitiesSorted()
}

// PossibleInsertionTimesWithCost implements §6's status query: the second
// return value is false while the cache has not been computed yet.
func (d *Data) PossibleInsertionTimesWithCost(id domain.ActivityID) ([]domain.InsertionCost, bool, error) {
	return d.col.PossibleInsertionTimesWithCost(id)
}

// ---- Auto-insertion (§4.8) ----

// Run is a started auto-insertion search, bundled with the activity ordering
// ApplyResult needs to translate a Result back into Insert calls.
type Run struct {
	handle     *autoinsert.Handle
	orderedIDs []domain.ActivityID
}

// StartAutoInsertion snapshots every not-yet-inserted activity and launches
// the best-first search in its own goroutine. It fails ErrNotComputedYet if
// any candidate's insertion costs are not cached yet.
func (d *Data) StartAutoInsertion() (*Run, error) {
	input, orderedIDs, err := d.col.AutoInsertSnapshot()
	if err != nil {
		return nil, err
	}
	return &Run{handle: autoinsert.Start(input), orderedIDs: orderedIDs}, nil
}

// Poll returns the current result and whether the search has finished.
func (r *Run) Poll() (autoinsert.Result, bool) { return r.handle.Poll() }

// Wait blocks until the search finishes and returns its result.
func (r *Run) Wait() autoinsert.Result { return r.handle.Wait() }

// Stop requests cancellation of the search.
func (r *Run) Stop() { r.handle.Stop() }

// ApplyResult inserts every activity of a finished Run at its chosen
// beginning (§4.8 "Applying the result").
func (d *Data) ApplyResult(ctx context.Context, run *Run, result autoinsert.Result) error {
	if err := d.col.ApplyAutoInsertResult(run.orderedIDs, result.Beginnings); err != nil {
		return err
	}
	d.publishPending(ctx)
	return nil
}
