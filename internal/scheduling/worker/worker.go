package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/adrienmarchand/schedcore/internal/scheduling/beginnings"
	"github.com/adrienmarchand/schedcore/internal/scheduling/collection"
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/scheduling/insertioncost"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
	"github.com/adrienmarchand/schedcore/pkg/observability"
)

// Worker drains a Queue of stale activity ids and recomputes their possible
// beginnings and insertion cost (§4.7). Each participant's
// possible-beginnings recomputation runs behind its own per-participant
// circuit breaker, so one participant whose schedule repeatedly exceeds the
// combinatorial safety bound (ErrTooManyActivities) cannot starve
// recomputation for everyone else.
type Worker struct {
	col          *collection.Collection
	queue        Queue
	logger       *slog.Logger
	metrics      observability.Metrics
	maxDurations int

	breakersMu sync.Mutex
	breakers   map[string]*gobreaker.CircuitBreaker[map[int]map[int]struct{}]
}

// Option configures a Worker at construction time.
type Option func(*Worker)

// WithMaxDurationsPerParticipant overrides the possible-beginnings kernel's
// combinatorial safety bound (config.MaxDurationsPerParticipant), in place of
// beginnings.MaxDurations.
func WithMaxDurationsPerParticipant(n int) Option {
	return func(w *Worker) { w.maxDurations = n }
}

// WithMetrics records each recomputation's duration and count through m,
// in addition to the default per-tick log line.
func WithMetrics(m observability.Metrics) Option {
	return func(w *Worker) { w.metrics = m }
}

// New creates a Worker over col, draining queue.
func New(col *collection.Collection, queue Queue, logger *slog.Logger, opts ...Option) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Worker{
		col:      col,
		queue:    queue,
		logger:   logger,
		metrics:  observability.NoopMetrics{},
		breakers: make(map[string]*gobreaker.CircuitBreaker[map[int]map[int]struct{}]),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run drains the queue until ctx is cancelled or the queue is closed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		id, err := w.queue.Dequeue(ctx)
		if err != nil {
			return err
		}
		w.recompute(id)
	}
}

func (w *Worker) breakerFor(participant string) *gobreaker.CircuitBreaker[map[int]map[int]struct{}] {
	w.breakersMu.Lock()
	defer w.breakersMu.Unlock()
	if b, ok := w.breakers[participant]; ok {
		return b
	}
	settings := gobreaker.Settings{
		Name:        participant,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			w.logger.Warn("possible-beginnings circuit breaker state changed",
				"participant", name, "from", from.String(), "to", to.String())
		},
	}
	b := gobreaker.NewCircuitBreaker[map[int]map[int]struct{}](settings)
	w.breakers[participant] = b
	return b
}

// recompute processes one dequeued activity id end to end: possible
// beginnings per participant, intersected into a conflict-free candidate
// set, then the insertion-cost kernel over every activity's current static
// data. Each write-back is guarded by a generation check so a result
// computed against data that has since been invalidated again is discarded
// rather than published (§4.7 step 6).
func (w *Worker) recompute(id domain.ActivityID) {
	timer := observability.StartTimer("recompute").
		WithLogger(w.logger).
		WithMetrics(w.metrics).
		WithTags(observability.T("activity_id", id.String()))
	defer timer.Stop()

	input, err := w.col.RecomputeInputFor(id)
	if err != nil {
		return // removed while queued
	}

	if input.DurationMinutes == 0 {
		// A zero-duration activity has no interval to insert at any offset
		// (I8/P1): publish an empty result for both caches rather than run
		// either kernel, instead of leaving a stale non-empty insertion-cost
		// result in place from before the duration changed.
		if !w.col.SetPossibleBeginnings(id, input.Generation, []int{}) {
			return
		}
		if _, _, _, generation, ok := w.col.InsertionCostStaticData(id); ok {
			w.col.ApplyInsertionCosts(id, generation, []domain.InsertionCost{})
		}
		return
	}

	var offsets []int
	if len(input.Participants) == 0 {
		offsets = []int{}
	} else {
		sets := make([]map[int]struct{}, 0, len(input.Participants))
		for _, participant := range input.Participants {
			workIntervals, err := w.col.ParticipantWorkIntervals(participant)
			if err != nil {
				w.logger.Error("failed reading work intervals",
					"activity_id", id.String(), "participant", participant, "error", err)
				return
			}
			durations := w.col.ParticipantDurations(participant)
			breaker := w.breakerFor(participant)
			perDurationBeginnings, err := breaker.Execute(func() (map[int]map[int]struct{}, error) {
				return beginnings.Compute(workIntervals, durations, timeutil.StepMinutes, w.maxDurations)
			})
			if err != nil {
				w.logger.Warn("possible-beginnings computation failed",
					"activity_id", id.String(), "participant", participant, "error", err)
				return
			}
			sets = append(sets, perDurationBeginnings[input.DurationMinutes])
		}
		offsets = beginnings.SortedOffsets(intersectAll(sets))
	}

	if !w.col.SetPossibleBeginnings(id, input.Generation, offsets) {
		w.logger.Debug("discarded stale possible-beginnings result", "activity_id", id.String())
		return
	}

	static, insertedBeginnings, idx, generation, ok := w.col.InsertionCostStaticData(id)
	if !ok {
		return
	}
	if idx < len(insertedBeginnings) {
		// id was inserted while this tick ran; insertion costs do not apply.
		return
	}

	costs := insertioncost.Compute(static, insertedBeginnings, idx, timeutil.StepMinutes)
	if !w.col.ApplyInsertionCosts(id, generation, costs) {
		w.logger.Debug("discarded stale insertion-cost result", "activity_id", id.String())
	}
}

func intersectAll(sets []map[int]struct{}) map[int]struct{} {
	if len(sets) == 0 {
		return map[int]struct{}{}
	}
	out := make(map[int]struct{}, len(sets[0]))
	for k := range sets[0] {
		out[k] = struct{}{}
	}
	for _, s := range sets[1:] {
		for k := range out {
			if _, present := s[k]; !present {
				delete(out, k)
			}
		}
	}
	return out
}
