// Package workhours implements the ordered, non-overlapping interval store
// used both as the global work hours and as each entity's custom override.
package workhours

import (
	"errors"
	"fmt"
	"sort"

	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// ErrOverlap is returned when an added interval overlaps an existing one.
var ErrOverlap = errors.New("workhours: interval overlaps an existing interval")

// ErrNotFound is returned when an interval to remove or update is not present.
var ErrNotFound = errors.New("workhours: interval not found")

// ErrLockedByInsertions is returned when a mutation is attempted while at
// least one activity has a non-nil insertion interval.
var ErrLockedByInsertions = errors.New("workhours: locked while activities are inserted")

// LockChecker reports whether work-hours mutations must currently be refused
// because some activity is inserted. The activity collection supplies this;
// the store itself holds no activity state.
type LockChecker func() bool

// Store is an ordered, pairwise non-overlapping sequence of TimeIntervals.
type Store struct {
	intervals []timeutil.TimeInterval
	isLocked  LockChecker
}

// New creates an empty Store. lockChecker may be nil, meaning the store is
// never locked. The global store and every entity's custom-hours store are
// both given the collection's checker, so the locking rule of §4.2 applies
// to each of them.
func New(lockChecker LockChecker) *Store {
	return &Store{isLocked: lockChecker}
}

func (s *Store) checkUnlocked() error {
	if s.isLocked != nil && s.isLocked() {
		return ErrLockedByInsertions
	}
	return nil
}

// Intervals returns the sorted, non-overlapping intervals currently stored.
// The returned slice is a defensive copy.
func (s *Store) Intervals() []timeutil.TimeInterval {
	out := make([]timeutil.TimeInterval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// TotalDurationMinutes sums the duration of every interval in the store.
func (s *Store) TotalDurationMinutes() int {
	total := 0
	for _, iv := range s.intervals {
		total += iv.DurationMinutes()
	}
	return total
}

// IsEmpty reports whether the store has no intervals.
func (s *Store) IsEmpty() bool {
	return len(s.intervals) == 0
}

// AddInterval inserts iv, keeping the store sorted by beginning.
func (s *Store) AddInterval(iv timeutil.TimeInterval) error {
	if err := s.checkUnlocked(); err != nil {
		return err
	}
	for _, existing := range s.intervals {
		if existing.Overlaps(iv) {
			return fmt.Errorf("%w: %s overlaps %s", ErrOverlap, iv, existing)
		}
	}
	s.intervals = append(s.intervals, iv)
	sort.Slice(s.intervals, func(i, j int) bool {
		return s.intervals[i].Beginning().Before(s.intervals[j].Beginning())
	})
	return nil
}

// RemoveInterval removes the interval matching iv's exact endpoints.
func (s *Store) RemoveInterval(iv timeutil.TimeInterval) error {
	if err := s.checkUnlocked(); err != nil {
		return err
	}
	idx := s.indexOf(iv)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, iv)
	}
	s.intervals = append(s.intervals[:idx], s.intervals[idx+1:]...)
	return nil
}

// UpdateInterval atomically replaces oldIv with newIv: it succeeds as if
// oldIv were removed and newIv added, or leaves the store unchanged.
func (s *Store) UpdateInterval(oldIv, newIv timeutil.TimeInterval) error {
	if err := s.checkUnlocked(); err != nil {
		return err
	}
	idx := s.indexOf(oldIv)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, oldIv)
	}
	for i, existing := range s.intervals {
		if i == idx {
			continue
		}
		if existing.Overlaps(newIv) {
			return fmt.Errorf("%w: %s overlaps %s", ErrOverlap, newIv, existing)
		}
	}
	s.intervals[idx] = newIv
	sort.Slice(s.intervals, func(i, j int) bool {
		return s.intervals[i].Beginning().Before(s.intervals[j].Beginning())
	})
	return nil
}

func (s *Store) indexOf(iv timeutil.TimeInterval) int {
	for i, existing := range s.intervals {
		if existing.Equals(iv) {
			return i
		}
	}
	return -1
}
