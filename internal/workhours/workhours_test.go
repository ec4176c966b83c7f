package workhours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

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

func TestStore_AddInterval_RejectsOverlap(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))

	err := s.AddInterval(mustInterval(t, 11, 0, 13, 0))
	require.ErrorIs(t, err, ErrOverlap)
	assert.Len(t, s.Intervals(), 1)
}

func TestStore_AddInterval_AllowsAdjacency(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))
	require.NoError(t, s.AddInterval(mustInterval(t, 12, 0, 17, 0)))
	assert.Len(t, s.Intervals(), 2)
}

func TestStore_Intervals_SortedByBeginning(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, 14, 0, 17, 0)))
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))

	ivs := s.Intervals()
	require.Len(t, ivs, 2)
	assert.True(t, ivs[0].Beginning().Before(ivs[1].Beginning()))
}

func TestStore_RemoveInterval_NotFound(t *testing.T) {
	s := New(nil)
	err := s.RemoveInterval(mustInterval(t, 8, 0, 12, 0))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateInterval_AtomicOnConflict(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))
	require.NoError(t, s.AddInterval(mustInterval(t, 13, 0, 17, 0)))

	err := s.UpdateInterval(mustInterval(t, 8, 0, 12, 0), mustInterval(t, 12, 30, 14, 0))
	require.ErrorIs(t, err, ErrOverlap)

	ivs := s.Intervals()
	require.Len(t, ivs, 2)
	assert.Equal(t, "08:00", ivs[0].Beginning().String())
}

func TestStore_UpdateInterval_Success(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))

	require.NoError(t, s.UpdateInterval(mustInterval(t, 8, 0, 12, 0), mustInterval(t, 9, 0, 13, 0)))

	ivs := s.Intervals()
	require.Len(t, ivs, 1)
	assert.Equal(t, "09:00", ivs[0].Beginning().String())
}

func TestStore_LockedByInsertions(t *testing.T) {
	locked := true
	s := New(func() bool { return locked })

	err := s.AddInterval(mustInterval(t, 8, 0, 12, 0))
	require.ErrorIs(t, err, ErrLockedByInsertions)

	locked = false
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))
}

func TestStore_TotalDurationMinutes(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, 8, 0, 12, 0)))
	require.NoError(t, s.AddInterval(mustInterval(t, 13, 0, 17, 0)))
	assert.Equal(t, 4*60+4*60, s.TotalDurationMinutes())
	assert.False(t, s.IsEmpty())
}
