package timeutil_test

import (
	"testing"

	"github.com/adrienmarchand/schedcore/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterval(t *testing.T) {
	_, err := timeutil.NewInterval(timeutil.MustNew(8, 0), timeutil.MustNew(9, 0))
	require.NoError(t, err)

	_, err = timeutil.NewInterval(timeutil.MustNew(9, 0), timeutil.MustNew(9, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, timeutil.ErrInvalidInterval)

	_, err = timeutil.NewInterval(timeutil.MustNew(10, 0), timeutil.MustNew(9, 0))
	require.Error(t, err)
}

func TestTimeInterval_DurationMinutes(t *testing.T) {
	iv, err := timeutil.NewInterval(timeutil.MustNew(8, 0), timeutil.MustNew(9, 30))
	require.NoError(t, err)
	assert.Equal(t, 90, iv.DurationMinutes())
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base, err := timeutil.NewInterval(timeutil.MustNew(10, 0), timeutil.MustNew(11, 0))
	require.NoError(t, err)

	tests := []struct {
		name     string
		beg, end timeutil.Time
		overlaps bool
	}{
		{"overlapping start", timeutil.MustNew(9, 30), timeutil.MustNew(10, 30), true},
		{"overlapping end", timeutil.MustNew(10, 30), timeutil.MustNew(11, 30), true},
		{"contained within", timeutil.MustNew(10, 15), timeutil.MustNew(10, 45), true},
		{"containing", timeutil.MustNew(9, 30), timeutil.MustNew(11, 30), true},
		{"before", timeutil.MustNew(8, 30), timeutil.MustNew(9, 30), false},
		{"after", timeutil.MustNew(11, 30), timeutil.MustNew(12, 30), false},
		{"adjacent before", timeutil.MustNew(9, 0), timeutil.MustNew(10, 0), false},
		{"adjacent after", timeutil.MustNew(11, 0), timeutil.MustNew(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := timeutil.NewInterval(tt.beg, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.overlaps, base.Overlaps(other))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	iv, err := timeutil.NewInterval(timeutil.MustNew(10, 0), timeutil.MustNew(11, 0))
	require.NoError(t, err)

	assert.True(t, iv.Contains(timeutil.MustNew(10, 0)))
	assert.True(t, iv.Contains(timeutil.MustNew(10, 30)))
	assert.False(t, iv.Contains(timeutil.MustNew(11, 0)))
	assert.False(t, iv.Contains(timeutil.MustNew(9, 55)))
}
