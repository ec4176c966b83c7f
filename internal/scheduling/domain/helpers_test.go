package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adrienmarchand/schedcore/internal/timeutil"
	"github.com/adrienmarchand/schedcore/internal/workhours"
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

func mustWorkHoursStore(t *testing.T, bh, bm, eh, em int) *workhours.Store {
	t.Helper()
	s := workhours.New(nil)
	require.NoError(t, s.AddInterval(mustInterval(t, bh, bm, eh, em)))
	return s
}
