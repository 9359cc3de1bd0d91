package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keyseq/internal/model"
)

// u builds a list of unigrams.
func u(keys ...int) []model.KeySeq {
	out := make([]model.KeySeq, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.NewKeySeq(k))
	}
	return out
}

func one(k int) model.KeySeq { return model.NewKeySeq(k) }

// assertWindow checks both neighbors (-1 means none) and both windows.
func assertWindow(t *testing.T, m *Manager, left, right int, low, high []model.KeySeq) {
	t.Helper()
	l, lok := m.LeftOfCurrent()
	if left < 0 {
		assert.False(t, lok, "expected no left neighbor, got %s", l)
	} else {
		assert.True(t, lok, "expected left neighbor %d", left)
		assert.Equal(t, one(left), l)
	}
	r, rok := m.RightOfCurrent()
	if right < 0 {
		assert.False(t, rok, "expected no right neighbor, got %s", r)
	} else {
		assert.True(t, rok, "expected right neighbor %d", right)
		assert.Equal(t, one(right), r)
	}
	assert.Equal(t, low, m.LeftWindow())
	assert.Equal(t, high, m.RightWindow())
}

func TestManagerBasics(t *testing.T) {
	calls := 0
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), func() { calls++ })
	assert.Equal(t, 1, calls)
	assert.Equal(t, u(0, 1, 2, 3, 4, 5, 6), m.All())
	assert.Equal(t, one(0), m.Current())
	assert.Empty(t, m.Ordered())
	assert.Zero(t, m.HistoryLen())
	assertWindow(t, m, -1, -1, u(), u())

	placed, ok := m.PlaceCurrent()
	require.True(t, ok)
	assert.Equal(t, one(0), placed)
	assert.Equal(t, u(0), m.Ordered())
	assert.Equal(t, one(1), m.Current())
	assertWindow(t, m, -1, 0, u(), u(0))

	m.MoveRight()
	assertWindow(t, m, 0, -1, u(0), u())
	assert.Equal(t, 1, m.HistoryLen())

	m.MoveLeft()
	assertWindow(t, m, -1, 0, u(), u(0))
	assert.Equal(t, 2, m.HistoryLen())
}

func TestManagerAddingSequences(t *testing.T) {
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), nil)

	m.PlaceCurrent()
	m.MoveRight()
	assertWindow(t, m, 0, -1, u(0), u())

	m.PlaceCurrent()
	assert.Equal(t, u(0, 1), m.Ordered())
	assert.Equal(t, one(2), m.Current())
	assertWindow(t, m, 0, 1, u(0), u(1))

	m.PlaceCurrent()
	assert.Equal(t, u(0, 2, 1), m.Ordered())
	assert.Equal(t, one(3), m.Current())
	assertWindow(t, m, 0, 2, u(0), u(2, 1))

	m.MoveLeft()
	m.PlaceCurrent()
	assert.Equal(t, u(3, 0, 2, 1), m.Ordered())
	assert.Equal(t, one(4), m.Current())
	assertWindow(t, m, 0, 2, u(3, 0), u(2, 1))

	m.MoveRight()
	assertWindow(t, m, 2, 1, u(2), u(1))
	m.MoveLeft()
	assertWindow(t, m, -1, 2, u(), u(2))

	m.MoveBack()
	assertWindow(t, m, 2, 1, u(2), u(1))
	m.MoveRight()
	assertWindow(t, m, 1, -1, u(1), u())

	m.ResetCurrent()
	assert.Equal(t, one(4), m.Current())
	assert.Equal(t, u(3, 0, 2, 1), m.Ordered())
	assertWindow(t, m, 0, 2, u(3, 0), u(2, 1))
	assert.Zero(t, m.HistoryLen())

	m.Previous()
	m.Previous()
	assert.Equal(t, u(0, 1), m.Ordered())
	assert.Equal(t, one(2), m.Current())
	assertWindow(t, m, 0, 1, u(0), u(1))

	m.MoveLeft()
	m.PlaceCurrent()
	m.MoveRight()
	m.MoveRight()
	m.PlaceCurrent()
	assert.Equal(t, u(2, 0, 1, 3), m.Ordered())
	assert.Equal(t, one(4), m.Current())
	assertWindow(t, m, 0, 1, u(2, 0), u(1, 3))

	m.MoveLeft()
	m.PlaceCurrent()
	assert.Equal(t, u(2, 4, 0, 1, 3), m.Ordered())
	assert.Equal(t, one(5), m.Current())
	assertWindow(t, m, 4, 0, u(2, 4), u(0, 1, 3))
	m.MoveRight()

	m.PlaceCurrent()
	assert.Equal(t, u(2, 4, 0, 1, 5, 3), m.Ordered())
	m.PlaceCurrent()
	assert.Equal(t, u(2, 4, 0, 6, 1, 5, 3), m.Ordered())

	_, ok := m.PlaceCurrent()
	assert.False(t, ok)
	assert.Equal(t, u(2, 4, 0, 6, 1, 5, 3), m.Ordered())
}

func TestManagerCornerCasesAfterFinished(t *testing.T) {
	m := NewManager(u(0, 1, 2), nil)
	m.PlaceCurrent()
	m.PlaceCurrent()
	m.PlaceCurrent()
	require.True(t, m.IsFinished())

	check := func() {
		t.Helper()
		assert.Equal(t, u(1, 2, 0), m.Ordered())
		assert.Equal(t, one(2), m.Current())
		assertWindow(t, m, 1, 0, u(1), u(0))
	}
	check()

	m.MoveRight()
	check()
	m.MoveLeft()
	check()
	m.MoveBack()
	check()
	_, ok := m.PlaceCurrent()
	assert.False(t, ok)
	check()
	m.ResetCurrent()
	assert.True(t, m.IsFinished())
	check()

	m.Previous()
	assert.False(t, m.IsFinished())
	assert.Equal(t, u(1, 0), m.Ordered())
	assert.Equal(t, one(2), m.Current())
	assertWindow(t, m, 1, 0, u(1), u(0))

	m.PlaceCurrent()
	assert.True(t, m.IsFinished())
	check()
}

func TestManagerMoveWithoutNeighborIsNoop(t *testing.T) {
	calls := 0
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), func() { calls++ })
	m.PlaceCurrent()
	assertWindow(t, m, -1, 0, u(), u(0))

	before := calls
	m.MoveLeft()
	assertWindow(t, m, -1, 0, u(), u(0))
	assert.Equal(t, before, calls)
	assert.Zero(t, m.HistoryLen())

	m.MoveRight()
	assertWindow(t, m, 0, -1, u(0), u())
	m.MoveRight()
	assertWindow(t, m, 0, -1, u(0), u())
	assert.Equal(t, one(1), m.Current())
}

func TestManagerMoveBackTooManyTimes(t *testing.T) {
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), nil)
	m.PlaceCurrent()
	m.PlaceCurrent()
	m.PlaceCurrent()
	assert.Equal(t, u(1, 2, 0), m.Ordered())
	assert.Equal(t, one(3), m.Current())
	assertWindow(t, m, 1, 2, u(1), u(2, 0))

	m.MoveLeft()
	assertWindow(t, m, -1, 1, u(), u(1))
	m.MoveRight()
	assertWindow(t, m, 1, -1, u(1), u())

	m.MoveBack()
	assertWindow(t, m, -1, 1, u(), u(1))
	m.MoveBack()
	assertWindow(t, m, 1, 2, u(1), u(2, 0))

	m.MoveBack()
	m.MoveBack()
	assert.Equal(t, u(1, 2, 0), m.Ordered())
	assert.Equal(t, one(3), m.Current())
	assertWindow(t, m, 1, 2, u(1), u(2, 0))
}

func TestManagerLoadState(t *testing.T) {
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), nil)
	require.NoError(t, m.LoadState(u(0, 3, 1, 2)))
	assert.Equal(t, u(0, 3, 1, 2), m.Ordered())
	assert.Equal(t, one(4), m.Current())
	assert.Equal(t, 4, m.Cursor())
	assertWindow(t, m, 3, 1, u(0, 3), u(1, 2))

	m.PlaceCurrent()
	assert.Equal(t, u(0, 3, 4, 1, 2), m.Ordered())
	assert.Equal(t, one(5), m.Current())
	assertWindow(t, m, 3, 4, u(0, 3), u(4, 1, 2))

	m.Previous()
	m.Previous()
	assert.Equal(t, u(0, 1, 2), m.Ordered())
	assert.Equal(t, one(3), m.Current())
	assertWindow(t, m, 0, 1, u(0), u(1, 2))
}

func TestManagerLoadStateFinished(t *testing.T) {
	calls := 0
	m := NewManager(u(0, 1), func() { calls++ })
	require.NoError(t, m.LoadState(u(1, 0)))
	assert.True(t, m.IsFinished())
	assert.Equal(t, 2, calls)
	_, ok := m.PlacementIndex()
	assert.False(t, ok)
}

func TestManagerLoadBadState(t *testing.T) {
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), nil)
	m.PlaceCurrent()

	for _, bad := range [][]model.KeySeq{
		u(0, 9999, 1, 2),
		u(0, 2),
		u(0, 0),
		u(0, 1, 2, 3, 4, 5, 6, 7),
	} {
		err := m.LoadState(bad)
		require.ErrorIs(t, err, ErrInvalidState, "%v", bad)
		assert.Equal(t, u(0), m.Ordered())
		assert.Equal(t, one(1), m.Current())
		assert.Equal(t, 1, m.Cursor())
	}
}

func TestManagerAreaWidths(t *testing.T) {
	m := NewManager(u(0, 1, 2, 3, 4, 5, 6), nil)
	a, b, c, d := m.AreaWidths()
	assert.Equal(t, [4]int{0, 50, 50, 0}, [4]int{a, b, c, d})

	for i := 0; i < 4; i++ {
		m.PlaceCurrent()
	}
	assert.Equal(t, one(4), m.Current())
	assert.Equal(t, u(1, 3, 2, 0), m.Ordered())

	widths := func() [4]int {
		a, b, c, d := m.AreaWidths()
		return [4]int{a, b, c, d}
	}
	assertWindow(t, m, 3, 2, u(1, 3), u(2, 0))
	assert.Equal(t, [4]int{0, 2, 2, 0}, widths())

	m.MoveLeft()
	assertWindow(t, m, 1, 3, u(1), u(3))
	assert.Equal(t, [4]int{0, 1, 1, 2}, widths())

	m.MoveLeft()
	assertWindow(t, m, -1, 1, u(), u(1))
	assert.Equal(t, [4]int{0, 0, 1, 3}, widths())

	m.MoveRight()
	assertWindow(t, m, 1, -1, u(1), u())
	assert.Equal(t, [4]int{0, 1, 0, 3}, widths())

	m.PlaceCurrent()
	assert.Equal(t, one(5), m.Current())
	assert.Equal(t, u(1, 4, 3, 2, 0), m.Ordered())
	assertWindow(t, m, 4, 3, u(1, 4), u(3, 2, 0))
	assert.Equal(t, [4]int{0, 2, 3, 0}, widths())

	m.MoveRight()
	assertWindow(t, m, 2, 0, u(3, 2), u(0))
	assert.Equal(t, [4]int{2, 2, 1, 0}, widths())

	m.MoveRight()
	assertWindow(t, m, 0, -1, u(0), u())
	assert.Equal(t, [4]int{4, 1, 0, 0}, widths())
}

func TestManagerPreviousAtStartResets(t *testing.T) {
	m := NewManager(u(0, 1, 2), nil)
	m.Previous()
	assert.Equal(t, one(0), m.Current())
	assert.Zero(t, m.Cursor())
	assert.Empty(t, m.Ordered())

	m.PlaceCurrent()
	m.MoveRight()
	m.Previous()
	assert.Equal(t, one(0), m.Current())
	assert.Empty(t, m.Ordered())
	assert.Zero(t, m.HistoryLen())
}

func TestManagerRoundTrip(t *testing.T) {
	var all []model.KeySeq
	for a := 0; a < 5; a++ {
		for b := 0; b < 5; b++ {
			all = append(all, model.NewKeySeq(a, b))
		}
	}
	m := NewManager(all, nil)
	for range all {
		_, ok := m.PlaceCurrent()
		require.True(t, ok)
	}
	require.True(t, m.IsFinished())
	assert.ElementsMatch(t, all, m.Ordered())
}

func TestManagerEmptyUniverse(t *testing.T) {
	calls := 0
	m := NewManager(nil, func() { calls++ })
	assert.True(t, m.IsFinished())
	assert.Equal(t, 1, calls)
	assert.True(t, m.Current().IsEmpty())
	_, ok := m.PlaceCurrent()
	assert.False(t, ok)
	m.Previous()
	m.MoveLeft()
	m.MoveBack()
	assert.True(t, m.IsFinished())
}

func TestManagerWindowsDoNotAlias(t *testing.T) {
	m := NewManager(u(0, 1, 2, 3), nil)
	m.PlaceCurrent()
	m.PlaceCurrent()
	m.MoveRight()
	m.PlaceCurrent()
	require.Equal(t, u(1, 0, 2), m.Ordered())

	m.MoveLeft()
	require.Equal(t, 1, m.HistoryLen())
	saved := m.history[0]
	before := append([]model.KeySeq(nil), saved.High...)

	high := m.RightWindow()
	high[0] = model.NewKeySeq(99)
	assert.Equal(t, u(1), m.RightWindow())

	m.PlaceCurrent()
	assert.Equal(t, u(3, 1, 0, 2), m.Ordered())
	assert.Equal(t, before, saved.High)
}

func TestSplit(t *testing.T) {
	cases := []struct {
		name        string
		list        []model.KeySeq
		larger      Side
		low, high   []model.KeySeq
		left, right int
	}{
		{"even right", u(0, 1, 2, 3, 4, 5), SideRight, u(0, 1, 2), u(3, 4, 5), 2, 3},
		{"even left", u(0, 1, 2, 3, 4, 5), SideLeft, u(0, 1, 2), u(3, 4, 5), 2, 3},
		{"odd right", u(0, 1, 2, 3, 4), SideRight, u(0, 1), u(2, 3, 4), 1, 2},
		{"odd left", u(0, 1, 2, 3, 4), SideLeft, u(0, 1, 2), u(3, 4), 2, 3},
		{"single right", u(0), SideRight, u(), u(0), -1, 0},
		{"single left", u(0), SideLeft, u(0), u(), 0, -1},
		{"empty right", u(), SideRight, u(), u(), -1, -1},
		{"empty left", u(), SideLeft, u(), u(), -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Split(tc.list, tc.larger)
			assert.Equal(t, tc.low, s.Low)
			assert.Equal(t, tc.high, s.High)
			l, lok := s.HighestLow()
			assert.Equal(t, tc.left >= 0, lok)
			if lok {
				assert.Equal(t, one(tc.left), l)
			}
			r, rok := s.LowestHigh()
			assert.Equal(t, tc.right >= 0, rok)
			if rok {
				assert.Equal(t, one(tc.right), r)
			}
		})
	}
}
