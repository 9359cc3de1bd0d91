package placement

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/keyseq/internal/model"
)

// ErrInvalidState is returned when loaded data does not match the universe.
var ErrInvalidState = errors.New("invalid placement state")

// Manager places the sequences of a fixed universe one at a time into an
// ordered ranking. It is not safe for concurrent use.
type Manager struct {
	all      []model.KeySeq
	cursor   int
	current  model.KeySeq
	ordered  []model.KeySeq
	state    State
	history  []State
	onChange func()
}

// NewManager starts placing the first element of all. onChange may be nil.
// An empty universe is finished immediately.
func NewManager(all []model.KeySeq, onChange func()) *Manager {
	m := &Manager{
		all:      cloneSeqs(all),
		ordered:  []model.KeySeq{},
		onChange: onChange,
	}
	if m.IsFinished() {
		m.notify()
		return m
	}
	m.beginPlacing()
	return m
}

// SetOnChange replaces the change callback.
func (m *Manager) SetOnChange(fn func()) {
	m.onChange = fn
}

func (m *Manager) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}

func (m *Manager) beginPlacing() {
	m.current = m.all[m.cursor]
	m.state = Split(m.ordered, SideRight)
	m.history = nil
	m.notify()
}

// MoveLeft narrows the search to the low-effort half.
func (m *Manager) MoveLeft() {
	if m.IsFinished() {
		return
	}
	if _, ok := m.state.HighestLow(); !ok {
		return
	}
	m.history = append(m.history, m.state)
	m.state = Split(m.state.Low, SideRight)
	m.notify()
}

// MoveRight narrows the search to the high-effort half.
func (m *Manager) MoveRight() {
	if m.IsFinished() {
		return
	}
	if _, ok := m.state.LowestHigh(); !ok {
		return
	}
	m.history = append(m.history, m.state)
	m.state = Split(m.state.High, SideLeft)
	m.notify()
}

// MoveBack undoes the last narrowing step, if any.
func (m *Manager) MoveBack() {
	if m.IsFinished() {
		return
	}
	if n := len(m.history); n > 0 {
		m.state = m.history[n-1]
		m.history = m.history[:n-1]
	}
	m.notify()
}

// PlaceCurrent inserts the current sequence between its neighbors and starts
// placing the next one. It returns the placed sequence, or false when
// finished.
func (m *Manager) PlaceCurrent() (model.KeySeq, bool) {
	if m.IsFinished() {
		return model.KeySeq{}, false
	}
	idx, ok := m.PlacementIndex()
	if !ok {
		idx = len(m.ordered)
	}
	m.ordered = append(m.ordered, model.KeySeq{})
	copy(m.ordered[idx+1:], m.ordered[idx:])
	m.ordered[idx] = m.current

	placed := m.current
	m.cursor++
	if m.IsFinished() {
		m.notify()
	} else {
		m.beginPlacing()
	}
	return placed, true
}

// ResetCurrent discards narrowing of the current sequence.
func (m *Manager) ResetCurrent() {
	if m.IsFinished() {
		return
	}
	m.beginPlacing()
}

// Previous takes the last placed sequence out of the ranking and places it
// again. At the first sequence it behaves like ResetCurrent.
func (m *Manager) Previous() {
	if m.cursor == 0 {
		m.ResetCurrent()
		return
	}
	prev := m.all[m.cursor-1]
	if i := indexOf(m.ordered, prev); i >= 0 {
		m.ordered = append(m.ordered[:i], m.ordered[i+1:]...)
	}
	m.cursor--
	m.beginPlacing()
}

// LoadState replaces the ranking with ordered, which must be a permutation of
// the first len(ordered) universe elements. On error nothing changes.
func (m *Manager) LoadState(ordered []model.KeySeq) error {
	n := len(ordered)
	if n > len(m.all) {
		return fmt.Errorf("%w: %d sequences given for a universe of %d", ErrInvalidState, n, len(m.all))
	}
	want := make(map[model.KeySeq]struct{}, n)
	for _, seq := range m.all[:n] {
		want[seq] = struct{}{}
	}
	got := make(map[model.KeySeq]struct{}, n)
	for _, seq := range ordered {
		if _, ok := want[seq]; !ok {
			return fmt.Errorf("%w: sequence %s is not supported by the layout or out of order", ErrInvalidState, seq)
		}
		if _, dup := got[seq]; dup {
			return fmt.Errorf("%w: sequence %s appears twice", ErrInvalidState, seq)
		}
		got[seq] = struct{}{}
	}
	if len(got) != len(want) {
		return fmt.Errorf("%w: loaded sequences do not match the first %d of the universe", ErrInvalidState, n)
	}

	m.ordered = cloneSeqs(ordered)
	m.cursor = n
	if m.IsFinished() {
		m.history = nil
		m.notify()
		return nil
	}
	m.beginPlacing()
	return nil
}

// Current returns the sequence being placed. After the last placement it keeps
// the last placed sequence.
func (m *Manager) Current() model.KeySeq {
	return m.current
}

// All returns a copy of the universe.
func (m *Manager) All() []model.KeySeq {
	return cloneSeqs(m.all)
}

// Ordered returns a copy of the ranking so far.
func (m *Manager) Ordered() []model.KeySeq {
	return cloneSeqs(m.ordered)
}

// Cursor returns the universe index of the sequence being placed.
func (m *Manager) Cursor() int {
	return m.cursor
}

// LeftOfCurrent returns the low-effort neighbor of the current sequence.
func (m *Manager) LeftOfCurrent() (model.KeySeq, bool) {
	return m.state.HighestLow()
}

// RightOfCurrent returns the high-effort neighbor of the current sequence.
func (m *Manager) RightOfCurrent() (model.KeySeq, bool) {
	return m.state.LowestHigh()
}

// LeftWindow returns the low-effort candidates still in play.
func (m *Manager) LeftWindow() []model.KeySeq {
	return cloneSeqs(m.state.Low)
}

// RightWindow returns the high-effort candidates still in play.
func (m *Manager) RightWindow() []model.KeySeq {
	return cloneSeqs(m.state.High)
}

// HistoryLen returns the number of undoable narrowing steps.
func (m *Manager) HistoryLen() int {
	return len(m.history)
}

// IsFinished reports whether every universe element has been placed.
func (m *Manager) IsFinished() bool {
	return len(m.ordered) >= len(m.all)
}

// PlacementIndex returns the index the current sequence would take in the
// ranking if placed now.
func (m *Manager) PlacementIndex() (int, bool) {
	if m.IsFinished() {
		return 0, false
	}
	if left, ok := m.state.HighestLow(); ok {
		if i := indexOf(m.ordered, left); i >= 0 {
			return i + 1, true
		}
	}
	if right, ok := m.state.LowestHigh(); ok {
		if i := indexOf(m.ordered, right); i >= 0 {
			return i, true
		}
	}
	return 0, false
}

// AreaWidths splits the ranking into four areas around the placement index:
// discarded low, low window, high window, discarded high.
func (m *Manager) AreaWidths() (int, int, int, int) {
	idx, ok := m.PlacementIndex()
	if m.IsFinished() || !ok {
		return 0, 50, 50, 0
	}
	leftAll := idx
	rightAll := len(m.ordered) - idx
	leftWindow := len(m.state.Low)
	rightWindow := len(m.state.High)
	return leftAll - leftWindow, leftWindow, rightWindow, rightAll - rightWindow
}

func indexOf(list []model.KeySeq, seq model.KeySeq) int {
	for i, s := range list {
		if s == seq {
			return i
		}
	}
	return -1
}
