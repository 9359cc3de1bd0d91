// Package placement ranks key sequences by binary-search insertion into a
// user-ordered list.
package placement

import "github.com/verte-zerg/keyseq/internal/model"

// Side selects which half receives the extra element of an odd split.
type Side int

// Split sides.
const (
	SideRight Side = iota
	SideLeft
)

// State is a snapshot of the search window around the sequence being placed.
// Low holds the lower-effort candidates and High the higher-effort ones. Both
// are owned copies.
type State struct {
	Low  []model.KeySeq
	High []model.KeySeq
}

// HighestLow returns the last element of Low: the neighbor on the low-effort
// side.
func (s State) HighestLow() (model.KeySeq, bool) {
	if len(s.Low) == 0 {
		return model.KeySeq{}, false
	}
	return s.Low[len(s.Low)-1], true
}

// LowestHigh returns the first element of High: the neighbor on the
// high-effort side.
func (s State) LowestHigh() (model.KeySeq, bool) {
	if len(s.High) == 0 {
		return model.KeySeq{}, false
	}
	return s.High[0], true
}

// Split divides list at its midpoint. For odd lengths the larger side gets the
// extra element.
func Split(list []model.KeySeq, larger Side) State {
	n := len(list)
	mid := n / 2
	if n%2 == 1 && larger == SideLeft {
		mid++
	}
	return State{
		Low:  cloneSeqs(list[:mid]),
		High: cloneSeqs(list[mid:]),
	}
}

func cloneSeqs(in []model.KeySeq) []model.KeySeq {
	out := make([]model.KeySeq, len(in))
	copy(out, in)
	return out
}
