package effort

import (
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

// HandRepeats returns the same-finger category of a sequence on one hand.
func HandRepeats(h *layout.Hand, seq model.KeySeq) (Repeat, bool) {
	switch seq.Len() {
	case 2:
		f0, ok0 := h.Finger(seq.At(0))
		f1, ok1 := h.Finger(seq.At(1))
		if !ok0 || !ok1 || f0 != f1 {
			return Repeat{}, false
		}
		if seq.At(0) == seq.At(1) {
			return Repeat{REP, f0}, true
		}
		return Repeat{SFB, f0}, true
	case 3:
		f0, ok0 := h.Finger(seq.At(0))
		f1, ok1 := h.Finger(seq.At(1))
		f2, ok2 := h.Finger(seq.At(2))
		if !ok0 || !ok1 || !ok2 {
			return Repeat{}, false
		}
		k0, k1, k2 := seq.At(0), seq.At(1), seq.At(2)
		switch {
		case f0 == f2 && f0 != f1:
			return Repeat{SFS, f0}, true
		case f0 == f2 && f0 == f1:
			if k0 == k1 && k1 == k2 {
				return Repeat{REP, f0}, true
			}
			if k0 == k1 || k1 == k2 {
				return Repeat{RSFT, f0}, true
			}
			return Repeat{SFT, f0}, true
		case f0 == f1:
			if k0 == k1 {
				return Repeat{REP, f0}, true
			}
			return Repeat{SFB, f0}, true
		case f1 == f2:
			return Repeat{SFB, f2}, true
		}
	}
	return Repeat{}, false
}

// HandRowDiff returns zero, one or two row difference types of a sequence on
// one hand. Every key needs both a finger and a position.
func HandRowDiff(h *layout.Hand, seq model.KeySeq) []RowDiffType {
	if seq.Len() < 2 {
		return nil
	}
	fingers := make([]layout.Finger, seq.Len())
	rows := make([]int, seq.Len())
	for i, key := range seq.Keys() {
		f, ok := h.Finger(key)
		if !ok {
			return nil
		}
		pos, ok := h.Position(key)
		if !ok {
			return nil
		}
		fingers[i], rows[i] = f, pos.Row
	}
	var out []RowDiffType
	for i := 0; i+1 < len(fingers); i++ {
		if d, ok := BigramRowDiff(fingers[i], rows[i], fingers[i+1], rows[i+1]); ok {
			out = append(out, d)
		}
	}
	return out
}

// BigramRowDiff classifies two consecutive presses by their row offset. Rows
// grow downwards. The first matching finger pair decides the result.
func BigramRowDiff(f1 layout.Finger, row1 int, f2 layout.Finger, row2 int) (RowDiffType, bool) {
	lower, higher := f1, f2
	if row2 > row1 {
		lower, higher = f2, f1
	}
	diff := row1 - row2
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		return 0, false
	}

	pair := func(l, h layout.Finger) bool { return lower == l && higher == h }
	switch {
	case pair(layout.Middle, layout.Index):
		if diff == 2 {
			return MiddleBelowIndex2u, true
		}
	case pair(layout.Middle, layout.Pinky):
		if diff == 1 {
			return MiddleBelowPinky1u, true
		}
		if diff == 2 {
			return MiddleBelowPinky2u, true
		}
	case pair(layout.Pinky, layout.Ring):
		if diff == 2 {
			return PinkyBelowRing2u, true
		}
	case pair(layout.Ring, layout.Pinky):
		if diff == 1 {
			return RingBelowPinky1u, true
		}
		if diff == 2 {
			return RingBelowPinky2u, true
		}
	case pair(layout.Index, layout.Pinky):
		if diff == 2 {
			return IndexBelowPinky2u, true
		}
	case pair(layout.Middle, layout.Ring):
		if diff == 2 {
			return MiddleBelowRing2u, true
		}
	case diff == 2:
		return RowDiff2u, true
	}
	return 0, false
}

// HandDirection returns the roll or redirect category of a sequence on one
// hand.
func HandDirection(h *layout.Hand, seq model.KeySeq) (DirectionType, bool) {
	if seq.Len() < 2 {
		return 0, false
	}
	f0, ok0 := h.Finger(seq.At(0))
	f1, ok1 := h.Finger(seq.At(1))
	if !ok0 || !ok1 {
		return 0, false
	}
	if seq.Len() == 2 {
		return BigramDirection(f0, f1)
	}
	f2, ok2 := h.Finger(seq.At(2))
	if !ok2 {
		return 0, false
	}
	return TrigramDirection(f0, f1, f2)
}

type fingerPair [2]layout.Finger

type fingerTriple [3]layout.Finger

var bigramDirections = map[fingerPair]DirectionType{
	{layout.Pinky, layout.Ring}:   InwardsPinkyRing,
	{layout.Pinky, layout.Middle}: InwardsPinkyMiddle,
	{layout.Middle, layout.Pinky}: OutwardsMiddlePinky,
	{layout.Ring, layout.Pinky}:   OutwardsRingPinky,
}

// Redirects: no pinky (1), index in the middle (2), index not in the middle
// (3), no index (4).
var redirects = map[fingerTriple]DirectionType{
	{layout.Ring, layout.Index, layout.Middle}: Redirect1,
	{layout.Middle, layout.Ring, layout.Index}: Redirect1,
	{layout.Index, layout.Ring, layout.Middle}: Redirect1,
	{layout.Middle, layout.Index, layout.Ring}: Redirect1,

	{layout.Middle, layout.Index, layout.Pinky}: Redirect2,
	{layout.Ring, layout.Index, layout.Pinky}:   Redirect2,
	{layout.Pinky, layout.Index, layout.Middle}: Redirect2,
	{layout.Pinky, layout.Index, layout.Ring}:   Redirect2,

	{layout.Index, layout.Pinky, layout.Middle}: Redirect3,
	{layout.Middle, layout.Pinky, layout.Index}: Redirect3,
	{layout.Index, layout.Pinky, layout.Ring}:   Redirect3,
	{layout.Ring, layout.Pinky, layout.Index}:   Redirect3,

	{layout.Pinky, layout.Middle, layout.Ring}: Redirect4,
	{layout.Middle, layout.Pinky, layout.Ring}: Redirect4,
	{layout.Ring, layout.Pinky, layout.Middle}: Redirect4,
	{layout.Ring, layout.Middle, layout.Pinky}: Redirect4,
}

// BigramDirection returns the in/out roll of an ordered finger pair.
func BigramDirection(f1, f2 layout.Finger) (DirectionType, bool) {
	d, ok := bigramDirections[fingerPair{f1, f2}]
	return d, ok
}

// TrigramDirection returns the redirect category of an ordered finger triple.
// Triples that are not redirects fall back to the harder of their two rolls.
func TrigramDirection(f1, f2, f3 layout.Finger) (DirectionType, bool) {
	if d, ok := redirects[fingerTriple{f1, f2, f3}]; ok {
		return d, true
	}
	first, ok1 := BigramDirection(f1, f2)
	second, ok2 := BigramDirection(f2, f3)
	return combine(first, ok1, second, ok2, DirectionType.Less)
}
