package effort

import (
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

// combine reduces two optional values to one: the present one if only one is
// present, otherwise the greater. Ties go to the left value.
func combine[T any](left T, leftOK bool, right T, rightOK bool, less func(a, b T) bool) (T, bool) {
	switch {
	case !leftOK && !rightOK:
		var zero T
		return zero, false
	case !leftOK:
		return right, true
	case !rightOK:
		return left, true
	case less(left, right):
		return right, true
	default:
		return left, true
	}
}

// Repeats returns the harder repeat category of the two hands.
func Repeats(hands layout.Hands, seq model.KeySeq) (Repeat, bool) {
	l, lok := HandRepeats(hands.Left, seq)
	r, rok := HandRepeats(hands.Right, seq)
	return combine(l, lok, r, rok, Repeat.Less)
}

// RowDiff returns the row difference tuple of the hand whose tuple contains the
// hardest element.
func RowDiff(hands layout.Hands, seq model.KeySeq) []RowDiffType {
	l := HandRowDiff(hands.Left, seq)
	r := HandRowDiff(hands.Right, seq)
	out, _ := combine(l, len(l) > 0, r, len(r) > 0, func(a, b []RowDiffType) bool {
		ma, _ := MaxRowDiff(a)
		mb, _ := MaxRowDiff(b)
		return ma < mb
	})
	return out
}

// Direction returns the harder direction category of the two hands.
func Direction(hands layout.Hands, seq model.KeySeq) (DirectionType, bool) {
	l, lok := HandDirection(hands.Left, seq)
	r, rok := HandDirection(hands.Right, seq)
	return combine(l, lok, r, rok, DirectionType.Less)
}
