// Package effort classifies key sequences by finger repeats, row differences
// and horizontal direction.
package effort

import "github.com/verte-zerg/keyseq/internal/layout"

// RepeatType is a same-finger category, from least to most effort.
type RepeatType int

// Repeat types.
const (
	REP  RepeatType = iota + 1 // repeated key
	SFS                        // same finger skipgram
	SFB                        // same finger bigram
	RSFT                       // same finger trigram with one repeat
	SFT                        // same finger trigram
)

var repeatNames = map[RepeatType]string{
	REP:  "REP",
	SFS:  "SFS",
	SFB:  "SFB",
	RSFT: "RSFT",
	SFT:  "SFT",
}

func (t RepeatType) String() string {
	if name, ok := repeatNames[t]; ok {
		return name
	}
	return "?"
}

// Repeat is a repeat category together with the finger involved.
type Repeat struct {
	Type   RepeatType
	Finger layout.Finger
}

// Less orders repeats by type, then by finger.
func (r Repeat) Less(other Repeat) bool {
	if r.Type != other.Type {
		return r.Type < other.Type
	}
	return r.Finger < other.Finger
}

// RowDiffType is a vertical-offset category for a bigram, from least to most
// effort.
type RowDiffType int

// Row difference types.
const (
	RowDiff2u RowDiffType = iota + 1
	MiddleBelowIndex2u
	MiddleBelowPinky1u
	IndexBelowPinky2u
	MiddleBelowRing2u
	PinkyBelowRing2u
	MiddleBelowPinky2u
	RingBelowPinky1u
	RingBelowPinky2u
)

var rowDiffNames = map[RowDiffType]string{
	RowDiff2u:          "RowDiff2u",
	MiddleBelowIndex2u: "MiddleBelowIndex2u",
	MiddleBelowPinky1u: "MiddleBelowPinky1u",
	IndexBelowPinky2u:  "IndexBelowPinky2u",
	MiddleBelowRing2u:  "MiddleBelowRing2u",
	PinkyBelowRing2u:   "PinkyBelowRing2u",
	MiddleBelowPinky2u: "MiddleBelowPinky2u",
	RingBelowPinky1u:   "RingBelowPinky1u",
	RingBelowPinky2u:   "RingBelowPinky2u",
}

func (t RowDiffType) String() string {
	if name, ok := rowDiffNames[t]; ok {
		return name
	}
	return "?"
}

// RowDiffTypes lists all row difference types from least to most effort.
func RowDiffTypes() []RowDiffType {
	return []RowDiffType{
		RowDiff2u, MiddleBelowIndex2u, MiddleBelowPinky1u, IndexBelowPinky2u, MiddleBelowRing2u,
		PinkyBelowRing2u, MiddleBelowPinky2u, RingBelowPinky1u, RingBelowPinky2u,
	}
}

// MaxRowDiff returns the greatest element of a row difference tuple.
func MaxRowDiff(diffs []RowDiffType) (RowDiffType, bool) {
	if len(diffs) == 0 {
		return 0, false
	}
	out := diffs[0]
	for _, d := range diffs[1:] {
		if d > out {
			out = d
		}
	}
	return out, true
}

// DirectionType is an in/out roll or redirect category. Direction types are
// ordered by their effort score, not by declaration order.
type DirectionType int

// Direction types.
const (
	Redirect1 DirectionType = iota + 1
	InwardsPinkyMiddle
	InwardsPinkyRing
	OutwardsMiddlePinky
	Redirect2
	OutwardsRingPinky
	Redirect3
	Redirect4
)

var directionEfforts = map[DirectionType]float64{
	Redirect1:           0.4,
	InwardsPinkyMiddle:  0.8,
	InwardsPinkyRing:    1.5,
	OutwardsMiddlePinky: 2.5,
	Redirect2:           3.1,
	OutwardsRingPinky:   7,
	Redirect3:           10,
	Redirect4:           25,
}

var directionNames = map[DirectionType]string{
	Redirect1:           "Redirect1",
	InwardsPinkyMiddle:  "InwardsPinkyMiddle",
	InwardsPinkyRing:    "InwardsPinkyRing",
	OutwardsMiddlePinky: "OutwardsMiddlePinky",
	Redirect2:           "Redirect2",
	OutwardsRingPinky:   "OutwardsRingPinky",
	Redirect3:           "Redirect3",
	Redirect4:           "Redirect4",
}

// Effort returns the effort score of the direction. Zero for unknown values.
func (t DirectionType) Effort() float64 {
	return directionEfforts[t]
}

// Less compares two directions by effort score.
func (t DirectionType) Less(other DirectionType) bool {
	return t.Effort() < other.Effort()
}

func (t DirectionType) String() string {
	if name, ok := directionNames[t]; ok {
		return name
	}
	return "?"
}

// DirectionTypes lists all direction types from least to most effort.
func DirectionTypes() []DirectionType {
	return []DirectionType{
		Redirect1, InwardsPinkyMiddle, InwardsPinkyRing, OutwardsMiddlePinky,
		Redirect2, OutwardsRingPinky, Redirect3, Redirect4,
	}
}

// RepeatTypes lists all repeat types from least to most effort.
func RepeatTypes() []RepeatType {
	return []RepeatType{REP, SFS, SFB, RSFT, SFT}
}
