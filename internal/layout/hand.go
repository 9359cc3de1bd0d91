// Package layout holds the per-hand keyboard model and builds it from a
// layout configuration.
package layout

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keyseq/internal/model"
)

// Finger identifies a finger. Fingers are ordered from least to most effort.
// The zero value means the finger is unknown.
type Finger int

// Fingers from least to most effort.
const (
	Thumb Finger = iota + 1
	Index
	Middle
	Ring
	Pinky
)

var fingerNames = map[Finger]string{
	Thumb:  "thumb",
	Index:  "index",
	Middle: "middle",
	Ring:   "ring",
	Pinky:  "pinky",
}

// ParseFinger maps a config letter (t, i, m, r, p) to a Finger.
func ParseFinger(s string) (Finger, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t":
		return Thumb, nil
	case "i":
		return Index, nil
	case "m":
		return Middle, nil
	case "r":
		return Ring, nil
	case "p":
		return Pinky, nil
	}
	return 0, fmt.Errorf("unknown finger %q (use one of t, i, m, r, p)", s)
}

// String returns the lowercase finger name.
func (f Finger) String() string {
	if name, ok := fingerNames[f]; ok {
		return name
	}
	return "unknown"
}

// Side is a hand designator.
type Side int

// Hand sides.
const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "Right"
	}
	return "Left"
}

// Position is a (column, row) matrix position. Rows grow downwards.
type Position struct {
	Col int
	Row int
}

// Hand is the layout of a single hand. Symbols defines which key indices
// exist; the other maps are sparse overlays over the same indices.
type Hand struct {
	Side       Side
	Symbols    map[int]string
	Fingers    map[int]Finger
	Categories map[int]string
	Colors     map[int]string
	Positions  map[int]Position
}

// NewHand returns a hand with empty maps.
func NewHand(side Side) *Hand {
	return &Hand{
		Side:       side,
		Symbols:    map[int]string{},
		Fingers:    map[int]Finger{},
		Categories: map[int]string{},
		Colors:     map[int]string{},
		Positions:  map[int]Position{},
	}
}

// Finger returns the finger assigned to a key.
func (h *Hand) Finger(key int) (Finger, bool) {
	if h == nil {
		return 0, false
	}
	f, ok := h.Fingers[key]
	if !ok || f == 0 {
		return 0, false
	}
	return f, true
}

// Position returns the matrix position of a key.
func (h *Hand) Position(key int) (Position, bool) {
	if h == nil {
		return Position{}, false
	}
	p, ok := h.Positions[key]
	return p, ok
}

// HasKey reports whether the hand has a symbol for the key.
func (h *Hand) HasKey(key int) bool {
	if h == nil {
		return false
	}
	_, ok := h.Symbols[key]
	return ok
}

// SymbolsFor joins the symbols of a sequence. If any key is missing on this
// hand, fallback is returned.
func (h *Hand) SymbolsFor(seq model.KeySeq, fallback string) string {
	if h == nil || seq.IsEmpty() {
		return fallback
	}
	var b strings.Builder
	for _, key := range seq.Keys() {
		sym, ok := h.Symbols[key]
		if !ok {
			return fallback
		}
		b.WriteString(sym)
	}
	return b.String()
}

// Hands pairs the two hand layouts.
type Hands struct {
	Left  *Hand
	Right *Hand
}

// Hand returns the hand for a side.
func (hs Hands) Hand(side Side) *Hand {
	if side == Right {
		return hs.Right
	}
	return hs.Left
}
