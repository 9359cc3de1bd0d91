package display

import (
	"github.com/verte-zerg/keyseq/internal/effort"
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

const fallbackColor = "gray"

var repeatColors = map[effort.RepeatType]string{
	effort.REP:  "gray",
	effort.SFS:  "royal_blue1",
	effort.SFB:  "#e36f42",
	effort.RSFT: "deep_pink3",
	effort.SFT:  "deep_pink2",
}

var fingerColors = map[layout.Finger]string{
	layout.Pinky:  "deep_pink3",
	layout.Ring:   "red",
	layout.Middle: "blue1",
	layout.Index:  "#069606",
	layout.Thumb:  "#7d807d",
}

var rowDiffNames = map[effort.RowDiffType]string{
	effort.RowDiff2u:          "2u",
	effort.MiddleBelowIndex2u: "mi2u",
	effort.MiddleBelowPinky1u: "mp1u",
	effort.IndexBelowPinky2u:  "ip2u",
	effort.MiddleBelowRing2u:  "mr2u",
	effort.PinkyBelowRing2u:   "pr2u",
	effort.MiddleBelowPinky2u: "mp2u",
	effort.RingBelowPinky1u:   "rp1u",
	effort.RingBelowPinky2u:   "rp2u",
}

var rowDiffColors = map[effort.RowDiffType]string{
	effort.RowDiff2u:          "gray",
	effort.MiddleBelowIndex2u: "dodger_blue2",
	effort.MiddleBelowPinky1u: "spring_green3",
	effort.IndexBelowPinky2u:  "yellow1",
	effort.MiddleBelowRing2u:  "dark_orange",
	effort.PinkyBelowRing2u:   "red",
	effort.MiddleBelowPinky2u: "purple",
	effort.RingBelowPinky1u:   "deep_pink2",
	effort.RingBelowPinky2u:   "deep_pink3",
}

var directionNames = map[effort.DirectionType]string{
	effort.Redirect1:           "redir1",
	effort.InwardsPinkyMiddle:  "in(pm)",
	effort.InwardsPinkyRing:    "in(pr)",
	effort.OutwardsMiddlePinky: "out(mp)",
	effort.Redirect2:           "redir2",
	effort.OutwardsRingPinky:   "out(rp)",
	effort.Redirect3:           "redir3",
	effort.Redirect4:           "redir4",
}

var directionColors = map[effort.DirectionType]string{
	effort.Redirect1:           "#7d807d",
	effort.InwardsPinkyMiddle:  "#3b6bdb",
	effort.InwardsPinkyRing:    "#46e3db",
	effort.OutwardsMiddlePinky: "#56e04c",
	effort.Redirect2:           "#edd928",
	effort.OutwardsRingPinky:   "dark_orange3",
	effort.Redirect3:           "red",
	effort.Redirect4:           "deep_pink3",
}

// RepeatName returns the short name of a repeat type.
func RepeatName(t effort.RepeatType) string {
	return t.String()
}

// RepeatColor returns the color of a repeat type.
func RepeatColor(t effort.RepeatType) string {
	if c, ok := repeatColors[t]; ok {
		return c
	}
	return fallbackColor
}

// FingerColor returns the color of a finger.
func FingerColor(f layout.Finger) string {
	if c, ok := fingerColors[f]; ok {
		return c
	}
	return fallbackColor
}

// FingerLetter returns the one letter abbreviation used in the layout files.
func FingerLetter(f layout.Finger) string {
	name := f.String()
	if name == "" || name == "unknown" {
		return "?"
	}
	return name[:1]
}

// RowDiffName returns the short name of a row difference type.
func RowDiffName(t effort.RowDiffType) string {
	if n, ok := rowDiffNames[t]; ok {
		return n
	}
	return "?"
}

// RowDiffColor returns the color of a row difference type.
func RowDiffColor(t effort.RowDiffType) string {
	if c, ok := rowDiffColors[t]; ok {
		return c
	}
	return fallbackColor
}

// DirectionName returns the short name of a direction type.
func DirectionName(t effort.DirectionType) string {
	if n, ok := directionNames[t]; ok {
		return n
	}
	return "?"
}

// DirectionColor returns the color of a direction type.
func DirectionColor(t effort.DirectionType) string {
	if c, ok := directionColors[t]; ok {
		return c
	}
	return fallbackColor
}

// RepeatLine renders the repeat classification, e.g. "SFB(m)". The line is
// empty when the sequence is not a repeat.
func RepeatLine(hands layout.Hands, seq model.KeySeq) Line {
	r, ok := effort.Repeats(hands, seq)
	if !ok {
		return nil
	}
	return Line{
		{Text: RepeatName(r.Type), Color: RepeatColor(r.Type)},
		{Text: "("},
		{Text: FingerLetter(r.Finger), Color: FingerColor(r.Finger)},
		{Text: ")"},
	}
}

// RowDiffLine renders the row difference names separated by a space.
func RowDiffLine(hands layout.Hands, seq model.KeySeq) Line {
	diffs := effort.RowDiff(hands, seq)
	var line Line
	for i, d := range diffs {
		if i > 0 {
			line = append(line, Span{Text: " "})
		}
		line = append(line, Span{Text: RowDiffName(d), Color: RowDiffColor(d)})
	}
	return line
}

// DirectionLine renders the direction classification.
func DirectionLine(hands layout.Hands, seq model.KeySeq) Line {
	d, ok := effort.Direction(hands, seq)
	if !ok {
		return nil
	}
	return Line{{Text: DirectionName(d), Color: DirectionColor(d)}}
}

// HandFingersLine renders the key categories of a sequence on one hand, each
// in its key color. ok is false when any key has no category.
func HandFingersLine(h *layout.Hand, seq model.KeySeq) (Line, bool) {
	if h == nil || len(h.Categories) == 0 || seq.IsEmpty() {
		return nil, false
	}
	line := make(Line, 0, seq.Len())
	for _, key := range seq.Keys() {
		cat, ok := h.Categories[key]
		if !ok {
			return nil, false
		}
		line = append(line, Span{Text: cat, Color: h.Colors[key]})
	}
	return line, true
}

// FingersLine combines both hands' category strings. Equal strings are shown
// once, different ones are separated by two spaces.
func FingersLine(hands layout.Hands, seq model.KeySeq) Line {
	left, lok := HandFingersLine(hands.Left, seq)
	right, rok := HandFingersLine(hands.Right, seq)
	switch {
	case !lok && !rok:
		return nil
	case !lok:
		return right
	case !rok:
		return left
	case left.Equal(right):
		return left
	}
	out := make(Line, 0, len(left)+len(right)+1)
	out = append(out, left...)
	out = append(out, Span{Text: "  "})
	return append(out, right...)
}

// Symbol colors per hand.
const (
	LeftSymbolColor  = "sky_blue1"
	RightSymbolColor = "light_pink1"
)

// SymbolsLine renders the symbols of a sequence on one hand in bold with the
// hand color. When center is positive the text is centered to that width.
func SymbolsLine(hands layout.Hands, side layout.Side, seq model.KeySeq, fallback string, center int) Line {
	text := hands.Hand(side).SymbolsFor(seq, fallback)
	if center > 0 {
		text = Center(text, center)
	}
	color := LeftSymbolColor
	if side == layout.Right {
		color = RightSymbolColor
	}
	return Line{{Text: text, Color: color, Bold: true}}
}
