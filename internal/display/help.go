package display

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keyseq/internal/effort"
)

var repeatHelp = map[effort.RepeatType]string{
	effort.REP:  "Repeated key (bigram/trigram)",
	effort.SFS:  "Same finger skipgram (first and last key, same finger)",
	effort.SFB:  "Same finger bigram",
	effort.RSFT: "Same finger trigram with one repeated key",
	effort.SFT:  "Same finger trigram",
}

var rowDiffHelp = map[effort.RowDiffType]string{
	effort.RowDiff2u:          "2 row difference",
	effort.MiddleBelowIndex2u: "Middle below index (2u)",
	effort.MiddleBelowPinky1u: "Middle below pinky (1u)",
	effort.IndexBelowPinky2u:  "Index below pinky (2u)",
	effort.MiddleBelowRing2u:  "Middle below ring (2u)",
	effort.PinkyBelowRing2u:   "Pinky below ring (2u)",
	effort.MiddleBelowPinky2u: "Middle below pinky (2u)",
	effort.RingBelowPinky1u:   "Ring below pinky (1u)",
	effort.RingBelowPinky2u:   "Ring below pinky (2u)",
}

var directionHelp = map[effort.DirectionType]string{
	effort.Redirect1:           "Redirect without pinky",
	effort.InwardsPinkyMiddle:  "Inwards from pinky to middle",
	effort.InwardsPinkyRing:    "Inwards from pinky to ring",
	effort.OutwardsMiddlePinky: "Outwards from middle to pinky",
	effort.Redirect2:           "Redirect with index in the middle",
	effort.OutwardsRingPinky:   "Outwards from ring to pinky",
	effort.Redirect3:           "Redirect with index not in the middle",
	effort.Redirect4:           "Redirect without index",
}

// HelpLines describes every classification, least to most effort within each
// group. Names are colored when rendered.
func HelpLines() []Line {
	lines := []Line{
		{{Text: "Fingers: p pinky, r ring, m middle, i index, t thumb"}},
		nil,
		{{Text: "Repeats", Bold: true}},
	}
	for _, t := range effort.RepeatTypes() {
		lines = append(lines, helpEntry(RepeatName(t), RepeatColor(t), repeatHelp[t], ""))
	}
	lines = append(lines, nil, Line{{Text: "Row difference", Bold: true}})
	for _, t := range effort.RowDiffTypes() {
		lines = append(lines, helpEntry(RowDiffName(t), RowDiffColor(t), rowDiffHelp[t], ""))
	}
	lines = append(lines, nil, Line{{Text: "Direction", Bold: true}})
	for _, t := range effort.DirectionTypes() {
		lines = append(lines, helpEntry(DirectionName(t), DirectionColor(t), directionHelp[t], fmt.Sprintf("(%g)", t.Effort())))
	}
	return lines
}

func helpEntry(name, color, text, suffix string) Line {
	line := Line{
		{Text: fmt.Sprintf("  %-8s", name), Color: color},
		{Text: text},
	}
	if suffix != "" {
		line = append(line, Span{Text: " " + suffix})
	}
	return line
}

// HelpText renders HelpLines joined by newlines.
func HelpText(styled bool) string {
	lines := HelpLines()
	out := make([]string, len(lines))
	for i, l := range lines {
		if styled {
			out[i] = l.Render()
		} else {
			out[i] = l.Plain()
		}
	}
	return strings.Join(out, "\n")
}
