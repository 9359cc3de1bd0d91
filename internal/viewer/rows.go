package viewer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/verte-zerg/keyseq/internal/display"
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

var rankingColumns = []table.Column{
	{Title: "#", Width: 5},
	{Title: "indices", Width: 10},
	{Title: "left", Width: 5},
	{Title: "right", Width: 5},
	{Title: "fingers", Width: 9},
	{Title: "repeats", Width: 7},
	{Title: "rowdiff", Width: 9},
	{Title: "direction", Width: 9},
}

// buildRows renders one plain text row per ranked sequence. Colors are left
// to the details line since table cells are truncated by width.
func buildRows(hands layout.Hands, seqs []model.KeySeq) []table.Row {
	rows := make([]table.Row, len(seqs))
	for i, seq := range seqs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			seq.String(),
			hands.Left.SymbolsFor(seq, ""),
			hands.Right.SymbolsFor(seq, ""),
			display.FingersLine(hands, seq).Plain(),
			display.RepeatLine(hands, seq).Plain(),
			display.RowDiffLine(hands, seq).Plain(),
			display.DirectionLine(hands, seq).Plain(),
		}
	}
	return rows
}

// moveRow moves rows[from] to index to, shifting the rows in between by one.
func moveRow(rows []model.KeySeq, from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(rows) || to >= len(rows) {
		return
	}
	seq := rows[from]
	if from < to {
		copy(rows[from:to], rows[from+1:to+1])
	} else {
		copy(rows[to+1:from+1], rows[to:from])
	}
	rows[to] = seq
}

// findRow returns the first row whose left or right symbols equal query,
// ignoring case, or whose indices equal query (e.g. "0,5").
func findRow(hands layout.Hands, seqs []model.KeySeq, query string) (int, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0, false
	}
	for i, seq := range seqs {
		left := strings.ToLower(hands.Left.SymbolsFor(seq, ""))
		right := strings.ToLower(hands.Right.SymbolsFor(seq, ""))
		if query == left || query == right || query == seq.String() {
			return i, true
		}
	}
	return 0, false
}

// detailsLine renders the selected row with the classification colors.
func detailsLine(hands layout.Hands, seq model.KeySeq) display.Line {
	line := display.Line{{Text: seq.String(), Color: "gray"}, {Text: "  "}}
	line = append(line, display.SymbolsLine(hands, layout.Left, seq, "-", 0)...)
	line = append(line, display.Span{Text: " "})
	line = append(line, display.SymbolsLine(hands, layout.Right, seq, "-", 0)...)
	for _, part := range []display.Line{
		display.FingersLine(hands, seq),
		display.RepeatLine(hands, seq),
		display.RowDiffLine(hands, seq),
		display.DirectionLine(hands, seq),
	} {
		if part.IsEmpty() {
			continue
		}
		line = append(line, display.Span{Text: "  "})
		line = append(line, part...)
	}
	return line
}
