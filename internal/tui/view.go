package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keyseq/internal/display"
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

var (
	activeCardBorder  = lipgloss.Color("#2beaff")
	passiveCardBorder = lipgloss.Color("#0d4247")
)

var (
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(passiveCardBorder).Padding(1, 5)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	progressStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	logStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FF4D4F")).Padding(1, 2)
	posStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("176"))
	leftCountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("156"))
	rightCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	totalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// Position bar colors: discarded low, low window, high window, discarded high.
var barColors = [4]lipgloss.Color{"156", "112", "63", "111"}

const (
	barMarker    = "█"
	cardSymbols  = 3
	cardFallback = "   "
	defaultHint  = "Move the ngram to the LEFT or RIGHT (or press ENTER to place it)"
	finishedHint = "All ngrams placed! Save the results (ctrl+s) and quit (ctrl+c)."
	quitQuestion = "Are you sure you want to exit? Unsaved progress is lost."
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.confirmQuit {
		return m.renderConfirm()
	}
	width := m.width
	if width <= 0 {
		width = defaultBarWidth
	}

	sections := []string{
		m.renderProgress(width),
		"",
		m.renderHint(),
		"",
		m.renderCards(),
		"",
		m.renderPositionBar(width),
	}
	if !m.view.finished {
		sections = append(sections, m.statusText())
	}
	top := lipgloss.JoinVertical(lipgloss.Center, sections...)
	top = lipgloss.PlaceHorizontal(width, lipgloss.Center, top)

	footer := m.renderFooter()
	helpView := m.help.View(m.keys)
	used := lipgloss.Height(top) + lipgloss.Height(footer) + lipgloss.Height(helpView) + 1
	logHeight := 8
	if m.height > 0 {
		logHeight = m.height - used
	}
	parts := []string{top, ""}
	if logHeight > 0 {
		parts = append(parts, m.renderLog(width, logHeight))
	}
	parts = append(parts, footer, helpView)
	return strings.Join(parts, "\n")
}

func (m *Model) renderProgress(width int) string {
	v := m.view
	title := progressStyle.Render(fmt.Sprintf("Placed %d out of %d ngrams.", v.placed, v.total))
	barWidth := width - 4
	if barWidth > defaultBarWidth {
		barWidth = defaultBarWidth
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
	pct := 0.0
	if v.total > 0 {
		pct = float64(v.placed) / float64(v.total)
	}
	return title + "\n" + m.progress.ViewAs(pct)
}

func (m *Model) renderHint() string {
	if m.view.finished {
		return hintStyle.Render(finishedHint)
	}
	return hintStyle.Render(defaultHint)
}

func (m *Model) renderCards() string {
	v := m.view
	low := renderCard(m.hands, v.low, v.hasLow, false)
	current := renderCard(m.hands, v.current, !v.current.IsEmpty(), !v.finished)
	high := renderCard(m.hands, v.high, v.hasHigh, false)
	return lipgloss.JoinHorizontal(lipgloss.Center, low, " ", current, " ", high)
}

// renderCard shows the symbols of a sequence on both hands. A missing
// sequence keeps the card size but draws nothing.
func renderCard(hands layout.Hands, seq model.KeySeq, ok, active bool) string {
	left := display.SymbolsLine(hands, layout.Left, seq, cardFallback, cardSymbols)
	right := display.SymbolsLine(hands, layout.Right, seq, cardFallback, cardSymbols)
	content := left.Render() + "\n" + right.Render()
	style := cardStyle
	if active {
		style = style.BorderForeground(activeCardBorder)
	}
	if !ok {
		blank := cardFallback + "\n" + cardFallback
		style = style.BorderStyle(lipgloss.HiddenBorder())
		return style.Render(blank)
	}
	return style.Render(content)
}

// barSegments scales the four ranking areas to width cells. The two windows
// always get at least one cell.
func barSegments(areas [4]int, width int) [4]int {
	var out [4]int
	if width <= 0 {
		return out
	}
	total := 0
	for _, a := range areas {
		if a > 0 {
			total += a
		}
	}
	if total == 0 {
		areas = [4]int{0, 1, 1, 0}
		total = 2
	}
	used := 0
	for i, a := range areas {
		if a < 0 {
			a = 0
		}
		out[i] = int(math.Round(float64(a) / float64(total) * float64(width)))
		used += out[i]
	}
	for _, i := range []int{1, 2} {
		if out[i] == 0 {
			out[i] = 1
			used++
		}
	}
	// Trim rounding overflow from the widest segment.
	for used > width {
		widest := 0
		for i := range out {
			if out[i] > out[widest] {
				widest = i
			}
		}
		if out[widest] <= 1 {
			break
		}
		out[widest]--
		used--
	}
	return out
}

func (m *Model) renderPositionBar(width int) string {
	barWidth := width - 4
	if barWidth > defaultBarWidth {
		barWidth = defaultBarWidth
	}
	segments := barSegments(m.view.areas, barWidth)
	var b strings.Builder
	for i, n := range segments {
		if n <= 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(barColors[i]).Render(strings.Repeat(barMarker, n)))
	}
	return b.String()
}

func (m *Model) renderLog(width, height int) string {
	var lines []string
	for _, entry := range m.logLines {
		lines = append(lines, wrapText(entry, width)...)
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return logStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	v := m.view
	pct := 0
	if v.total > 0 {
		pct = int(float64(v.placed) / float64(v.total) * 100)
	}
	segments := []string{fmt.Sprintf("Progress %d%%", pct)}
	if v.hasIndex && !v.finished {
		segments = append(segments, fmt.Sprintf("Step %d", m.manager.HistoryLen()))
	}
	if m.dirty {
		segments = append(segments, "Unsaved changes")
	}
	if m.sessionID != "" {
		segments = append(segments, "Journal "+shortID(m.sessionID))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderConfirm() string {
	content := quitQuestion + "\n\n" + "[y]es  [n]o"
	box := modalStyle.Render(content)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the sorting UI and blocks until it exits.
func Run(m *Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	v := m.view
	logErrf("placed %d out of %d ngrams\n", v.placed, v.total)
	if m.dirty {
		logErrln("exited with unsaved placements; the ranking file keeps the last save")
	}
	return nil
}
