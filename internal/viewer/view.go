package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	logHeight    = 4
	quitQuestion = "Are you sure you want to exit? You will lose your progress if you have not saved it."
)

var activeNavStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F0F0F0")).
	Bold(true).
	Padding(0, 1).
	Border(lipgloss.RoundedBorder(), true).
	BorderForeground(lipgloss.Color("#C89A3A"))

var inactiveNavStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#B0B0B0")).
	Padding(0, 1).
	Border(lipgloss.RoundedBorder(), true).
	BorderForeground(lipgloss.Color("#4A4A4A"))

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	grabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	logStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	tableMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	confirmStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#FF4D4F")).Padding(1, 2)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#C89A3A")).Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmQuit {
		return fitLines(m.renderModal(confirmStyle, quitQuestion+"\n\n[y]es  [n]o"), m.width, m.height)
	}
	if m.gotoMode {
		return fitLines(m.renderModal(modalStyle, m.gotoInput.View()+"\n\n"+headerStyle.Render("enter: go  esc: cancel")), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1 + logHeight + 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(bodyHeight)
	m.adjustTableHeight(bodyHeight)
	m.gotoInput.Width = maxInt(gotoMaxLen+1, modalWidth(m.width)-lipgloss.Width(m.gotoInput.Prompt)-6)
}

// adjustTableHeight corrects the table height so that its rendered view,
// header included, fills the body exactly.
func (m *Model) adjustTableHeight(bodyHeight int) {
	target := maxInt(1, bodyHeight)
	for n := 0; n < 2; n++ {
		viewHeight := lipgloss.Height(m.table.View())
		if viewHeight == target {
			return
		}
		m.table.SetHeight(maxInt(1, m.table.Height()+target-viewHeight))
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	status := fmt.Sprintf("Placed %d out of %d ngrams.", len(m.placedRows()), m.total)
	if m.grabbed {
		status += "  " + grabStyle.Render("Moving row "+fmt.Sprint(m.cursor+1))
	}
	if m.dirty {
		status += "  " + headerStyle.Render("Unsaved changes")
	}
	return tabs + "\n" + status
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabRanking {
		if len(m.rows) == 0 {
			return fitLines("No ranked ngrams found.", m.width, height)
		}
		return fitLines(tableMuted.Render(m.table.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderFooter() string {
	details := ""
	if m.activeTab == tabRanking && len(m.rows) > 0 {
		details = detailsLine(m.hands, m.rows[m.cursor]).Render()
	}
	lines := m.logLines
	if len(lines) > logHeight {
		lines = lines[len(lines)-logHeight:]
	}
	logLines := make([]string, logHeight)
	for i, line := range lines {
		logLines[i] = truncateLine(line, m.width)
	}
	return strings.Join([]string{
		details,
		logStyle.Render(strings.Join(logLines, "\n")),
		m.renderHelp(),
	}, "\n")
}

func (m *Model) renderHelp() string {
	help := "Tabs: left/right  Move: up/down/pgup/pgdn  Grab/Place: space  Goto: g  Save: ctrl+s  Help: h  Quit: q"
	if m.activeTab != tabRanking {
		help = "Tabs: left/right  Scroll: up/down/pgup/pgdn  Save: ctrl+s  Help: h  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderModal(style lipgloss.Style, content string) string {
	box := style.Width(modalWidth(m.width)).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func rankingTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}

// Run starts the viewer and blocks until it exits.
func Run(m *Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
