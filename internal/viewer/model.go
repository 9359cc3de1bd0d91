// Package viewer provides the Bubble Tea ranking viewer.
package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keyseq/internal/display"
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
	"github.com/verte-zerg/keyseq/internal/ranking"
	"github.com/verte-zerg/keyseq/internal/stats"
)

const (
	tabRanking = iota
	tabSummary
	tabHelp
)

const (
	plotHeight    = 10
	pageRows      = 30
	gotoMaxLen    = 8
	maxLogLines   = 500
	logTimeLayout = "15:04:05"
)

const instructions = `Browse the table with up/down. Space grabs the selected row; while a
row is grabbed, up/down/pgup/pgdown/home/end move it. Space places it again.
g jumps to the first row whose left or right symbols (or indices) match.

Short notations: p pinky, r ring, m middle, i index, t thumb.`

// Options configures the viewer.
type Options struct {
	Hands       layout.Hands
	RankingPath string

	// Total is the number of sequences in the universe, used for progress.
	Total int

	// Watcher is optional. The viewer reloads the ranking when it fires.
	Watcher *Watcher

	Now func() time.Time
}

// Model implements the Bubble Tea ranking viewer.
type Model struct {
	hands       layout.Hands
	rankingPath string
	total       int
	watcher     *Watcher
	now         func() time.Time

	rows    []model.KeySeq
	cursor  int
	grabbed bool
	dirty   bool

	tabs      []string
	activeTab int
	table     table.Model
	viewports []viewport.Model
	stale     bool

	gotoMode  bool
	gotoInput textinput.Model

	confirmQuit bool
	logLines    []string

	width  int
	height int
}

// NewModel constructs a viewer for the ranking at opts.RankingPath. A missing
// file is logged and shown as an empty ranking; a file with duplicates is an
// error.
func NewModel(opts Options) (*Model, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		hands:       opts.Hands,
		rankingPath: opts.RankingPath,
		total:       opts.Total,
		watcher:     opts.Watcher,
		now:         now,
		tabs:        []string{"Ranking", "Summary", "Help"},
	}
	m.initTable()
	m.initViewports()
	m.gotoInput = newGotoInput()
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.watcher.wait()
}

// Rows returns a copy of the displayed ranking.
func (m *Model) Rows() []model.KeySeq {
	return append([]model.KeySeq(nil), m.rows...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.stale = true
		m.renderTabContents()
		return m, nil
	case rankingChangedMsg:
		m.reload()
		return m, m.watcher.wait()
	case watchErrMsg:
		m.writeLog(fmt.Sprintf("Watch error: %v", msg.err))
		return m, m.watcher.wait()
	case tea.KeyMsg:
		if m.confirmQuit {
			return m.updateConfirm(msg)
		}
		if m.gotoMode {
			return m.updateGoto(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.dirty {
			m.confirmQuit = true
			return m, nil
		}
		return m, tea.Quit
	case "left":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "tab":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "h", "?":
		if m.activeTab == tabHelp {
			m.activeTab = tabRanking
		} else {
			m.activeTab = tabHelp
		}
		m.renderTabContents()
		return m, tea.ClearScreen
	case "ctrl+s":
		m.save()
		return m, nil
	}
	if m.activeTab != tabRanking {
		vp := m.viewports[m.activeTab]
		switch msg.String() {
		case "home":
			vp.GotoTop()
		case "end":
			vp.GotoBottom()
		default:
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
		m.viewports[m.activeTab] = vp
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		m.moveTo(m.cursor - 1)
	case "down", "j":
		m.moveTo(m.cursor + 1)
	case "pgup", "ctrl+up":
		m.moveTo(m.cursor - pageRows)
	case "pgdown", "ctrl+down":
		m.moveTo(m.cursor + pageRows)
	case "home":
		m.moveTo(0)
	case "end":
		m.moveTo(len(m.rows) - 1)
	case " ", "space":
		m.toggleGrab()
	case "g", "/":
		return m.startGoto()
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "ctrl+c":
		return m, tea.Quit
	case "n", "N", "esc":
		m.confirmQuit = false
	}
	return m, nil
}

func (m *Model) startGoto() (tea.Model, tea.Cmd) {
	m.gotoMode = true
	m.gotoInput.SetValue("")
	return m, m.gotoInput.Focus()
}

func (m *Model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.gotoMode = false
		m.gotoInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.gotoMode = false
		m.gotoInput.Blur()
		m.gotoRow(m.gotoInput.Value())
		return m, nil
	case tea.KeyCtrlC:
		m.gotoMode = false
		m.gotoInput.Blur()
		return m.updateKeys(msg)
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) gotoRow(query string) {
	idx, ok := findRow(m.hands, m.rows, query)
	if !ok {
		m.writeLog(fmt.Sprintf("No matches for '%s'.", query))
		return
	}
	m.moveTo(idx)
}

// moveTo moves the cursor to target. A grabbed row travels with the cursor.
func (m *Model) moveTo(target int) {
	if len(m.rows) == 0 {
		return
	}
	target = clampInt(target, 0, len(m.rows)-1)
	if m.grabbed && target != m.cursor {
		moveRow(m.rows, m.cursor, target)
		m.dirty = true
		m.stale = true
		m.table.SetRows(buildRows(m.hands, m.rows))
	}
	m.cursor = target
	m.table.SetCursor(target)
}

func (m *Model) toggleGrab() {
	if len(m.rows) == 0 {
		return
	}
	if !m.grabbed {
		m.grabbed = true
		return
	}
	m.grabbed = false
	seq := m.rows[m.cursor]
	m.writeLog(fmt.Sprintf("Placed: left=%s, right=%s, row=%d",
		m.hands.Left.SymbolsFor(seq, ""), m.hands.Right.SymbolsFor(seq, ""), m.cursor+1))
	m.renderTabContents()
}

// placedRows is the ranking without a grabbed row, which has no place yet.
func (m *Model) placedRows() []model.KeySeq {
	if !m.grabbed || len(m.rows) == 0 {
		return m.rows
	}
	out := make([]model.KeySeq, 0, len(m.rows)-1)
	out = append(out, m.rows[:m.cursor]...)
	return append(out, m.rows[m.cursor+1:]...)
}

func (m *Model) save() {
	seqs := m.placedRows()
	if err := ranking.Save(m.rankingPath, seqs); err != nil {
		m.writeLog(fmt.Sprintf("Failed to save: %v", err))
		return
	}
	m.dirty = m.grabbed
	m.writeLog(fmt.Sprintf("Saved %d ngrams to: %s", len(seqs), m.rankingPath))
}

func (m *Model) load() error {
	m.writeLog(fmt.Sprintf("Loading data from: %s", m.rankingPath))
	seqs, err := ranking.Load(m.rankingPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.writeLog(fmt.Sprintf("Error loading data from: %s (File does not exist)", m.rankingPath))
			m.setRows(nil)
			return nil
		}
		return fmt.Errorf("load ranking: %w", err)
	}
	m.setRows(seqs)
	return nil
}

// reload re-reads the ranking after a change on disk. Unsaved work is kept.
func (m *Model) reload() {
	if m.dirty || m.grabbed {
		m.writeLog("Ranking file changed on disk; keeping unsaved changes.")
		return
	}
	seqs, err := ranking.Load(m.rankingPath)
	if err != nil {
		m.writeLog(fmt.Sprintf("Error loading data from: %s (%v)", m.rankingPath, err))
		return
	}
	m.setRows(seqs)
	m.writeLog(fmt.Sprintf("Reloaded %d ngrams from: %s", len(seqs), m.rankingPath))
}

func (m *Model) setRows(seqs []model.KeySeq) {
	m.rows = seqs
	m.grabbed = false
	m.cursor = clampInt(m.cursor, 0, maxInt(0, len(seqs)-1))
	m.table.SetRows(buildRows(m.hands, m.rows))
	m.table.SetCursor(m.cursor)
	m.stale = true
	m.renderTabContents()
}

func (m *Model) writeLog(message string) {
	ts := m.now().Format(logTimeLayout)
	m.logLines = append(m.logLines, fmt.Sprintf("[%s] %s", ts, message))
	if extra := len(m.logLines) - maxLogLines; extra > 0 {
		m.logLines = append([]string(nil), m.logLines[extra:]...)
	}
}

func (m *Model) initTable() {
	m.table = table.New(
		table.WithColumns(rankingColumns),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.table.SetStyles(rankingTableStyles())
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func newGotoInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Goto (symbols or indices): "
	input.Placeholder = "Type here"
	input.CharLimit = gotoMaxLen
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.stale && m.activeTab == tabSummary {
		m.viewports[tabSummary].SetContent(m.renderSummary(width))
		m.stale = false
	}
	m.viewports[tabHelp].SetContent(instructions + "\n\n" + display.HelpText(true))
}

func (m *Model) renderSummary(width int) string {
	report := stats.BuildReport(m.hands, m.placedRows(), stats.DefaultBuckets)
	var buf bytes.Buffer
	if err := stats.RenderReportWithSize(&buf, report, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
