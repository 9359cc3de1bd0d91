// Package tui provides the Bubble Tea sorting interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
	"github.com/verte-zerg/keyseq/internal/placement"
	"github.com/verte-zerg/keyseq/internal/ranking"
)

const (
	maxLogLines     = 500
	logTimeLayout   = "2006-01-02 15:04:05"
	journalTimeout  = 2 * time.Second
	defaultBarWidth = 100
)

const instructions = `Instructions:
The three cards are the new ngram (highlighted, in the middle) and its two
neighbors in the ranking. The other ngrams are not shown.

New ngrams start in the middle of the ranking. Each move left or right jumps to
the middle of the remaining lower or higher effort ngrams, halving the search
space. Placing an ngram among 4000 others takes at most 12 steps.

LEFT = "more of these" / low effort
RIGHT = "less of these" / high effort`

// Journal records placement events.
type Journal interface {
	RecordEvent(ctx context.Context, event model.PlacementEvent) error
}

// Options configures the sorting UI.
type Options struct {
	Hands       layout.Hands
	Universe    []model.KeySeq
	RankingPath string

	// Saved is the previously saved ranking. When HasSaved is false the first
	// sequence is placed automatically.
	Saved    []model.KeySeq
	HasSaved bool

	// Journal is optional. Events are recorded under SessionID.
	Journal   Journal
	SessionID string

	Now func() time.Time
}

// Model implements the Bubble Tea sorting UI.
type Model struct {
	hands       layout.Hands
	manager     *placement.Manager
	rankingPath string
	journal     Journal
	sessionID   string
	now         func() time.Time

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	logLines    []string
	confirmQuit bool
	dirty       bool

	view viewState
}

// viewState caches what the manager reports after each change.
type viewState struct {
	low, current, high model.KeySeq
	hasLow, hasHigh    bool
	index              int
	hasIndex           bool
	leftN, rightN      int
	areas              [4]int
	placed, total      int
	finished           bool
}

// NewModel constructs a sorting TUI model. A saved ranking that does not match
// the universe is an error.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		hands:       opts.Hands,
		rankingPath: opts.RankingPath,
		journal:     opts.Journal,
		sessionID:   opts.SessionID,
		now:         opts.Now,
		keys:        defaultKeyMap(),
		help:        help.New(),
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.manager = placement.NewManager(opts.Universe, nil)
	m.manager.SetOnChange(m.refresh)

	if opts.HasSaved {
		m.writeLog(fmt.Sprintf("Loading ngrams from %s", opts.RankingPath))
		if len(opts.Saved) > 0 {
			if err := m.manager.LoadState(opts.Saved); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", opts.RankingPath, err)
			}
		}
		m.record(model.ActionLoad, model.KeySeq{}, -1)
	} else {
		m.place()
	}
	m.dirty = false
	m.writeLog("Session started.")
	m.writeLog(instructions)
	m.refresh()
	return m, nil
}

// Manager returns the placement manager driven by the UI.
func (m *Model) Manager() *placement.Manager {
	return m.manager
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.confirmQuit {
			return m.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.confirmQuit = true
		case key.Matches(msg, m.keys.Left):
			m.manager.MoveLeft()
		case key.Matches(msg, m.keys.Right):
			m.manager.MoveRight()
		case key.Matches(msg, m.keys.Place):
			m.place()
		case key.Matches(msg, m.keys.Back):
			m.manager.MoveBack()
		case key.Matches(msg, m.keys.Reset):
			m.resetCurrent()
		case key.Matches(msg, m.keys.Previous):
			m.previous()
		case key.Matches(msg, m.keys.Save):
			m.save()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	default:
		return m, nil
	}
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

func (m *Model) place() {
	if m.manager.IsFinished() {
		return
	}
	idx, ok := m.manager.PlacementIndex()
	if !ok {
		idx = len(m.manager.Ordered())
	}
	seq, placed := m.manager.PlaceCurrent()
	if !placed {
		return
	}
	m.dirty = true
	left := m.hands.Left.SymbolsFor(seq, "")
	right := m.hands.Right.SymbolsFor(seq, "")
	m.writeLog(fmt.Sprintf("Placed ngram %s %s to %d", left, right, idx+1))
	m.record(model.ActionPlace, seq, idx)
	if m.manager.IsFinished() {
		m.writeLog("All ngrams placed.")
	}
}

func (m *Model) resetCurrent() {
	if m.manager.IsFinished() {
		return
	}
	m.manager.ResetCurrent()
	m.record(model.ActionReset, m.manager.Current(), -1)
}

func (m *Model) previous() {
	before := len(m.manager.Ordered())
	m.manager.Previous()
	if len(m.manager.Ordered()) < before {
		m.dirty = true
		m.record(model.ActionPrevious, m.manager.Current(), -1)
		return
	}
	m.record(model.ActionReset, m.manager.Current(), -1)
}

func (m *Model) save() {
	if err := ranking.Save(m.rankingPath, m.manager.Ordered()); err != nil {
		m.writeLog(fmt.Sprintf("Failed to save ngrams: %v", err))
		return
	}
	m.dirty = false
	m.writeLog(fmt.Sprintf("Saved ngrams to %s", m.rankingPath))
	m.record(model.ActionSave, model.KeySeq{}, -1)
}

func (m *Model) record(action string, seq model.KeySeq, position int) {
	if m.journal == nil || m.sessionID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	err := m.journal.RecordEvent(ctx, model.PlacementEvent{
		SessionID: m.sessionID,
		At:        m.now(),
		Action:    action,
		Seq:       seq,
		Position:  position,
		Ordered:   len(m.manager.Ordered()),
	})
	if err != nil {
		m.writeLog(fmt.Sprintf("Journal error: %v", err))
	}
}

func (m *Model) writeLog(message string) {
	ts := m.now().Format(logTimeLayout)
	m.logLines = append(m.logLines, fmt.Sprintf("[%s] %s", ts, message))
	if extra := len(m.logLines) - maxLogLines; extra > 0 {
		m.logLines = append([]string(nil), m.logLines[extra:]...)
	}
}

// refresh is the manager change callback.
func (m *Model) refresh() {
	mgr := m.manager
	v := viewState{
		current:  mgr.Current(),
		leftN:    len(mgr.LeftWindow()),
		rightN:   len(mgr.RightWindow()),
		placed:   len(mgr.Ordered()),
		total:    len(mgr.All()),
		finished: mgr.IsFinished(),
	}
	v.low, v.hasLow = mgr.LeftOfCurrent()
	v.high, v.hasHigh = mgr.RightOfCurrent()
	v.index, v.hasIndex = mgr.PlacementIndex()
	a, b, c, d := mgr.AreaWidths()
	v.areas = [4]int{a, b, c, d}
	m.view = v
}

func (m *Model) statusText() string {
	v := m.view
	var b strings.Builder
	if v.hasIndex {
		b.WriteString("pos: ")
		b.WriteString(posStyle.Render(fmt.Sprintf("%d", v.index+1)))
		b.WriteString(", ")
	}
	b.WriteString("L: ")
	b.WriteString(leftCountStyle.Render(fmt.Sprintf("%d", v.leftN)))
	b.WriteString(", R: ")
	b.WriteString(rightCountStyle.Render(fmt.Sprintf("%d", v.rightN)))
	b.WriteString(" (total: ")
	b.WriteString(totalStyle.Render(fmt.Sprintf("%d", v.leftN+v.rightN)))
	b.WriteString(")")
	return b.String()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
