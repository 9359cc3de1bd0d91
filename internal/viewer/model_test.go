package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keyseq/internal/model"
	"github.com/verte-zerg/keyseq/internal/ranking"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
}

func writeRanking(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ranking.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestModel(t *testing.T, path string) *Model {
	t.Helper()
	m, err := NewModel(Options{Hands: testHands(), RankingPath: path, Total: 6, Now: fixedNow})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func hasLog(m *Model, text string) bool {
	for _, line := range m.logLines {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}

func TestMissingRankingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	m := newTestModel(t, path)
	assert.Empty(t, m.Rows())
	assert.True(t, hasLog(m, "[12:30:00] Error loading data from: "+path+" (File does not exist)"))
	assert.Contains(t, m.View(), "No ranked ngrams found.")

	press(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, m.grabbed)
}

func TestDuplicateRankingFails(t *testing.T) {
	path := writeRanking(t, "0\n1\n0\n")
	_, err := NewModel(Options{Hands: testHands(), RankingPath: path})
	var dup *ranking.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, model.NewKeySeq(0), dup.Seq)
}

func TestGrabMoveAndSave(t *testing.T) {
	path := writeRanking(t, "2\n0\n1\n")
	m := newTestModel(t, path)
	assert.Equal(t, model.Seqs([]int{2}, []int{0}, []int{1}), m.Rows())

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	assert.False(t, m.dirty, "moving the cursor does not change the ranking")

	press(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, model.Seqs([]int{0}, []int{2}, []int{1}), m.Rows())
	assert.Equal(t, 0, m.cursor)
	assert.True(t, m.dirty)

	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, model.Seqs([]int{2}, []int{1}, []int{0}), m.Rows())

	press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, model.Seqs([]int{0}, []int{2}, []int{1}), m.Rows())

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.grabbed)
	assert.True(t, hasLog(m, "Placed: left=a, right=J, row=1"))

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n2\n1\n", string(data))
	assert.False(t, m.dirty)
	assert.True(t, hasLog(m, "Saved 3 ngrams to: "+path))
}

func TestSaveSkipsGrabbedRow(t *testing.T) {
	path := writeRanking(t, "2\n0\n1\n")
	m := newTestModel(t, path)

	press(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyCtrlS})
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n", string(data))
	assert.True(t, m.dirty, "the grabbed row is still unsaved")
	assert.Contains(t, m.View(), "Placed 2 out of 6 ngrams.")
}

func TestGoto(t *testing.T) {
	path := writeRanking(t, "2\n0,1\n1\n")
	m := newTestModel(t, path)

	press(m, keyRune('g'))
	require.True(t, m.gotoMode)
	assert.Contains(t, m.View(), "Goto")
	press(m, keyRune('K'), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.gotoMode)
	assert.Equal(t, 2, m.cursor)

	press(m, keyRune('g'), keyRune('x'), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.cursor)
	assert.True(t, hasLog(m, "No matches for 'x'."))

	press(m, keyRune('g'))
	for _, r := range "10,11,12,13" {
		press(m, keyRune(r))
	}
	assert.Equal(t, "10,11,12", m.gotoInput.Value())
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.gotoMode)
}

func TestGotoMovesGrabbedRow(t *testing.T) {
	path := writeRanking(t, "2\n0,1\n1\n")
	m := newTestModel(t, path)

	press(m, tea.KeyMsg{Type: tea.KeySpace}, keyRune('g'), keyRune('k'), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, model.Seqs([]int{0, 1}, []int{1}, []int{2}), m.Rows())
	assert.Equal(t, 2, m.cursor)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, writeRanking(t, "0\n1\n"))
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "clean viewer quits without confirmation")

	m = newTestModel(t, writeRanking(t, "0\n1\n"))
	press(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, press(m, keyRune('q')))
	assert.Contains(t, m.View(), "Are you sure you want to exit?")
	press(m, keyRune('n'))
	assert.False(t, m.confirmQuit)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	cmd = press(m, keyRune('y'))
	require.NotNil(t, cmd)
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestReloadOnChange(t *testing.T) {
	path := writeRanking(t, "0\n1\n")
	m := newTestModel(t, path)

	require.NoError(t, os.WriteFile(path, []byte("1\n0\n2\n"), 0o644))
	m.Update(rankingChangedMsg{})
	assert.Equal(t, model.Seqs([]int{1}, []int{0}, []int{2}), m.Rows())
	assert.True(t, hasLog(m, "Reloaded 3 ngrams"))

	press(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown})
	require.NoError(t, os.WriteFile(path, []byte("2\n"), 0o644))
	m.Update(rankingChangedMsg{})
	assert.Len(t, m.Rows(), 3)
	assert.True(t, hasLog(m, "keeping unsaved changes"))
}

func TestTabs(t *testing.T) {
	m := newTestModel(t, writeRanking(t, "0,0\n1\n"))

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabSummary, m.activeTab)
	assert.Contains(t, m.View(), "Ranking Report")

	press(m, keyRune('h'))
	assert.Equal(t, tabHelp, m.activeTab)
	assert.Contains(t, m.View(), "Short notations")

	press(m, keyRune('h'))
	assert.Equal(t, tabRanking, m.activeTab)
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabHelp, m.activeTab)
}
