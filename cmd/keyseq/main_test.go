package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keyseq/internal/config"
)

const miniLayout = `
key_indices:
  - [0, 1, 2,    2, 1, 0]
hands:
  - [Left, Left, Left,    Right, Right, Right]
symbols:
  - [a, s, d,    k, l, ";"]
finger_matrix:
  - [m, m, i,    i, m, m]
matrix_positions:
  - [[0, 0], [1, 1], [2, 2],    [2, 2], [1, 1], [0, 0]]
`

func isolateXDG(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yml")
	require.NoError(t, os.WriteFile(path, []byte(miniLayout), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateLengths(t *testing.T) {
	assert.NoError(t, validateLengths([]int{1, 2, 3}))
	assert.NoError(t, validateLengths([]int{2}))
	assert.Error(t, validateLengths(nil))
	assert.Error(t, validateLengths([]int{0}))
	assert.Error(t, validateLengths([]int{4}))
	assert.Error(t, validateLengths([]int{1, 1}))
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	isolateXDG(t)

	var b strings.Builder
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Layout.Path)
	assert.Equal(t, config.DefaultLayoutPath(), *cfg.Layout.Path)
	require.NotNil(t, cfg.Sort.Ranking)
	assert.Equal(t, config.DefaultRankingPath(), *cfg.Sort.Ranking)
	assert.Equal(t, []int{1, 2, 3}, cfg.Sort.Lengths)
	require.NotNil(t, cfg.View.Watch)
	assert.False(t, *cfg.View.Watch)
	require.NotNil(t, cfg.Journal.Enabled)
	assert.True(t, *cfg.Journal.Enabled)
	require.NotNil(t, cfg.Journal.Path)
	assert.Equal(t, config.DefaultDBPath(), *cfg.Journal.Path)
}

func TestPermutationsCmd(t *testing.T) {
	isolateXDG(t)
	layoutFile := writeLayout(t)

	out, err := execute(t, "permutations", "--layout", layoutFile, "--lengths", "1,2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3+9+1)
	assert.Equal(t, []string{"0", "a", ";"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1,2", "sd", "lk"}, strings.Fields(lines[8]))
	assert.Equal(t, "Total: 12", lines[len(lines)-1])
}

func TestPermutationsCmdRejectsLengths(t *testing.T) {
	isolateXDG(t)
	layoutFile := writeLayout(t)

	_, err := execute(t, "permutations", "--layout", layoutFile, "--lengths", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 3")
}

func TestPermutationsCmdUsesConfigLayout(t *testing.T) {
	isolateXDG(t)
	layoutFile := writeLayout(t)
	cfgPath := config.DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	cfg := "[layout]\npath = \"" + filepath.ToSlash(layoutFile) + "\"\n[sort]\nlengths = [1]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := execute(t, "permutations")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 3")
}

func TestClassifyCmd(t *testing.T) {
	isolateXDG(t)
	layoutFile := writeLayout(t)

	out, err := execute(t, "classify", "--layout", layoutFile, "0,1", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0,1  as  ;l  "))
	assert.Contains(t, lines[0], "repeats=SFB(m)")
	assert.Contains(t, lines[1], "repeats=-")
}

func TestClassifyCmdRejectsBadSequence(t *testing.T) {
	isolateXDG(t)
	layoutFile := writeLayout(t)

	_, err := execute(t, "classify", "--layout", layoutFile, "0,1,2,0")
	require.Error(t, err)
}

func TestReportCmdEmptyRanking(t *testing.T) {
	isolateXDG(t)
	layoutFile := writeLayout(t)
	rankingFile := filepath.Join(t.TempDir(), "ranking.txt")
	require.NoError(t, os.WriteFile(rankingFile, nil, 0o644))

	out, err := execute(t, "report", "--layout", layoutFile, "--ranking", rankingFile)
	require.NoError(t, err)
	assert.Equal(t, "No ranked sequences found.\n", out)
}

func TestHistoryCmdEmptyJournal(t *testing.T) {
	isolateXDG(t)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No sessions found.\n", out)
}
