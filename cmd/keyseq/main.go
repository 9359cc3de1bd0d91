// Package main provides the CLI entrypoint for keyseq.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keyseq/internal/config"
	"github.com/verte-zerg/keyseq/internal/display"
	"github.com/verte-zerg/keyseq/internal/generator"
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
	"github.com/verte-zerg/keyseq/internal/ranking"
	"github.com/verte-zerg/keyseq/internal/stats"
	"github.com/verte-zerg/keyseq/internal/store"
	"github.com/verte-zerg/keyseq/internal/tui"
	"github.com/verte-zerg/keyseq/internal/viewer"
)

const (
	defaultHistoryLast  = 10
	defaultReportHeight = 10
	journalStartTimeout = 5 * time.Second
)

var defaultLengths = []int{1, 2, 3}

var (
	layoutPath  string
	rankingPath string
	lengths     []int

	sortJournal bool

	viewWatch bool

	reportBuckets int
	reportHeight  int

	historyLast    int
	historySession string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyseq",
		Short:         "Rank key sequences by typing effort",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSortCmd,
	}

	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", config.DefaultLayoutPath(), "keyboard layout file (YAML)")
	rootCmd.PersistentFlags().StringVar(&rankingPath, "ranking", config.DefaultRankingPath(), "ranking file")
	rootCmd.PersistentFlags().IntSliceVar(&lengths, "lengths", defaultLengths, "sequence lengths to rank (1-3)")
	rootCmd.Flags().BoolVar(&sortJournal, "journal", true, "record placements in the journal")

	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newPermutationsCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// applyFileConfig fills the shared flags from the config file unless they
// were set on the command line.
func applyFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "layout", &layoutPath, fileCfg.Layout.Path)
	applyStringConfig(cmd, "ranking", &rankingPath, fileCfg.Sort.Ranking)
	applyIntSliceConfig(cmd, "lengths", &lengths, fileCfg.Sort.Lengths)
	return fileCfg, nil
}

func runSortCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := applyFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "journal", &sortJournal, fileCfg.Journal.Enabled)

	cfg := model.Config{
		LayoutPath:  layoutPath,
		RankingPath: rankingPath,
		Lengths:     lengths,
		Journal:     sortJournal,
	}
	if err := validateLengths(cfg.Lengths); err != nil {
		return err
	}

	hands, err := loadHands(cfg.LayoutPath)
	if err != nil {
		return err
	}
	universe := generator.Permutations(hands.Left, hands.Right, cfg.Lengths...)

	saved, hasSaved, err := loadSavedRanking(cfg.RankingPath)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Hands:       hands,
		Universe:    universe,
		RankingPath: cfg.RankingPath,
		Saved:       saved,
		HasSaved:    hasSaved,
	}

	if cfg.Journal {
		dbPath := config.DefaultDBPath()
		if fileCfg.Journal.Path != nil {
			dbPath = *fileCfg.Journal.Path
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close journal: %v\n", cerr)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), journalStartTimeout)
		sessionID, err := st.StartSession(ctx, model.SessionInfo{
			StartedAt:   time.Now(),
			LayoutPath:  cfg.LayoutPath,
			RankingPath: cfg.RankingPath,
			Universe:    len(universe),
		})
		cancel()
		if err != nil {
			return err
		}
		opts.Journal = st
		opts.SessionID = sessionID
	}

	m, err := tui.NewModel(opts)
	if err != nil {
		return fmt.Errorf("failed to resume from %s: %w", cfg.RankingPath, err)
	}
	if err := tui.Run(m); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadSavedRanking reads a saved ranking. A missing file means there is no
// saved progress yet.
func loadSavedRanking(path string) ([]model.KeySeq, bool, error) {
	saved, err := ranking.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		var dup *ranking.DuplicateError
		if errors.As(err, &dup) {
			return nil, false, fmt.Errorf("cannot resume: %w", err)
		}
		return nil, false, fmt.Errorf("failed to load ranking: %w", err)
	}
	logErrf("Loaded %d ngrams from %s\n", len(saved), path)
	return saved, true, nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse and reorder a saved ranking",
		Args:  cobra.NoArgs,
		RunE:  runViewCmd,
	}
	cmd.Flags().BoolVar(&viewWatch, "watch", false, "reload the ranking when the file changes")
	return cmd
}

func runViewCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := applyFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "watch", &viewWatch, fileCfg.View.Watch)

	cfg := model.ViewConfig{
		LayoutPath:  layoutPath,
		RankingPath: rankingPath,
		Watch:       viewWatch,
	}
	if err := validateLengths(lengths); err != nil {
		return err
	}
	hands, err := loadHands(cfg.LayoutPath)
	if err != nil {
		return err
	}

	opts := viewer.Options{
		Hands:       hands,
		RankingPath: cfg.RankingPath,
		Total:       len(generator.Permutations(hands.Left, hands.Right, lengths...)),
	}
	if cfg.Watch {
		if err := os.MkdirAll(filepath.Dir(cfg.RankingPath), 0o755); err != nil {
			return fmt.Errorf("failed to create ranking directory: %w", err)
		}
		w, err := viewer.NewWatcher(cfg.RankingPath)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.RankingPath, err)
		}
		defer func() {
			if cerr := w.Close(); cerr != nil {
				logErrf("failed to stop watcher: %v\n", cerr)
			}
		}()
		opts.Watcher = w
	}

	m, err := viewer.NewModel(opts)
	if err != nil {
		return err
	}
	if err := viewer.Run(m); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}

func newPermutationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permutations",
		Short: "List every typable key sequence of the layout",
		Args:  cobra.NoArgs,
		RunE:  runPermutationsCmd,
	}
}

func runPermutationsCmd(cmd *cobra.Command, _ []string) error {
	if _, err := applyFileConfig(cmd); err != nil {
		return err
	}
	if err := validateLengths(lengths); err != nil {
		return err
	}
	hands, err := loadHands(layoutPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	perms := generator.Permutations(hands.Left, hands.Right, lengths...)
	for _, seq := range perms {
		_, err := fmt.Fprintf(out, "%-10s %-5s %-5s\n",
			seq.String(), hands.Left.SymbolsFor(seq, "-"), hands.Right.SymbolsFor(seq, "-"))
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "Total: %d\n", len(perms)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify SEQ...",
		Short: "Classify key sequences (e.g. 0,5,0)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runClassifyCmd,
	}
}

func runClassifyCmd(cmd *cobra.Command, args []string) error {
	if _, err := applyFileConfig(cmd); err != nil {
		return err
	}
	hands, err := loadHands(layoutPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	styled := isTerminal(out)
	for _, arg := range args {
		seq, err := model.ParseKeySeq(arg)
		if err != nil {
			return err
		}
		fields := []string{
			seq.String(),
			renderLine(display.SymbolsLine(hands, layout.Left, seq, "-", 0), styled),
			renderLine(display.SymbolsLine(hands, layout.Right, seq, "-", 0), styled),
			"fingers=" + renderLine(display.FingersLine(hands, seq), styled),
			"repeats=" + renderLine(display.RepeatLine(hands, seq), styled),
			"rowdiff=" + renderLine(display.RowDiffLine(hands, seq), styled),
			"direction=" + renderLine(display.DirectionLine(hands, seq), styled),
		}
		if _, err := fmt.Fprintln(out, strings.Join(fields, "  ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func renderLine(line display.Line, styled bool) string {
	if line.IsEmpty() {
		return "-"
	}
	if styled {
		return line.Render()
	}
	return line.Plain()
}

func isTerminal(w any) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a ranking by classification",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().IntVar(&reportBuckets, "buckets", stats.DefaultBuckets, "number of rank buckets")
	cmd.Flags().IntVar(&reportHeight, "height", defaultReportHeight, "plot height (0 disables plots)")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := applyFileConfig(cmd); err != nil {
		return err
	}
	if reportBuckets <= 0 {
		return fmt.Errorf("--buckets must be > 0")
	}
	if reportHeight < 0 {
		return fmt.Errorf("--height must be >= 0")
	}
	hands, err := loadHands(layoutPath)
	if err != nil {
		return err
	}
	ranked, err := ranking.Load(rankingPath)
	if err != nil {
		return fmt.Errorf("failed to load ranking: %w", err)
	}
	out := cmd.OutOrStdout()
	report := stats.BuildReport(hands, ranked, reportBuckets)
	return stats.RenderReportWithSize(out, report, 0, reportHeight, isTerminal(out))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journal sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N sessions (0 for all)")
	cmd.Flags().StringVar(&historySession, "session", "", "list the events of one session")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	dbPath := config.DefaultDBPath()
	if fileCfg.Journal.Path != nil {
		dbPath = *fileCfg.Journal.Path
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	if historySession != "" {
		events, err := st.ListEvents(ctx, historySession)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return writeEvents(out, events)
	}
	sessions, err := st.ListSessions(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	return writeSessions(out, sessions)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadHands(path string) (layout.Hands, error) {
	cfg, err := layout.LoadFile(path)
	if err != nil {
		return layout.Hands{}, fmt.Errorf("failed to load layout: %w", err)
	}
	hands, err := layout.Build(cfg)
	if err != nil {
		return layout.Hands{}, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return hands, nil
}

func validateLengths(ls []int) error {
	if len(ls) == 0 {
		return fmt.Errorf("--lengths must not be empty")
	}
	seen := make(map[int]bool, len(ls))
	for _, n := range ls {
		if n < 1 || n > model.MaxKeySeqLen {
			return fmt.Errorf("--lengths values must be between 1 and %d, got %d", model.MaxKeySeqLen, n)
		}
		if seen[n] {
			return fmt.Errorf("--lengths contains %d twice", n)
		}
		seen[n] = true
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target *[]int, value []int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), value...)
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keyseq configuration
# Uncomment a value to enable it. CLI flags override config values.

[layout]
# path = %q   # Keyboard layout file (YAML)

[sort]
# ranking = %q   # Ranking file
# lengths = [1, 2, 3]   # Sequence lengths to rank

[view]
# watch = false   # Reload the ranking when the file changes

[journal]
# enabled = true   # Record placements
# path = %q   # SQLite journal
`,
		config.DefaultLayoutPath(),
		config.DefaultRankingPath(),
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
