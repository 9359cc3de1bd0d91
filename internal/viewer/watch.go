package viewer

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// rankingChangedMsg is sent when the ranking file changed on disk.
type rankingChangedMsg struct{}

// watchErrMsg carries an fsnotify error into the update loop.
type watchErrMsg struct{ err error }

// Watcher reports changes of a single ranking file. The parent directory is
// watched so that atomic replaces (rename over the file) are seen too.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		if cerr := fsw.Close(); cerr != nil {
			// Best-effort close after a failed add.
			_ = cerr
		}
		return nil, err
	}
	return &Watcher{fsw: fsw, path: abs}, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// wait blocks until the next relevant change and folds the burst of events
// that follows it into one message. It returns nil once the watcher is closed.
func (w *Watcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return nil
				}
				if !w.relevant(ev) {
					continue
				}
				w.drain()
				return rankingChangedMsg{}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (w *Watcher) drain() {
	timer := time.NewTimer(watchDebounce)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
		case <-timer.C:
			return
		}
	}
}
