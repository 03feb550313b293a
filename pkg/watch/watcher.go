// Package watch re-triggers discovery when configuration files change on
// disk. Bursts of notifications are coalesced: the refresh callback runs
// at most once per debounce window.
package watch

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the coalescing window for change notifications.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a set of directories and invokes a refresh callback
// after changes settle.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	log      *logrus.Logger
	debounce time.Duration
	refresh  func()

	timer   *time.Timer
	stopCh  chan struct{}
	stopped bool
}

// New creates a watcher over the given directories. Directories that do
// not exist yet are skipped; newly created subdirectories are added as
// they appear. refresh runs on the watcher's goroutine.
func New(dirs []string, debounce time.Duration, refresh func(), log *logrus.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		log:      log,
		debounce: debounce,
		refresh:  refresh,
		stopCh:   make(chan struct{}),
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			log.WithError(err).Debugf("cannot watch %s", dir)
		}
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Debug("watch error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.log.WithError(err).Debugf("cannot watch new dir %s", event.Name)
			}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	// Restart the window on every event so a burst produces one refresh.
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.refresh)
}

// Stop tears the watcher down. Pending debounced refreshes are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.stopCh)
	w.mu.Unlock()

	_ = w.watcher.Close()
}
