package assets

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changed files under a set of directories. Only paths
// accepted by the filter are delivered. A path is reported once its writes
// have been quiet for the debounce delay, so a file saved in several writes
// is seen after the last one.
type Watcher struct {
	watcher *fsnotify.Watcher
	filter  func(string) bool
	delay   time.Duration
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs for image changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	return NewFilteredWatcher(IsImageFile, dirs...)
}

func NewFilteredWatcher(filter func(string) bool, dirs ...string) (*Watcher, error) {
	return newWatcher(filter, watchDebounce, dirs...)
}

func newWatcher(filter func(string) bool, delay time.Duration, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		filter:  filter,
		delay:   delay,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()
	pending := make(map[string]time.Time)
	var fire <-chan time.Time
	schedule := func() {
		fire = nil
		var next time.Time
		for _, at := range pending {
			if next.IsZero() || at.Before(next) {
				next = at
			}
		}
		if !next.IsZero() {
			fire = time.After(time.Until(next))
		}
	}
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.filter != nil && !w.filter(event.Name) {
				continue
			}
			pending[filepath.Clean(event.Name)] = time.Now().Add(w.delay)
			schedule()
		case now := <-fire:
			var ready []string
			for name, at := range pending {
				if !at.After(now) {
					ready = append(ready, name)
				}
			}
			sort.Strings(ready)
			for _, name := range ready {
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
