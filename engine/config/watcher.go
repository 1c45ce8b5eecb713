package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Valid reloads arrive on Events,
// failed ones on Errors. Both channels hold at most one pending value; a newer value
// replaces an unread one.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	Events  chan Config
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// WatchOption is a functional option for configuring a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a reload. Non-positive values keep DefaultDebounce.
//
// Parameters:
//   - d: the debounce duration
//
// Returns:
//   - WatchOption: option function to apply
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching path. The parent directory is watched so editors that replace the
// file on save are still seen.
//
// Parameters:
//   - path: the config file
//   - options: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the running watcher; call Close when done
//   - error: an error if the directory cannot be watched
func Watch(path string, options ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: DefaultDebounce,
		Events:   make(chan Config, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Events and Errors. Safe to call more than once.
//
// Returns:
//   - error: the error from closing the underlying watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				offer(w.Errors, err)
				continue
			}
			offer(w.Events, cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			offer(w.Errors, fmt.Errorf("config: watch %s: %w", w.path, err))
		case <-w.closeCh:
			return
		}
	}
}

// offer sends v without blocking, dropping an unread older value first.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
