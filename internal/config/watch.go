package config

import (
	"path/filepath"
	"sync"
	"time"

	"linux-wallpaperparticles/internal/utils"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the bursts of events a single save produces.
const reloadDelay = 100 * time.Millisecond

type Watcher struct {
	watcher   *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Watch reloads the config at path whenever it changes and passes every
// valid result to onChange, on the watcher's goroutine. Invalid edits are
// logged and skipped. The parent directory is watched so editors that
// replace the file on save keep being followed.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	w.wg.Add(1)
	go w.loop(abs, onChange)

	utils.Debug("Watching %s for changes", abs)
	return w, nil
}

func (w *Watcher) loop(path string, onChange func(*Config)) {
	defer w.wg.Done()

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C

		case <-reload:
			reload = nil
			cfg, err := Load(path)
			if err != nil {
				utils.Warn("Ignoring config change: %v", err)
				continue
			}
			utils.Info("Reloaded config %s", path)
			onChange(cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			utils.Warn("Config watcher: %v", err)
		}
	}
}

// Close stops watching and waits for an in-flight onChange to return.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
