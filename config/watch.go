package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it is written or replaced.
type Watcher interface {
	// Close stops watching. Safe to call more than once.
	Close() error
}

type watcher struct {
	fs       *fsnotify.Watcher
	path     string
	onChange func(Config)
	done     chan struct{}
	once     sync.Once
}

var _ Watcher = &watcher{}

// Watch reloads path on every change and hands the valid result to onChange.
// onChange runs on the watcher's goroutine; callers that touch frame state must hand the config to the frame thread.
// Invalid files are logged and skipped. The parent directory is watched so editors that replace the file are seen.
//
// Parameters:
//   - path: the config file
//   - onChange: receives each successfully reloaded config
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the watch could not be set up
func Watch(path string, onChange func(Config)) (Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watch %s: nil callback", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &watcher{
		fs:       fw,
		path:     abs,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	log.Printf("[Config] watching %s", abs)
	return w, nil
}

func (w *watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(w.path); err != nil || info.Size() == 0 {
				// Truncated mid-save; the write that follows triggers the reload.
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				log.Printf("[Config] reload skipped: %v", err)
				continue
			}
			w.onChange(cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[Config] watch error: %v", err)
		}
	}
}

func (w *watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
