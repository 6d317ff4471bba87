package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"glide/internal/eventbus"
)

// reloadDelay coalesces the bursts of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Watcher publishes ConfigChangedEvent whenever the config file changes on
// disk and still validates. Invalid edits publish an ErrorEvent instead, so
// the running settings stay in force.
type Watcher struct {
	log     *slog.Logger
	service ConfigService
	bus     eventbus.EventBus
	fs      *fsnotify.Watcher
	path    string
}

// NewWatcher watches the directory holding the service's file. Watching the
// directory keeps working when editors replace the file instead of writing it.
func NewWatcher(service ConfigService, bus eventbus.EventBus, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	path, err := filepath.Abs(service.Path())
	if err != nil {
		path = service.Path()
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		log:     log.With("component", "config-watcher"),
		service: service,
		bus:     bus,
		fs:      fsw,
		path:    path,
	}, nil
}

// Run blocks until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	reload := make(chan struct{}, 1)
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(reloadDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watcher error", "error", err)

		case <-reload:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	if _, err := w.service.LoadFromPath(w.path); err != nil {
		w.log.Error("config reload rejected", "path", w.path, "error", err)
		w.bus.Publish(eventbus.ErrorEvent{Message: "config reload failed", Err: err})
		return
	}
	w.log.Info("config changed", "path", w.path)
	w.bus.Publish(eventbus.ConfigChangedEvent{Path: w.path})
}
