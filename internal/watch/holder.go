// Package watch keeps a book's option store current while its option file
// is edited.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hustcer/crowbook/internal/log"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the holder waits after the last file event
// before reloading.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc builds a fully configured store from scratch.
type BuildFunc func() (*options.Store, error)

// Holder owns the current option store. Stores handed out by Current are
// never modified afterwards; a reload publishes a new one.
type Holder struct {
	mu      sync.RWMutex
	current *options.Store

	build    BuildFunc
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger

	listenersMu sync.Mutex
	listeners   []chan<- *options.Store
}

// NewHolder builds the initial store. path is the option file to watch and
// may be empty.
func NewHolder(build BuildFunc, path string) (*Holder, error) {
	initial, err := build()
	if err != nil {
		return nil, err
	}
	return &Holder{
		current:  initial,
		build:    build,
		path:     path,
		debounce: DefaultDebounce,
		logger:   log.WithComponent("watch"),
	}, nil
}

// SetDebounce changes the reload delay. It must be called before Start.
func (h *Holder) SetDebounce(d time.Duration) {
	h.debounce = d
}

// Current returns the current store. Callers must treat it as read-only.
func (h *Holder) Current() *options.Store {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload rebuilds the store. On failure the previous store stays current.
func (h *Holder) Reload(_ context.Context) error {
	next, err := h.build()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str(log.FieldEvent, "watch.reload_failed").
			Str(log.FieldPath, h.path).
			Msg("keeping previous options")
		return fmt.Errorf("reload options: %w", err)
	}

	h.mu.Lock()
	h.current = next
	h.mu.Unlock()

	h.notify(next)

	h.logger.Info().
		Str(log.FieldEvent, "watch.reloaded").
		Str(log.FieldPath, h.path).
		Msg("options reloaded")
	return nil
}

// Subscribe registers ch to receive every successfully reloaded store.
// Sends never block; a full channel misses the update.
func (h *Holder) Subscribe(ch chan<- *options.Store) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notify(s *options.Store) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	for _, ch := range h.listeners {
		select {
		case ch <- s:
		default:
		}
	}
}

// Start watches the option file until ctx is done. It is a no-op when the
// holder has no path.
func (h *Holder) Start(ctx context.Context) error {
	if h.path == "" {
		h.logger.Debug().Str(log.FieldEvent, "watch.disabled").Msg("no option file to watch")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen.
	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	h.watcher = watcher

	h.logger.Info().
		Str(log.FieldEvent, "watch.started").
		Str(log.FieldPath, h.path).
		Msg("watching option file")

	go h.loop(ctx, watcher)
	return nil
}

func (h *Holder) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	target := filepath.Clean(h.path)
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			_ = watcher.Close()
			h.logger.Debug().Str(log.FieldEvent, "watch.stopped").Msg("option watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.debounce, func() {
				_ = h.Reload(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Str(log.FieldEvent, "watch.error").Msg("option watcher error")
		}
	}
}

// Stop closes the watcher if one is running.
func (h *Holder) Stop() {
	if h.watcher != nil {
		_ = h.watcher.Close()
	}
}
