package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Extensions are the file suffixes the watcher reacts to.
var Extensions = []string{".synop", ".txt"}

// Watcher feeds newly written report files to a handler. Change bursts
// for the same file are debounced into one delivery.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	// OnEvent, when set, is called once per accepted file event before
	// debouncing.
	OnEvent func()
}

// NewWatcher creates a watcher with the given debounce interval.
func NewWatcher(debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "ingest.watcher"),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch blocks, delivering each settled report file under dir to handle
// until ctx is canceled. Handle runs on the watcher goroutine; decode
// errors are the handler's to deal with.
func (w *Watcher) Watch(ctx context.Context, dir string, handle func(path string)) error {
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer w.watcher.Close()

	w.logger.Info("watching for report files", "dir", dir, "debounce", w.debounce)

	deliveries := make(chan string)
	done := make(chan struct{})
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if !w.accepts(event) {
				continue
			}
			if w.OnEvent != nil {
				w.OnEvent()
			}
			w.schedule(event.Name, deliveries, done)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			w.logger.Error("watch error", "error", err)

		case path := <-deliveries:
			w.logger.Debug("report file settled", "path", path)
			handle(path)
		}
	}
}

func (w *Watcher) accepts(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, want := range Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// schedule (re)arms the per-file debounce timer. A timer that fires
// after Watch has returned abandons its delivery instead of blocking
// on the unbuffered channel forever.
func (w *Watcher) schedule(path string, deliveries chan<- string, done <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		select {
		case deliveries <- path:
		case <-done:
		}
	})
}
