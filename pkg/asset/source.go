package asset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/watcher"
)

// ReloadDebounce is how long a model file must stay quiet before it is reloaded
const ReloadDebounce = 500 * time.Millisecond

// Source loads a model in the background. Frame loops poll Scene and draw the
// model once it is ready; headless callers block in Wait.
//
// Each successful load produces a new *scene.Node, so caches keyed on the
// node identity refresh themselves after a reload. The loaded tree is never
// modified by the Source afterwards.
type Source struct {
	path string
	load func(string) (*scene.Node, error)

	mu       sync.RWMutex
	current  *scene.Node
	err      error
	loading  bool
	pending  bool
	version  int
	onChange func(*scene.Node)

	ready     chan struct{}
	readyOnce sync.Once
	watcher   *watcher.FileWatcher
}

// NewSource creates a source for path without loading it yet
func NewSource(path string) *Source {
	return newSource(path, Load)
}

func newSource(path string, load func(string) (*scene.Node, error)) *Source {
	return &Source{
		path:  path,
		load:  load,
		ready: make(chan struct{}),
	}
}

// Path returns the model file
func (s *Source) Path() string {
	return s.path
}

// OnChange registers fn to run on the loading goroutine after each successful load
func (s *Source) OnChange(fn func(*scene.Node)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Start begins loading in the background. It returns immediately.
func (s *Source) Start() {
	go s.Reload()
}

// Reload loads the file again. A failed reload keeps the previous model and
// records the error. A reload requested while one is running is queued and
// runs once the current load finishes.
func (s *Source) Reload() {
	s.mu.Lock()
	if s.loading {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	for {
		s.loadOnce()

		s.mu.Lock()
		if !s.pending {
			s.loading = false
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.mu.Unlock()
	}
}

func (s *Source) loadOnce() {
	started := time.Now()
	root, err := s.load(s.path)

	s.mu.Lock()
	s.err = err
	var notify func(*scene.Node)
	if err == nil {
		s.current = root
		s.version++
		notify = s.onChange
	}
	s.mu.Unlock()

	if err != nil {
		slog.Error("failed to load model", "path", s.path, "err", err)
	} else {
		slog.Info("model loaded", "path", s.path, "elapsed", time.Since(started).Round(time.Millisecond))
		if notify != nil {
			notify(root)
		}
	}
	s.readyOnce.Do(func() { close(s.ready) })
}

// Scene returns the current model without blocking. ok is false until the first successful load.
func (s *Source) Scene() (*scene.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Loading reports whether a load is in progress
func (s *Source) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the most recent load attempt
func (s *Source) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Version counts successful loads
func (s *Source) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Wait blocks until the first load attempt finishes or ctx is done
func (s *Source) Wait(ctx context.Context) (*scene.Node, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.ready:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, s.err
	}
	return s.current, nil
}

// Watch reloads the model whenever its file changes until ctx is done or Close is called
func (s *Source) Watch(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(ReloadDebounce)
	if err != nil {
		return err
	}
	if err := fw.Watch([]string{s.path}, func(changed string) {
		slog.Info("model file changed", "path", changed)
		s.Reload()
	}); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch model: %w", err)
	}
	fw.Start(ctx)

	s.mu.Lock()
	s.watcher = fw
	s.mu.Unlock()
	return nil
}

// Close stops watching the model file
func (s *Source) Close() error {
	s.mu.Lock()
	fw := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if fw == nil {
		return nil
	}
	return fw.Close()
}
