package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

// Invalidator is the single consumer of watcher events. Changed paths are
// mapped to bundle keys through the watch index, coalesced by a Debouncer,
// and then handed to the target invalidator in sorted order.
type Invalidator struct {
	watcher ports.Watcher
	index   *domain.WatchIndex
	target  ports.BundleInvalidator
	logger  ports.Logger

	debouncer *Debouncer
	events    chan ports.WatchEvent
	batches   chan []string
	done      chan struct{}

	root     string
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewInvalidator creates an Invalidator. A non-positive window selects DefaultDebounceWindow.
func NewInvalidator(
	w ports.Watcher,
	index *domain.WatchIndex,
	target ports.BundleInvalidator,
	logger ports.Logger,
	window time.Duration,
) *Invalidator {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	inv := &Invalidator{
		watcher: w,
		index:   index,
		target:  target,
		logger:  logger,
		events:  make(chan ports.WatchEvent),
		batches: make(chan []string),
		done:    make(chan struct{}),
	}
	inv.debouncer = NewDebouncer(window, inv.deliver)
	return inv
}

// Start watches root and begins invalidating bundles until ctx is done or Stop is called.
func (i *Invalidator) Start(ctx context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve watch root")
	}
	i.root = abs

	if err := i.watcher.Start(ctx, abs); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start file watcher"), "root", abs)
	}

	i.wg.Add(2)
	go i.pump()
	go i.loop(ctx)
	return nil
}

// Stop stops the watcher and discards any batch that has not fired yet.
func (i *Invalidator) Stop() error {
	var err error
	i.stopOnce.Do(func() {
		i.debouncer.Stop()
		close(i.done)
		err = i.watcher.Stop()
		i.wg.Wait()
	})
	return err
}

// pump forwards watcher events to the loop.
func (i *Invalidator) pump() {
	defer i.wg.Done()
	for event := range i.watcher.Events() {
		select {
		case i.events <- event:
		case <-i.done:
			return
		}
	}
}

func (i *Invalidator) loop(ctx context.Context) {
	defer i.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-i.done:
			return
		case event := <-i.events:
			i.handle(event)
		case keys := <-i.batches:
			i.apply(keys)
		}
	}
}

// deliver is the debouncer callback.
func (i *Invalidator) deliver(keys []string) {
	select {
	case i.batches <- keys:
	case <-i.done:
	}
}

func (i *Invalidator) handle(event ports.WatchEvent) {
	rel, ok := i.relative(event.Path)
	if !ok {
		return
	}
	keys := i.index.Affected(rel)
	if len(keys) == 0 {
		return
	}
	i.debouncer.Add(keys...)
}

func (i *Invalidator) apply(keys []string) {
	for _, key := range keys {
		i.target.Invalidate(key)
	}
	if i.logger != nil {
		i.logger.Info(fmt.Sprintf("invalidated %s", strings.Join(keys, ", ")))
	}
}

// relative converts an absolute event path into a root-relative, slash-separated path.
func (i *Invalidator) relative(path string) (string, bool) {
	rel, err := filepath.Rel(i.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
