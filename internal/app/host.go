package app

import (
	"context"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/bundler/internal/adapters/cache"
	"go.trai.ch/bundler/internal/adapters/watcher"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/engine/assembler"
	"go.trai.ch/bundler/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// HostDeps are the adapters a Host builds on. Watcher may be nil, in which
// case bundles are only rebuilt when their TTL expires.
type HostDeps struct {
	FS       ports.FileSystem
	Compiler ports.StyleCompiler
	Minifier ports.Minifier
	Tracer   ports.Tracer
	Logger   ports.Logger
	Watcher  ports.Watcher
}

// Host is the runtime context of one configuration: registry, cache store,
// orchestrator and change invalidation. It replaces any process-wide state.
type Host struct {
	cfg          *domain.Config
	registry     *domain.Registry
	cache        *cache.Store
	index        *domain.WatchIndex
	orchestrator *orchestrator.Orchestrator
	invalidator  *watcher.Invalidator
	logger       ports.Logger

	stopOnce sync.Once
}

// NewHost wires a Host for cfg.
func NewHost(cfg *domain.Config, deps HostDeps) (*Host, error) {
	registry, err := domain.NewRegistry(cfg.Bundles...)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore()
	index := domain.NewWatchIndex(registry)
	asm := assembler.New(cfg.Root, deps.FS, deps.Compiler, deps.Minifier, deps.Logger, deps.Tracer, assembler.Options{
		Compile:     cfg.Compile,
		ImportScope: cfg.ImportScope,
	})
	orch := orchestrator.New(registry, store, asm, index, deps.Logger)

	h := &Host{
		cfg:          cfg,
		registry:     registry,
		cache:        store,
		index:        index,
		orchestrator: orch,
		logger:       deps.Logger,
	}
	if deps.Watcher != nil {
		h.invalidator = watcher.NewInvalidator(deps.Watcher, index, orch, deps.Logger, cfg.Debounce)
	}
	return h, nil
}

// Registry returns the bundle registry.
func (h *Host) Registry() *domain.Registry {
	return h.registry
}

// Provider returns the bundle provider serving requests.
func (h *Host) Provider() ports.BundleProvider {
	return h.orchestrator
}

// Invalidator returns the handle used to drop cached bundles.
func (h *Host) Invalidator() ports.BundleInvalidator {
	return h.orchestrator
}

// Start begins watching the asset root for changes.
func (h *Host) Start(ctx context.Context) error {
	if h.invalidator == nil {
		return nil
	}
	if err := h.invalidator.Start(ctx, h.cfg.Root); err != nil {
		return zerr.Wrap(err, "failed to watch asset root")
	}
	return nil
}

// Stop stops watching and drops every cached bundle.
func (h *Host) Stop() error {
	var err error
	h.stopOnce.Do(func() {
		if h.invalidator != nil {
			err = h.invalidator.Stop()
		}
		h.cache.Clear()
	})
	return err
}

// Warm builds every bundle, runtime.NumCPU at a time.
func (h *Host) Warm(ctx context.Context) error {
	return h.orchestrator.Warm(ctx, runtime.NumCPU())
}

// Keys returns the bundle keys in sorted order.
func (h *Host) Keys() []string {
	keys := make([]string, 0, h.registry.Len())
	for key := range h.registry.All() {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
