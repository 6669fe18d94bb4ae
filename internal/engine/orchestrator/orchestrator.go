// Package orchestrator serves bundles from cache and coalesces concurrent rebuilds.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/metrics"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	_ ports.BundleProvider    = (*Orchestrator)(nil)
	_ ports.BundleInvalidator = (*Orchestrator)(nil)
)

// Orchestrator answers bundle requests. A cached artifact is returned as is;
// otherwise exactly one build per key runs at a time and every concurrent
// caller receives its result. Failed builds are never cached.
type Orchestrator struct {
	registry  *domain.Registry
	cache     ports.BundleCache
	assembler ports.BundleAssembler
	index     *domain.WatchIndex
	logger    ports.Logger
	group     singleflight.Group
}

// New creates an Orchestrator. index may be nil when no file watching is done.
func New(
	registry *domain.Registry,
	cache ports.BundleCache,
	assembler ports.BundleAssembler,
	index *domain.WatchIndex,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		registry:  registry,
		cache:     cache,
		assembler: assembler,
		index:     index,
		logger:    logger,
	}
}

// GetBundle returns the artifact for key, building it if necessary. If ctx is
// cancelled while waiting, GetBundle returns ctx.Err() and the shared build
// keeps running for the remaining callers.
func (o *Orchestrator) GetBundle(ctx context.Context, key string) (domain.Artifact, error) {
	def, ok := o.registry.Lookup(key)
	if !ok {
		return domain.Artifact{}, zerr.Wrap(domain.ErrBundleNotFound, key)
	}
	canonical := domain.CanonicalKey(def.Key)

	if artifact, ok := o.cache.TryGet(canonical); ok {
		metrics.CacheRequests.WithLabelValues(canonical, "hit").Inc()
		return artifact, nil
	}
	metrics.CacheRequests.WithLabelValues(canonical, "miss").Inc()

	buildCtx := context.WithoutCancel(ctx)
	ch := o.group.DoChan(canonical, func() (any, error) {
		return o.build(buildCtx, canonical, def)
	})

	select {
	case <-ctx.Done():
		return domain.Artifact{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Artifact{}, res.Err
		}
		return res.Val.(domain.Artifact), nil
	}
}

// build runs inside the single-flight slot for key.
func (o *Orchestrator) build(ctx context.Context, key string, def *domain.BundleDefinition) (domain.Artifact, error) {
	epoch := o.cache.Epoch(key)

	// A caller that missed the cache may arrive just after the previous
	// flight stored its result.
	if artifact, ok := o.cache.TryGet(key); ok {
		return artifact, nil
	}

	metrics.BundleBuildCount.WithLabelValues(key).Inc()
	start := time.Now()

	artifact, err := o.assembler.Assemble(ctx, def)

	metrics.BundleBuildDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
	metrics.LastBundleBuildEnd.WithLabelValues(key).SetToCurrentTime()

	if err != nil {
		metrics.BundleBuildFailed.WithLabelValues(key, errorType(err)).Inc()
		return domain.Artifact{}, err
	}

	metrics.BundleSize.WithLabelValues(key).Set(float64(len(artifact.Content)))

	if o.index != nil {
		o.index.Track(key, artifact.Dependencies)
	}
	if !o.cache.SetAt(key, artifact, def.CacheTTL(), epoch) {
		o.logger.Info("bundle " + def.Key + " changed during build, result not cached")
	}
	return artifact, nil
}

// Invalidate drops the cached artifact for key and detaches any in-flight
// build, so the next request starts a fresh one.
func (o *Orchestrator) Invalidate(key string) {
	key = domain.CanonicalKey(key)
	o.cache.Invalidate(key)
	o.group.Forget(key)
	metrics.Invalidations.WithLabelValues(key).Inc()
}

// Warm builds every registered bundle using at most concurrency workers.
// All bundles are attempted; the returned error joins every failure.
func (o *Orchestrator) Warm(ctx context.Context, concurrency int) error {
	results := make([]error, o.registry.Len())

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	i := 0
	for key := range o.registry.All() {
		slot := i
		i++
		g.Go(func() error {
			if _, err := o.GetBundle(ctx, key); err != nil {
				results[slot] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(results...)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrStyleCompileFailed):
		return "compile"
	case errors.Is(err, domain.ErrSourceReadFailed):
		return "read"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
