// Package app implements the application layer for the bundler.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/bundler/internal/adapters/detector"
	"go.trai.ch/bundler/internal/adapters/httpd"
	"go.trai.ch/bundler/internal/adapters/logger"
	"go.trai.ch/bundler/internal/adapters/telemetry"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	fs           ports.FileSystem
	compiler     ports.StyleCompiler
	minifier     ports.Minifier
	tracer       ports.Tracer
	store        ports.ArtifactStore
	watcher      ports.Watcher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	fsys ports.FileSystem,
	compiler ports.StyleCompiler,
	minifier ports.Minifier,
	tracer ports.Tracer,
	store ports.ArtifactStore,
	w ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		fs:           fsys,
		compiler:     compiler,
		minifier:     minifier,
		tracer:       tracer,
		store:        store,
		watcher:      w,
	}
}

// CommonOptions are shared by every command.
type CommonOptions struct {
	// ConfigPath names bundles.yaml or a directory to search upwards from.
	ConfigPath string
	// Root overrides the configured asset root.
	Root string
	// LogFormat is auto, pretty or json.
	LogFormat string
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	CommonOptions
	// Listen overrides the configured HTTP address.
	Listen string
	// Admin overrides the configured gRPC health address.
	Admin string
	// NoWarm skips building bundles at startup.
	NoWarm bool
	// NoWatch disables change invalidation.
	NoWatch bool
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	CommonOptions
	// OutDir receives the bundle files and manifest.json.
	OutDir string
	// Concurrency bounds parallel builds. Zero means runtime.NumCPU.
	Concurrency int
}

// Serve loads the configuration and serves bundles until ctx is done.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	a.configureLogging(opts.LogFormat)

	cfg, err := a.loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.Admin != "" {
		cfg.Admin = opts.Admin
	}

	shutdown := setupOTel(telemetry.NewBridge(a.logger))
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	deps := a.hostDeps()
	if opts.NoWatch {
		deps.Watcher = nil
	}
	host, err := NewHost(cfg, deps)
	if err != nil {
		return err
	}
	if err := host.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = host.Stop() }()

	files := http.FileServer(http.Dir(cfg.Root))
	bundles := httpd.NewBundleHandler(host.Registry(), host.Provider(), a.logger, files)
	server := httpd.NewServer(cfg.Listen, httpd.NewMux(bundles), a.logger)

	var admin *httpd.AdminServer
	if cfg.Admin != "" {
		admin = httpd.NewAdminServer(cfg.Admin, a.logger)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(ctx); err != nil {
			return errors.Join(domain.ErrServerFailed, err)
		}
		return nil
	})

	if admin != nil {
		g.Go(func() error {
			if err := admin.Serve(ctx); err != nil {
				return errors.Join(domain.ErrServerFailed, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if cfg.Warm && !opts.NoWarm {
			if err := host.Warm(ctx); err != nil {
				// Failed bundles are retried on their first request.
				a.logger.Error(zerr.Wrap(err, "warm-up finished with errors"))
			}
		}
		if admin != nil {
			admin.SetServing(true)
		}
		return nil
	})

	return g.Wait()
}

// Build assembles every bundle once and writes it with a manifest to opts.OutDir.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	a.configureLogging(opts.LogFormat)

	cfg, err := a.loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}
	if opts.OutDir == "" {
		return zerr.Wrap(domain.ErrInvalidConfig, "output directory is required")
	}

	deps := a.hostDeps()
	deps.Watcher = nil
	host, err := NewHost(cfg, deps)
	if err != nil {
		return err
	}
	defer func() { _ = host.Stop() }()

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		entries []domain.ManifestEntry
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for key, def := range host.Registry().All() {
		g.Go(func() error {
			entry, err := a.buildOne(gctx, host, opts.OutDir, key, def)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			entries = append(entries, entry)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.store.WriteManifest(opts.OutDir, entries); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		for _, err := range errs {
			a.logger.Error(err)
		}
		return errors.Join(domain.ErrBuildFailed, zerr.New(fmt.Sprintf("%d of %d bundles failed", len(errs), host.Registry().Len())))
	}

	a.logger.Info(fmt.Sprintf("%s wrote %d bundles to %s", style.Check, len(entries), opts.OutDir))
	return nil
}

func (a *App) buildOne(
	ctx context.Context,
	host *Host,
	outDir, key string,
	def *domain.BundleDefinition,
) (domain.ManifestEntry, error) {
	artifact, err := host.Provider().GetBundle(ctx, key)
	if err != nil {
		return domain.ManifestEntry{}, err
	}
	if len(artifact.Content) == 0 {
		a.logger.Warn(fmt.Sprintf("bundle %s is empty", def.Key))
	}
	entry, err := a.store.Put(outDir, def, artifact)
	if err != nil {
		return domain.ManifestEntry{}, err
	}
	a.logger.Info(fmt.Sprintf("built %s (%d bytes)", entry.File, entry.Size))
	return entry, nil
}

// List writes a table of the configured bundles to w.
func (a *App) List(_ context.Context, w io.Writer, opts CommonOptions) error {
	a.configureLogging(opts.LogFormat)

	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	defs := slices.Clone(cfg.Bundles)
	slices.SortFunc(defs, func(x, y domain.BundleDefinition) int {
		return strings.Compare(domain.CanonicalKey(x.Key), domain.CanonicalKey(y.Key))
	})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Muted).
		Headers("BUNDLE", "URL", "TYPE", "TTL", "MINIFY", "SOURCES")
	for i := range defs {
		def := &defs[i]
		kind := "script"
		if def.ResolveStyle(hasStyleSource(def.SourceFiles)) {
			kind = "style"
		}
		t.Row(
			def.Key,
			def.URLPath,
			kind,
			def.CacheTTL().String(),
			fmt.Sprintf("%t", def.Minify),
			strings.Join(def.SourceFiles, ", "),
		)
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n", style.Title.Render(cfg.Path), t.String())
	return err
}

func (a *App) hostDeps() HostDeps {
	return HostDeps{
		FS:       a.fs,
		Compiler: a.compiler,
		Minifier: a.minifier,
		Tracer:   a.tracer,
		Logger:   a.logger,
		Watcher:  a.watcher,
	}
}

// loadConfig loads the configuration and applies the root override.
func (a *App) loadConfig(opts CommonOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}

	isDir, err := a.fs.IsDir(cfg.Root)
	if err != nil || !isDir {
		return nil, zerr.With(zerr.Wrap(domain.ErrRootNotDirectory, cfg.Root), "root", cfg.Root)
	}
	return cfg, nil
}

// configureLogging applies the --log-format flag to loggers that support it.
func (a *App) configureLogging(flag string) {
	l, ok := a.logger.(interface{ SetFormat(logger.Format) })
	if !ok {
		return
	}
	if detector.ResolveMode(detector.DetectEnvironment(), flag) == detector.ModeJSON {
		l.SetFormat(logger.FormatJSON)
	} else {
		l.SetFormat(logger.FormatPretty)
	}
}

func hasStyleSource(sources []string) bool {
	for _, src := range sources {
		if strings.EqualFold(path.Ext(src), domain.StyleExtension) {
			return true
		}
	}
	return false
}

// setupOTel installs the tracer provider that reports finished spans to the log bridge.
func setupOTel(bridge *telemetry.Bridge) func(context.Context) error {
	return telemetry.Setup(bridge)
}
