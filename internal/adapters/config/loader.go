// Package config loads bundles.yaml into a domain.Config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const supportedVersion = "1"

// DefaultDebounce is used when the configuration does not set one.
const DefaultDebounce = 50 * time.Millisecond

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration. path names either the bundles.yaml file or a
// directory to search upwards from. An empty path starts at the working directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var file Bundlefile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	cfg, err := l.build(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "config", configPath)
	}
	return cfg, nil
}

// findConfiguration resolves start to a configuration file, walking up the
// directory tree when start is a directory.
func findConfiguration(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to get working directory")
		}
		start = wd
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), start)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, abs), "path", abs)
		}
		return "", zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), abs)
	}
	if !info.IsDir() {
		return abs, nil
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "searched upwards from "+abs), "cwd", abs)
}

// readAndUnmarshalYAML reads a YAML file and decodes it into target.
// Unknown fields are rejected; an empty file decodes to the zero value.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is resolved by findConfiguration
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), configPath)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), configPath)
	}
	return nil
}

func (l *Loader) build(configPath string, file *Bundlefile) (*domain.Config, error) {
	if file.Version != "" && file.Version != supportedVersion {
		return nil, invalid("version", file.Version)
	}

	cfg := &domain.Config{
		Path:        configPath,
		Root:        resolveRoot(configPath, file.Root),
		Listen:      file.Listen,
		Admin:       file.Admin,
		Debounce:    DefaultDebounce,
		Warm:        file.Warm,
		Compile:     domain.DefaultCompileOptions(),
		ImportScope: domain.ImportScopeCall,
	}
	if cfg.Listen == "" {
		cfg.Listen = domain.DefaultListenAddr
	}

	if file.Debounce != "" {
		d, err := parseDuration("debounce", file.Debounce)
		if err != nil {
			return nil, err
		}
		cfg.Debounce = d
	}

	if err := applyLess(cfg, file.Less); err != nil {
		return nil, err
	}

	bundles, err := l.buildBundles(file.Bundles)
	if err != nil {
		return nil, err
	}
	cfg.Bundles = bundles

	// Catch duplicate keys and URL paths while the file name is still at hand.
	if _, err := domain.NewRegistry(bundles...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyLess(cfg *domain.Config, dto *LessDTO) error {
	if dto == nil {
		return nil
	}

	switch domain.MathMode(dto.Math) {
	case "":
	case domain.MathStrict, domain.MathLoose:
		cfg.Compile.Math = domain.MathMode(dto.Math)
	default:
		return invalid("less.math", dto.Math)
	}

	switch domain.LineNumbersMode(dto.DumpLineNumbers) {
	case "":
	case domain.LineNumbersNone, domain.LineNumbersComments, domain.LineNumbersMediaQuery:
		cfg.Compile.DumpLineNumbers = domain.LineNumbersMode(dto.DumpLineNumbers)
	default:
		return invalid("less.dumpLineNumbers", dto.DumpLineNumbers)
	}

	switch domain.ImportScope(dto.ImportScope) {
	case "":
	case domain.ImportScopeCall, domain.ImportScopeBranch:
		cfg.ImportScope = domain.ImportScope(dto.ImportScope)
	default:
		return invalid("less.importScope", dto.ImportScope)
	}

	cfg.Compile.StrictUnits = dto.StrictUnits
	if dto.JavascriptEnabled != nil {
		cfg.Compile.JavascriptEnabled = *dto.JavascriptEnabled
	}
	cfg.Compile.GlobalVars = dto.GlobalVars
	cfg.Compile.ModifyVars = dto.ModifyVars
	return nil
}

func (l *Loader) buildBundles(dtos map[string]*BundleDTO) ([]domain.BundleDefinition, error) {
	keys := make([]string, 0, len(dtos))
	for key := range dtos {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	defs := make([]domain.BundleDefinition, 0, len(keys))
	for _, key := range keys {
		dto := dtos[key]
		if dto == nil {
			dto = &BundleDTO{}
		}

		def, err := buildBundle(key, dto)
		if err != nil {
			return nil, zerr.With(err, "bundle", key)
		}
		if len(def.SourceFiles) == 0 && l.Logger != nil {
			l.Logger.Warn(fmt.Sprintf("bundle %s has no source files and will always be empty", key))
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func buildBundle(key string, dto *BundleDTO) (domain.BundleDefinition, error) {
	if strings.TrimSpace(key) == "" {
		return domain.BundleDefinition{}, zerr.Wrap(domain.ErrInvalidBundle, "bundle key is empty")
	}
	if !strings.HasPrefix(dto.URLPath, "/") {
		return domain.BundleDefinition{}, zerr.Wrap(
			domain.ErrInvalidBundle,
			fmt.Sprintf("urlPath %q of bundle %s must start with /", dto.URLPath, key),
		)
	}

	def := domain.BundleDefinition{
		Key:           key,
		URLPath:       dto.URLPath,
		SourceFiles:   make([]string, 0, len(dto.SourceFiles)),
		Minify:        dto.Minify,
		IsStyleBundle: dto.IsStyleBundle,
	}

	for _, src := range dto.SourceFiles {
		normalized := domain.NormalizeSourcePath(src)
		if normalized == "" || normalized == "." || normalized == ".." || strings.HasPrefix(normalized, "../") {
			return domain.BundleDefinition{}, zerr.Wrap(
				domain.ErrInvalidBundle,
				fmt.Sprintf("source %q of bundle %s is outside the asset root", src, key),
			)
		}
		def.SourceFiles = append(def.SourceFiles, src)
	}

	if dto.CacheDuration != "" {
		ttl, err := parseDuration("cacheDuration", dto.CacheDuration)
		if err != nil {
			return domain.BundleDefinition{}, err
		}
		def.TTL = ttl
	}

	return def, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.Wrap(errors.Join(domain.ErrInvalidConfig, err), field)
	}
	if d < 0 {
		return 0, invalid(field, value)
	}
	return d, nil
}

func invalid(field, value string) error {
	return zerr.Wrap(domain.ErrInvalidConfig, fmt.Sprintf("%s: unsupported value %q", field, value))
}

// resolveRoot resolves the asset root relative to the configuration file.
func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}
