package domain

import "go.trai.ch/zerr"

var (
	// ErrBundleNotFound is returned when a requested bundle key is not registered.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrSourceFileMissing is reported when a declared source file does not exist.
	// The file is skipped and the bundle is still built.
	ErrSourceFileMissing = zerr.New("source file missing")

	// ErrSourceReadFailed is returned when an existing source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrStyleCompileFailed is returned when the style compiler rejects a source.
	ErrStyleCompileFailed = zerr.New("style compilation failed")

	// ErrMinifyFailed is reported when minification fails. Unminified output is served instead.
	ErrMinifyFailed = zerr.New("minification failed")

	// ErrImportNotFound is reported when an @import directive references a missing file.
	ErrImportNotFound = zerr.New("imported file not found")

	// ErrCompilerUnavailable is returned when the external style compiler cannot be started.
	ErrCompilerUnavailable = zerr.New("style compiler unavailable")

	// ErrDuplicateBundleKey is returned when two bundles share a key (case-insensitive).
	ErrDuplicateBundleKey = zerr.New("duplicate bundle key")

	// ErrDuplicateURLPath is returned when two bundles share a URL path (case-insensitive).
	ErrDuplicateURLPath = zerr.New("duplicate bundle url path")

	// ErrInvalidBundle is returned when a bundle definition fails validation.
	ErrInvalidBundle = zerr.New("invalid bundle definition")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find bundles.yaml")

	// ErrRootNotDirectory is returned when the configured asset root is not a directory.
	ErrRootNotDirectory = zerr.New("asset root is not a directory")

	// ErrArtifactWriteFailed is returned when a built bundle cannot be written to disk.
	ErrArtifactWriteFailed = zerr.New("failed to write bundle artifact")

	// ErrManifestWriteFailed is returned when the build manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write build manifest")

	// ErrBuildFailed is returned when one or more bundles fail during a static build.
	ErrBuildFailed = zerr.New("bundle build failed")

	// ErrServerFailed is returned when the HTTP or admin listener stops unexpectedly.
	ErrServerFailed = zerr.New("server failed")
)
