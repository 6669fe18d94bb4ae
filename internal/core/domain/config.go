package domain

import "time"

// Config is the fully resolved runtime configuration.
type Config struct {
	// Path is the absolute path of the configuration file.
	Path string
	// Root is the absolute asset root. Source paths are relative to it.
	Root string
	// Listen is the HTTP listen address.
	Listen string
	// Admin is the gRPC health listen address. Empty disables it.
	Admin string
	// Debounce is the delay between a file change and cache invalidation.
	Debounce time.Duration
	// Warm builds every bundle at startup.
	Warm bool
	// Compile holds the base style compiler settings.
	Compile CompileOptions
	// ImportScope selects how the inliner suppresses repeated imports.
	ImportScope ImportScope
	// Bundles are the declared bundles, sorted by key.
	Bundles []BundleDefinition
}
