package domain

import "time"

const (
	// ConfigFileName is the name of the bundle configuration file.
	ConfigFileName = "bundles.yaml"

	// ManifestFileName is the name of the manifest written next to statically built bundles.
	ManifestFileName = "manifest.json"

	// DefaultListenAddr is the HTTP listen address used when none is configured.
	DefaultListenAddr = ":8080"

	// DefaultCacheTTL is the lifetime of a cached bundle when the definition sets none.
	DefaultCacheTTL = 5 * time.Minute

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
