package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported for a path below the asset root.
type WatchOp uint8

// Every operation invalidates the bundles that read the path; the kind only
// matters to the watcher itself, which starts watching created directories.
const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

// WatchEvent is one change below the asset root.
type WatchEvent struct {
	// Path is absolute. Consumers make it root-relative before consulting a WatchIndex.
	Path      string
	Operation WatchOp
}

// Watcher reports changes below a directory tree.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root and every directory below it. Events are delivered
	// until Stop is called or ctx is done.
	Start(ctx context.Context, root string) error
	// Stop releases the underlying notifier. It is safe to call more than once.
	Stop() error
	// Events yields changes in arrival order. The sequence ends after Stop.
	Events() iter.Seq[WatchEvent]
}
