package ports

import (
	"context"

	"mdvault/internal/domain"
)

// Watcher streams file-system events for a single vault root.
// Both channels are closed once Close returns.
type Watcher interface {
	Events() <-chan domain.WatchEvent
	Errors() <-chan error
	Close() error
}

// WatcherFactory starts a watcher over root
type WatcherFactory interface {
	Watch(root string) (Watcher, error)
}

// EchoRecorder registers file-system events the application is about to cause
type EchoRecorder interface {
	// Expect announces n upcoming self-caused events
	Expect(n int)
	// Cancel withdraws n expectations after a failed mutation
	Cancel(n int)
}

// Reconciler keeps the presentation in sync with the vault on disk
type Reconciler interface {
	SetRoot(ctx context.Context, root string) error
}
