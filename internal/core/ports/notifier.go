package ports

import "github.com/ripplebuild/ripple/internal/core/domain"

// Notifier fans a typed change message out to every ready client
// connection. Implementations must isolate per-connection send failures.
//
//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	// Broadcast sends {kind, path} to all ready clients. displayPath is
	// already output-root relative with forward slashes.
	Broadcast(kind domain.NotifyKind, displayPath string)

	// ClientCount returns the number of currently registered clients.
	ClientCount() int
}
