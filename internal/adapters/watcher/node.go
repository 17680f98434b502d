package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// ContentTrackerNodeID is the unique identifier for the content tracker Graft node.
	ContentTrackerNodeID graft.ID = "adapter.content_tracker"
)

func init() {
	// Watcher Node. The node constructs with the built-in defaults;
	// configured skip directories arrive through Start.
	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Watcher, error) {
			return NewWatcher(nil)
		},
	})

	// ContentTracker Node
	graft.Register(graft.Node[*ContentTracker]{
		ID:        ContentTrackerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*ContentTracker, error) {
			return NewContentTracker(), nil
		},
	})
}
