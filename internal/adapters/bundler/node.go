package bundler

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

// NodeID is the unique identifier for the script bundler Graft node.
const NodeID graft.ID = "adapter.script_bundler"

func init() {
	graft.Register(graft.Node[ports.ScriptBundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScriptBundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBundler(log), nil
		},
	})
}
