package styles

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

// NodeID is the unique identifier for the style compiler Graft node.
const NodeID graft.ID = "adapter.style_compiler"

func init() {
	graft.Register(graft.Node[ports.StyleCompiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.StyleCompiler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(log), nil
		},
	})
}
