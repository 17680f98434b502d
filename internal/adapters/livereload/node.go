package livereload

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

const (
	// HubNodeID is the unique identifier for the notification hub Graft node.
	HubNodeID graft.ID = "adapter.livereload_hub"
	// ServerNodeID is the unique identifier for the live-update server Graft node.
	ServerNodeID graft.ID = "adapter.livereload_server"
)

func init() {
	graft.Register(graft.Node[*Hub]{
		ID:        HubNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Hub, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewHub(log), nil
		},
	})

	graft.Register(graft.Node[*Server]{
		ID:        ServerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HubNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Server, error) {
			hub, err := graft.Dep[*Hub](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewServer(hub, log), nil
		},
	})
}
