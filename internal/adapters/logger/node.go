package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// JSONLogsEnv switches log output to machine-readable JSON when set, for
// running under CI or log collectors.
const JSONLogsEnv = "RIPPLE_JSON_LOGS"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := New()
			if os.Getenv(JSONLogsEnv) != "" {
				l.SetJSON(true)
			}
			return l, nil
		},
	})
}
