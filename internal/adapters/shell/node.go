package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/core/ports"
)

// NodeID is the unique identifier for the tool runner Graft node.
const NodeID graft.ID = "adapter.tool_runner"

func init() {
	graft.Register(graft.Node[ports.ToolRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ToolRunner, error) {
			return NewRunner(), nil
		},
	})
}
