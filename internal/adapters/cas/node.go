package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/adapters/logger"
	"go.trai.ch/mirror/internal/core/ports"
)

// NodeID is the unique identifier for the fingerprint cache Graft node.
const NodeID graft.ID = "adapter.fingerprint_cache"

func init() {
	graft.Register(graft.Node[ports.FingerprintCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.FingerprintCache, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
