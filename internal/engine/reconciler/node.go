package reconciler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mirror/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/executor"
	"go.trai.ch/mirror/internal/engine/planner"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconciler"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			planner.NodeID,
			executor.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			p, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}

			e, err := graft.Dep[*executor.Executor](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.FingerprintCache](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(p, e, cache, log), nil
		},
	})
}
