package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mirror/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mirror/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mirror/internal/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mirror/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			shell.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			scanner, err := graft.Dep[ports.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.ToolRunner](ctx)
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

			return New(scanner, runner, cache, log), nil
		},
	})
}
