package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/core/ports"
)

const (
	// ScannerNodeID is the unique identifier for the tree scanner Graft node.
	ScannerNodeID graft.ID = "adapter.fs.scanner"
	// DigesterNodeID is the unique identifier for the tree digester Graft node.
	DigesterNodeID graft.ID = "adapter.fs.digester"
)

func init() {
	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Scanner, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.TreeDigester]{
		ID:        DigesterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeDigester, error) {
			return NewDigester(), nil
		},
	})
}
