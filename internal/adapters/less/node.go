package less

import (
	"context"
	"os"
	"runtime"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundler/internal/adapters/logger"
	"go.trai.ch/bundler/internal/core/ports"
)

// NodeID is the unique identifier for the style compiler Graft node.
const NodeID graft.ID = "adapter.less"

// BinaryEnvVar overrides the compiler executable.
const BinaryEnvVar = "BUNDLER_LESSC"

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
			return NewCompiler(os.Getenv(BinaryEnvVar), runtime.GOMAXPROCS(0), log), nil
		},
	})
}
