package ports

import "context"

// ToolRunner invokes the external conversion tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool_runner.go -destination=mocks/mock_tool_runner.go -package=mocks
type ToolRunner interface {
	// Run executes args[0] with the remaining arguments and returns its exit status.
	// Output streams are discarded. The error is non-nil only when the process
	// could not be started or was interrupted, never for a nonzero exit.
	Run(ctx context.Context, args []string) (int, error)
}
