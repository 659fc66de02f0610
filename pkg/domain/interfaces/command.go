package interfaces

import "context"

// CommandRunner runs an external program and returns its standard output
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}
