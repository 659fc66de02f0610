package command

import (
	"context"
	"os/exec"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type runner struct{}

// NewRunner returns a CommandRunner backed by os/exec
func NewRunner() interfaces.CommandRunner {
	return &runner{}
}

// Output runs name with args and returns its stdout. Stderr is discarded.
func (r *runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, goerr.Wrap(err, "command failed",
			goerr.V("command", name),
			goerr.V("args", args),
		)
	}
	return out, nil
}
