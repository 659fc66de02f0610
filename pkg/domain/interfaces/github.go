package interfaces

import (
	"context"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
)

// DispatchClient defines the repository dispatch operation of the GitHub API
type DispatchClient interface {
	// Dispatch sends a repository_dispatch event to owner/repo.
	// A non-nil error means the request did not complete; any HTTP status is reported in the result.
	Dispatch(ctx context.Context, owner, repo string, payload *model.DispatchPayload) (*model.DispatchResult, error)
}
